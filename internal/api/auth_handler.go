package api

import (
	"errors"
	"log/slog"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"itemboard/internal/service"
	"itemboard/internal/token"
)

type AuthHandler struct {
	authService service.AuthService
	tokens      *token.Service
	validate    *validator.Validate
}

func NewAuthHandler(authService service.AuthService, tokens *token.Service) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		tokens:      tokens,
		validate:    validator.New(),
	}
}

type RegisterRequest struct {
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required"`
	DisplayName string `json:"displayName"`
	AvatarURL   string `json:"avatarUrl"`
	Bio         string `json:"bio"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return Fail(c, fiber.StatusBadRequest, "Invalid JSON format")
	}

	// validation first: a malformed email must never reach the store
	if err := h.validate.Struct(&req); err != nil {
		return Fail(c, fiber.StatusBadRequest, validationMessage(err))
	}

	_, err := h.authService.Register(c.Context(), service.RegisterInput{
		Email:       req.Email,
		Password:    req.Password,
		DisplayName: req.DisplayName,
		AvatarURL:   req.AvatarURL,
		Bio:         req.Bio,
	})
	if err != nil {
		if errors.Is(err, service.ErrEmailTaken) {
			return Fail(c, fiber.StatusConflict, "User already exists")
		}
		slog.ErrorContext(c.Context(), "register failed", "error", err)
		return Fail(c, fiber.StatusInternalServerError, "Internal server error")
	}

	return Success(c, "User registered successfully", nil)
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return Fail(c, fiber.StatusBadRequest, "Invalid JSON format")
	}

	if err := h.validate.Struct(&req); err != nil {
		return Fail(c, fiber.StatusBadRequest, validationMessage(err))
	}

	signed, _, err := h.authService.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			return Fail(c, fiber.StatusNotFound, "User not found")
		case errors.Is(err, service.ErrInvalidCredentials):
			return Fail(c, fiber.StatusUnauthorized, "Invalid email or password")
		}
		slog.ErrorContext(c.Context(), "login failed", "error", err)
		return Fail(c, fiber.StatusInternalServerError, "Internal server error")
	}

	c.Cookie(&fiber.Cookie{
		Name:     "token",
		Value:    signed,
		Path:     "/",
		MaxAge:   int(h.tokens.TTL().Seconds()),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteStrictMode,
	})

	return Success(c, "success", signed)
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     "token",
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteStrictMode,
	})

	return Success(c, "Logged out successfully", nil)
}

// validationMessage turns the first failed rule into a short human-readable
// message instead of leaking validator internals.
func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		switch fe.Tag() {
		case "required":
			return fe.Field() + " is required"
		case "email":
			return "Invalid email format"
		}
		return fe.Field() + " is invalid"
	}
	return "Invalid input"
}
