package api

import (
	"errors"
	"log/slog"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"itemboard/internal/s3"
	"itemboard/internal/service"
)

type UserHandler struct {
	userService service.UserService
	presigner   *s3.FilePresigner
}

// presigner may be nil when object storage is not configured; the upload-url
// endpoint then answers 503.
func NewUserHandler(userService service.UserService, presigner *s3.FilePresigner) *UserHandler {
	return &UserHandler{userService: userService, presigner: presigner}
}

type UpdateProfileRequest struct {
	DisplayName *string `json:"displayName"`
	AvatarURL   *string `json:"avatarUrl"`
	Bio         *string `json:"bio"`
}

func (h *UserHandler) GetProfile(c *fiber.Ctx) error {
	identity, ok := IdentityFromCtx(c)
	if !ok {
		return Fail(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	user, err := h.userService.GetProfile(c.Context(), identity.UserID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			return Fail(c, fiber.StatusNotFound, "User not found")
		}
		slog.ErrorContext(c.Context(), "get profile failed", "error", err)
		return Fail(c, fiber.StatusInternalServerError, "Internal server error")
	}

	return Success(c, "success", user)
}

func (h *UserHandler) UpdateProfile(c *fiber.Ctx) error {
	identity, ok := IdentityFromCtx(c)
	if !ok {
		return Fail(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	var req UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return Fail(c, fiber.StatusBadRequest, "Invalid JSON payload")
	}

	fields := map[string]string{}
	if req.DisplayName != nil {
		fields["displayName"] = strings.TrimSpace(*req.DisplayName)
	}
	if req.AvatarURL != nil {
		fields["avatarUrl"] = strings.TrimSpace(*req.AvatarURL)
	}
	if req.Bio != nil {
		fields["bio"] = strings.TrimSpace(*req.Bio)
	}
	if len(fields) == 0 {
		return Fail(c, fiber.StatusBadRequest, "No valid fields to update")
	}

	user, err := h.userService.UpdateProfile(c.Context(), identity.UserID, fields)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			return Fail(c, fiber.StatusNotFound, "User not found")
		}
		slog.ErrorContext(c.Context(), "update profile failed", "error", err)
		return Fail(c, fiber.StatusInternalServerError, "Internal server error")
	}

	return Success(c, "", fiber.Map{"user": user})
}

func (h *UserHandler) GetAvatarUploadURL(c *fiber.Ctx) error {
	identity, ok := IdentityFromCtx(c)
	if !ok {
		return Fail(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	if h.presigner == nil {
		return Fail(c, fiber.StatusServiceUnavailable, "Object storage is not configured")
	}

	objectKey := "user-avatars/" + identity.UserID + "/" + uuid.New().String() + ".jpg"

	uploadURL, err := h.presigner.PresignedUploadURL(c.Context(), objectKey)
	if err != nil {
		slog.ErrorContext(c.Context(), "presign upload url failed", "error", err)
		return Fail(c, fiber.StatusInternalServerError, "Internal server error")
	}

	return Success(c, "success", fiber.Map{
		"uploadUrl": uploadURL,
		"avatarUrl": h.presigner.ObjectURL(objectKey),
	})
}
