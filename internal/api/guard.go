package api

import (
	"net/url"

	"github.com/gofiber/fiber/v2"

	"itemboard/internal/token"
)

// Page guards. Unlike the API authenticator these look only at the canonical
// "token" cookie: page loads are always browser traffic. The outcome is an
// explicit allow-or-redirect, computed fresh on every request.

func guardCookie(c *fiber.Ctx) string {
	raw := c.Cookies("token")
	if raw == "" {
		return ""
	}
	if decoded, err := url.PathUnescape(raw); err == nil {
		return decoded
	}
	return raw
}

// RequireAuth aborts rendering and redirects to /login unless a valid token
// cookie is present. On success the identity is available to the page handler.
func RequireAuth(tokens *token.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := guardCookie(c)
		if raw == "" {
			return c.Redirect("/login", fiber.StatusFound)
		}

		identity, err := tokens.Verify(raw)
		if err != nil {
			return c.Redirect("/login", fiber.StatusFound)
		}

		c.Locals(identityKey, identity)

		return c.Next()
	}
}

// RedirectIfAuthenticated is the inverse guard for auth-only pages: a viewer
// who is already logged in is sent to the dashboard instead.
func RedirectIfAuthenticated(tokens *token.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := guardCookie(c)
		if raw == "" {
			return c.Next()
		}

		if _, err := tokens.Verify(raw); err != nil {
			return c.Next()
		}

		return c.Redirect("/dashboard", fiber.StatusFound)
	}
}
