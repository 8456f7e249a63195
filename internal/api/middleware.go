package api

import (
	"net/url"
	"strings"

	"github.com/gofiber/fiber/v2"

	"itemboard/internal/token"
)

const identityKey = "identity"

// cookieNames is the priority order for cookie-borne tokens. The page guards
// only ever use the first, canonical name.
var cookieNames = []string{"token", "auth_token", "access_token"}

// ExtractToken pulls a token out of the request. An explicit Bearer header
// always beats an ambient cookie; cookie values are percent-decoded. Empty
// string means no credential was presented at all.
func ExtractToken(c *fiber.Ctx) string {
	authHeader := c.Get(fiber.HeaderAuthorization)
	if authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && parts[0] == "Bearer" && parts[1] != "" {
			return parts[1]
		}
	}

	for _, name := range cookieNames {
		if raw := c.Cookies(name); raw != "" {
			if decoded, err := url.PathUnescape(raw); err == nil {
				return decoded
			}
			return raw
		}
	}

	return ""
}

// AuthRequired guards API routes. A missing or failing credential is a plain
// 401, never an error propagated up.
func AuthRequired(tokens *token.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := ExtractToken(c)
		if raw == "" {
			return Fail(c, fiber.StatusUnauthorized, "Unauthorized")
		}

		identity, err := tokens.Verify(raw)
		if err != nil {
			return Fail(c, fiber.StatusUnauthorized, "Unauthorized")
		}

		c.Locals(identityKey, identity)

		return c.Next()
	}
}

// IdentityFromCtx returns the identity stored by AuthRequired or RequireAuth.
func IdentityFromCtx(c *fiber.Ctx) (token.Identity, bool) {
	identity, ok := c.Locals(identityKey).(token.Identity)
	return identity, ok
}
