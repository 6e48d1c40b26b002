package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"

	"vidtube/internal/apierror"
)

// UserIDLocalKey is the key under which the verified user ID is stored in
// Fiber's context locals.
const UserIDLocalKey = "user_id"

// Auth verifies a Bearer token signed with HS256 and stores the subject claim
// as the acting user ID. Requests without a valid token never reach the
// handlers behind it.
func Auth(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := c.Get(fiber.HeaderAuthorization)
		if raw == "" {
			return apierror.Unauthenticated("missing authorization header")
		}

		token, ok := strings.CutPrefix(raw, "Bearer ")
		if !ok || token == "" {
			return apierror.Unauthenticated("authorization header must be a bearer token")
		}

		parsed, err := jwt.Parse(token, func(t *jwt.Token) (any, error) {
			return []byte(secret), nil
		}, jwt.WithValidMethods([]string{"HS256"}))
		if err != nil || !parsed.Valid {
			return apierror.Unauthenticated("invalid or expired token")
		}

		sub, err := parsed.Claims.GetSubject()
		if err != nil || sub == "" {
			return apierror.Unauthenticated("token has no subject")
		}

		c.Locals(UserIDLocalKey, sub)
		return c.Next()
	}
}
