package middleware

import (
	"strings"

	"github.com/synthoshq/constants"
	"github.com/synthoshq/internal/helpers"

	"github.com/gofiber/fiber/v2"
)

var env = constants.New()

// RequireAdmin guards admin routes with the bearer token issued by the
// admin login handler.
func RequireAdmin(c *fiber.Ctx) error {
	header := c.Get("Authorization")
	if header == "" || !strings.HasPrefix(header, "Bearer ") {
		return helpers.Dispatch401Error(c, "missing bearer token")
	}

	token := strings.TrimPrefix(header, "Bearer ")
	claims, err := helpers.VerifyToken(env.JWTSecretKey, token)
	if err != nil {
		return helpers.Dispatch401Error(c, "invalid or expired token")
	}

	c.Locals("admin_email", claims.Email)
	return c.Next()
}
