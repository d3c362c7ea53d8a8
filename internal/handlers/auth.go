package handlers

import (
	"github.com/synthoshq/constants"
	"github.com/synthoshq/internal/helpers"

	"github.com/gofiber/fiber/v2"
)

var env = constants.New()

type AuthHandler struct {
	constant *constants.Constants
}

func NewAuthHandler() *AuthHandler {
	return &AuthHandler{
		constant: env,
	}
}

// AdminLogin exchanges the configured admin credentials for a jwt token
// used on the admin routes. There are no user accounts in this service,
// only this one operator login.
func (a *AuthHandler) AdminLogin(c *fiber.Ctx) error {
	var input helpers.InputAdminLogin
	if err := c.BodyParser(&input); err != nil {
		return helpers.Dispatch400Error(c, "invalid payload", nil)
	}

	if a.constant.AdminEmail == "" || a.constant.AdminPasswordHash == "" {
		return helpers.Dispatch401Error(c, "admin access is not configured")
	}

	if input.Email != a.constant.AdminEmail ||
		!helpers.ComparePassword(a.constant.AdminPasswordHash, input.Password) {
		return helpers.Dispatch401Error(c, "invalid credentials")
	}

	token, err := helpers.GenerateToken(a.constant.JWTSecretKey, input.Email, "Admin")
	if err != nil {
		return helpers.Dispatch500Error(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "authenticated",
		"data": fiber.Map{
			"token": token,
		},
	})
}
