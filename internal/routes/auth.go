package routes

import (
	"github.com/synthoshq/internal/handlers"
	"github.com/synthoshq/internal/validators"

	"github.com/gofiber/fiber/v2"
)

func registerAuth(router fiber.Router) {
	authRouter := router.Group("auth")
	handler := handlers.NewAuthHandler()

	authRouter.Post("/login", validators.ValidateAdminLoginSchema, handler.AdminLogin)
}
