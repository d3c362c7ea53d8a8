package routes

import (
	"github.com/synthoshq/internal/handlers"
	"github.com/synthoshq/internal/middleware"
	"github.com/synthoshq/internal/repository"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func registerAdmin(router fiber.Router, db *gorm.DB) {
	adminRouter := router.Group("admin", middleware.RequireAdmin)
	waitlistRepo := repository.NewWaitlistRepository(db)
	handler := handlers.NewAdminHandler(waitlistRepo)

	adminRouter.Get("/waitlist", handler.WaitlistList)
}
