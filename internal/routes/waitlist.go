package routes

import (
	"github.com/synthoshq/internal/capacity"
	"github.com/synthoshq/internal/handlers"
	"github.com/synthoshq/internal/pipeline"
	"github.com/synthoshq/internal/repository"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func registerWaitlist(router fiber.Router, db *gorm.DB, pipe *pipeline.Pipeline, gate *capacity.Gate) {
	waitlistRouter := router.Group("waitlist")
	subscriberRepo := repository.NewSubscriberRepository(db)
	handlers := handlers.NewWaitlistHandler(pipe, gate, subscriberRepo)

	waitlistRouter.Post("/", handlers.WaitlistCreate)
	waitlistRouter.Get("/count", handlers.WaitlistCount)
	router.Post("/subscribe", handlers.Subscribe)
}
