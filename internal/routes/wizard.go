package routes

import (
	"github.com/synthoshq/internal/handlers"
	"github.com/synthoshq/internal/pipeline"
	"github.com/synthoshq/internal/wizard"

	"github.com/gofiber/fiber/v2"
)

func registerWizard(router fiber.Router, pipe *pipeline.Pipeline) {
	wizardRouter := router.Group("wizard")
	handler := handlers.NewWizardHandler(pipe, wizard.Config{})

	wizardRouter.Post("/", handler.CreateSession)
	wizardRouter.Get("/:id", handler.GetSession)
	wizardRouter.Post("/:id/submit", handler.SubmitStep)
	wizardRouter.Post("/:id/back", handler.BackStep)
	wizardRouter.Post("/:id/reset", handler.ResetSession)
}
