package routes

import (
	"github.com/synthoshq/internal/capacity"
	"github.com/synthoshq/internal/pipeline"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Routes binds every route group under /api/v1.
func Routes(app *fiber.App, db *gorm.DB, pipe *pipeline.Pipeline, gate *capacity.Gate) {
	api := app.Group("api/v1")

	registerWaitlist(api, db, pipe, gate)
	registerWizard(api, pipe)
	registerAuth(api)
	registerAdmin(api, db)
}
