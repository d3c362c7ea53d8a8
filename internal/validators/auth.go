package validators

import (
	"github.com/synthoshq/internal/helpers"

	"github.com/go-playground/validator"
	"github.com/gofiber/fiber/v2"
)

var Validator = validator.New()

func ValidateAdminLoginSchema(c *fiber.Ctx) error {
	body := new(helpers.InputAdminLogin)
	err := c.BodyParser(&body)
	if err != nil {
		return helpers.Dispatch400Error(c, "invalid payload", nil)
	}
	if err := Validator.Struct(body); err != nil {
		return helpers.SchemaError(c, err)
	}
	return c.Next()
}
