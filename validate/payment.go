package validate

import (
	"cinema_factory/apperror"
	"cinema_factory/model"
	"cinema_factory/utils"

	"github.com/gofiber/fiber/v2"
)

// InitiatePayment answers an unreadable amount the same way as a disallowed one.
func InitiatePayment() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.InitiatePaymentInput
		if err := c.BodyParser(&input); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": apperror.InvalidAmount.Message,
			})
		}
		if err := validate.Struct(input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", err)
		}

		c.Locals("initiateInput", input)
		return c.Next()
	}
}
