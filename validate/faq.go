package validate

import (
	"cinema_factory/model"
	"cinema_factory/utils"

	"github.com/gofiber/fiber/v2"
)

func FaqInput() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.FaqInput
		if err := c.BodyParser(&input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid input", err)
		}
		if err := validate.Struct(input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", err)
		}

		keywords := input.Keywords
		if keywords == nil {
			keywords = []string{}
		}
		c.Locals("faqInput", model.Faq{
			Question: input.Question,
			Answer:   input.Answer,
			Keywords: keywords,
		})
		return c.Next()
	}
}
