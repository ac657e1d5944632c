package validate

import (
	"cinema_factory/model"

	"github.com/gofiber/fiber/v2"
)

// Login rejects a malformed body with the same answer as wrong credentials.
func Login() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.LoginInput
		if err := c.BodyParser(&input); err != nil || validate.Struct(input) != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"success": false,
				"message": "Invalid credentials",
			})
		}
		c.Locals("loginInput", input)
		return c.Next()
	}
}
