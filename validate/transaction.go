package validate

import (
	"cinema_factory/model"
	"cinema_factory/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/jinzhu/copier"
)

func clientFromInput(in model.ClientInput) (model.Client, error) {
	var client model.Client
	err := copier.Copy(&client, &in)
	return client, err
}

func CreateTransaction() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.CreateTransactionInput
		if err := c.BodyParser(&input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid input", err)
		}
		if err := validate.Struct(input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", err)
		}
		if input.Amount == nil || !input.Amount.IsPositive() {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", errAmountNotPositive)
		}

		client, err := clientFromInput(input.Client)
		if err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid input", err)
		}
		c.Locals("createInput", model.TransactionRecord{
			Client:        client,
			Amount:        *input.Amount,
			TransactionID: input.TransactionID,
			Status:        input.Status,
		})
		return c.Next()
	}
}

func UpdateTransaction() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.UpdateTransactionInput
		if err := c.BodyParser(&input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid input", err)
		}
		if err := validate.Struct(input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", err)
		}

		client, err := clientFromInput(input.Client)
		if err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid input", err)
		}
		c.Locals("updateInput", client)
		return c.Next()
	}
}

func TransactionFilter() fiber.Handler {
	return func(c *fiber.Ctx) error {
		filter := new(model.TransactionFilter)
		if err := c.QueryParser(filter); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid query", err)
		}
		c.Locals("filter", *filter)
		return c.Next()
	}
}
