package handler

import (
	"cinema_factory/apperror"
	"cinema_factory/helper"
	"cinema_factory/utils"

	"github.com/gofiber/fiber/v2"
)

// respondError maps an application error onto the {message, error} envelope.
func respondError(c *fiber.Ctx, err error) error {
	return utils.ErrorDetailResponse(c, apperror.HTTPStatus(apperror.KindOf(err)), apperror.MessageOf(err), apperror.DetailOf(err))
}

// adminName is the username on the admin token, empty on public routes.
func adminName(c *fiber.Ctx) string {
	claim, err := helper.GetInfoAccountFromToken(c)
	if err != nil {
		return ""
	}
	return claim.Username
}
