package validate

import (
	"fmt"

	"cinema_factory/helper"
	"cinema_factory/model"
	"cinema_factory/utils"

	"github.com/gofiber/fiber/v2"
)

// SectionKind resolves :section and :kind against the catalog.
func SectionKind() fiber.Handler {
	return func(c *fiber.Ctx) error {
		section := helper.SectionKey(c.Params("section"))
		kind := c.Params("kind")
		spec, ok := model.LookupKind(section, kind)
		if !ok {
			return utils.ErrorResponse(c, fiber.StatusNotFound, "Unknown media collection",
				fmt.Errorf("%s/%s is not a media collection", section, kind))
		}
		c.Locals("section", section)
		c.Locals("kind", kind)
		c.Locals("kindSpec", spec)
		return c.Next()
	}
}

// DiplomaSection accepts only sections that carry a diploma.
func DiplomaSection() fiber.Handler {
	return func(c *fiber.Ctx) error {
		section := helper.SectionKey(c.Params("section"))
		if !model.HasDiploma(section) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, "Unknown section", errUnknownSection)
		}
		c.Locals("section", section)
		return c.Next()
	}
}

// AssetFields checks the text fields the collection requires and collects the
// ones it knows about.
func AssetFields() fiber.Handler {
	return func(c *fiber.Ctx) error {
		spec := c.Locals("kindSpec").(model.KindSpec)
		fields := map[string]string{}
		for _, name := range spec.Required {
			v := c.FormValue(name)
			if v == "" {
				return utils.ErrorResponse(c, fiber.StatusBadRequest, fmt.Sprintf("%s is required", name),
					fmt.Errorf("missing field %s", name))
			}
			fields[name] = v
		}
		for _, name := range spec.Optional {
			if v := c.FormValue(name); v != "" {
				fields[name] = v
			}
		}
		c.Locals("assetFields", fields)
		return c.Next()
	}
}
