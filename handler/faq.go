package handler

import (
	"context"

	"cinema_factory/model"

	"github.com/gofiber/fiber/v2"
)

type FaqStore interface {
	List(ctx context.Context) ([]model.Faq, error)
	Create(ctx context.Context, faq *model.Faq) error
	Update(ctx context.Context, id uint, in model.Faq) (*model.Faq, error)
	Delete(ctx context.Context, id uint) error
}

type FaqHandler struct {
	Faqs FaqStore
}

func (h *FaqHandler) GetFaqs(c *fiber.Ctx) error {
	faqs, err := h.Faqs.List(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(faqs)
}

func (h *FaqHandler) CreateFaq(c *fiber.Ctx) error {
	faq := c.Locals("faqInput").(model.Faq)
	if err := h.Faqs.Create(c.UserContext(), &faq); err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(faq)
}

func (h *FaqHandler) UpdateFaq(c *fiber.Ctx) error {
	id := c.Locals("inputId").(uint)
	faq, err := h.Faqs.Update(c.UserContext(), id, c.Locals("faqInput").(model.Faq))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(faq)
}

func (h *FaqHandler) DeleteFaq(c *fiber.Ctx) error {
	id := c.Locals("inputId").(uint)
	if err := h.Faqs.Delete(c.UserContext(), id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Deleted successfully"})
}
