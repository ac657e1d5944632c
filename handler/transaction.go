package handler

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"cinema_factory/model"
	"cinema_factory/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
)

type Ledger interface {
	List(ctx context.Context, filter model.TransactionFilter) ([]model.TransactionRecord, int64, error)
	Get(ctx context.Context, id uint) (*model.TransactionRecord, error)
	Save(ctx context.Context, rec *model.TransactionRecord) (bool, error)
	UpdateClient(ctx context.Context, id uint, client model.Client) (*model.TransactionRecord, error)
	Delete(ctx context.Context, id uint) error
}

type TransactionHandler struct {
	Ledger Ledger
}

// GetPayments returns the ledger newest first as a plain array; the unpaginated
// total travels in X-Total-Count.
func (h *TransactionHandler) GetPayments(c *fiber.Ctx) error {
	filter := c.Locals("filter").(model.TransactionFilter)
	rows, total, err := h.Ledger.List(c.UserContext(), filter)
	if err != nil {
		return respondError(c, err)
	}
	c.Set("X-Total-Count", strconv.FormatInt(total, 10))
	return c.Status(fiber.StatusOK).JSON(rows)
}

func (h *TransactionHandler) CreatePayment(c *fiber.Ctx) error {
	rec := c.Locals("createInput").(model.TransactionRecord)
	merged, err := h.Ledger.Save(c.UserContext(), &rec)
	if err != nil {
		log.Errorw("save payment failed", "transactionId", rec.TransactionID, "error", err)
		return respondError(c, err)
	}
	log.Infow("payment saved", "id", rec.ID, "transactionId", rec.TransactionID, "merged", merged)
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Payment and client info saved successfully",
	})
}

func (h *TransactionHandler) UpdatePayment(c *fiber.Ctx) error {
	id := c.Locals("inputId").(uint)
	client := c.Locals("updateInput").(model.Client)
	updated, err := h.Ledger.UpdateClient(c.UserContext(), id, client)
	if err != nil {
		return respondError(c, err)
	}
	log.Infow("payment client updated", "id", id, "by", adminName(c))
	return c.Status(fiber.StatusOK).JSON(updated)
}

func (h *TransactionHandler) DeletePayment(c *fiber.Ctx) error {
	id := c.Locals("inputId").(uint)
	if err := h.Ledger.Delete(c.UserContext(), id); err != nil {
		return respondError(c, err)
	}
	log.Infow("payment deleted", "id", id, "by", adminName(c))
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "Payment deleted successfully"})
}

func (h *TransactionHandler) ExportPayments(c *fiber.Ctx) error {
	filter := c.Locals("filter").(model.TransactionFilter)
	rows, _, err := h.Ledger.List(c.UserContext(), filter)
	if err != nil {
		return respondError(c, err)
	}
	data, err := utils.LedgerWorkbook(rows)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Error exporting payments", err)
	}
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename="payments-%s.xlsx"`, time.Now().Format("20060102")))
	return c.Status(fiber.StatusOK).Send(data)
}

// Summary aggregates the rows the filter selects.
func (h *TransactionHandler) Summary(c *fiber.Ctx) error {
	filter := c.Locals("filter").(model.TransactionFilter)
	rows, _, err := h.Ledger.List(c.UserContext(), filter)
	if err != nil {
		return respondError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, utils.SummarizeLedger(rows))
}

func (h *TransactionHandler) Receipt(c *fiber.Ctx) error {
	id := c.Locals("inputId").(uint)
	rec, err := h.Ledger.Get(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	pdf, err := utils.BuildReceipt(*rec)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Error generating receipt", err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`inline; filename="receipt-%d.pdf"`, rec.ID))
	return c.Status(fiber.StatusOK).Send(pdf)
}
