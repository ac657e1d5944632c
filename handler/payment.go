package handler

import (
	"context"
	"encoding/json"
	"time"

	"cinema_factory/apperror"
	"cinema_factory/events"
	"cinema_factory/model"
	"cinema_factory/payphi"
	"cinema_factory/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
)

const publishTimeout = 5 * time.Second

type SaleBuilder interface {
	Build(ctx context.Context, in model.InitiatePaymentInput) (*model.PaymentInitiationRequest, error)
}

type SaleGateway interface {
	InitiateSale(req *model.PaymentInitiationRequest) ([]byte, error)
}

type CallbackRecorder interface {
	RecordCallback(ctx context.Context, event *model.CallbackEvent, res model.CallbackResult) error
}

type AsyncMailer interface {
	SendAsync(mail utils.Mail)
}

type PaymentHandler struct {
	Builder    SaleBuilder
	Gateway    SaleGateway
	Reconciler *payphi.Reconciler
	Ledger     CallbackRecorder
	Events     events.Publisher
	Mailer     AsyncMailer
	NotifyTo   string
}

// Initiate signs the sale request and relays the gateway's answer verbatim.
func (h *PaymentHandler) Initiate(c *fiber.Ctx) error {
	input := c.Locals("initiateInput").(model.InitiatePaymentInput)

	req, err := h.Builder.Build(c.UserContext(), input)
	if err != nil {
		if apperror.KindOf(err) == apperror.Invalid {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": apperror.InvalidAmount.Message,
			})
		}
		log.Errorw("payment initiation failed", "error", err)
		return utils.ErrorDetailResponse(c, fiber.StatusInternalServerError,
			apperror.GatewayInitiationFailure.Message, apperror.DetailOf(err))
	}

	log.Infow("initiating payment", req.LogFields()...)
	body, err := h.Gateway.InitiateSale(req)
	if err != nil {
		log.Errorw("payment initiation failed", append(req.LogFields(), "error", err)...)
		return utils.ErrorDetailResponse(c, fiber.StatusInternalServerError,
			apperror.GatewayInitiationFailure.Message, apperror.DetailOf(err))
	}

	events.Dispatch(h.Events, events.New(events.PaymentInitiated, req.MerchantTxnNo, fiber.Map{
		"merchantTxnNo": req.MerchantTxnNo,
		"amount":        req.Amount,
		"course":        req.AddlParam1,
		"txnDate":       req.TxnDate,
	}), publishTimeout)

	if json.Valid(body) {
		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	return c.Status(fiber.StatusOK).Send(body)
}

// Callback accepts whatever the gateway posts, records it, then sends the
// browser to the front-end confirmation page. Only callbacks carrying a valid
// secureHash reach the ledger and the notifications.
func (h *PaymentHandler) Callback(c *fiber.Ctx) error {
	payload := payphi.ParseCallback(c.Get(fiber.HeaderContentType), c.Body())
	res := h.Reconciler.Resolve(payload, c.Query("responseCode"))

	raw, err := json.Marshal(payload.Fields)
	if err != nil {
		return h.callbackFailed(c, res, err)
	}
	event := &model.CallbackEvent{
		MerchantTxnNo: res.MerchantTxnNo,
		Kind:          payload.Kind,
		ResponseCode:  res.ResponseCode,
		Outcome:       res.Outcome,
		Method:        c.Method(),
		Verified:      res.Verified,
		Payload:       raw,
		ReceivedAt:    time.Now(),
	}
	if err := h.Ledger.RecordCallback(c.UserContext(), event, res); err != nil {
		return h.callbackFailed(c, res, err)
	}

	log.Infow("payment callback",
		"merchantTxnNo", res.MerchantTxnNo,
		"kind", payload.Kind,
		"responseCode", res.ResponseCode,
		"outcome", res.Outcome,
		"verified", res.Verified,
	)
	if res.Verified {
		h.announce(res)
	} else {
		log.Warnw("unsigned payment callback, ledger untouched",
			"merchantTxnNo", res.MerchantTxnNo,
			"responseCode", res.ResponseCode,
		)
	}
	return c.Redirect(res.RedirectURL, fiber.StatusFound)
}

func (h *PaymentHandler) callbackFailed(c *fiber.Ctx, res model.CallbackResult, err error) error {
	log.Errorw("payment callback processing failed", "merchantTxnNo", res.MerchantTxnNo, "error", err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"message": apperror.CallbackProcessing.Message,
		"error":   err.Error(),
	})
}

func (h *PaymentHandler) announce(res model.CallbackResult) {
	events.Dispatch(h.Events, events.New(events.PaymentResolved, res.MerchantTxnNo, res), publishTimeout)

	if res.Outcome != model.PaymentSuccess || h.Mailer == nil || h.NotifyTo == "" {
		return
	}
	html, err := utils.RenderPaymentNotice(utils.PaymentNoticeData{
		MerchantTxnNo: res.MerchantTxnNo,
		GatewayTxnID:  res.GatewayTxnID,
		Course:        res.Course,
		Amount:        res.Amount,
		ResponseCode:  res.ResponseCode,
	})
	if err != nil {
		log.Warnw("render payment notice", "error", err)
		return
	}
	h.Mailer.SendAsync(utils.Mail{
		To:      []string{h.NotifyTo},
		Subject: "Payment received " + res.MerchantTxnNo,
		HTML:    html,
	})
}
