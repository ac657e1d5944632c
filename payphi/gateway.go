package payphi

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"cinema_factory/apperror"
	"cinema_factory/model"

	"github.com/gofiber/fiber/v2"
)

// Gateway posts sale requests to PayPhi. Failed calls are not retried.
type Gateway struct {
	baseURL string
	timeout time.Duration
}

func NewGateway(cfg model.PayPhiConfig) *Gateway {
	return &Gateway{baseURL: cfg.GatewayBaseURL, timeout: cfg.Timeout}
}

func (g *Gateway) InitiateSale(req *model.PaymentInitiationRequest) ([]byte, error) {
	a := fiber.Post(g.baseURL + "/initiateSale")
	a.JSON(req)
	if g.timeout > 0 {
		a.Timeout(g.timeout)
	}

	code, body, errs := a.Bytes()
	if len(errs) > 0 {
		err := errors.Join(errs...)
		return nil, apperror.E(apperror.Gateway, apperror.GatewayInitiationFailure.Message, err,
			apperror.Detail{Value: err.Error()})
	}
	if code < fiber.StatusOK || code >= fiber.StatusMultipleChoices {
		return body, apperror.E(apperror.Gateway, apperror.GatewayInitiationFailure.Message,
			fmt.Errorf("gateway responded %d", code), apperror.Detail{Value: gatewayDetail(code, body)})
	}
	return body, nil
}

// gatewayDetail keeps a JSON error body as JSON so it is passed through unchanged.
func gatewayDetail(code int, body []byte) any {
	if len(body) == 0 {
		return fmt.Sprintf("gateway responded %d", code)
	}
	if json.Valid(body) {
		return json.RawMessage(body)
	}
	return string(body)
}
