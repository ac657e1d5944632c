package payphi

import (
	"context"
	"strings"
	"time"

	"cinema_factory/apperror"
	"cinema_factory/model"

	"github.com/shopspring/decimal"
)

// Builder assembles signed initiateSale payloads.
type Builder struct {
	cfg   model.PayPhiConfig
	txnNo TxnNoGenerator
	now   func() time.Time
}

func NewBuilder(cfg model.PayPhiConfig, txnNo TxnNoGenerator) *Builder {
	if txnNo == nil {
		txnNo = UUIDTxnNo{}
	}
	return &Builder{cfg: cfg, txnNo: txnNo, now: time.Now}
}

// AmountAllowed reports whether amount matches one of the configured price points.
func (b *Builder) AmountAllowed(amount decimal.Decimal) bool {
	for _, allowed := range b.cfg.AllowedAmounts {
		if amount.Equal(allowed) {
			return true
		}
	}
	return false
}

// Build validates the amount before anything else and returns a request whose
// secureHash covers every other field.
func (b *Builder) Build(ctx context.Context, in model.InitiatePaymentInput) (*model.PaymentInitiationRequest, error) {
	if !b.AmountAllowed(in.Amount) {
		return nil, apperror.E(apperror.Invalid, apperror.InvalidAmount.Message)
	}

	txnNo, err := b.txnNo.Next(ctx)
	if err != nil {
		return nil, apperror.E(apperror.Internal, "could not allocate merchant transaction number", err)
	}

	course := strings.TrimSpace(in.Course)
	if course == "" {
		course = b.cfg.DefaultCourse
	}

	req := &model.PaymentInitiationRequest{
		MerchantID:       b.cfg.MerchantID,
		MerchantTxnNo:    txnNo,
		Amount:           in.Amount.StringFixed(2),
		CurrencyCode:     b.cfg.CurrencyCode,
		PayType:          b.cfg.PayType,
		CustomerEmailID:  firstNonEmpty(in.CustomerEmailID, b.cfg.CustomerEmailID),
		TransactionType:  b.cfg.TransactionType,
		TxnDate:          FormatTxnDate(b.now()),
		ReturnURL:        b.cfg.ReturnURL,
		CustomerMobileNo: firstNonEmpty(in.CustomerMobileNo, b.cfg.CustomerMobileNo),
		AddlParam1:       course,
		AddlParam2:       b.cfg.AddlParam2,
	}
	req.SecureHash = Sign(b.cfg.SecretKey, SigningMessage(req))
	return req, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
