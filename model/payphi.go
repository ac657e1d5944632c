package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type PayPhiConfig struct {
	MerchantID      string
	SecretKey       string
	GatewayBaseURL  string
	ReturnURL       string
	FrontendBaseURL string
	AllowedAmounts  []decimal.Decimal

	AddlParam2      string
	DefaultCourse   string
	CurrencyCode    string
	PayType         string
	TransactionType string

	// Fallbacks used only when the paying client leaves them out.
	CustomerEmailID  string
	CustomerMobileNo string

	SuccessCodes          []string
	ResponseCodeFields    []string
	CaseInsensitiveFields bool

	Timeout time.Duration
}

type InitiatePaymentInput struct {
	Amount           decimal.Decimal `json:"amount"`
	Course           string          `json:"course" validate:"omitempty,max=120"`
	CustomerEmailID  string          `json:"customerEmailID" validate:"omitempty,email"`
	CustomerMobileNo string          `json:"customerMobileNo" validate:"omitempty,numeric,min=10,max=15"`
}

// PaymentInitiationRequest is the body posted to the gateway's initiateSale endpoint.
type PaymentInitiationRequest struct {
	MerchantID       string `json:"merchantId"`
	MerchantTxnNo    string `json:"merchantTxnNo"`
	Amount           string `json:"amount"`
	CurrencyCode     string `json:"currencyCode"`
	PayType          string `json:"payType"`
	CustomerEmailID  string `json:"customerEmailID"`
	TransactionType  string `json:"transactionType"`
	TxnDate          string `json:"txnDate"`
	ReturnURL        string `json:"returnURL"`
	CustomerMobileNo string `json:"customerMobileNo"`
	AddlParam1       string `json:"addlParam1"`
	AddlParam2       string `json:"addlParam2"`
	SecureHash       string `json:"secureHash"`
}

// LogFields is the request without its secure hash.
func (r PaymentInitiationRequest) LogFields() []any {
	return []any{
		"merchantTxnNo", r.MerchantTxnNo,
		"amount", r.Amount,
		"course", r.AddlParam1,
		"txnDate", r.TxnDate,
	}
}

type PaymentOutcome string

const (
	PaymentSuccess PaymentOutcome = "success"
	PaymentFailed  PaymentOutcome = "failed"
)

// CallbackResult is a reconciled callback. Verified is set only when the body
// carried a valid secureHash; unverified results never touch the ledger.
type CallbackResult struct {
	Outcome       PaymentOutcome `json:"outcome"`
	ResponseCode  string         `json:"responseCode"`
	Course        string         `json:"course"`
	Amount        string         `json:"amount"`
	MerchantTxnNo string         `json:"merchantTxnNo"`
	GatewayTxnID  string         `json:"gatewayTxnId"`
	RedirectURL   string         `json:"-"`
	Verified      bool           `json:"verified"`
}
