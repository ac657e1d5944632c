package payphi

import (
	"net/url"
	"strings"

	"cinema_factory/model"
)

var (
	merchantTxnFields = []string{"merchantTxnNo", "MerchantTxnNo"}
	gatewayTxnFields  = []string{"txnID", "TxnID", "transactionId", "transactionID"}
)

// Reconciler turns a parsed callback into an outcome and the front-end redirect.
type Reconciler struct {
	cfg     model.PayPhiConfig
	success map[string]struct{}
}

func NewReconciler(cfg model.PayPhiConfig) *Reconciler {
	success := make(map[string]struct{}, len(cfg.SuccessCodes))
	for _, code := range cfg.SuccessCodes {
		success[code] = struct{}{}
	}
	return &Reconciler{cfg: cfg, success: success}
}

// ResponseCode walks the configured field names, then falls back to the
// responseCode query parameter.
func (r *Reconciler) ResponseCode(p Payload, queryCode string) string {
	if code := r.bodyCode(p); code != "" {
		return code
	}
	return strings.TrimSpace(queryCode)
}

func (r *Reconciler) bodyCode(p Payload) string {
	return p.Lookup(r.cfg.ResponseCodeFields, r.cfg.CaseInsensitiveFields)
}

// Verified reports whether the response code came from a body signed with the
// merchant secret. The query parameter is never signed.
func (r *Reconciler) Verified(p Payload) bool {
	return r.bodyCode(p) != "" && VerifyResponse(r.cfg.SecretKey, p.Fields)
}

func (r *Reconciler) Outcome(code string) model.PaymentOutcome {
	if _, ok := r.success[code]; ok {
		return model.PaymentSuccess
	}
	return model.PaymentFailed
}

// RedirectURL keeps the parameter order payment, course, amount.
func (r *Reconciler) RedirectURL(outcome model.PaymentOutcome, course, amount string) string {
	var b strings.Builder
	b.WriteString(r.cfg.FrontendBaseURL)
	b.WriteString("/apply?payment=")
	b.WriteString(url.QueryEscape(string(outcome)))
	b.WriteString("&course=")
	b.WriteString(url.QueryEscape(course))
	b.WriteString("&amount=")
	b.WriteString(url.QueryEscape(amount))
	return b.String()
}

func (r *Reconciler) Resolve(p Payload, queryCode string) model.CallbackResult {
	code := r.ResponseCode(p, queryCode)
	outcome := r.Outcome(code)
	course := p.Get("addlParam1")
	amount := p.Get("amount")
	return model.CallbackResult{
		Outcome:       outcome,
		ResponseCode:  code,
		Course:        course,
		Amount:        amount,
		MerchantTxnNo: p.Lookup(merchantTxnFields, false),
		GatewayTxnID:  p.Lookup(gatewayTxnFields, false),
		RedirectURL:   r.RedirectURL(outcome, course, amount),
		Verified:      r.Verified(p),
	}
}
