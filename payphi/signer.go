// Package payphi builds signed sale requests for the PayPhi gateway and reconciles
// its callbacks into a success/failed outcome.
package payphi

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"strings"
	"time"

	"cinema_factory/model"
)

const txnDateLayout = "20060102150405"

// FormatTxnDate renders t as yyyyMMddHHmmss in local time.
func FormatTxnDate(t time.Time) string {
	return t.Local().Format(txnDateLayout)
}

// SigningMessage concatenates the signed fields, in gateway order, with no separator.
func SigningMessage(r *model.PaymentInitiationRequest) string {
	var b strings.Builder
	for _, field := range []string{
		r.AddlParam1,
		r.AddlParam2,
		r.Amount,
		r.CurrencyCode,
		r.CustomerEmailID,
		r.CustomerMobileNo,
		r.MerchantID,
		r.MerchantTxnNo,
		r.PayType,
		r.ReturnURL,
		r.TransactionType,
		r.TxnDate,
	} {
		b.WriteString(field)
	}
	return b.String()
}

// Sign returns the lowercase hex HMAC-SHA256 of msg under secret.
func Sign(secret, msg string) string {
	h := hmac.New(sha256.New, []byte(secret))
	h.Write([]byte(msg))
	return hex.EncodeToString(h.Sum(nil))
}

const secureHashField = "secureHash"

// ResponseMessage is what PayPhi signs on a callback: every non-empty returned
// value except secureHash, ordered by field name, with no separator.
func ResponseMessage(fields map[string]string) string {
	keys := make([]string, 0, len(fields))
	for k, v := range fields {
		if v == "" || strings.EqualFold(k, secureHashField) {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		b.WriteString(fields[k])
	}
	return b.String()
}

// VerifyResponse reports whether fields carry a secureHash made with secret.
func VerifyResponse(secret string, fields map[string]string) bool {
	if secret == "" {
		return false
	}
	var got string
	for k, v := range fields {
		if strings.EqualFold(k, secureHashField) && v != "" {
			got = strings.ToLower(strings.TrimSpace(v))
			break
		}
	}
	if got == "" {
		return false
	}
	want := Sign(secret, ResponseMessage(fields))
	return hmac.Equal([]byte(got), []byte(want))
}
