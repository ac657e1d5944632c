package payphi

import (
	"strings"
	"testing"

	"cinema_factory/model"

	"github.com/stretchr/testify/assert"
)

func TestParseCallbackVariants(t *testing.T) {
	tests := []struct {
		name        string
		contentType string
		body        string
		wantKind    model.CallbackEventKind
		want        map[string]string
	}{
		{
			name:        "declared json",
			contentType: "application/json; charset=utf-8",
			body:        `{"responseCode":"R1000","amount":45000,"addlParam1":"VFX","paid":true,"extra":null}`,
			wantKind:    model.CallbackJSON,
			want:        map[string]string{"responseCode": "R1000", "amount": "45000", "addlParam1": "VFX", "paid": "true"},
		},
		{
			name:        "declared form",
			contentType: "application/x-www-form-urlencoded",
			body:        "responseCode=0000&addlParam1=Virtual+Production&amount=5000",
			wantKind:    model.CallbackFormEncoded,
			want:        map[string]string{"responseCode": "0000", "addlParam1": "Virtual Production", "amount": "5000"},
		},
		{
			name:     "undeclared json",
			body:     `{"code":"9999"}`,
			wantKind: model.CallbackRawFallback,
			want:     map[string]string{"code": "9999"},
		},
		{
			name:        "unknown type form text",
			contentType: "text/plain",
			body:        "responseCode=0000&addlParam1=Acting&amount=5000",
			wantKind:    model.CallbackRawFallback,
			want:        map[string]string{"responseCode": "0000", "addlParam1": "Acting", "amount": "5000"},
		},
		{
			name:     "malformed pair skipped",
			body:     "responseCode=0000&addlParam1=%E0%A4%A&amount=5000&=orphan",
			wantKind: model.CallbackRawFallback,
			want:     map[string]string{"responseCode": "0000", "amount": "5000"},
		},
		{
			name:        "declared json but broken falls back to splitter",
			contentType: "application/json",
			body:        "responseCode=R1000",
			wantKind:    model.CallbackRawFallback,
			want:        map[string]string{"responseCode": "R1000"},
		},
		{
			name:     "empty body",
			body:     "  ",
			wantKind: model.CallbackEmpty,
			want:     map[string]string{},
		},
		{
			name:     "nothing decodable",
			body:     "=%zz&&",
			wantKind: model.CallbackEmpty,
			want:     map[string]string{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := ParseCallback(tt.contentType, []byte(tt.body))
			assert.Equal(t, tt.wantKind, p.Kind)
			assert.Equal(t, tt.want, p.Fields)
		})
	}
}

func TestOutcomeMapping(t *testing.T) {
	r := NewReconciler(testConfig())
	tests := []struct {
		name  string
		p     Payload
		query string
		want  model.PaymentOutcome
	}{
		{"responseCode R1000", Payload{Fields: map[string]string{"responseCode": "R1000"}}, "", model.PaymentSuccess},
		{"ResponseCode 0000", Payload{Fields: map[string]string{"ResponseCode": "0000"}}, "", model.PaymentSuccess},
		{"code 9999", Payload{Fields: map[string]string{"code": "9999"}}, "", model.PaymentFailed},
		{"status SUCCESS", Payload{Fields: map[string]string{"status": "SUCCESS"}}, "", model.PaymentSuccess},
		{"query fallback", emptyPayload(), "0", model.PaymentSuccess},
		{"totally empty", emptyPayload(), "", model.PaymentFailed},
		{"body wins over query", Payload{Fields: map[string]string{"responseCode": "P1000"}}, "0", model.PaymentFailed},
		{"lowercase success is not success", Payload{Fields: map[string]string{"status": "success"}}, "", model.PaymentFailed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := r.Resolve(tt.p, tt.query)
			assert.Equal(t, tt.want, res.Outcome)
		})
	}
}

func TestResponseCodeFieldOrder(t *testing.T) {
	r := NewReconciler(testConfig())
	p := Payload{Fields: map[string]string{"status": "FAILED", "code": "", "ResponseCode": "0000"}}
	assert.Equal(t, "0000", r.ResponseCode(p, ""))
}

func TestResponseCodeCaseFolding(t *testing.T) {
	cfg := testConfig()
	p := Payload{Fields: map[string]string{"RESPONSECODE": "R1000"}}

	cfg.CaseInsensitiveFields = false
	assert.Equal(t, "", NewReconciler(cfg).ResponseCode(p, ""))

	cfg.CaseInsensitiveFields = true
	assert.Equal(t, "R1000", NewReconciler(cfg).ResponseCode(p, ""))
}

func TestResponseCodeConfiguredFields(t *testing.T) {
	cfg := testConfig()
	cfg.ResponseCodeFields = []string{"respCode"}
	r := NewReconciler(cfg)

	assert.Equal(t, "0", r.ResponseCode(Payload{Fields: map[string]string{"respCode": "0", "responseCode": "9"}}, ""))
}

func TestRedirectURL(t *testing.T) {
	r := NewReconciler(testConfig())

	res := r.Resolve(Payload{Fields: map[string]string{"responseCode": "R1000", "addlParam1": "VFX", "amount": "45000"}}, "")
	assert.Equal(t, "https://user.example.com/apply?payment=success&course=VFX&amount=45000", res.RedirectURL)

	res = r.Resolve(emptyPayload(), "")
	assert.Equal(t, "https://user.example.com/apply?payment=failed&course=&amount=", res.RedirectURL)
	assert.NotContains(t, res.RedirectURL, "undefined")

	assert.Equal(t,
		"https://user.example.com/apply?payment=success&course=Virtual+Production&amount=5000.00",
		r.RedirectURL(model.PaymentSuccess, "Virtual Production", "5000.00"))
}

func TestRawFormMatchesJSON(t *testing.T) {
	r := NewReconciler(testConfig())

	raw := r.Resolve(ParseCallback("", []byte("responseCode=0000&addlParam1=Acting&amount=5000")), "")
	js := r.Resolve(ParseCallback("application/json", []byte(`{"responseCode":"0000","addlParam1":"Acting","amount":"5000"}`)), "")

	assert.Equal(t, model.PaymentSuccess, raw.Outcome)
	assert.Equal(t, js, raw)
}

func TestResolveExtractsTransactionIDs(t *testing.T) {
	r := NewReconciler(testConfig())
	res := r.Resolve(Payload{Fields: map[string]string{
		"responseCode":  "0000",
		"merchantTxnNo": "TXN42",
		"txnID":         "PG998877",
	}}, "")

	assert.Equal(t, "TXN42", res.MerchantTxnNo)
	assert.Equal(t, "PG998877", res.GatewayTxnID)
	assert.Equal(t, "0000", res.ResponseCode)
}

func signedFields(secret string, fields map[string]string) map[string]string {
	out := make(map[string]string, len(fields)+1)
	for k, v := range fields {
		out[k] = v
	}
	out["secureHash"] = Sign(secret, ResponseMessage(fields))
	return out
}

func TestResponseMessageOrder(t *testing.T) {
	msg := ResponseMessage(map[string]string{
		"responseCode":  "R1000",
		"amount":        "45000.00",
		"merchantTxnNo": "TXN1",
		"addlParam2":    "",
		"secureHash":    "ignored",
	})
	assert.Equal(t, "45000.00TXN1R1000", msg)
}

func TestVerifyResponse(t *testing.T) {
	fields := signedFields("abc", map[string]string{
		"responseCode":  "R1000",
		"merchantTxnNo": "TXN1",
		"amount":        "45000.00",
	})
	assert.True(t, VerifyResponse("abc", fields))
	assert.False(t, VerifyResponse("other", fields))
	assert.False(t, VerifyResponse("", fields))

	upper := signedFields("abc", map[string]string{"responseCode": "0"})
	upper["SecureHash"] = strings.ToUpper(upper["secureHash"])
	delete(upper, "secureHash")
	assert.True(t, VerifyResponse("abc", upper))

	tampered := signedFields("abc", map[string]string{"responseCode": "P1007", "merchantTxnNo": "TXN1"})
	tampered["responseCode"] = "R1000"
	assert.False(t, VerifyResponse("abc", tampered))

	assert.False(t, VerifyResponse("abc", map[string]string{"responseCode": "R1000"}))
}

func TestResolveVerified(t *testing.T) {
	r := NewReconciler(testConfig())

	signed := r.Resolve(Payload{Fields: signedFields("abc", map[string]string{
		"responseCode": "R1000", "merchantTxnNo": "TXN1",
	})}, "")
	assert.True(t, signed.Verified)
	assert.Equal(t, model.PaymentSuccess, signed.Outcome)

	unsigned := r.Resolve(Payload{Fields: map[string]string{"responseCode": "R1000", "merchantTxnNo": "TXN1"}}, "")
	assert.False(t, unsigned.Verified)
	assert.Equal(t, model.PaymentSuccess, unsigned.Outcome)

	// a signed body without a response code does not vouch for the query code
	queryOnly := r.Resolve(Payload{Fields: signedFields("abc", map[string]string{"merchantTxnNo": "TXN1"})}, "0")
	assert.Equal(t, model.PaymentSuccess, queryOnly.Outcome)
	assert.False(t, queryOnly.Verified)
}

func TestLookupCaseFoldIsDeterministic(t *testing.T) {
	p := Payload{Fields: map[string]string{
		"ResponseCODE": "B",
		"RESPONSECODE": "A",
		"responsecodE": "C",
	}}
	for i := 0; i < 50; i++ {
		assert.Equal(t, "A", p.Lookup([]string{"responseCode"}, true))
	}
}
