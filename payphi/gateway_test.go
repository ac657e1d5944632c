package payphi

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"cinema_factory/apperror"
	"cinema_factory/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitiateSalePassesBodyThrough(t *testing.T) {
	var got map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/pg/initiateSale", r.URL.Path)
		assert.Contains(t, r.Header.Get("Content-Type"), "application/json")
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &got))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"responseCode":"R1000","redirectURI":"https://pay.example.com/x","tranCtx":"abc"}`))
	}))
	defer srv.Close()

	g := NewGateway(model.PayPhiConfig{GatewayBaseURL: srv.URL + "/pg", Timeout: 5 * time.Second})
	body, err := g.InitiateSale(&model.PaymentInitiationRequest{MerchantTxnNo: "TXN1", Amount: "5000.00", SecureHash: "deadbeef"})

	require.NoError(t, err)
	assert.JSONEq(t, `{"responseCode":"R1000","redirectURI":"https://pay.example.com/x","tranCtx":"abc"}`, string(body))
	assert.Equal(t, "TXN1", got["merchantTxnNo"])
	assert.Equal(t, "deadbeef", got["secureHash"])
}

func TestInitiateSaleNon2xxCarriesGatewayBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"responseCode":"P1006","respDescription":"Invalid hash"}`))
	}))
	defer srv.Close()

	g := NewGateway(model.PayPhiConfig{GatewayBaseURL: srv.URL})
	_, err := g.InitiateSale(&model.PaymentInitiationRequest{})

	require.Error(t, err)
	assert.ErrorIs(t, err, apperror.GatewayInitiationFailure)
	detail, ok := apperror.DetailOf(err).(json.RawMessage)
	require.True(t, ok)
	assert.JSONEq(t, `{"responseCode":"P1006","respDescription":"Invalid hash"}`, string(detail))
}

func TestInitiateSalePlainTextError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("upstream unavailable"))
	}))
	defer srv.Close()

	g := NewGateway(model.PayPhiConfig{GatewayBaseURL: srv.URL})
	_, err := g.InitiateSale(&model.PaymentInitiationRequest{})

	assert.Equal(t, apperror.Gateway, apperror.KindOf(err))
	assert.Equal(t, "upstream unavailable", apperror.DetailOf(err))
}

func TestInitiateSaleNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	g := NewGateway(model.PayPhiConfig{GatewayBaseURL: url, Timeout: time.Second})
	body, err := g.InitiateSale(&model.PaymentInitiationRequest{})

	assert.Nil(t, body)
	assert.Equal(t, apperror.Gateway, apperror.KindOf(err))
	assert.NotEmpty(t, apperror.DetailOf(err))
}
