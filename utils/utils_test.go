package utils

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"cinema_factory/model"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func sampleRecord() model.TransactionRecord {
	txn := "TXN100"
	return model.TransactionRecord{
		DTO:           model.DTO{ID: 7, CreatedAt: time.Date(2024, 3, 7, 9, 5, 3, 0, time.Local)},
		Client:        model.Client{Name: "Asha", Email: "asha@example.com", Courses: []string{"VFX", "Editing"}},
		Amount:        decimal.NewFromInt(45000),
		TransactionID: "PG55",
		MerchantTxnNo: &txn,
		Course:        "VFX",
		Status:        "success",
	}
}

func TestResponses(t *testing.T) {
	app := fiber.New()
	app.Get("/err", func(c *fiber.Ctx) error {
		return ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", errors.New("amount required"))
	})
	app.Get("/ok", func(c *fiber.Ctx) error {
		return SuccessResponse(c, fiber.StatusOK, fiber.Map{"id": 1})
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/err", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, map[string]any{"message": "Validation failed", "error": "amount required"}, body)

	resp, err = app.Test(httptest.NewRequest("GET", "/ok", nil))
	require.NoError(t, err)
	raw, _ := io.ReadAll(resp.Body)
	assert.JSONEq(t, `{"status":"success","data":{"id":1}}`, string(raw))
}

func TestLedgerWorkbook(t *testing.T) {
	data, err := LedgerWorkbook([]model.TransactionRecord{sampleRecord()})
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(ledgerSheet)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Transaction ID", rows[0][2])
	assert.Equal(t, "PG55", rows[1][2])
	assert.Equal(t, "TXN100", rows[1][3])
	assert.Equal(t, "VFX, Editing", rows[1][20])
}

func TestBuildReceipt(t *testing.T) {
	pdf, err := BuildReceipt(sampleRecord())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF-")))
}

func TestGenerateQRCode(t *testing.T) {
	png, err := GenerateQRCode("TXN100", 128)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(png, []byte("\x89PNG")))
}

func TestMailerDisabledWithoutHost(t *testing.T) {
	m := NewMailer(MailConfig{})
	assert.False(t, m.Enabled())
	assert.NoError(t, m.Send(Mail{To: []string{"office@example.com"}, Subject: "x"}))
}

func TestRenderTemplates(t *testing.T) {
	html, err := RenderPaymentNotice(PaymentNoticeData{MerchantTxnNo: "TXN1", Course: "<b>VFX</b>", Amount: "45000"})
	require.NoError(t, err)
	assert.Contains(t, html, "TXN1")
	assert.Contains(t, html, "&lt;b&gt;VFX&lt;/b&gt;")

	html, err = RenderDigest(DigestData{Day: "2024-03-07", Count: 3, Succeeded: 2, Total: "75000.00"})
	require.NoError(t, err)
	assert.Contains(t, html, "3 records, 2 successful, 75000.00 collected.")
}

func TestSummarizeLedger(t *testing.T) {
	records := []model.TransactionRecord{
		{Status: "success", Course: "VFX", Amount: decimal.NewFromInt(45000)},
		{Status: "success", Course: "Acting", Amount: decimal.NewFromInt(30000)},
		{Status: "success", Course: "VFX", Amount: decimal.NewFromInt(5000)},
		{Status: "failed", Course: "VFX", Amount: decimal.NewFromInt(45000)},
		{Status: "pending", Course: "DI", Amount: decimal.NewFromInt(5000)},
		{Status: "failed", Course: "DI", Amount: decimal.NewFromInt(5000)},
	}

	s := SummarizeLedger(records)
	assert.Equal(t, 6, s.Count)
	assert.Equal(t, 3, s.Succeeded)
	assert.Equal(t, 2, s.Failed)
	assert.True(t, s.Collected.Equal(decimal.NewFromInt(80000)))
	assert.Equal(t, 50.0, s.SuccessRate)
	require.Len(t, s.ByCourse, 2)
	assert.Equal(t, "Acting", s.ByCourse[0].Course)
	assert.Equal(t, "VFX", s.ByCourse[1].Course)
	assert.Equal(t, 2, s.ByCourse[1].Succeeded)
	assert.True(t, s.ByCourse[1].Collected.Equal(decimal.NewFromInt(50000)))

	empty := SummarizeLedger(nil)
	assert.Zero(t, empty.SuccessRate)
	assert.NotNil(t, empty.ByCourse)
}
