package utils

import (
	"bytes"
	"fmt"

	"cinema_factory/model"

	"github.com/jung-kurt/gofpdf"
)

// BuildReceipt renders a one-page PDF receipt with a QR code of the payment reference.
func BuildReceipt(rec model.TransactionRecord) ([]byte, error) {
	reference := rec.TransactionID
	if rec.MerchantTxnNo != nil && *rec.MerchantTxnNo != "" {
		reference = *rec.MerchantTxnNo
	}
	qr, err := GenerateQRCode(reference, 256)
	if err != nil {
		return nil, fmt.Errorf("error generating receipt QR code: %w", err)
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(40, 10, "Payment Receipt")
	pdf.Ln(14)

	pdf.SetFont("Arial", "", 12)
	lines := [][2]string{
		{"Reference", reference},
		{"Transaction id", rec.TransactionID},
		{"Name", rec.Client.Name},
		{"Email", rec.Client.Email},
		{"Phone", rec.Client.Phone},
		{"Course", rec.Course},
		{"Amount", "INR " + rec.Amount.StringFixed(2)},
		{"Status", rec.Status},
		{"Date", rec.CreatedAt.Format("02 Jan 2006 15:04")},
	}
	for _, l := range lines {
		pdf.CellFormat(45, 8, l[0], "", 0, "", false, 0, "")
		pdf.CellFormat(0, 8, l[1], "", 1, "", false, 0, "")
	}

	opts := gofpdf.ImageOptions{ImageType: "PNG", ReadDpi: false}
	pdf.RegisterImageOptionsReader("qr", opts, bytes.NewReader(qr))
	pdf.ImageOptions("qr", 150, 20, 40, 40, false, opts, 0, "")

	var out bytes.Buffer
	if err := pdf.Output(&out); err != nil {
		return nil, fmt.Errorf("error generating receipt PDF: %w", err)
	}
	return out.Bytes(), nil
}
