package utils

import (
	"bytes"
	"strings"

	"cinema_factory/model"

	"github.com/xuri/excelize/v2"
)

const ledgerSheet = "Payments"

var ledgerHeader = []any{
	"ID", "Created", "Transaction ID", "Merchant Txn No", "Status", "Response Code",
	"Amount", "Course", "Name", "Email", "Phone", "Father Name", "Father Phone",
	"Age", "Gender", "DOB", "Address", "City", "State", "Country", "Courses",
}

// LedgerWorkbook writes the records to a single-sheet xlsx file.
func LedgerWorkbook(records []model.TransactionRecord) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", ledgerSheet); err != nil {
		return nil, err
	}
	if err := f.SetSheetRow(ledgerSheet, "A1", &ledgerHeader); err != nil {
		return nil, err
	}

	for i, r := range records {
		merchantTxnNo := ""
		if r.MerchantTxnNo != nil {
			merchantTxnNo = *r.MerchantTxnNo
		}
		amount, _ := r.Amount.Float64()
		row := []any{
			r.ID, r.CreatedAt.Format("2006-01-02 15:04:05"), r.TransactionID, merchantTxnNo,
			r.Status, r.ResponseCode, amount, r.Course,
			r.Client.Name, r.Client.Email, r.Client.Phone, r.Client.FatherName, r.Client.FatherPhone,
			r.Client.Age, r.Client.Gender, r.Client.Dob, r.Client.Address, r.Client.City,
			r.Client.State, r.Client.Country, strings.Join(r.Client.Courses, ", "),
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(ledgerSheet, cell, &row); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
