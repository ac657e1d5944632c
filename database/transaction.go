package database

import (
	"context"
	"errors"
	"time"
	"unicode/utf8"

	"cinema_factory/apperror"
	"cinema_factory/model"
	"cinema_factory/utils"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var errClientRecorded = errors.New("transaction already has client details")

const (
	msgPaymentNotFound = "Payment not found"
	msgClientRecorded  = "Client details are already recorded for this payment"
)

type TransactionRepository struct {
	db *gorm.DB
}

func NewTransactionRepository(db *gorm.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

// List returns the ledger newest first together with the unpaginated total.
func (r *TransactionRepository) List(ctx context.Context, filter model.TransactionFilter) ([]model.TransactionRecord, int64, error) {
	db := r.db.WithContext(ctx).Model(&model.TransactionRecord{})
	if filter.Status != nil && *filter.Status != "" {
		db = db.Where("status = ?", *filter.Status)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, apperror.E(apperror.Internal, "Error fetching payments", err)
	}

	var rows []model.TransactionRecord
	db = utils.ApplyPagination(db, filter.Limit, filter.Page)
	if err := db.Order("created_at DESC").Order("id DESC").Find(&rows).Error; err != nil {
		return nil, 0, apperror.E(apperror.Internal, "Error fetching payments", err)
	}
	return rows, total, nil
}

// ListBetween returns the records created in [from, to).
func (r *TransactionRepository) ListBetween(ctx context.Context, from, to time.Time) ([]model.TransactionRecord, error) {
	var rows []model.TransactionRecord
	err := r.db.WithContext(ctx).
		Where("created_at >= ? AND created_at < ?", from, to).
		Order("created_at ASC").
		Find(&rows).Error
	if err != nil {
		return nil, apperror.E(apperror.Internal, "Error fetching payments", err)
	}
	return rows, nil
}

func (r *TransactionRepository) Get(ctx context.Context, id uint) (*model.TransactionRecord, error) {
	var rec model.TransactionRecord
	if err := r.db.WithContext(ctx).First(&rec, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.E(apperror.NotFound, msgPaymentNotFound, err)
		}
		return nil, apperror.E(apperror.Internal, "Error fetching payment", err)
	}
	return &rec, nil
}

func (r *TransactionRepository) FindByMerchantTxnNo(ctx context.Context, merchantTxnNo string) (*model.TransactionRecord, error) {
	var rec model.TransactionRecord
	if err := r.db.WithContext(ctx).Where("merchant_txn_no = ?", merchantTxnNo).First(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.E(apperror.NotFound, msgPaymentNotFound, err)
		}
		return nil, apperror.E(apperror.Internal, "Error fetching payment", err)
	}
	return &rec, nil
}

// Save attaches the client block to the record the gateway already created for
// this transaction id, keeping its gateway-derived status. Without a match a new
// record is inserted. merged reports which of the two happened. A record whose
// client block is already filled is never overwritten: that is a Conflict.
func (r *TransactionRepository) Save(ctx context.Context, rec *model.TransactionRecord) (merged bool, err error) {
	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing model.TransactionRecord
		res := tx.Where("merchant_txn_no = ? OR transaction_id = ?", rec.TransactionID, rec.TransactionID).
			Order("id ASC").
			Limit(1).
			Find(&existing)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return tx.Create(rec).Error
		}
		if !clientEmpty(existing.Client) {
			return apperror.E(apperror.Conflict, msgClientRecorded, errClientRecorded)
		}

		merged = true
		updates := map[string]any{}
		for col, v := range clientColumns(rec.Client) {
			updates[col] = v
		}
		if existing.Amount.IsZero() && !rec.Amount.IsZero() {
			updates["amount"] = rec.Amount
		}
		if err := tx.Model(&existing).Updates(updates).Error; err != nil {
			return err
		}
		return tx.First(rec, existing.ID).Error
	})
	if err != nil {
		if apperror.KindOf(err) == apperror.Conflict {
			return false, err
		}
		return false, apperror.E(apperror.Internal, "Error saving payment", err)
	}
	return merged, nil
}

func clientEmpty(c model.Client) bool {
	for col, v := range clientColumns(c) {
		if col == "client_courses" {
			continue
		}
		if v.(string) != "" {
			return false
		}
	}
	return len(c.Courses) == 0
}

// UpdateClient replaces the client block only; gateway fields are never edited here.
func (r *TransactionRepository) UpdateClient(ctx context.Context, id uint, client model.Client) (*model.TransactionRecord, error) {
	rec, err := r.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).Model(rec).Updates(clientColumns(client)).Error; err != nil {
		return nil, apperror.E(apperror.Internal, "Error updating payment", err)
	}
	return r.Get(ctx, id)
}

func (r *TransactionRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&model.TransactionRecord{}, id)
	if res.Error != nil {
		return apperror.E(apperror.Internal, "Error deleting payment", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperror.E(apperror.NotFound, msgPaymentNotFound)
	}
	return nil
}

// Widths of the columns callback values land in.
const (
	txnNoWidth        = 64
	courseWidth       = 120
	responseCodeWidth = 32
)

// maxLedgerAmount is the first value numeric(12,2) cannot hold.
var maxLedgerAmount = decimal.New(1, 10)

// RecordCallback stores the audit event and, when the gateway named the
// merchant transaction and signed its answer, upserts the ledger row. Both
// writes share one transaction.
func (r *TransactionRepository) RecordCallback(ctx context.Context, event *model.CallbackEvent, res model.CallbackResult) error {
	event.MerchantTxnNo = clip(event.MerchantTxnNo, txnNoWidth)
	event.ResponseCode = clip(event.ResponseCode, responseCodeWidth)

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(event).Error; err != nil {
			return err
		}
		if res.MerchantTxnNo == "" || !res.Verified {
			return nil
		}

		txnNo := clip(res.MerchantTxnNo, txnNoWidth)
		rec := model.TransactionRecord{
			MerchantTxnNo: utils.StringPtr(txnNo),
			TransactionID: txnNo,
			Course:        clip(res.Course, courseWidth),
			ResponseCode:  clip(res.ResponseCode, responseCodeWidth),
			Status:        string(res.Outcome),
		}
		update := []string{"response_code", "status", "updated_at"}
		if res.GatewayTxnID != "" {
			rec.TransactionID = clip(res.GatewayTxnID, txnNoWidth)
			update = append(update, "transaction_id")
		}
		if amount, err := decimal.NewFromString(res.Amount); err == nil && amount.Abs().LessThan(maxLedgerAmount) {
			rec.Amount = amount.Round(2)
			update = append(update, "amount")
		}
		if rec.Course != "" {
			update = append(update, "course")
		}

		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "merchant_txn_no"}},
			DoUpdates: clause.AssignmentColumns(update),
		}).Create(&rec).Error
	})
}

// clip cuts s to at most n characters.
func clip(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}

func clientColumns(c model.Client) map[string]any {
	return map[string]any{
		"client_name":         c.Name,
		"client_email":        c.Email,
		"client_phone":        c.Phone,
		"client_father_name":  c.FatherName,
		"client_father_phone": c.FatherPhone,
		"client_age":          c.Age,
		"client_gender":       c.Gender,
		"client_dob":          c.Dob,
		"client_address":      c.Address,
		"client_city":         c.City,
		"client_state":        c.State,
		"client_country":      c.Country,
		"client_courses":      c.Courses,
	}
}
