package database

import (
	"context"
	"time"

	"cinema_factory/model"

	"gorm.io/gorm"
)

type EventRepository struct {
	db *gorm.DB
}

func NewEventRepository(db *gorm.DB) *EventRepository {
	return &EventRepository{db: db}
}

// ForTransaction returns the callbacks received for one merchant transaction, oldest first.
func (r *EventRepository) ForTransaction(ctx context.Context, merchantTxnNo string) ([]model.CallbackEvent, error) {
	var events []model.CallbackEvent
	err := r.db.WithContext(ctx).
		Where("merchant_txn_no = ?", merchantTxnNo).
		Order("received_at ASC").
		Find(&events).Error
	return events, err
}

// PruneBefore deletes callback events received before cutoff.
func (r *EventRepository) PruneBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Where("received_at < ?", cutoff).Delete(&model.CallbackEvent{})
	return res.RowsAffected, res.Error
}
