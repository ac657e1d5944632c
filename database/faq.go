package database

import (
	"context"
	"errors"

	"cinema_factory/apperror"
	"cinema_factory/model"

	"gorm.io/gorm"
)

type FaqRepository struct {
	db *gorm.DB
}

func NewFaqRepository(db *gorm.DB) *FaqRepository {
	return &FaqRepository{db: db}
}

func (r *FaqRepository) List(ctx context.Context) ([]model.Faq, error) {
	faqs := []model.Faq{}
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&faqs).Error; err != nil {
		return nil, apperror.E(apperror.Internal, "Error fetching FAQs", err)
	}
	return faqs, nil
}

func (r *FaqRepository) Create(ctx context.Context, faq *model.Faq) error {
	if err := r.db.WithContext(ctx).Create(faq).Error; err != nil {
		return apperror.E(apperror.Internal, "Error saving FAQ", err)
	}
	return nil
}

func (r *FaqRepository) Update(ctx context.Context, id uint, in model.Faq) (*model.Faq, error) {
	var faq model.Faq
	if err := r.db.WithContext(ctx).First(&faq, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.E(apperror.NotFound, "FAQ not found", err)
		}
		return nil, apperror.E(apperror.Internal, "Error fetching FAQ", err)
	}
	faq.Question = in.Question
	faq.Answer = in.Answer
	faq.Keywords = in.Keywords
	if err := r.db.WithContext(ctx).Save(&faq).Error; err != nil {
		return nil, apperror.E(apperror.Internal, "Error updating FAQ", err)
	}
	return &faq, nil
}

func (r *FaqRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&model.Faq{}, id)
	if res.Error != nil {
		return apperror.E(apperror.Internal, "Error deleting FAQ", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperror.E(apperror.NotFound, "FAQ not found")
	}
	return nil
}
