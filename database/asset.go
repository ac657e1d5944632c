package database

import (
	"context"
	"errors"
	"time"

	"cinema_factory/apperror"
	"cinema_factory/model"

	"gorm.io/gorm"
)

// AssetRepository keeps one Section row per site section and its media items
// grouped by kind.
type AssetRepository struct {
	db *gorm.DB
}

func NewAssetRepository(db *gorm.DB) *AssetRepository {
	return &AssetRepository{db: db}
}

func (r *AssetRepository) FindOrCreateSection(ctx context.Context, key string) (*model.Section, error) {
	var section model.Section
	err := r.db.WithContext(ctx).
		Omit("pdf_data").
		Where(model.Section{Key: key}).
		FirstOrCreate(&section).Error
	if err != nil {
		return nil, apperror.E(apperror.Internal, "Error loading section", err)
	}
	return &section, nil
}

func (r *AssetRepository) ListItems(ctx context.Context, sectionKey, kind string) ([]model.Asset, error) {
	section, err := r.FindOrCreateSection(ctx, sectionKey)
	if err != nil {
		return nil, err
	}
	items := []model.Asset{}
	err = r.db.WithContext(ctx).
		Where("section_id = ? AND kind = ?", section.ID, kind).
		Order("created_at ASC").
		Find(&items).Error
	if err != nil {
		return nil, apperror.E(apperror.Internal, "Error fetching items", err)
	}
	return items, nil
}

func (r *AssetRepository) AppendItem(ctx context.Context, sectionKey, kind string, item *model.Asset) error {
	section, err := r.FindOrCreateSection(ctx, sectionKey)
	if err != nil {
		return err
	}
	item.SectionID = section.ID
	item.Kind = kind
	if err := r.db.WithContext(ctx).Create(item).Error; err != nil {
		return apperror.E(apperror.Internal, "Error saving item", err)
	}
	return nil
}

// FindItem looks an item up by its id or by the object store public id.
func (r *AssetRepository) FindItem(ctx context.Context, sectionKey, kind, idOrPublicID string) (*model.Asset, error) {
	section, err := r.FindOrCreateSection(ctx, sectionKey)
	if err != nil {
		return nil, err
	}
	var item model.Asset
	err = r.db.WithContext(ctx).
		Where("section_id = ? AND kind = ?", section.ID, kind).
		Where("id = ? OR public_id = ?", idOrPublicID, idOrPublicID).
		First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.E(apperror.NotFound, "Item not found", err)
		}
		return nil, apperror.E(apperror.Internal, "Error fetching item", err)
	}
	return &item, nil
}

func (r *AssetRepository) RemoveItem(ctx context.Context, sectionKey, kind, idOrPublicID string) error {
	item, err := r.FindItem(ctx, sectionKey, kind, idOrPublicID)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Delete(item).Error; err != nil {
		return apperror.E(apperror.Internal, "Error deleting item", err)
	}
	return nil
}

// SaveDiplomaPdf replaces the section's diploma PDF.
func (r *AssetRepository) SaveDiplomaPdf(ctx context.Context, sectionKey, name string, data []byte) (model.DiplomaPdf, error) {
	section, err := r.FindOrCreateSection(ctx, sectionKey)
	if err != nil {
		return model.DiplomaPdf{}, err
	}
	now := time.Now()
	err = r.db.WithContext(ctx).Model(section).Updates(map[string]any{
		"pdf_data":        data,
		"pdf_name":        name,
		"pdf_size":        int64(len(data)),
		"pdf_uploaded_at": now,
	}).Error
	if err != nil {
		return model.DiplomaPdf{}, apperror.E(apperror.Internal, "Error saving PDF", err)
	}
	return model.DiplomaPdf{PdfName: name, PdfSize: int64(len(data)), UploadDate: &now}, nil
}

// DiplomaMeta returns the stored PDF's metadata without its bytes.
func (r *AssetRepository) DiplomaMeta(ctx context.Context, sectionKey string) (model.DiplomaPdf, error) {
	section, err := r.FindOrCreateSection(ctx, sectionKey)
	if err != nil {
		return model.DiplomaPdf{}, err
	}
	return model.DiplomaPdf{
		PdfName:    section.PdfName,
		PdfSize:    section.PdfSize,
		UploadDate: section.PdfUploadedAt,
	}, nil
}

func (r *AssetRepository) LoadDiplomaPdf(ctx context.Context, sectionKey string) (string, []byte, error) {
	var section model.Section
	err := r.db.WithContext(ctx).Where(&model.Section{Key: sectionKey}).First(&section).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil, apperror.E(apperror.Internal, "Error loading PDF", err)
	}
	if len(section.PdfData) == 0 {
		return "", nil, apperror.E(apperror.NotFound, "PDF not found")
	}
	return section.PdfName, section.PdfData, nil
}

func (r *AssetRepository) ClearDiplomaPdf(ctx context.Context, sectionKey string) error {
	res := r.db.WithContext(ctx).Model(&model.Section{}).
		Where(&model.Section{Key: sectionKey}).
		Where("pdf_size > 0").
		Updates(map[string]any{
			"pdf_data":        nil,
			"pdf_name":        "",
			"pdf_size":        0,
			"pdf_uploaded_at": nil,
		})
	if res.Error != nil {
		return apperror.E(apperror.Internal, "Error deleting PDF", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperror.E(apperror.NotFound, "PDF not found")
	}
	return nil
}
