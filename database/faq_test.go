package database

import (
	"context"
	"testing"

	"cinema_factory/apperror"
	"cinema_factory/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFaqCrud(t *testing.T) {
	ctx := context.Background()
	repo := NewFaqRepository(newTestDB(t))

	faq := &model.Faq{Question: "Is there a hostel?", Answer: "Yes.", Keywords: []string{"hostel"}}
	require.NoError(t, repo.Create(ctx, faq))

	updated, err := repo.Update(ctx, faq.ID, model.Faq{Question: "Is there a hostel nearby?", Answer: "Yes, on campus."})
	require.NoError(t, err)
	assert.Equal(t, "Yes, on campus.", updated.Answer)
	assert.Empty(t, updated.Keywords)

	faqs, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, faqs, 1)
	assert.Equal(t, "Is there a hostel nearby?", faqs[0].Question)

	require.NoError(t, repo.Delete(ctx, faq.ID))
	assert.Equal(t, apperror.NotFound, apperror.KindOf(repo.Delete(ctx, faq.ID)))

	_, err = repo.Update(ctx, faq.ID, model.Faq{})
	assert.Equal(t, apperror.NotFound, apperror.KindOf(err))
}

func TestSeedData(t *testing.T) {
	db := newTestDB(t)
	SeedData(db)
	SeedData(db)

	var sections, faqs int64
	db.Model(&model.Section{}).Count(&sections)
	db.Model(&model.Faq{}).Count(&faqs)
	assert.Equal(t, int64(len(model.SectionCatalog)), sections)
	assert.Equal(t, int64(len(seedFaqs)), faqs)
}
