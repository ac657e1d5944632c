package database

import (
	"context"
	"testing"

	"cinema_factory/apperror"
	"cinema_factory/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSectionIsSingleton(t *testing.T) {
	ctx := context.Background()
	repo := NewAssetRepository(newTestDB(t))

	a, err := repo.FindOrCreateSection(ctx, "vfx")
	require.NoError(t, err)
	b, err := repo.FindOrCreateSection(ctx, "vfx")
	require.NoError(t, err)
	assert.Equal(t, a.ID, b.ID)
}

func TestAssetItemsLifecycle(t *testing.T) {
	ctx := context.Background()
	repo := NewAssetRepository(newTestDB(t))

	first := &model.Asset{ImageUrl: "https://cdn.example.com/a.jpg", PublicId: "vfx/highlights/a", TitleLine: "Compositing"}
	second := &model.Asset{ImageUrl: "https://cdn.example.com/b.jpg", PublicId: "vfx/highlights/b", TitleLine: "Roto"}
	require.NoError(t, repo.AppendItem(ctx, "vfx", "highlights", first))
	require.NoError(t, repo.AppendItem(ctx, "vfx", "highlights", second))
	require.NoError(t, repo.AppendItem(ctx, "vfx", "banner", &model.Asset{ImageUrl: "https://cdn.example.com/c.jpg", PublicId: "vfx/banner/c"}))
	assert.Len(t, first.ID, 36)

	items, err := repo.ListItems(ctx, "vfx", "highlights")
	require.NoError(t, err)
	require.Len(t, items, 2)

	found, err := repo.FindItem(ctx, "vfx", "highlights", "vfx/highlights/b")
	require.NoError(t, err)
	assert.Equal(t, second.ID, found.ID)

	require.NoError(t, repo.RemoveItem(ctx, "vfx", "highlights", first.ID))
	items, err = repo.ListItems(ctx, "vfx", "highlights")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Roto", items[0].TitleLine)

	err = repo.RemoveItem(ctx, "vfx", "highlights", first.ID)
	assert.Equal(t, apperror.NotFound, apperror.KindOf(err))

	// items of another kind are not reachable through this one
	_, err = repo.FindItem(ctx, "vfx", "highlights", "vfx/banner/c")
	assert.Equal(t, apperror.NotFound, apperror.KindOf(err))
}

func TestListItemsEmptySection(t *testing.T) {
	items, err := NewAssetRepository(newTestDB(t)).ListItems(context.Background(), "acting", "mentor")
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}

func TestDiplomaPdf(t *testing.T) {
	ctx := context.Background()
	repo := NewAssetRepository(newTestDB(t))

	_, _, err := repo.LoadDiplomaPdf(ctx, "editing")
	assert.Equal(t, apperror.NotFound, apperror.KindOf(err))

	data := []byte("%PDF-1.4 diploma")
	meta, err := repo.SaveDiplomaPdf(ctx, "editing", "syllabus.pdf", data)
	require.NoError(t, err)
	assert.Equal(t, int64(len(data)), meta.PdfSize)

	stored, err := repo.DiplomaMeta(ctx, "editing")
	require.NoError(t, err)
	assert.Equal(t, "syllabus.pdf", stored.PdfName)
	assert.NotNil(t, stored.UploadDate)

	name, got, err := repo.LoadDiplomaPdf(ctx, "editing")
	require.NoError(t, err)
	assert.Equal(t, "syllabus.pdf", name)
	assert.Equal(t, data, got)

	require.NoError(t, repo.ClearDiplomaPdf(ctx, "editing"))
	err = repo.ClearDiplomaPdf(ctx, "editing")
	assert.Equal(t, apperror.NotFound, apperror.KindOf(err))

	stored, err = repo.DiplomaMeta(ctx, "editing")
	require.NoError(t, err)
	assert.Empty(t, stored.PdfName)
}
