package query

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/aleister1102/monstermedia/internal/common"
	"github.com/aleister1102/monstermedia/internal/config"
	"github.com/aleister1102/monstermedia/internal/datastore"
	"github.com/aleister1102/monstermedia/internal/models"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSeededService(t *testing.T, items []models.MediaItem) (*Service, *datastore.SQLiteMediaStore) {
	t.Helper()
	cfg := config.NewDefaultStorageConfig()
	cfg.SQLiteDBPath = filepath.Join(t.TempDir(), "media.db")
	store, err := datastore.NewSQLiteMediaStore(cfg, zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	require.NoError(t, store.BulkInsert(context.Background(), items))
	return NewService(store, config.NewDefaultQueryConfig(), zerolog.Nop()), store
}

func twentyImages() []models.MediaItem {
	var items []models.MediaItem
	for i := range 20 {
		items = append(items, models.NewImageItem("https://example.com", fmt.Sprintf("/img/%02d.png", i)))
	}
	return items
}

func TestParseParams(t *testing.T) {
	svc := NewService(nil, config.QueryConfig{DefaultPageSize: 8}, zerolog.Nop())

	tests := []struct {
		name                       string
		page, pageSize, typ, query string
		want                       models.QueryParams
	}{
		{name: "defaults", want: models.QueryParams{Page: 1, PageSize: 8}},
		{name: "explicit", page: "3", pageSize: "5", typ: "video", query: "cat", want: models.QueryParams{Page: 3, PageSize: 5, Type: "video", Search: "cat"}},
		{name: "non-numeric", page: "abc", pageSize: "x", want: models.QueryParams{Page: 1, PageSize: 8}},
		{name: "non-positive", page: "0", pageSize: "-4", want: models.QueryParams{Page: 1, PageSize: 8}},
		{name: "no cap", page: "1", pageSize: "100000", want: models.QueryParams{Page: 1, PageSize: 100000}},
		{name: "type kept verbatim", typ: " video", want: models.QueryParams{Page: 1, PageSize: 8, Type: " video"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, svc.ParseParams(tt.page, tt.pageSize, tt.typ, tt.query))
		})
	}

	assert.Equal(t, config.DefaultQueryPageSize, NewService(nil, config.QueryConfig{}, zerolog.Nop()).ParseParams("", "", "", "").PageSize)
}

func TestQuery_Pagination(t *testing.T) {
	svc, _ := newSeededService(t, twentyImages())
	ctx := context.Background()

	result, err := svc.Query(ctx, models.QueryParams{Page: 1, PageSize: 8})
	require.NoError(t, err)
	assert.Equal(t, 20, result.TotalItems)
	assert.Equal(t, 3, result.TotalPages)
	assert.Equal(t, 1, result.CurrentPage)
	require.Len(t, result.Items, 8)
	assert.Equal(t, "/img/00.png", result.Items[0].AssetRef)

	result, err = svc.Query(ctx, models.QueryParams{Page: 3, PageSize: 8})
	require.NoError(t, err)
	require.Len(t, result.Items, 4)
	assert.Equal(t, "/img/16.png", result.Items[0].AssetRef)

	result, err = svc.Query(ctx, models.QueryParams{Page: 4, PageSize: 8})
	require.NoError(t, err)
	assert.Empty(t, result.Items)
	assert.Equal(t, 3, result.TotalPages)
	assert.Equal(t, 4, result.CurrentPage)

	result, err = svc.Query(ctx, models.QueryParams{Page: 1, PageSize: 20})
	require.NoError(t, err)
	assert.Len(t, result.Items, 20)
}

func TestQuery_EmptyStore(t *testing.T) {
	svc, _ := newSeededService(t, nil)

	result, err := svc.Query(context.Background(), svc.ParseParams("", "", "", ""))
	require.NoError(t, err)
	assert.Equal(t, 0, result.TotalItems)
	assert.Equal(t, 1, result.TotalPages)
	assert.NotNil(t, result.Items)
}

func TestQuery_Filters(t *testing.T) {
	items := []models.MediaItem{
		models.NewImageItem("https://example.com", "/cat.png"),
		models.NewVideoItem("https://example.com", "/dog.mp4"),
		models.NewVideoItem("https://example.com", "/cat.mp4"),
		models.NewImageItem("https://example.com", "/CAT.jpg"),
	}
	svc, _ := newSeededService(t, items)
	ctx := context.Background()

	result, err := svc.Query(ctx, svc.ParseParams("1", "10", "video", ""))
	require.NoError(t, err)
	assert.Equal(t, 2, result.TotalItems)
	for _, item := range result.Items {
		assert.Equal(t, models.MediaTypeVideo, item.Type)
	}

	result, err = svc.Query(ctx, svc.ParseParams("1", "10", "", "cat"))
	require.NoError(t, err)
	assert.Equal(t, 2, result.TotalItems)
	assert.Equal(t, "/cat.png", result.Items[0].AssetRef)
	assert.Equal(t, "/cat.mp4", result.Items[1].AssetRef)

	result, err = svc.Query(ctx, svc.ParseParams("1", "10", " video", ""))
	require.NoError(t, err)
	assert.Equal(t, 0, result.TotalItems)

	result, err = svc.Query(ctx, svc.ParseParams("1", "10", "podcast", ""))
	require.NoError(t, err)
	assert.Equal(t, 0, result.TotalItems)
	assert.Equal(t, 1, result.TotalPages)

	result, err = svc.Query(ctx, svc.ParseParams("1", "10", "", ""))
	require.NoError(t, err)
	assert.Equal(t, 4, result.TotalItems)
}

func TestQuery_StorageUnavailable(t *testing.T) {
	svc, store := newSeededService(t, twentyImages())
	require.NoError(t, store.Close())

	result, err := svc.Query(context.Background(), models.QueryParams{Page: 1, PageSize: 8})
	assert.Nil(t, result)
	assert.ErrorIs(t, err, common.ErrStorageUnavailable)
}
