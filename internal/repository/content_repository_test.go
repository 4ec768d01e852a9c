package repository

import (
	"context"
	"encoding/json"
	"testing"

	"storefront/internal/model"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func productObject(id, slug, title string, price float64) model.ContentObject {
	meta, _ := json.Marshal(map[string]any{
		"product_name": title,
		"price":        price,
	})
	return model.ContentObject{
		ID:       id,
		Type:     model.TypeProduct,
		Slug:     slug,
		Title:    title,
		Metadata: meta,
	}
}

func seedContent(t *testing.T, repo ContentRepository) {
	t.Helper()
	objects := []model.ContentObject{
		productObject("p1", "desk-lamp", "Desk Lamp", 19.99),
		productObject("p2", "armchair", "Armchair", 249),
		productObject("p3", "bookshelf", "Bookshelf", 120.5),
		{ID: "s1", Type: model.TypeService, Slug: "interior-design", Title: "Interior Design"},
	}
	n, err := repo.Upsert(context.Background(), objects)
	require.NoError(t, err)
	require.Equal(t, len(objects), n)
}

func TestContentRepository_List(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewContentRepository(pool, zerolog.Nop())
	seedContent(t, repo)
	ctx := context.Background()

	tests := []struct {
		name          string
		objType       string
		limit         int
		offset        int
		expectedSlugs []string
	}{
		{
			name:          "All products ordered by title",
			objType:       model.TypeProduct,
			limit:         10,
			expectedSlugs: []string{"armchair", "bookshelf", "desk-lamp"},
		},
		{
			name:          "Paginated products",
			objType:       model.TypeProduct,
			limit:         1,
			offset:        1,
			expectedSlugs: []string{"bookshelf"},
		},
		{
			name:          "Other type",
			objType:       model.TypeService,
			limit:         10,
			expectedSlugs: []string{"interior-design"},
		},
		{
			name:          "Type with no objects",
			objType:       model.TypeTestimonial,
			limit:         10,
			expectedSlugs: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			objects, err := repo.List(ctx, tt.objType, tt.limit, tt.offset)
			require.NoError(t, err)
			require.NotNil(t, objects)

			slugs := make([]string, 0, len(objects))
			for _, o := range objects {
				slugs = append(slugs, o.Slug)
			}
			assert.Equal(t, tt.expectedSlugs, slugs)
		})
	}
}

func TestContentRepository_GetBySlug(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewContentRepository(pool, zerolog.Nop())
	seedContent(t, repo)
	ctx := context.Background()

	t.Run("Existing object", func(t *testing.T) {
		obj, err := repo.GetBySlug(ctx, model.TypeProduct, "desk-lamp")
		require.NoError(t, err)
		require.NotNil(t, obj)

		assert.Equal(t, "p1", obj.ID)
		assert.Equal(t, "Desk Lamp", obj.Title)
		assert.False(t, obj.CreatedAt.IsZero())

		product, err := model.ProductFromObject(*obj)
		require.NoError(t, err)
		assert.Equal(t, 19.99, product.Price)
	})

	t.Run("Slug exists under another type", func(t *testing.T) {
		obj, err := repo.GetBySlug(ctx, model.TypeService, "desk-lamp")
		require.NoError(t, err)
		assert.Nil(t, obj)
	})

	t.Run("Missing slug", func(t *testing.T) {
		obj, err := repo.GetBySlug(ctx, model.TypeProduct, "nope")
		require.NoError(t, err)
		assert.Nil(t, obj)
	})
}

func TestContentRepository_GetByIDs(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewContentRepository(pool, zerolog.Nop())
	seedContent(t, repo)
	ctx := context.Background()

	objects, err := repo.GetByIDs(ctx, model.TypeProduct, []string{"p1", "p3", "s1", "missing"})
	require.NoError(t, err)
	require.Len(t, objects, 2)
	assert.Equal(t, "p3", objects[0].ID)
	assert.Equal(t, "p1", objects[1].ID)

	empty, err := repo.GetByIDs(ctx, model.TypeProduct, nil)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestContentRepository_Upsert_ReplacesByID(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewContentRepository(pool, zerolog.Nop())
	seedContent(t, repo)
	ctx := context.Background()

	n, err := repo.Upsert(ctx, []model.ContentObject{productObject("p1", "desk-lamp", "Desk Lamp", 24.5)})
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	obj, err := repo.GetBySlug(ctx, model.TypeProduct, "desk-lamp")
	require.NoError(t, err)
	require.NotNil(t, obj)

	product, err := model.ProductFromObject(*obj)
	require.NoError(t, err)
	assert.Equal(t, 24.5, product.Price)

	all, err := repo.List(ctx, model.TypeProduct, 10, 0)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestContentRepository_Upsert_Empty(t *testing.T) {
	repo := NewContentRepository(nil, zerolog.Nop())

	n, err := repo.Upsert(context.Background(), nil)
	require.NoError(t, err)
	assert.Zero(t, n)
}
