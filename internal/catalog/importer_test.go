package catalog

import (
	"context"
	"errors"
	"testing"

	"storefront/internal/model"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockContentRepository is a mock implementation of ContentRepository.
type MockContentRepository struct {
	mock.Mock
}

func (m *MockContentRepository) List(ctx context.Context, objType string, limit, offset int) ([]model.ContentObject, error) {
	args := m.Called(ctx, objType, limit, offset)
	return args.Get(0).([]model.ContentObject), args.Error(1)
}

func (m *MockContentRepository) GetBySlug(ctx context.Context, objType, slug string) (*model.ContentObject, error) {
	args := m.Called(ctx, objType, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ContentObject), args.Error(1)
}

func (m *MockContentRepository) GetByIDs(ctx context.Context, objType string, ids []string) ([]model.ContentObject, error) {
	args := m.Called(ctx, objType, ids)
	return args.Get(0).([]model.ContentObject), args.Error(1)
}

func (m *MockContentRepository) Upsert(ctx context.Context, objects []model.ContentObject) (int, error) {
	args := m.Called(ctx, objects)
	return args.Int(0), args.Error(1)
}

func TestImporter_Import_Success(t *testing.T) {
	ctx := context.Background()
	objects := []model.ContentObject{{ID: "p1"}, {ID: "p2"}}

	loader := &mockLoader{loadFunc: func(ctx context.Context, path string) ([]model.ContentObject, error) {
		assert.Equal(t, "export.gz", path)
		return objects, nil
	}}
	repo := new(MockContentRepository)
	repo.On("Upsert", ctx, objects).Return(2, nil)

	n, err := NewImporter(loader, repo, zerolog.Nop()).Import(ctx, "export.gz")

	require.NoError(t, err)
	assert.Equal(t, 2, n)
	repo.AssertExpectations(t)
}

func TestImporter_Import_Errors(t *testing.T) {
	ctx := context.Background()

	t.Run("Empty path", func(t *testing.T) {
		repo := new(MockContentRepository)
		_, err := NewImporter(&mockLoader{}, repo, zerolog.Nop()).Import(ctx, "")
		require.Error(t, err)
		repo.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
	})

	t.Run("Path outside catalog directory", func(t *testing.T) {
		loader := &mockLoader{loadFunc: func(ctx context.Context, path string) ([]model.ContentObject, error) {
			t.Error("loader should not be called for an escaping path")
			return nil, nil
		}}
		repo := new(MockContentRepository)

		for _, path := range []string{"/etc/passwd", "../../etc/passwd"} {
			_, err := NewImporter(loader, repo, zerolog.Nop()).Import(ctx, path)
			assert.ErrorIs(t, err, ErrInvalidPath)
		}
		repo.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
	})

	t.Run("Loader fails", func(t *testing.T) {
		loader := &mockLoader{loadFunc: func(ctx context.Context, path string) ([]model.ContentObject, error) {
			return nil, errors.New("line 3: invalid JSON")
		}}
		repo := new(MockContentRepository)

		_, err := NewImporter(loader, repo, zerolog.Nop()).Import(ctx, "export.gz")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "line 3")
		repo.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
	})

	t.Run("Upsert fails", func(t *testing.T) {
		objects := []model.ContentObject{{ID: "p1"}}
		loader := &mockLoader{loadFunc: func(ctx context.Context, path string) ([]model.ContentObject, error) {
			return objects, nil
		}}
		repo := new(MockContentRepository)
		repo.On("Upsert", ctx, objects).Return(0, errors.New("db down"))

		_, err := NewImporter(loader, repo, zerolog.Nop()).Import(ctx, "export.gz")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to store catalog objects")
	})
}
