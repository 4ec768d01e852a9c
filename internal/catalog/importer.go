package catalog

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"storefront/internal/repository"

	"github.com/rs/zerolog"
)

// Importer seeds the content store from CMS exports.
type Importer struct {
	loader Loader
	repo   repository.ContentRepository
	logger zerolog.Logger
}

// NewImporter creates a new catalog importer.
func NewImporter(loader Loader, repo repository.ContentRepository, logger zerolog.Logger) *Importer {
	return &Importer{
		loader: loader,
		repo:   repo,
		logger: logger.With().Str("component", "catalog-importer").Logger(),
	}
}

// Import loads the export at path and upserts every object it contains.
// path is relative to the catalog directory or S3 prefix. It returns the
// number of objects written.
func (i *Importer) Import(ctx context.Context, path string) (int, error) {
	if path == "" {
		return 0, errors.New("catalog path is required")
	}
	if !filepath.IsLocal(path) {
		return 0, fmt.Errorf("%w: %s", ErrInvalidPath, path)
	}

	start := time.Now()

	objects, err := i.loader.Load(ctx, path)
	if err != nil {
		return 0, err
	}

	n, err := i.repo.Upsert(ctx, objects)
	if err != nil {
		return n, fmt.Errorf("failed to store catalog objects: %w", err)
	}

	i.logger.Info().
		Str("path", path).
		Int("imported", n).
		Dur("duration", time.Since(start)).
		Msg("catalog imported")

	return n, nil
}
