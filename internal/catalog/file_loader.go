package catalog

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"storefront/internal/model"

	"github.com/rs/zerolog"
)

// fileLoader implements Loader for exports on local disk.
type fileLoader struct {
	dir    string
	logger zerolog.Logger
}

// NewFileLoader creates a new file-based export loader. Paths are resolved
// inside dir and may not escape it.
func NewFileLoader(dir string, logger zerolog.Logger) Loader {
	return &fileLoader{
		dir:    dir,
		logger: logger.With().Str("component", "catalog-loader").Logger(),
	}
}

// Load reads a gzipped JSON-lines export from disk.
func (l *fileLoader) Load(ctx context.Context, path string) ([]model.ContentObject, error) {
	if !filepath.IsLocal(path) {
		l.logger.Warn().Str("file", path).Msg("rejected catalog path outside the catalog directory")
		return nil, fmt.Errorf("%w: %s", ErrInvalidPath, path)
	}

	l.logger.Info().Str("dir", l.dir).Str("file", path).Msg("loading catalog export")

	file, err := os.OpenInRoot(l.dir, path)
	if err != nil {
		l.logger.Error().Err(err).Str("file", path).Msg("failed to open catalog export")
		return nil, fmt.Errorf("failed to open catalog export %s: %w", path, err)
	}
	defer file.Close()

	objects, err := decodeExport(ctx, file)
	if err != nil {
		l.logger.Error().Err(err).Str("file", path).Msg("failed to decode catalog export")
		return nil, fmt.Errorf("catalog export %s: %w", path, err)
	}

	l.logger.Info().
		Str("file", path).
		Int("objects_loaded", len(objects)).
		Msg("catalog export loaded")

	return objects, nil
}
