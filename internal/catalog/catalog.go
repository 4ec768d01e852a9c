package catalog

import (
	"bufio"
	"compress/gzip"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"storefront/internal/model"
)

// Loader reads a CMS content export and returns the objects it contains.
type Loader interface {
	Load(ctx context.Context, path string) ([]model.ContentObject, error)
}

// ErrInvalidPath is returned for export paths that are absolute or leave the
// catalog directory.
var ErrInvalidPath = errors.New("catalog path must be relative to the catalog directory")

// LineError reports an export line that could not be turned into a content object.
type LineError struct {
	Line int
	Err  error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *LineError) Unwrap() error {
	return e.Err
}

// decodeExport reads a gzipped JSON-lines export. Blank lines are skipped.
// Every invalid line is reported; no objects are returned if any line fails.
func decodeExport(ctx context.Context, r io.Reader) ([]model.ContentObject, error) {
	gz, err := gzip.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to create gzip reader: %w", err)
	}
	defer gz.Close()

	scanner := bufio.NewScanner(gz)
	scanner.Buffer(make([]byte, 64*1024), 4*1024*1024)

	var (
		objects []model.ContentObject
		errs    []error
	)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		if lineNo%1000 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		obj, err := decodeObject([]byte(line))
		if err != nil {
			errs = append(errs, &LineError{Line: lineNo, Err: err})
			continue
		}
		objects = append(objects, obj)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read export: %w", err)
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return objects, nil
}

func decodeObject(line []byte) (model.ContentObject, error) {
	var obj model.ContentObject
	if err := json.Unmarshal(line, &obj); err != nil {
		return model.ContentObject{}, fmt.Errorf("invalid JSON: %w", err)
	}

	switch {
	case obj.ID == "":
		return model.ContentObject{}, errors.New("id is required")
	case !model.IsContentType(obj.Type):
		return model.ContentObject{}, fmt.Errorf("unknown type %q", obj.Type)
	case obj.Slug == "":
		return model.ContentObject{}, errors.New("slug is required")
	}

	if obj.Title == "" {
		obj.Title = obj.Slug
	}
	return obj, nil
}
