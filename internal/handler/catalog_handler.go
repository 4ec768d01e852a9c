package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"storefront/internal/catalog"
	"storefront/internal/model"

	"github.com/rs/zerolog"
)

// Importer loads a content export into the content store.
type Importer interface {
	Import(ctx context.Context, path string) (int, error)
}

// ImportRequest is the body of a catalog import request.
type ImportRequest struct {
	Path string `json:"path"`
}

// ImportResponse reports how many content objects were stored.
type ImportResponse struct {
	Imported int `json:"imported"`
}

// CatalogHandler handles admin catalog imports.
type CatalogHandler struct {
	importer Importer
	logger   zerolog.Logger
}

// NewCatalogHandler creates a new catalog handler.
func NewCatalogHandler(importer Importer, logger zerolog.Logger) *CatalogHandler {
	return &CatalogHandler{
		importer: importer,
		logger:   logger.With().Str("handler", "catalog").Logger(),
	}
}

// Import handles POST /api/admin/catalog/import.
func (h *CatalogHandler) Import(w http.ResponseWriter, r *http.Request) {
	var req ImportRequest
	if !decodeJSON(w, r, &req, h.logger) {
		return
	}
	if strings.TrimSpace(req.Path) == "" {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidRequest, "path is required", h.logger)
		return
	}

	n, err := h.importer.Import(r.Context(), req.Path)
	if err != nil {
		if errors.Is(err, catalog.ErrInvalidPath) {
			writeError(w, http.StatusBadRequest, model.ErrCodeInvalidRequest, catalog.ErrInvalidPath.Error(), h.logger)
			return
		}
		var lineErr *catalog.LineError
		if errors.As(err, &lineErr) {
			writeError(w, http.StatusUnprocessableEntity, model.ErrCodeInvalidRequest, err.Error(), h.logger)
			return
		}
		h.logger.Error().Err(err).Str("path", req.Path).Msg("catalog import failed")
		writeError(w, http.StatusInternalServerError, model.ErrCodeInternalError, "failed to import catalog", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, ImportResponse{Imported: n})
}
