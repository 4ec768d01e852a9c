package handler

import (
	"net/http"

	"storefront/internal/model"
	"storefront/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// Collection names used in content URLs.
const (
	CollectionServices     = "services"
	CollectionProducts     = "products"
	CollectionCaseStudies  = "case-studies"
	CollectionTeamMembers  = "team-members"
	CollectionTestimonials = "testimonials"
)

// ContentHandler serves CMS content collections.
type ContentHandler struct {
	service service.ContentService
	logger  zerolog.Logger
}

// NewContentHandler creates a new content handler.
func NewContentHandler(service service.ContentService, logger zerolog.Logger) *ContentHandler {
	return &ContentHandler{
		service: service,
		logger:  logger.With().Str("handler", "content").Logger(),
	}
}

// List handles GET /api/content/{type}.
func (h *ContentHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, offset, ok := pagination(w, r, h.logger)
	if !ok {
		return
	}

	ctx := r.Context()
	var (
		result any
		err    error
	)
	switch chi.URLParam(r, "type") {
	case CollectionServices:
		result, err = h.service.ListServices(ctx, limit, offset)
	case CollectionProducts:
		result, err = h.service.ListProducts(ctx, limit, offset)
	case CollectionCaseStudies:
		result, err = h.service.ListCaseStudies(ctx, limit, offset)
	case CollectionTeamMembers:
		result, err = h.service.ListTeamMembers(ctx, limit, offset)
	case CollectionTestimonials:
		result, err = h.service.ListTestimonials(ctx, limit, offset)
	default:
		err = model.ErrContentNotFound
	}
	if err != nil {
		writeServiceError(w, err, "failed to retrieve content", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// Get handles GET /api/content/{type}/{slug}.
func (h *ContentHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	slug := chi.URLParam(r, "slug")

	var (
		result any
		err    error
	)
	switch chi.URLParam(r, "type") {
	case CollectionServices:
		result, err = h.service.GetService(ctx, slug)
	case CollectionProducts:
		result, err = h.service.GetProduct(ctx, slug)
	case CollectionCaseStudies:
		result, err = h.service.GetCaseStudy(ctx, slug)
	default:
		// Team members and testimonials are only shown as collections.
		err = model.ErrContentNotFound
	}
	if err != nil {
		writeServiceError(w, err, "failed to retrieve content", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, result)
}
