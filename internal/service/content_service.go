package service

import (
	"context"
	"fmt"

	"storefront/internal/model"
	"storefront/internal/repository"

	"github.com/rs/zerolog"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// contentService implements ContentService.
type contentService struct {
	contentRepo repository.ContentRepository
	logger      zerolog.Logger
}

// NewContentService creates a new content service.
func NewContentService(contentRepo repository.ContentRepository, logger zerolog.Logger) ContentService {
	return &contentService{
		contentRepo: contentRepo,
		logger:      logger.With().Str("service", "content").Logger(),
	}
}

func (s *contentService) ListServices(ctx context.Context, limit, offset int) ([]model.Service, error) {
	return listAs(ctx, s, model.TypeService, limit, offset, model.ServiceFromObject)
}

func (s *contentService) GetService(ctx context.Context, slug string) (*model.Service, error) {
	return getAs(ctx, s, model.TypeService, slug, model.ServiceFromObject)
}

func (s *contentService) ListProducts(ctx context.Context, limit, offset int) ([]model.Product, error) {
	return listAs(ctx, s, model.TypeProduct, limit, offset, model.ProductFromObject)
}

func (s *contentService) GetProduct(ctx context.Context, slug string) (*model.Product, error) {
	return getAs(ctx, s, model.TypeProduct, slug, model.ProductFromObject)
}

// GetProductsByIDs retrieves products by ID. Unknown IDs are skipped.
func (s *contentService) GetProductsByIDs(ctx context.Context, ids []string) ([]model.Product, error) {
	if len(ids) == 0 {
		return []model.Product{}, nil
	}

	objects, err := s.contentRepo.GetByIDs(ctx, model.TypeProduct, ids)
	if err != nil {
		s.logger.Error().Err(err).Int("count", len(ids)).Msg("failed to get products by IDs")
		return nil, fmt.Errorf("failed to get products: %w", err)
	}

	products, err := decodeAll(objects, model.ProductFromObject)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to decode products")
		return nil, err
	}

	s.logger.Debug().
		Int("requested", len(ids)).
		Int("found", len(products)).
		Msg("retrieved products by IDs")

	return products, nil
}

func (s *contentService) ListCaseStudies(ctx context.Context, limit, offset int) ([]model.CaseStudy, error) {
	return listAs(ctx, s, model.TypeCaseStudy, limit, offset, model.CaseStudyFromObject)
}

func (s *contentService) GetCaseStudy(ctx context.Context, slug string) (*model.CaseStudy, error) {
	return getAs(ctx, s, model.TypeCaseStudy, slug, model.CaseStudyFromObject)
}

func (s *contentService) ListTeamMembers(ctx context.Context, limit, offset int) ([]model.TeamMember, error) {
	return listAs(ctx, s, model.TypeTeamMember, limit, offset, model.TeamMemberFromObject)
}

func (s *contentService) ListTestimonials(ctx context.Context, limit, offset int) ([]model.Testimonial, error) {
	return listAs(ctx, s, model.TypeTestimonial, limit, offset, model.TestimonialFromObject)
}

// normalisePage applies the default and maximum page size.
func normalisePage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

func listAs[T any](ctx context.Context, s *contentService, objType string, limit, offset int, decode func(model.ContentObject) (T, error)) ([]T, error) {
	limit, offset = normalisePage(limit, offset)

	objects, err := s.contentRepo.List(ctx, objType, limit, offset)
	if err != nil {
		s.logger.Error().Err(err).
			Str("type", objType).
			Int("limit", limit).
			Int("offset", offset).
			Msg("failed to list content")
		return nil, fmt.Errorf("failed to get %s: %w", objType, err)
	}

	out, err := decodeAll(objects, decode)
	if err != nil {
		s.logger.Error().Err(err).Str("type", objType).Msg("failed to decode content")
		return nil, err
	}

	s.logger.Debug().
		Str("type", objType).
		Int("count", len(out)).
		Int("limit", limit).
		Int("offset", offset).
		Msg("retrieved content")

	return out, nil
}

func getAs[T any](ctx context.Context, s *contentService, objType, slug string, decode func(model.ContentObject) (T, error)) (*T, error) {
	if slug == "" {
		return nil, model.ErrContentNotFound
	}

	obj, err := s.contentRepo.GetBySlug(ctx, objType, slug)
	if err != nil {
		s.logger.Error().Err(err).Str("type", objType).Str("slug", slug).Msg("failed to get content")
		return nil, fmt.Errorf("failed to get %s: %w", objType, err)
	}
	if obj == nil {
		s.logger.Debug().Str("type", objType).Str("slug", slug).Msg("content not found")
		return nil, model.ErrContentNotFound
	}

	v, err := decode(*obj)
	if err != nil {
		s.logger.Error().Err(err).Str("type", objType).Str("slug", slug).Msg("failed to decode content")
		return nil, err
	}
	return &v, nil
}

func decodeAll[T any](objects []model.ContentObject, decode func(model.ContentObject) (T, error)) ([]T, error) {
	out := make([]T, 0, len(objects))
	for _, obj := range objects {
		v, err := decode(obj)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}
