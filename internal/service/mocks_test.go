package service

import (
	"context"

	"storefront/internal/model"
	"storefront/internal/payment"

	"github.com/stretchr/testify/mock"
)

// MockContentRepository is a mock implementation of ContentRepository.
type MockContentRepository struct {
	mock.Mock
}

func (m *MockContentRepository) List(ctx context.Context, objType string, limit, offset int) ([]model.ContentObject, error) {
	args := m.Called(ctx, objType, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
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
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.ContentObject), args.Error(1)
}

func (m *MockContentRepository) Upsert(ctx context.Context, objects []model.ContentObject) (int, error) {
	args := m.Called(ctx, objects)
	return args.Int(0), args.Error(1)
}

// MockOrderRepository is a mock implementation of OrderRepository.
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) CreateOrder(ctx context.Context, order *model.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockOrderRepository) CreateOrderOnce(ctx context.Context, order *model.Order) (*model.Order, bool, error) {
	args := m.Called(ctx, order)
	switch v := args.Get(0).(type) {
	case nil:
		return nil, args.Bool(1), args.Error(2)
	case func(context.Context, *model.Order) *model.Order:
		return v(ctx, order), args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*model.Order), args.Bool(1), args.Error(2)
}

func (m *MockOrderRepository) GetByOrderNumber(ctx context.Context, orderNumber string) (*model.Order, error) {
	args := m.Called(ctx, orderNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Order), args.Error(1)
}

func (m *MockOrderRepository) ListByPaymentSessionID(ctx context.Context, sessionID string) ([]model.Order, error) {
	args := m.Called(ctx, sessionID)
	return args.Get(0).([]model.Order), args.Error(1)
}

// MockProvider is a mock implementation of payment.Provider.
type MockProvider struct {
	mock.Mock
}

func (m *MockProvider) CreateSession(ctx context.Context, params payment.CreateSessionParams) (*payment.Session, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.Session), args.Error(1)
}

func (m *MockProvider) RetrieveSession(ctx context.Context, sessionID string) (*payment.Session, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.Session), args.Error(1)
}

// MockPublisher is a mock implementation of notify.Publisher.
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishOrderPaid(ctx context.Context, order *model.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

// MockContentService is a mock implementation of ContentService.
type MockContentService struct {
	mock.Mock
}

func (m *MockContentService) ListServices(ctx context.Context, limit, offset int) ([]model.Service, error) {
	args := m.Called(ctx, limit, offset)
	return args.Get(0).([]model.Service), args.Error(1)
}

func (m *MockContentService) GetService(ctx context.Context, slug string) (*model.Service, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Service), args.Error(1)
}

func (m *MockContentService) ListProducts(ctx context.Context, limit, offset int) ([]model.Product, error) {
	args := m.Called(ctx, limit, offset)
	return args.Get(0).([]model.Product), args.Error(1)
}

func (m *MockContentService) GetProduct(ctx context.Context, slug string) (*model.Product, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}

func (m *MockContentService) GetProductsByIDs(ctx context.Context, ids []string) ([]model.Product, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Product), args.Error(1)
}

func (m *MockContentService) ListCaseStudies(ctx context.Context, limit, offset int) ([]model.CaseStudy, error) {
	args := m.Called(ctx, limit, offset)
	return args.Get(0).([]model.CaseStudy), args.Error(1)
}

func (m *MockContentService) GetCaseStudy(ctx context.Context, slug string) (*model.CaseStudy, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CaseStudy), args.Error(1)
}

func (m *MockContentService) ListTeamMembers(ctx context.Context, limit, offset int) ([]model.TeamMember, error) {
	args := m.Called(ctx, limit, offset)
	return args.Get(0).([]model.TeamMember), args.Error(1)
}

func (m *MockContentService) ListTestimonials(ctx context.Context, limit, offset int) ([]model.Testimonial, error) {
	args := m.Called(ctx, limit, offset)
	return args.Get(0).([]model.Testimonial), args.Error(1)
}
