package handler

import (
	"context"
	"net/http"

	"storefront/internal/model"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/mock"
)

// withParams attaches chi URL parameters to r.
func withParams(r *http.Request, params map[string]string) *http.Request {
	rctx := chi.NewRouteContext()
	for k, v := range params {
		rctx.URLParams.Add(k, v)
	}
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
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
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
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

// MockCartService is a mock implementation of CartService.
type MockCartService struct {
	mock.Mock
}

func (m *MockCartService) view(args mock.Arguments) (*model.CartView, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CartView), args.Error(1)
}

func (m *MockCartService) Create(ctx context.Context) (*model.CartView, error) {
	return m.view(m.Called(ctx))
}

func (m *MockCartService) Get(ctx context.Context, cartID string) (*model.CartView, error) {
	return m.view(m.Called(ctx, cartID))
}

func (m *MockCartService) AddItem(ctx context.Context, cartID, productID string, quantity int) (*model.CartView, error) {
	return m.view(m.Called(ctx, cartID, productID, quantity))
}

func (m *MockCartService) UpdateItem(ctx context.Context, cartID, productID string, quantity int) (*model.CartView, error) {
	return m.view(m.Called(ctx, cartID, productID, quantity))
}

func (m *MockCartService) RemoveItem(ctx context.Context, cartID, productID string) (*model.CartView, error) {
	return m.view(m.Called(ctx, cartID, productID))
}

func (m *MockCartService) Clear(ctx context.Context, cartID string) (*model.CartView, error) {
	return m.view(m.Called(ctx, cartID))
}

// MockCheckoutService is a mock implementation of CheckoutService.
type MockCheckoutService struct {
	mock.Mock
}

func (m *MockCheckoutService) CreateSession(ctx context.Context, req *model.CheckoutRequest, baseURL string) (*model.CheckoutResponse, error) {
	args := m.Called(ctx, req, baseURL)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CheckoutResponse), args.Error(1)
}

// MockOrderService is a mock implementation of OrderService.
type MockOrderService struct {
	mock.Mock
}

func (m *MockOrderService) Finalize(ctx context.Context, sessionID string) (*model.ProcessOrderResponse, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ProcessOrderResponse), args.Error(1)
}

func (m *MockOrderService) GetByOrderNumber(ctx context.Context, orderNumber string) (*model.Order, error) {
	args := m.Called(ctx, orderNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Order), args.Error(1)
}

// MockImporter is a mock implementation of Importer.
type MockImporter struct {
	mock.Mock
}

func (m *MockImporter) Import(ctx context.Context, path string) (int, error) {
	args := m.Called(ctx, path)
	return args.Int(0), args.Error(1)
}
