package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"storefront/internal/model"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestSuccessPageHandler_NoSessionRedirects(t *testing.T) {
	orders := new(MockOrderService)
	carts := new(MockCartService)
	h := NewSuccessPageHandler(orders, carts, zerolog.Nop())

	w := httptest.NewRecorder()
	h.Show(w, httptest.NewRequest(http.MethodGet, "/checkout/success", nil))

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/shop", w.Header().Get("Location"))
	orders.AssertNotCalled(t, "Finalize", mock.Anything, mock.Anything)
}

func TestSuccessPageHandler_Confirmed(t *testing.T) {
	orders := new(MockOrderService)
	orders.On("Finalize", mock.Anything, "cs_1").
		Return(&model.ProcessOrderResponse{Success: true, OrderNumber: "ORD-1700000000000-a1b2c3"}, nil).Once()
	carts := new(MockCartService)
	carts.On("Clear", mock.Anything, "c1").Return(&model.CartView{ID: "c1"}, nil).Once()

	h := NewSuccessPageHandler(orders, carts, zerolog.Nop())

	req := httptest.NewRequest(http.MethodGet, "/checkout/success?session_id=cs_1", nil)
	req.AddCookie(&http.Cookie{Name: CartCookie, Value: "c1"})
	w := httptest.NewRecorder()

	h.Show(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
	body := w.Body.String()
	assert.Contains(t, body, "Order Confirmed!")
	assert.Contains(t, body, "ORD-1700000000000-a1b2c3")
	assert.Contains(t, body, "Continue Shopping")
	assert.NotContains(t, body, "confirmation email")

	orders.AssertNumberOfCalls(t, "Finalize", 1)
	carts.AssertExpectations(t)

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, CartCookie, cookies[0].Name)
	assert.Equal(t, -1, cookies[0].MaxAge)
}

func TestSuccessPageHandler_ConfirmedWithoutCart(t *testing.T) {
	orders := new(MockOrderService)
	orders.On("Finalize", mock.Anything, "cs_1").
		Return(&model.ProcessOrderResponse{Success: true, OrderNumber: "ORD-1-abcdef"}, nil)
	carts := new(MockCartService)
	carts.On("Clear", mock.Anything, "gone").Return(nil, model.ErrCartNotFound)

	h := NewSuccessPageHandler(orders, carts, zerolog.Nop())

	t.Run("No cookie", func(t *testing.T) {
		w := httptest.NewRecorder()
		h.Show(w, httptest.NewRequest(http.MethodGet, "/checkout/success?session_id=cs_1", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		carts.AssertNotCalled(t, "Clear", mock.Anything, mock.Anything)
	})

	t.Run("Expired cart", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/checkout/success?session_id=cs_1", nil)
		req.AddCookie(&http.Cookie{Name: CartCookie, Value: "gone"})
		w := httptest.NewRecorder()
		h.Show(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Order Confirmed!")
	})
}

func TestSuccessPageHandler_Failed(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{name: "Payment not completed", err: model.ErrPaymentNotCompleted, expected: "Payment has not been completed"},
		{name: "Internal error", err: errors.New("db down <script>"), expected: "please contact support"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			orders := new(MockOrderService)
			orders.On("Finalize", mock.Anything, "cs_1").Return(nil, tt.err)
			carts := new(MockCartService)

			h := NewSuccessPageHandler(orders, carts, zerolog.Nop())

			req := httptest.NewRequest(http.MethodGet, "/checkout/success?session_id=cs_1", nil)
			req.AddCookie(&http.Cookie{Name: CartCookie, Value: "c1"})
			w := httptest.NewRecorder()

			h.Show(w, req)

			require.Equal(t, http.StatusOK, w.Code)
			body := w.Body.String()
			assert.Contains(t, body, tt.expected)
			assert.Contains(t, body, "Return to Cart")
			assert.NotContains(t, body, "Order Confirmed!")
			assert.NotContains(t, body, "<script>")
			carts.AssertNotCalled(t, "Clear", mock.Anything, mock.Anything)
		})
	}
}
