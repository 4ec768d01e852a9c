package confirmation

import (
	"context"
	"errors"
	"sync"
	"testing"

	"storefront/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockFinalizer struct {
	mock.Mock
}

func (m *MockFinalizer) Finalize(ctx context.Context, sessionID string) (*model.ProcessOrderResponse, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ProcessOrderResponse), args.Error(1)
}

func TestFlow_Transitions(t *testing.T) {
	f := NewFlow()
	assert.Equal(t, StateProcessing, f.State())

	require.NoError(t, f.Confirm("ORD-1-abcdef"))
	assert.Equal(t, StateConfirmed, f.State())
	assert.Equal(t, "ORD-1-abcdef", f.OrderNumber())

	assert.ErrorIs(t, f.Fail("late"), ErrInvalidTransition)
	assert.ErrorIs(t, f.Confirm("ORD-2-abcdef"), ErrInvalidTransition)
	assert.Equal(t, StateConfirmed, f.State())
	assert.Equal(t, "ORD-1-abcdef", f.OrderNumber())
	assert.Empty(t, f.Message())

	g := NewFlow()
	require.NoError(t, g.Fail("boom"))
	assert.Equal(t, StateFailed, g.State())
	assert.ErrorIs(t, g.Confirm("ORD-1-abcdef"), ErrInvalidTransition)
	assert.Equal(t, "boom", g.Message())
}

func TestFlow_Run(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name        string
		resp        *model.ProcessOrderResponse
		err         error
		expected    State
		orderNumber string
		message     string
	}{
		{
			name:        "Confirmed",
			resp:        &model.ProcessOrderResponse{Success: true, OrderNumber: "ORD-1-abcdef"},
			expected:    StateConfirmed,
			orderNumber: "ORD-1-abcdef",
		},
		{
			name:     "Domain error shows its message",
			err:      model.ErrPaymentNotCompleted,
			expected: StateFailed,
			message:  model.ErrPaymentNotCompleted.Message,
		},
		{
			name:     "Other error shows generic message",
			err:      errors.New("db down"),
			expected: StateFailed,
			message:  msgGeneric,
		},
		{
			name:     "Unsuccessful response",
			resp:     &model.ProcessOrderResponse{},
			expected: StateFailed,
			message:  msgGeneric,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			finalizer := new(MockFinalizer)
			if tt.resp != nil {
				finalizer.On("Finalize", ctx, "cs_1").Return(tt.resp, tt.err)
			} else {
				finalizer.On("Finalize", ctx, "cs_1").Return(nil, tt.err)
			}

			f := NewFlow()
			state := f.Run(ctx, finalizer, "cs_1")

			assert.Equal(t, tt.expected, state)
			assert.Equal(t, tt.orderNumber, f.OrderNumber())
			assert.Equal(t, tt.message, f.Message())
			finalizer.AssertNumberOfCalls(t, "Finalize", 1)
		})
	}
}

func TestFlow_Run_NoSession(t *testing.T) {
	finalizer := new(MockFinalizer)

	f := NewFlow()
	state := f.Run(context.Background(), finalizer, "")

	assert.Equal(t, StateFailed, state)
	assert.Equal(t, msgNoSession, f.Message())
	finalizer.AssertNotCalled(t, "Finalize", mock.Anything, mock.Anything)
}

func TestFlow_Run_CallsFinalizerOnce(t *testing.T) {
	ctx := context.Background()
	finalizer := new(MockFinalizer)
	finalizer.On("Finalize", ctx, "cs_1").
		Return(&model.ProcessOrderResponse{Success: true, OrderNumber: "ORD-1-abcdef"}, nil)

	f := NewFlow()

	var wg sync.WaitGroup
	for range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			f.Run(ctx, finalizer, "cs_1")
		}()
	}
	wg.Wait()

	assert.Equal(t, StateConfirmed, f.Run(ctx, finalizer, "cs_1"))
	finalizer.AssertNumberOfCalls(t, "Finalize", 1)
}
