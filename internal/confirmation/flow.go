// Package confirmation drives the post-payment success page.
package confirmation

import (
	"context"
	"errors"
	"sync"

	"storefront/internal/model"
)

// State is the state of a confirmation flow.
type State string

const (
	StateProcessing State = "processing"
	StateConfirmed  State = "confirmed"
	StateFailed     State = "failed"
)

const (
	msgNoSession = "No payment session was found for this page."
	msgGeneric   = "We could not confirm your order. If you were charged, please contact support."
)

// ErrInvalidTransition is returned when a flow that already left processing is moved again.
var ErrInvalidTransition = errors.New("confirmation flow already finished")

// Finalizer records the order for a paid session.
type Finalizer interface {
	Finalize(ctx context.Context, sessionID string) (*model.ProcessOrderResponse, error)
}

// Flow tracks one visit of the success page. It starts in processing and moves
// exactly once, to confirmed or failed.
type Flow struct {
	mu          sync.Mutex
	state       State
	orderNumber string
	message     string
	started     bool
}

// NewFlow returns a flow in the processing state.
func NewFlow() *Flow {
	return &Flow{state: StateProcessing}
}

// State returns the current state.
func (f *Flow) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// OrderNumber returns the confirmed order number, empty unless confirmed.
func (f *Flow) OrderNumber() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.orderNumber
}

// Message returns the failure message, empty unless failed.
func (f *Flow) Message() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.message
}

// Confirm moves the flow to confirmed.
func (f *Flow) Confirm(orderNumber string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state != StateProcessing {
		return ErrInvalidTransition
	}
	f.state = StateConfirmed
	f.orderNumber = orderNumber
	return nil
}

// Fail moves the flow to failed.
func (f *Flow) Fail(message string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state != StateProcessing {
		return ErrInvalidTransition
	}
	f.state = StateFailed
	f.message = message
	return nil
}

// Run finalizes sessionID and settles the flow. The finalizer is called at
// most once per flow; later calls return the settled state unchanged.
func (f *Flow) Run(ctx context.Context, finalizer Finalizer, sessionID string) State {
	f.mu.Lock()
	if f.started {
		state := f.state
		f.mu.Unlock()
		return state
	}
	f.started = true
	f.mu.Unlock()

	if sessionID == "" {
		_ = f.Fail(msgNoSession)
		return f.State()
	}

	resp, err := finalizer.Finalize(ctx, sessionID)
	switch {
	case err != nil:
		_ = f.Fail(failureMessage(err))
	case resp == nil || !resp.Success:
		_ = f.Fail(msgGeneric)
	default:
		_ = f.Confirm(resp.OrderNumber)
	}
	return f.State()
}

func failureMessage(err error) string {
	if de, ok := model.AsDomainError(err); ok {
		return de.Message
	}
	return msgGeneric
}
