package payment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/sony/gobreaker/v2"
)

// BreakerProvider guards a Provider with a circuit breaker. Rejected requests
// do not trip it; transport and server errors do.
type BreakerProvider struct {
	next   Provider
	cb     *gobreaker.CircuitBreaker[*Session]
	logger zerolog.Logger
}

// NewBreakerProvider opens the circuit after maxFailures consecutive failures
// and probes again after openTimeout.
func NewBreakerProvider(next Provider, maxFailures uint32, openTimeout time.Duration, logger zerolog.Logger) *BreakerProvider {
	logger = logger.With().Str("component", "payment-breaker").Logger()

	cb := gobreaker.NewCircuitBreaker[*Session](gobreaker.Settings{
		Name:        "payment-provider",
		MaxRequests: 1,
		Timeout:     openTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= maxFailures
		},
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, ErrRejected) || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("circuit breaker state changed")
		},
	})

	return &BreakerProvider{next: next, cb: cb, logger: logger}
}

func (p *BreakerProvider) CreateSession(ctx context.Context, params CreateSessionParams) (*Session, error) {
	return p.execute(func() (*Session, error) {
		return p.next.CreateSession(ctx, params)
	})
}

func (p *BreakerProvider) RetrieveSession(ctx context.Context, sessionID string) (*Session, error) {
	return p.execute(func() (*Session, error) {
		return p.next.RetrieveSession(ctx, sessionID)
	})
}

// State returns the breaker state name: "closed", "half-open" or "open".
func (p *BreakerProvider) State() string {
	return p.cb.State().String()
}

func (p *BreakerProvider) execute(fn func() (*Session, error)) (*Session, error) {
	s, err := p.cb.Execute(fn)
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		p.logger.Warn().Err(err).Msg("payment provider call short-circuited")
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return s, err
}
