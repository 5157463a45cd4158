package gateway

import (
	"context"
	"time"

	"parking-booking/internal/domain/payment"
	"parking-booking/internal/pkg/errs"
)

type timeoutGateway struct {
	next    payment.Gateway
	timeout time.Duration
}

// WithTimeout bounds every authorization. A timed-out call returns an error, which
// the payment coordinator records as Failed.
func WithTimeout(next payment.Gateway, timeout time.Duration) payment.Gateway {
	if timeout <= 0 {
		return next
	}
	return &timeoutGateway{next: next, timeout: timeout}
}

func (g *timeoutGateway) Name() string {
	return g.next.Name()
}

func (g *timeoutGateway) Authorize(ctx context.Context, req payment.AuthorizeRequest) (payment.AuthorizeResult, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	type outcome struct {
		result payment.AuthorizeResult
		err    error
	}
	done := make(chan outcome, 1)
	go func() {
		result, err := g.next.Authorize(ctx, req)
		done <- outcome{result: result, err: err}
	}()

	select {
	case o := <-done:
		return o.result, o.err
	case <-ctx.Done():
		return payment.AuthorizeResult{}, errs.Mark(
			errs.Wrapf(ctx.Err(), "%s gateway did not answer within %s", g.next.Name(), g.timeout),
			errs.ErrGatewayUnavailable,
		)
	}
}
