package gateway

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"parking-booking/internal/domain/payment"
	"parking-booking/internal/pkg/clock"
)

const (
	SimulatedName = "simulated"

	txnAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"
	txnSuffix   = 9
)

// Simulated approves all but FailureRate of attempts. Declines are business
// outcomes, never errors.
type Simulated struct {
	FailureRate float64

	clock clock.Clock
	mu    sync.Mutex
	rng   *rand.Rand
}

func NewSimulated(failureRate float64, clk clock.Clock, rng *rand.Rand) *Simulated {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Simulated{
		FailureRate: failureRate,
		clock:       clk,
		rng:         rng,
	}
}

func (s *Simulated) Name() string {
	return SimulatedName
}

func (s *Simulated) Authorize(ctx context.Context, req payment.AuthorizeRequest) (payment.AuthorizeResult, error) {
	if err := ctx.Err(); err != nil {
		return payment.AuthorizeResult{}, err
	}

	now := s.clock.Now()
	s.mu.Lock()
	declined := s.rng.Float64() < s.FailureRate
	suffix := make([]byte, txnSuffix)
	for i := range suffix {
		suffix[i] = txnAlphabet[s.rng.IntN(len(txnAlphabet))]
	}
	s.mu.Unlock()

	result := payment.AuthorizeResult{
		Outcome:       payment.OutcomeSuccess,
		TransactionID: fmt.Sprintf("TXN-%d-%s", now.UnixMilli(), suffix),
		Metadata: map[string]any{
			"simulated":   true,
			"processedAt": now.Format(time.RFC3339Nano),
		},
	}
	if declined {
		result.Outcome = payment.OutcomeFailed
		result.Reason = "declined by simulated gateway"
	}
	return result, nil
}
