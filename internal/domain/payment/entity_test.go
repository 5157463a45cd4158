//go:build unit

package payment_test

import (
	"testing"
	"time"

	"parking-booking/internal/domain/payment"
	"parking-booking/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMethod(t *testing.T) {
	for _, s := range []string{"card", "wallet", "upi"} {
		m, err := payment.ParseMethod(s)
		require.NoError(t, err)
		assert.Equal(t, s, m.String())
	}

	_, err := payment.ParseMethod("cash")
	require.Error(t, err)
	assert.True(t, errs.Is(err, errs.ErrInvalidPaymentMethod))
}

func TestPayment_Settle(t *testing.T) {
	now := time.Date(2030, 1, 15, 9, 0, 0, 0, time.UTC)

	t.Run("success", func(t *testing.T) {
		p := payment.NewPayment(uuid.New(), uuid.New(), 10, "usd", payment.MethodCard, now)
		assert.Equal(t, payment.StatusPending, p.Status())

		err := p.Settle("simulated", payment.AuthorizeResult{
			Outcome:       payment.OutcomeSuccess,
			TransactionID: "TXN-1",
			Metadata:      map[string]any{"simulated": true},
		}, now.Add(time.Second))
		require.NoError(t, err)

		assert.Equal(t, payment.StatusSuccess, p.Status())
		assert.True(t, p.IsSuccessful())
		assert.Equal(t, "TXN-1", p.TransactionID())
		assert.Equal(t, "simulated", p.Gateway())
		assert.Equal(t, true, p.Metadata()["simulated"])
		assert.Empty(t, p.FailureReason())
	})

	t.Run("failure keeps reason", func(t *testing.T) {
		p := payment.NewPayment(uuid.New(), uuid.New(), 10, "usd", payment.MethodUPI, now)
		require.NoError(t, p.Settle("stripe", payment.AuthorizeResult{
			Outcome: payment.OutcomeFailed,
			Reason:  "card_declined",
		}, now))

		assert.Equal(t, payment.StatusFailed, p.Status())
		assert.Equal(t, "card_declined", p.FailureReason())
	})

	t.Run("settled payment is immutable", func(t *testing.T) {
		p := payment.NewPayment(uuid.New(), uuid.New(), 10, "usd", payment.MethodWallet, now)
		require.NoError(t, p.Settle("simulated", payment.AuthorizeResult{Outcome: payment.OutcomeFailed}, now))

		err := p.Settle("simulated", payment.AuthorizeResult{Outcome: payment.OutcomeSuccess}, now)
		require.ErrorIs(t, err, payment.ErrAlreadySettled)
		assert.Equal(t, payment.StatusFailed, p.Status())
	})

	t.Run("metadata is copied", func(t *testing.T) {
		p := payment.NewPayment(uuid.New(), uuid.New(), 10, "usd", payment.MethodCard, now)
		md := map[string]any{"k": "v"}
		require.NoError(t, p.Settle("simulated", payment.AuthorizeResult{Outcome: payment.OutcomeSuccess, Metadata: md}, now))

		md["k"] = "changed"
		got := p.Metadata()
		got["k"] = "mutated"
		assert.Equal(t, "v", p.Metadata()["k"])
	})
}
