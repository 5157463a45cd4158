//go:build unit

package booking_test

import (
	"math"
	"math/rand"
	"strings"
	"testing"
	"time"

	"parking-booking/internal/domain/booking"
	"parking-booking/internal/pkg/errs"
	"parking-booking/internal/testutil/builder"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInterval_Overlaps(t *testing.T) {
	mk := func(sh, eh int) booking.Interval {
		i, err := booking.NewInterval(builder.At(sh, 0), builder.At(eh, 0))
		require.NoError(t, err)
		return i
	}

	tests := []struct {
		name string
		a, b booking.Interval
		want bool
	}{
		{"identical", mk(10, 12), mk(10, 12), true},
		{"partial overlap", mk(10, 12), mk(11, 13), true},
		{"contained", mk(9, 14), mk(10, 11), true},
		{"touching end to start", mk(10, 12), mk(12, 13), false},
		{"touching start to end", mk(12, 13), mk(10, 12), false},
		{"disjoint", mk(8, 9), mk(10, 11), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Overlaps(tt.b))
			assert.Equal(t, tt.want, tt.b.Overlaps(tt.a))
		})
	}
}

func TestNewInterval_NormalizesToUTC(t *testing.T) {
	loc := time.FixedZone("IST", 5*3600+1800)
	start := time.Date(2030, 1, 15, 15, 30, 0, 0, loc)

	i, err := booking.NewInterval(start, start.Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, time.UTC, i.Start().Location())
	assert.True(t, i.Start().Equal(start))
}

func TestNewInterval_ZeroTimes(t *testing.T) {
	_, err := booking.NewInterval(time.Time{}, builder.At(1, 0))
	assert.True(t, errs.Is(err, errs.ErrInvalidInterval))
}

func TestNewInterval_EndNotAfterStart(t *testing.T) {
	_, err := booking.NewInterval(builder.At(12, 0), builder.At(10, 0))

	require.Error(t, err)
	assert.True(t, errs.Is(err, errs.ErrInvalidInterval))
	assert.Contains(t, err.Error(), "must be after start time")
	assert.Contains(t, strings.Join(errs.ExtractStackLines(err, 0), "\n"), "booking.NewInterval")
}

func TestDuration(t *testing.T) {
	h, err := booking.Duration(builder.At(10, 0), builder.At(11, 30))
	require.NoError(t, err)
	assert.InDelta(t, 1.5, h, 1e-12)

	_, err = booking.Duration(builder.At(10, 0), builder.At(10, 0))
	assert.True(t, errs.Is(err, errs.ErrInvalidInterval))

	_, err = booking.Duration(builder.At(11, 0), builder.At(10, 0))
	assert.True(t, errs.Is(err, errs.ErrInvalidInterval))
}

func TestCost(t *testing.T) {
	c, err := booking.Cost(2, 5)
	require.NoError(t, err)
	assert.InDelta(t, 10.0, c, 1e-12)

	for _, rate := range []float64{-1, math.NaN(), math.Inf(1)} {
		_, err := booking.Cost(1, rate)
		assert.True(t, errs.Is(err, errs.ErrInvalidRate), "rate %v", rate)
	}
}

// cost(duration(s,e), r) must equal duration(s,e)*r for every valid input.
func TestCost_RoundTripProperty(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	calc := booking.NewLinearPriceCalculator()

	for range 2000 {
		start := builder.BaseTime.Add(time.Duration(rng.Int63n(int64(365 * 24 * time.Hour))))
		end := start.Add(time.Duration(1 + rng.Int63n(int64(72*time.Hour))))
		rate := rng.Float64() * 100

		hours, err := booking.Duration(start, end)
		require.NoError(t, err)
		cost, err := booking.Cost(hours, rate)
		require.NoError(t, err)
		assert.Equal(t, hours*rate, cost)

		interval, err := booking.NewInterval(start, end)
		require.NoError(t, err)
		quote, err := calc.Quote(interval, rate)
		require.NoError(t, err)
		assert.Equal(t, cost, quote.Cost)
		assert.Equal(t, hours, quote.Hours)
	}
}

func TestStatus_Transitions(t *testing.T) {
	assert.True(t, booking.StatusActive.CanTransitionTo(booking.StatusCancelled))
	assert.True(t, booking.StatusActive.CanTransitionTo(booking.StatusCompleted))
	assert.False(t, booking.StatusActive.CanTransitionTo(booking.StatusActive))
	for _, from := range []booking.Status{booking.StatusCompleted, booking.StatusCancelled} {
		for _, to := range []booking.Status{booking.StatusActive, booking.StatusCompleted, booking.StatusCancelled} {
			assert.False(t, from.CanTransitionTo(to), "%s -> %s", from, to)
		}
	}

	_, err := booking.ParseStatus("pending")
	require.ErrorIs(t, err, booking.ErrInvalidStatus)
}
