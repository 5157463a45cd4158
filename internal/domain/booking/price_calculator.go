package booking

import (
	"math"
	"time"

	"parking-booking/internal/pkg/errs"
)

// Duration returns the length of [start, end) in fractional hours.
func Duration(start, end time.Time) (float64, error) {
	if !end.After(start) {
		return 0, errs.Mark(errs.New("end must be after start"), errs.ErrInvalidInterval)
	}
	return end.Sub(start).Hours(), nil
}

// Cost is hours * rate with no rounding; rounding belongs to presentation.
func Cost(hours, rate float64) (float64, error) {
	if rate < 0 || math.IsNaN(rate) || math.IsInf(rate, 0) {
		return 0, errs.Mark(errs.New("rate must be a finite non-negative number"), errs.ErrInvalidRate)
	}
	return hours * rate, nil
}

// Quote captures the figures derived at booking time. The rate is frozen here so
// later location price changes never alter an existing booking.
type Quote struct {
	Hours float64
	Rate  float64
	Cost  float64
}

type PriceCalculator interface {
	Quote(interval Interval, hourlyRate float64) (Quote, error)
}

type LinearPriceCalculator struct{}

func NewLinearPriceCalculator() *LinearPriceCalculator {
	return &LinearPriceCalculator{}
}

func (LinearPriceCalculator) Quote(interval Interval, hourlyRate float64) (Quote, error) {
	hours, err := Duration(interval.Start(), interval.End())
	if err != nil {
		return Quote{}, err
	}
	cost, err := Cost(hours, hourlyRate)
	if err != nil {
		return Quote{}, err
	}
	return Quote{Hours: hours, Rate: hourlyRate, Cost: cost}, nil
}
