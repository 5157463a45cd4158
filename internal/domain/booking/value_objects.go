package booking

import (
	"fmt"
	"strings"
	"time"

	"parking-booking/internal/pkg/errs"
)

const (
	MaxVehicleNumberLength = 32
	MaxNotesLength         = 1000
)

// Interval is the half-open range [start, end).
type Interval struct {
	start time.Time
	end   time.Time
}

func NewInterval(start, end time.Time) (Interval, error) {
	if start.IsZero() || end.IsZero() {
		return Interval{}, errs.Mark(errs.New("start and end time are required"), errs.ErrInvalidInterval)
	}
	if !end.After(start) {
		return Interval{}, errs.Mark(
			errs.Newf("end time %s must be after start time %s", end.Format(time.RFC3339), start.Format(time.RFC3339)),
			errs.ErrInvalidInterval,
		)
	}
	return Interval{start: start.UTC(), end: end.UTC()}, nil
}

func (i Interval) Start() time.Time { return i.start }
func (i Interval) End() time.Time   { return i.end }

func (i Interval) Duration() time.Duration {
	return i.end.Sub(i.start)
}

// Overlaps reports whether the two intervals share at least one instant.
// Touching intervals ([a,b) and [b,c)) do not overlap.
func (i Interval) Overlaps(other Interval) bool {
	return i.start.Before(other.end) && i.end.After(other.start)
}

func (i Interval) HasEndedAt(now time.Time) bool {
	return !now.Before(i.end)
}

func (i Interval) String() string {
	return fmt.Sprintf("[%s,%s)", i.start.Format(time.RFC3339), i.end.Format(time.RFC3339))
}

type VehicleNumber struct {
	value string
}

func NewVehicleNumber(s string) (VehicleNumber, error) {
	v := strings.ToUpper(strings.TrimSpace(s))
	if v == "" {
		return VehicleNumber{}, ErrVehicleRequired
	}
	if len(v) > MaxVehicleNumberLength {
		return VehicleNumber{}, ErrVehicleTooLong
	}
	return VehicleNumber{value: v}, nil
}

func (v VehicleNumber) String() string {
	return v.value
}

type Note struct {
	value string
}

func NewNote(value string) (Note, error) {
	v := strings.TrimSpace(value)
	if len(v) > MaxNotesLength {
		return Note{}, ErrNotesTooLong
	}
	return Note{value: v}, nil
}

func (n Note) String() string {
	return n.value
}

func (n Note) IsEmpty() bool {
	return n.value == ""
}
