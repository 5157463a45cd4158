package slot

import (
	"time"

	"parking-booking/internal/pkg/errs"

	"github.com/google/uuid"
)

// Slot is a single bookable space. IsAvailable is a display hint refreshed after
// lifecycle transitions; availability decisions never read it.
type Slot struct {
	id          uuid.UUID
	locationID  uuid.UUID
	number      string
	slotType    Type
	isActive    bool
	isAvailable bool
	createdAt   time.Time
	updatedAt   time.Time
}

func ReconstructSlot(
	id, locationID uuid.UUID,
	number string,
	slotType Type,
	isActive, isAvailable bool,
	createdAt, updatedAt time.Time,
) *Slot {
	return &Slot{
		id:          id,
		locationID:  locationID,
		number:      number,
		slotType:    slotType,
		isActive:    isActive,
		isAvailable: isAvailable,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

func (s *Slot) ID() uuid.UUID         { return s.id }
func (s *Slot) LocationID() uuid.UUID { return s.locationID }
func (s *Slot) Number() string        { return s.number }
func (s *Slot) Type() Type            { return s.slotType }
func (s *Slot) IsActive() bool        { return s.isActive }
func (s *Slot) IsAvailable() bool     { return s.isAvailable }
func (s *Slot) CreatedAt() time.Time  { return s.createdAt }
func (s *Slot) UpdatedAt() time.Time  { return s.updatedAt }

func (s *Slot) CanBeBooked() error {
	if !s.isActive {
		return errs.Mark(errs.Wrapf(errs.New("slot is deactivated"), "slot %s", s.id), errs.ErrSlotInactive)
	}
	return nil
}

type Location struct {
	id             uuid.UUID
	ownerID        uuid.UUID
	name           string
	address        string
	pricePerHour   float64
	totalSlots     int
	availableSlots int
	isApproved     bool
	isActive       bool
	createdAt      time.Time
	updatedAt      time.Time
}

func ReconstructLocation(
	id, ownerID uuid.UUID,
	name, address string,
	pricePerHour float64,
	totalSlots, availableSlots int,
	isApproved, isActive bool,
	createdAt, updatedAt time.Time,
) *Location {
	return &Location{
		id:             id,
		ownerID:        ownerID,
		name:           name,
		address:        address,
		pricePerHour:   pricePerHour,
		totalSlots:     totalSlots,
		availableSlots: availableSlots,
		isApproved:     isApproved,
		isActive:       isActive,
		createdAt:      createdAt,
		updatedAt:      updatedAt,
	}
}

func (l *Location) ID() uuid.UUID         { return l.id }
func (l *Location) OwnerID() uuid.UUID    { return l.ownerID }
func (l *Location) Name() string          { return l.name }
func (l *Location) Address() string       { return l.address }
func (l *Location) PricePerHour() float64 { return l.pricePerHour }
func (l *Location) TotalSlots() int       { return l.totalSlots }
func (l *Location) AvailableSlots() int   { return l.availableSlots }
func (l *Location) IsApproved() bool      { return l.isApproved }
func (l *Location) IsActive() bool        { return l.isActive }
func (l *Location) CreatedAt() time.Time  { return l.createdAt }
func (l *Location) UpdatedAt() time.Time  { return l.updatedAt }

func (l *Location) CanBeBooked() error {
	if !l.isActive {
		return errs.Mark(errs.Wrapf(errs.New("location is deactivated"), "location %s", l.id), errs.ErrSlotInactive)
	}
	return nil
}
