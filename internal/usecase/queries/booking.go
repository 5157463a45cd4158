package queries

import (
	"context"
	"time"

	"parking-booking/internal/domain/booking"
	"parking-booking/internal/domain/user"
	"parking-booking/internal/pkg/clock"
	"parking-booking/internal/pkg/errs"
	"parking-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

type BookingReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*BookingView, error)
	FindByUserFirstPage(ctx context.Context, userID uuid.UUID, limit int32) ([]*BookingView, error)
	FindByUserKeyset(ctx context.Context, userID uuid.UUID, lastCreatedAt time.Time, lastID uuid.UUID, limit int32) ([]*BookingView, error)
	FindBySlot(ctx context.Context, slotID uuid.UUID, limit int32) ([]*BookingView, error)
	FindByLocation(ctx context.Context, locationID uuid.UUID, limit int32) ([]*BookingView, error)
	FindAll(ctx context.Context, limit int32) ([]*BookingView, error)
	Stats(ctx context.Context, now time.Time) (*BookingStats, error)
}

type BookingQueries interface {
	GetByID(ctx context.Context, actor user.Actor, id uuid.UUID) (*BookingView, error)
	// ListByUser pages newest first. A nil cursor in the result means there are no more pages.
	ListByUser(ctx context.Context, actor user.Actor, userID uuid.UUID, after *Cursor, limit int) ([]*BookingView, *Cursor, error)
	ListBySlot(ctx context.Context, actor user.Actor, slotID uuid.UUID, limit int) ([]*BookingView, error)
	ListByLocation(ctx context.Context, actor user.Actor, locationID uuid.UUID, limit int) ([]*BookingView, error)
	ListAll(ctx context.Context, actor user.Actor, limit int) ([]*BookingView, error)
}

type bookingQueriesImpl struct {
	bookings BookingReadStore
	slots    SlotReadStore
	clock    clock.Clock
}

func NewBookingQueries(bookings BookingReadStore, slots SlotReadStore, clk clock.Clock) BookingQueries {
	return &bookingQueriesImpl{
		bookings: bookings,
		slots:    slots,
		clock:    clk,
	}
}

func (q *bookingQueriesImpl) GetByID(ctx context.Context, actor user.Actor, id uuid.UUID) (*BookingView, error) {
	view, err := q.bookings.FindByID(ctx, id)
	if err != nil {
		return nil, shared.StoreError(err, "find booking")
	}
	if !canViewBooking(actor, view) {
		return nil, errs.Mark(errs.New("booking belongs to another user"), errs.ErrForbidden)
	}
	return q.withEffectiveStatus(view), nil
}

func (q *bookingQueriesImpl) ListByUser(ctx context.Context, actor user.Actor, userID uuid.UUID, after *Cursor, limit int) ([]*BookingView, *Cursor, error) {
	if actor.ID != userID && !actor.IsPrivileged() {
		return nil, nil, errs.Mark(errs.New("cannot list another user's bookings"), errs.ErrForbidden)
	}

	limit = ValidateLimit(limit)
	// One extra row tells whether another page exists.
	fetch := int32(limit + 1)

	var (
		views []*BookingView
		err   error
	)
	if after == nil || after.After == "" {
		views, err = q.bookings.FindByUserFirstPage(ctx, userID, fetch)
	} else {
		lastCreatedAt, lastID, decodeErr := DecodeAfterCursor(after.After)
		if decodeErr != nil {
			return nil, nil, errs.Wrapf(ErrInvalidCursor, "%v", decodeErr)
		}
		views, err = q.bookings.FindByUserKeyset(ctx, userID, lastCreatedAt, lastID, fetch)
	}
	if err != nil {
		return nil, nil, shared.StoreError(err, "list bookings by user")
	}

	var next *Cursor
	if len(views) > limit {
		views = views[:limit]
		last := views[len(views)-1]
		next = &Cursor{After: EncodeAfterCursor(last.CreatedAt, last.ID)}
	}
	return q.withEffectiveStatuses(views), next, nil
}

func (q *bookingQueriesImpl) ListBySlot(ctx context.Context, actor user.Actor, slotID uuid.UUID, limit int) ([]*BookingView, error) {
	s, err := q.slots.FindSlotByID(ctx, slotID)
	if err != nil {
		return nil, shared.StoreError(err, "find slot")
	}
	if !canManageLocation(actor, s.LocationOwnerID) {
		return nil, errs.Mark(errs.New("slot belongs to another owner"), errs.ErrForbidden)
	}

	views, err := q.bookings.FindBySlot(ctx, slotID, int32(ValidateLimit(limit)))
	if err != nil {
		return nil, shared.StoreError(err, "list bookings by slot")
	}
	return q.withEffectiveStatuses(views), nil
}

func (q *bookingQueriesImpl) ListByLocation(ctx context.Context, actor user.Actor, locationID uuid.UUID, limit int) ([]*BookingView, error) {
	location, err := q.slots.FindLocationByID(ctx, locationID)
	if err != nil {
		return nil, shared.StoreError(err, "find location")
	}
	if !canManageLocation(actor, location.OwnerID) {
		return nil, errs.Mark(errs.New("location belongs to another owner"), errs.ErrForbidden)
	}

	views, err := q.bookings.FindByLocation(ctx, locationID, int32(ValidateLimit(limit)))
	if err != nil {
		return nil, shared.StoreError(err, "list bookings by location")
	}
	return q.withEffectiveStatuses(views), nil
}

func (q *bookingQueriesImpl) ListAll(ctx context.Context, actor user.Actor, limit int) ([]*BookingView, error) {
	if !actor.IsAdmin() {
		return nil, errs.Mark(errs.New("admin role required"), errs.ErrForbidden)
	}

	views, err := q.bookings.FindAll(ctx, int32(ValidateLimit(limit)))
	if err != nil {
		return nil, shared.StoreError(err, "list bookings")
	}
	return q.withEffectiveStatuses(views), nil
}

// An Active booking whose end has passed reads as completed before the sweep persists it.
func (q *bookingQueriesImpl) withEffectiveStatus(view *BookingView) *BookingView {
	if view.Status == booking.StatusActive.String() && !q.clock.Now().Before(view.EndTime) {
		view.Status = booking.StatusCompleted.String()
	}
	return view
}

func (q *bookingQueriesImpl) withEffectiveStatuses(views []*BookingView) []*BookingView {
	for _, v := range views {
		q.withEffectiveStatus(v)
	}
	return views
}

func canViewBooking(actor user.Actor, view *BookingView) bool {
	if actor.IsPrivileged() || view.UserID == actor.ID {
		return true
	}
	return actor.IsOwner() && view.LocationOwnerID == actor.ID
}

func canManageLocation(actor user.Actor, ownerID uuid.UUID) bool {
	return actor.IsPrivileged() || (actor.IsOwner() && ownerID == actor.ID)
}
