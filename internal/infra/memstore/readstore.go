package memstore

import (
	"context"
	"maps"
	"slices"
	"strings"
	"time"

	"parking-booking/internal/domain/booking"
	"parking-booking/internal/domain/payment"
	"parking-booking/internal/infra"
	"parking-booking/internal/usecase/queries"

	"github.com/google/uuid"
)

type BookingReadStore struct {
	store *Store
}

func NewBookingReadStore(store *Store) *BookingReadStore {
	return &BookingReadStore{store: store}
}

func (r *BookingReadStore) view(st *state, rec bookingRecord) *queries.BookingView {
	v := &queries.BookingView{
		ID:            rec.id,
		UserID:        rec.userID,
		LocationID:    rec.locationID,
		SlotID:        rec.slotID,
		StartTime:     rec.interval.Start(),
		EndTime:       rec.interval.End(),
		Status:        rec.status.String(),
		TotalDuration: rec.quote.Hours,
		TotalCost:     rec.quote.Cost,
		HourlyRate:    rec.quote.Rate,
		VehicleNumber: rec.vehicle.String(),
		CancelledBy:   rec.cancelledBy,
		CreatedAt:     rec.createdAt,
		UpdatedAt:     rec.updatedAt,
	}
	if !rec.notes.IsEmpty() {
		notes := rec.notes.String()
		v.Notes = &notes
	}
	if rec.cancelReason != "" {
		reason := string(rec.cancelReason)
		v.CancelReason = &reason
	}
	if s, ok := st.slots[rec.slotID]; ok {
		v.SlotNumber = s.Number
	}
	if l, ok := st.locations[rec.locationID]; ok {
		v.LocationName = l.Name
		v.LocationOwnerID = l.OwnerID
	}
	return v
}

func (r *BookingReadStore) list(match func(bookingRecord) bool, less func(a, b bookingRecord) int, limit int32) ([]*queries.BookingView, error) {
	if r.store.readsFailing() {
		return nil, infra.WrapRepoErr("failed to list bookings", errUnavailable)
	}
	r.store.reads.Add(1)
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	records := make([]bookingRecord, 0)
	for _, rec := range r.store.state.bookings {
		if match(rec) {
			records = append(records, rec)
		}
	}
	slices.SortFunc(records, less)
	if limit > 0 && len(records) > int(limit) {
		records = records[:limit]
	}

	result := make([]*queries.BookingView, len(records))
	for i, rec := range records {
		result[i] = r.view(r.store.state, rec)
	}
	return result, nil
}

func newestFirst(a, b bookingRecord) int {
	if c := b.createdAt.Compare(a.createdAt); c != 0 {
		return c
	}
	return compareUUID(b.id, a.id)
}

func latestStartFirst(a, b bookingRecord) int {
	if c := b.interval.Start().Compare(a.interval.Start()); c != 0 {
		return c
	}
	return compareUUID(b.id, a.id)
}

func (r *BookingReadStore) FindByID(_ context.Context, id uuid.UUID) (*queries.BookingView, error) {
	views, err := r.list(func(rec bookingRecord) bool { return rec.id == id }, newestFirst, 1)
	if err != nil {
		return nil, err
	}
	if len(views) == 0 {
		return nil, notFound("booking")
	}
	return views[0], nil
}

func (r *BookingReadStore) FindByUserFirstPage(_ context.Context, userID uuid.UUID, limit int32) ([]*queries.BookingView, error) {
	return r.list(func(rec bookingRecord) bool { return rec.userID == userID }, newestFirst, limit)
}

func (r *BookingReadStore) FindByUserKeyset(_ context.Context, userID uuid.UUID, lastCreatedAt time.Time, lastID uuid.UUID, limit int32) ([]*queries.BookingView, error) {
	return r.list(func(rec bookingRecord) bool {
		if rec.userID != userID {
			return false
		}
		created := rec.createdAt.Truncate(time.Microsecond)
		if c := created.Compare(lastCreatedAt); c != 0 {
			return c < 0
		}
		return compareUUID(rec.id, lastID) < 0
	}, newestFirst, limit)
}

func (r *BookingReadStore) FindBySlot(_ context.Context, slotID uuid.UUID, limit int32) ([]*queries.BookingView, error) {
	return r.list(func(rec bookingRecord) bool { return rec.slotID == slotID }, latestStartFirst, limit)
}

func (r *BookingReadStore) FindByLocation(_ context.Context, locationID uuid.UUID, limit int32) ([]*queries.BookingView, error) {
	return r.list(func(rec bookingRecord) bool { return rec.locationID == locationID }, latestStartFirst, limit)
}

func (r *BookingReadStore) FindAll(_ context.Context, limit int32) ([]*queries.BookingView, error) {
	return r.list(func(bookingRecord) bool { return true }, newestFirst, limit)
}

func (r *BookingReadStore) Stats(_ context.Context, now time.Time) (*queries.BookingStats, error) {
	if r.store.readsFailing() {
		return nil, infra.WrapRepoErr("failed to aggregate booking stats", errUnavailable)
	}
	r.store.reads.Add(1)
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	stats := &queries.BookingStats{}
	for _, rec := range r.store.state.bookings {
		stats.Total++
		switch rec.status {
		case booking.StatusActive:
			if rec.interval.HasEndedAt(now) {
				stats.Completed++
			} else {
				stats.Active++
			}
		case booking.StatusCompleted:
			stats.Completed++
		case booking.StatusCancelled:
			stats.Cancelled++
		}
	}
	return stats, nil
}

type PaymentReadStore struct {
	store *Store
}

func NewPaymentReadStore(store *Store) *PaymentReadStore {
	return &PaymentReadStore{store: store}
}

func (r *PaymentReadStore) list(match func(paymentRecord) bool, limit int32) ([]*queries.PaymentView, error) {
	if r.store.readsFailing() {
		return nil, infra.WrapRepoErr("failed to list payments", errUnavailable)
	}
	r.store.reads.Add(1)
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	records := make([]paymentRecord, 0)
	for _, rec := range r.store.state.payments {
		if match(rec) {
			records = append(records, rec)
		}
	}
	slices.SortFunc(records, func(a, b paymentRecord) int {
		return int(b.seq - a.seq)
	})
	if limit > 0 && len(records) > int(limit) {
		records = records[:limit]
	}

	result := make([]*queries.PaymentView, len(records))
	for i, rec := range records {
		result[i] = paymentView(rec)
	}
	return result, nil
}

func paymentView(rec paymentRecord) *queries.PaymentView {
	v := &queries.PaymentView{
		ID:        rec.id,
		BookingID: rec.bookingID,
		UserID:    rec.userID,
		Amount:    rec.amount,
		Currency:  rec.currency,
		Method:    rec.method.String(),
		Status:    rec.status.String(),
		Gateway:   rec.gateway,
		Metadata:  maps.Clone(rec.metadata),
		CreatedAt: rec.createdAt,
		UpdatedAt: rec.updatedAt,
	}
	if rec.transactionID != "" {
		txID := rec.transactionID
		v.TransactionID = &txID
	}
	if rec.failureReason != "" {
		reason := rec.failureReason
		v.FailureReason = &reason
	}
	return v
}

func (r *PaymentReadStore) FindLatestByBooking(_ context.Context, bookingID uuid.UUID) (*queries.PaymentView, error) {
	views, err := r.list(func(rec paymentRecord) bool { return rec.bookingID == bookingID }, 1)
	if err != nil {
		return nil, err
	}
	if len(views) == 0 {
		return nil, notFound("payment")
	}
	return views[0], nil
}

func (r *PaymentReadStore) FindByUser(_ context.Context, userID uuid.UUID, limit int32) ([]*queries.PaymentView, error) {
	return r.list(func(rec paymentRecord) bool { return rec.userID == userID }, limit)
}

func (r *PaymentReadStore) FindAll(_ context.Context, limit int32) ([]*queries.PaymentView, error) {
	return r.list(func(paymentRecord) bool { return true }, limit)
}

func (r *PaymentReadStore) Stats(_ context.Context) (*queries.PaymentStats, error) {
	if r.store.readsFailing() {
		return nil, infra.WrapRepoErr("failed to aggregate payment stats", errUnavailable)
	}
	r.store.reads.Add(1)
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	stats := &queries.PaymentStats{}
	for _, rec := range r.store.state.payments {
		switch rec.status {
		case payment.StatusSuccess:
			stats.TotalRevenue += rec.amount
			stats.SuccessfulPayments++
		case payment.StatusFailed:
			stats.FailedPayments++
		}
	}
	return stats, nil
}

type SlotReadStore struct {
	store *Store
}

func NewSlotReadStore(store *Store) *SlotReadStore {
	return &SlotReadStore{store: store}
}

func (r *SlotReadStore) guard(what string) error {
	if r.store.readsFailing() {
		return infra.WrapRepoErr("failed to read "+what, errUnavailable)
	}
	r.store.reads.Add(1)
	return nil
}

func (r *SlotReadStore) FindSlotByID(_ context.Context, id uuid.UUID) (*queries.SlotView, error) {
	if err := r.guard("slot"); err != nil {
		return nil, err
	}
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	rec, ok := r.store.state.slots[id]
	if !ok {
		return nil, notFound("slot")
	}
	loc := r.store.state.locations[rec.LocationID]
	return &queries.SlotView{
		ID:               rec.ID,
		LocationID:       rec.LocationID,
		LocationOwnerID:  loc.OwnerID,
		SlotNumber:       rec.Number,
		SlotType:         rec.Type.String(),
		IsAvailable:      rec.IsAvailable,
		IsActive:         rec.IsActive,
		LocationIsActive: loc.IsActive,
	}, nil
}

func (r *SlotReadStore) FindLocationByID(_ context.Context, id uuid.UUID) (*queries.LocationView, error) {
	if err := r.guard("location"); err != nil {
		return nil, err
	}
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	loc, ok := r.store.state.locations[id]
	if !ok {
		return nil, notFound("location")
	}
	return &queries.LocationView{
		ID:             loc.ID,
		OwnerID:        loc.OwnerID,
		Name:           loc.Name,
		Address:        loc.Address,
		City:           loc.City,
		PricePerHour:   loc.PricePerHour,
		TotalSlots:     int32(loc.TotalSlots),
		AvailableSlots: int32(loc.AvailableSlots),
		IsApproved:     loc.IsApproved,
		IsActive:       loc.IsActive,
	}, nil
}

func (r *SlotReadStore) FindActiveSlotsByLocation(ctx context.Context, locationID uuid.UUID) ([]*queries.SlotView, error) {
	if err := r.guard("slots"); err != nil {
		return nil, err
	}
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	reads := &memReads{store: r.store, st: r.store.state}
	slots, err := reads.ActiveSlotsByLocation(ctx, locationID)
	if err != nil {
		return nil, err
	}

	result := make([]*queries.SlotView, len(slots))
	for i, s := range slots {
		result[i] = &queries.SlotView{
			ID:          s.ID(),
			LocationID:  s.LocationID(),
			SlotNumber:  s.Number(),
			SlotType:    s.Type().String(),
			IsAvailable: s.IsAvailable(),
			IsActive:    s.IsActive(),
		}
	}
	return result, nil
}

func (r *SlotReadStore) FindActiveIntervals(_ context.Context, slotID uuid.UUID, windowStart, windowEnd time.Time) ([]queries.IntervalView, error) {
	if err := r.guard("active bookings"); err != nil {
		return nil, err
	}
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	result := make([]queries.IntervalView, 0)
	for _, rec := range r.store.state.bookings {
		if rec.slotID != slotID || rec.status != booking.StatusActive {
			continue
		}
		if rec.interval.Start().Before(windowEnd) && rec.interval.End().After(windowStart) {
			result = append(result, queries.IntervalView{
				BookingID: rec.id,
				StartTime: rec.interval.Start(),
				EndTime:   rec.interval.End(),
			})
		}
	}
	slices.SortFunc(result, func(a, b queries.IntervalView) int {
		return a.StartTime.Compare(b.StartTime)
	})
	return result, nil
}

func compareUUID(a, b uuid.UUID) int {
	return strings.Compare(a.String(), b.String())
}
