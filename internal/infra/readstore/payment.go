package readstore

import (
	"context"
	"encoding/json"

	"parking-booking/internal/infra"
	sqlc "parking-booking/internal/infra/sqlc/generated"
	"parking-booking/internal/pkg/pgconv"
	"parking-booking/internal/usecase/queries"

	"github.com/google/uuid"
)

type PaymentViewQueries interface {
	GetLatestPaymentByBooking(ctx context.Context, db sqlc.DBTX, bookingID uuid.UUID) (sqlc.Payments, error)
	ListPaymentsByUser(ctx context.Context, db sqlc.DBTX, arg sqlc.ListPaymentsByUserParams) ([]sqlc.Payments, error)
	ListPayments(ctx context.Context, db sqlc.DBTX, rowLimit int32) ([]sqlc.Payments, error)
	GetPaymentStats(ctx context.Context, db sqlc.DBTX) (sqlc.GetPaymentStatsRow, error)
}

type PaymentReadStore struct {
	queries PaymentViewQueries
	db      sqlc.DBTX
}

func NewPaymentReadStore(queries PaymentViewQueries, db sqlc.DBTX) *PaymentReadStore {
	return &PaymentReadStore{
		queries: queries,
		db:      db,
	}
}

func (r *PaymentReadStore) FindLatestByBooking(ctx context.Context, bookingID uuid.UUID) (*queries.PaymentView, error) {
	row, err := r.queries.GetLatestPaymentByBooking(ctx, r.db, bookingID)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("payment not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find payment by booking", err)
	}
	return toPaymentView(row), nil
}

func (r *PaymentReadStore) FindByUser(ctx context.Context, userID uuid.UUID, limit int32) ([]*queries.PaymentView, error) {
	rows, err := r.queries.ListPaymentsByUser(ctx, r.db, sqlc.ListPaymentsByUserParams{
		UserID:   userID,
		RowLimit: limit,
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list payments by user", err)
	}
	return toPaymentViews(rows), nil
}

func (r *PaymentReadStore) FindAll(ctx context.Context, limit int32) ([]*queries.PaymentView, error) {
	rows, err := r.queries.ListPayments(ctx, r.db, limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list payments", err)
	}
	return toPaymentViews(rows), nil
}

func (r *PaymentReadStore) Stats(ctx context.Context) (*queries.PaymentStats, error) {
	row, err := r.queries.GetPaymentStats(ctx, r.db)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to aggregate payment stats", err)
	}
	return &queries.PaymentStats{
		TotalRevenue:       row.TotalRevenue,
		SuccessfulPayments: row.SuccessfulPayments,
		FailedPayments:     row.FailedPayments,
	}, nil
}

func toPaymentViews(rows []sqlc.Payments) []*queries.PaymentView {
	result := make([]*queries.PaymentView, len(rows))
	for i, row := range rows {
		result[i] = toPaymentView(row)
	}
	return result
}

// Metadata is advisory; an unreadable document is served as empty.
func toPaymentView(row sqlc.Payments) *queries.PaymentView {
	metadata := map[string]any{}
	if len(row.Metadata) > 0 {
		_ = json.Unmarshal(row.Metadata, &metadata)
	}

	return &queries.PaymentView{
		ID:            row.ID,
		BookingID:     row.BookingID,
		UserID:        row.UserID,
		Amount:        row.Amount,
		Currency:      row.Currency,
		Method:        row.PaymentMethod,
		Status:        row.Status,
		Gateway:       row.Gateway,
		TransactionID: pgconv.StringPtrFromPgtype(row.TransactionID),
		FailureReason: pgconv.StringPtrFromPgtype(row.FailureReason),
		Metadata:      metadata,
		CreatedAt:     pgconv.TimeFromPgtype(row.CreatedAt),
		UpdatedAt:     pgconv.TimeFromPgtype(row.UpdatedAt),
	}
}
