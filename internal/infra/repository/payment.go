package repository

import (
	"context"

	"parking-booking/internal/domain/payment"
	"parking-booking/internal/infra"
	"parking-booking/internal/infra/repository/converter"
	sqlc "parking-booking/internal/infra/sqlc/generated"
)

type PaymentWriteQueries interface {
	CreatePayment(ctx context.Context, db sqlc.DBTX, arg sqlc.CreatePaymentParams) error
	SettlePayment(ctx context.Context, db sqlc.DBTX, arg sqlc.SettlePaymentParams) (int64, error)
}

type PaymentRepository struct {
	queries PaymentWriteQueries
	db      sqlc.DBTX
}

func NewPaymentRepository(queries PaymentWriteQueries, db sqlc.DBTX) *PaymentRepository {
	return &PaymentRepository{
		queries: queries,
		db:      db,
	}
}

// Create fails with DUPLICATE_KEY when the booking already has a pending or
// successful payment (uq_payments_booking_open).
func (r *PaymentRepository) Create(ctx context.Context, p *payment.Payment) error {
	params, err := converter.PaymentToCreateParams(p)
	if err != nil {
		return infra.WrapRepoErr("failed to convert payment", err)
	}

	if err := r.queries.CreatePayment(ctx, r.db, params); err != nil {
		return infra.WrapRepoErr("failed to create payment", err)
	}

	return nil
}

func (r *PaymentRepository) Settle(ctx context.Context, p *payment.Payment) error {
	params, err := converter.PaymentToSettleParams(p)
	if err != nil {
		return infra.WrapRepoErr("failed to convert payment", err)
	}

	affected, err := r.queries.SettlePayment(ctx, r.db, params)
	if err != nil {
		return infra.WrapRepoErr("failed to settle payment", err)
	}
	if affected == 0 {
		return payment.ErrAlreadySettled
	}

	return nil
}
