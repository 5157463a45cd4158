package converter

import (
	"encoding/json"

	"parking-booking/internal/domain/payment"
	sqlc "parking-booking/internal/infra/sqlc/generated"
	"parking-booking/internal/pkg/errs"
	"parking-booking/internal/pkg/pgconv"
)

func PaymentToCreateParams(p *payment.Payment) (sqlc.CreatePaymentParams, error) {
	metadata, err := json.Marshal(p.Metadata())
	if err != nil {
		return sqlc.CreatePaymentParams{}, errs.Wrap(err, "failed to encode payment metadata")
	}

	return sqlc.CreatePaymentParams{
		ID:            p.ID(),
		BookingID:     p.BookingID(),
		UserID:        p.UserID(),
		Amount:        p.Amount(),
		Currency:      p.Currency(),
		PaymentMethod: p.Method().String(),
		Status:        p.Status().String(),
		Gateway:       p.Gateway(),
		TransactionID: pgconv.StringToPgtype(p.TransactionID()),
		FailureReason: pgconv.StringToPgtype(p.FailureReason()),
		Metadata:      metadata,
		CreatedAt:     pgconv.TimeToPgtype(p.CreatedAt()),
		UpdatedAt:     pgconv.TimeToPgtype(p.UpdatedAt()),
	}, nil
}

func PaymentToSettleParams(p *payment.Payment) (sqlc.SettlePaymentParams, error) {
	metadata, err := json.Marshal(p.Metadata())
	if err != nil {
		return sqlc.SettlePaymentParams{}, errs.Wrap(err, "failed to encode payment metadata")
	}

	return sqlc.SettlePaymentParams{
		Status:        p.Status().String(),
		Gateway:       p.Gateway(),
		TransactionID: pgconv.StringToPgtype(p.TransactionID()),
		FailureReason: pgconv.StringToPgtype(p.FailureReason()),
		Metadata:      metadata,
		UpdatedAt:     pgconv.TimeToPgtype(p.UpdatedAt()),
		ID:            p.ID(),
	}, nil
}

func PaymentFromRow(row sqlc.Payments) (*payment.Payment, error) {
	metadata := map[string]any{}
	if len(row.Metadata) > 0 {
		if err := json.Unmarshal(row.Metadata, &metadata); err != nil {
			return nil, errs.Wrapf(err, "payment %s has invalid metadata", row.ID)
		}
	}

	return payment.ReconstructPayment(
		row.ID, row.BookingID, row.UserID,
		row.Amount,
		row.Currency,
		payment.Method(row.PaymentMethod),
		payment.Status(row.Status),
		row.Gateway,
		pgconv.StringFromPgtype(row.TransactionID),
		pgconv.StringFromPgtype(row.FailureReason),
		metadata,
		pgconv.TimeFromPgtype(row.CreatedAt),
		pgconv.TimeFromPgtype(row.UpdatedAt),
	), nil
}
