package shared

import (
	"parking-booking/internal/infra"
	"parking-booking/internal/pkg/errs"
)

var taxonomy = []error{
	errs.ErrInvalidInterval,
	errs.ErrInvalidRate,
	errs.ErrInvalidPaymentMethod,
	errs.ErrInvalidArgument,
	errs.ErrSlotUnavailable,
	errs.ErrSlotInactive,
	errs.ErrInvalidTransition,
	errs.ErrNotFound,
	errs.ErrForbidden,
	errs.ErrConflict,
	errs.ErrStoreUnavailable,
	errs.ErrGatewayUnavailable,
}

// StoreError maps a repository failure onto the engine's error taxonomy.
// Errors that already carry a taxonomy marker keep it.
func StoreError(err error, msg string) error {
	if err == nil {
		return nil
	}
	wrapped := errs.Wrap(err, msg)

	switch {
	case errs.IsAny(err, taxonomy...):
		return wrapped
	case infra.IsKind(err, infra.KindNotFound):
		return errs.Mark(wrapped, errs.ErrNotFound)
	case infra.IsKind(err, infra.KindConflict):
		return errs.Mark(wrapped, errs.ErrSlotUnavailable)
	default:
		return errs.Mark(wrapped, errs.ErrStoreUnavailable)
	}
}
