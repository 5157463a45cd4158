package booking

import (
	"parking-booking/internal/pkg/errs"
)

var (
	ErrInvalidStatus   = errs.Mark(errs.New("invalid booking status"), errs.ErrInvalidArgument)
	ErrVehicleRequired = errs.Mark(errs.New("vehicle number is required"), errs.ErrInvalidArgument)
	ErrVehicleTooLong  = errs.Mark(errs.New("vehicle number is too long"), errs.ErrInvalidArgument)
	ErrNotesTooLong    = errs.Mark(errs.New("notes are too long"), errs.ErrInvalidArgument)

	ErrNotActive     = errs.Mark(errs.New("booking is not active"), errs.ErrInvalidTransition)
	ErrNotYetEnded   = errs.Mark(errs.New("booking interval has not elapsed"), errs.ErrInvalidTransition)
	ErrNotCancelable = errs.Mark(errs.New("actor may not cancel this booking"), errs.ErrForbidden)
)
