package errs

// Booking engine error taxonomy. Callers match with errs.Is; lower layers attach
// these with Mark so the original cause and stack survive.
var (
	// Validation errors: rejected before any store interaction
	ErrInvalidInterval      = New("invalid interval")
	ErrInvalidRate          = New("invalid rate")
	ErrInvalidPaymentMethod = New("invalid payment method")
	ErrInvalidArgument      = New("invalid argument")

	// Business outcomes
	ErrSlotUnavailable   = New("slot unavailable")
	ErrSlotInactive      = New("slot inactive")
	ErrInvalidTransition = New("invalid booking transition")
	ErrNotFound          = New("not found")
	ErrForbidden         = New("forbidden")
	ErrConflict          = New("request conflict")

	// Infrastructure failures, retryable by the caller
	ErrStoreUnavailable   = New("store unavailable")
	ErrGatewayUnavailable = New("payment gateway unavailable")
)
