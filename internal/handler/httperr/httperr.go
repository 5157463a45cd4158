package httperr

import (
	"net/http"

	"parking-booking/internal/pkg/errs"

	"github.com/gin-gonic/gin"
)

type Response struct {
	Status int `json:"-"`
	Error  struct {
		Message string `json:"message"`
	} `json:"error"`
	Detail any `json:"detail,omitempty"`
}

// preserves original error for future monitoring
func AbortWithError(c *gin.Context, status int, err error, msg string, detail any) {
	if err == nil {
		panic("AbortWithError: err cannot be nil")
	}

	resp := Response{Status: status}
	resp.Error.Message = msg
	resp.Detail = detail

	_ = c.Error(gin.Error{
		Err:  err,
		Type: gin.ErrorTypePublic,
		Meta: resp,
	})
	c.AbortWithStatusJSON(status, resp)
}

type mapping struct {
	marker error
	status int
	msg    string
}

// first match wins
var taxonomy = []mapping{
	{errs.ErrInvalidInterval, http.StatusBadRequest, "Invalid booking interval"},
	{errs.ErrInvalidRate, http.StatusBadRequest, "Invalid hourly rate"},
	{errs.ErrInvalidPaymentMethod, http.StatusBadRequest, "Invalid payment method"},
	{errs.ErrInvalidArgument, http.StatusBadRequest, "Invalid request"},
	{errs.ErrNotFound, http.StatusNotFound, "Not found"},
	{errs.ErrForbidden, http.StatusForbidden, "Forbidden"},
	{errs.ErrSlotUnavailable, http.StatusConflict, "Slot is not available for the requested interval"},
	{errs.ErrSlotInactive, http.StatusUnprocessableEntity, "Slot is not active"},
	{errs.ErrInvalidTransition, http.StatusConflict, "Booking cannot change to the requested status"},
	{errs.ErrConflict, http.StatusConflict, "Request conflicts with a previous request"},
	{errs.ErrGatewayUnavailable, http.StatusServiceUnavailable, "Payment gateway unavailable"},
	{errs.ErrStoreUnavailable, http.StatusServiceUnavailable, "Service temporarily unavailable"},
}

// StatusFor maps an engine error to its HTTP status and public message.
func StatusFor(err error) (int, string) {
	for _, m := range taxonomy {
		if errs.Is(err, m.marker) {
			return m.status, m.msg
		}
	}
	return http.StatusInternalServerError, "Internal server error"
}

func AbortWithDomainError(c *gin.Context, err error) {
	status, msg := StatusFor(err)
	AbortWithError(c, status, err, msg, nil)
}
