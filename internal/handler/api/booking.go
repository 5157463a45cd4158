package api

import (
	"net/http"

	reqdto "parking-booking/internal/handler/dto/request"
	resdto "parking-booking/internal/handler/dto/response"
	"parking-booking/internal/handler/httperr"
	"parking-booking/internal/handler/middleware"
	"parking-booking/internal/pkg/errs"
	"parking-booking/internal/usecase/commands"
	"parking-booking/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

var errUnauthenticated = errs.New("no authenticated actor")

type BookingHandler struct {
	checkout commands.CheckoutCommands
	bookings commands.BookingCommands
	payments commands.PaymentCommands
	q        queries.BookingQueries
	pq       queries.PaymentQueries
}

func NewBookingHandler(
	checkout commands.CheckoutCommands,
	bookings commands.BookingCommands,
	payments commands.PaymentCommands,
	q queries.BookingQueries,
	pq queries.PaymentQueries,
) *BookingHandler {
	return &BookingHandler{
		checkout: checkout,
		bookings: bookings,
		payments: payments,
		q:        q,
		pq:       pq,
	}
}

// @Summary Book a slot
// @Description Create a booking and charge it in one call. A repeated Idempotency-Key returns the stored outcome.
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param Idempotency-Key header string false "Idempotency key (UUID)"
// @Param request body reqdto.CreateBookingRequest true "Booking request"
// @Success 201 {object} resdto.CheckoutResponse
// @Success 200 {object} resdto.CheckoutResponse "Replayed"
// @Failure 400 {object} httperr.Response
// @Failure 402 {object} resdto.CheckoutResponse "Payment declined, booking cancelled"
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /api/bookings [post]
func (h *BookingHandler) Create(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errUnauthenticated, "Unauthorized", nil)
		return
	}

	idempotencyKey, err := idempotencyKeyFrom(c)
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid Idempotency-Key header", nil)
		return
	}

	var req reqdto.CreateBookingRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "Invalid request", nil)
		return
	}

	result, err := h.checkout.Book(c.Request.Context(), actor, req.ToInput(idempotencyKey))
	if err != nil {
		httperr.AbortWithDomainError(c, err)
		return
	}

	body := resdto.FromCheckout(result)
	switch {
	case result.Payment != nil && result.Payment.IsFailed():
		c.JSON(http.StatusPaymentRequired, body)
	case result.IsReplayed:
		c.JSON(http.StatusOK, body)
	default:
		c.Header("Location", "/api/bookings/"+result.Booking.ID().String())
		c.JSON(http.StatusCreated, body)
	}
}

// @Summary Get booking
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} resdto.BookingResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /api/bookings/{id} [get]
func (h *BookingHandler) Get(c *gin.Context) {
	actor, id, ok := actorAndID(c)
	if !ok {
		return
	}
	view, err := h.q.GetByID(c.Request.Context(), actor, id)
	if err != nil {
		httperr.AbortWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromBookingView(view))
}

// @Summary List my bookings
// @Description Newest first, cursor paginated
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param cursor query string false "Cursor from a previous page"
// @Param limit query int false "Page size (1-200)"
// @Success 200 {object} resdto.BookingListResponse
// @Failure 400 {object} httperr.Response
// @Router /api/bookings [get]
func (h *BookingHandler) List(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errUnauthenticated, "Unauthorized", nil)
		return
	}
	var q reqdto.ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid query", nil)
		return
	}

	var after *queries.Cursor
	if q.Cursor != "" {
		after = &queries.Cursor{After: q.Cursor}
	}
	views, next, err := h.q.ListByUser(c.Request.Context(), actor, actor.ID, after, q.Limit)
	if err != nil {
		httperr.AbortWithDomainError(c, err)
		return
	}

	res := resdto.BookingListResponse{Items: resdto.FromBookingViews(views)}
	if next != nil {
		res.NextCursor = &next.After
	}
	c.JSON(http.StatusOK, res)
}

// @Summary Cancel booking
// @Description The booking's user, the location owner or an admin may cancel an active booking
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} resdto.BookingResponse
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /api/bookings/{id}/cancel [post]
func (h *BookingHandler) Cancel(c *gin.Context) {
	actor, id, ok := actorAndID(c)
	if !ok {
		return
	}
	b, err := h.bookings.Cancel(c.Request.Context(), actor, id)
	if err != nil {
		httperr.AbortWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromBooking(b))
}

// @Summary Charge booking
// @Description Retry the payment of an active booking that has no successful payment
// @Tags payments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Param request body reqdto.ChargeRequest true "Payment method"
// @Success 200 {object} resdto.ChargeResponse
// @Failure 402 {object} resdto.ChargeResponse "Payment declined, booking cancelled"
// @Failure 409 {object} httperr.Response
// @Router /api/bookings/{id}/payments [post]
func (h *BookingHandler) Charge(c *gin.Context) {
	actor, id, ok := actorAndID(c)
	if !ok {
		return
	}
	var req reqdto.ChargeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}

	result, err := h.payments.Charge(c.Request.Context(), actor, id, req.PaymentMethod)
	if err != nil {
		httperr.AbortWithDomainError(c, err)
		return
	}
	if !result.Succeeded() {
		c.JSON(http.StatusPaymentRequired, resdto.FromCharge(result))
		return
	}
	c.JSON(http.StatusOK, resdto.FromCharge(result))
}

// @Summary Get booking payment
// @Description The latest payment recorded for the booking
// @Tags payments
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} resdto.PaymentResponse
// @Failure 404 {object} httperr.Response
// @Router /api/bookings/{id}/payment [get]
func (h *BookingHandler) GetPayment(c *gin.Context) {
	actor, id, ok := actorAndID(c)
	if !ok {
		return
	}
	view, err := h.pq.GetByBooking(c.Request.Context(), actor, id)
	if err != nil {
		httperr.AbortWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromPaymentView(view))
}

// @Summary List my payments
// @Tags payments
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Max items (1-200)"
// @Success 200 {array} resdto.PaymentResponse
// @Router /api/payments [get]
func (h *BookingHandler) ListPayments(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errUnauthenticated, "Unauthorized", nil)
		return
	}
	limit, ok := limitFrom(c)
	if !ok {
		return
	}
	views, err := h.pq.ListByUser(c.Request.Context(), actor, actor.ID, limit)
	if err != nil {
		httperr.AbortWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromPaymentViews(views))
}

func idempotencyKeyFrom(c *gin.Context) (*uuid.UUID, error) {
	raw := c.GetHeader("Idempotency-Key")
	if raw == "" {
		return nil, nil
	}
	key, err := uuid.Parse(raw)
	if err != nil {
		return nil, errs.Wrap(err, "parse idempotency key")
	}
	return &key, nil
}
