package api

import (
	"net/http"

	resdto "parking-booking/internal/handler/dto/response"
	"parking-booking/internal/handler/httperr"
	"parking-booking/internal/handler/middleware"
	"parking-booking/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	bookings queries.BookingQueries
	payments queries.PaymentQueries
	stats    queries.StatsQueries
}

func NewAdminHandler(bookings queries.BookingQueries, payments queries.PaymentQueries, stats queries.StatsQueries) *AdminHandler {
	return &AdminHandler{bookings: bookings, payments: payments, stats: stats}
}

// @Summary All bookings
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Max items (1-200)"
// @Success 200 {array} resdto.BookingResponse
// @Failure 403 {object} httperr.Response
// @Router /api/admin/bookings [get]
func (h *AdminHandler) ListBookings(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errUnauthenticated, "Unauthorized", nil)
		return
	}
	limit, ok := limitFrom(c)
	if !ok {
		return
	}
	views, err := h.bookings.ListAll(c.Request.Context(), actor, limit)
	if err != nil {
		httperr.AbortWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromBookingViews(views))
}

// @Summary All payments
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Max items (1-200)"
// @Success 200 {array} resdto.PaymentResponse
// @Failure 403 {object} httperr.Response
// @Router /api/admin/payments [get]
func (h *AdminHandler) ListPayments(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errUnauthenticated, "Unauthorized", nil)
		return
	}
	limit, ok := limitFrom(c)
	if !ok {
		return
	}
	views, err := h.payments.ListAll(c.Request.Context(), actor, limit)
	if err != nil {
		httperr.AbortWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromPaymentViews(views))
}

// @Summary Booking and payment statistics
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} resdto.StatsResponse
// @Failure 403 {object} httperr.Response
// @Router /api/admin/stats [get]
func (h *AdminHandler) Stats(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errUnauthenticated, "Unauthorized", nil)
		return
	}
	stats, err := h.stats.Get(c.Request.Context(), actor)
	if err != nil {
		httperr.AbortWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromStats(stats))
}
