package api

import (
	"net/http"

	reqdto "parking-booking/internal/handler/dto/request"
	resdto "parking-booking/internal/handler/dto/response"
	"parking-booking/internal/handler/httperr"
	"parking-booking/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type SlotHandler struct {
	availability queries.AvailabilityQueries
	bookings     queries.BookingQueries
}

func NewSlotHandler(availability queries.AvailabilityQueries, bookings queries.BookingQueries) *SlotHandler {
	return &SlotHandler{availability: availability, bookings: bookings}
}

// @Summary Slot availability
// @Description Whether the slot can be booked for [start, end)
// @Tags availability
// @Produce json
// @Param id path string true "Slot ID"
// @Param start query string true "RFC3339 start"
// @Param end query string true "RFC3339 end"
// @Success 200 {object} resdto.AvailabilityResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /api/slots/{id}/availability [get]
func (h *SlotHandler) Availability(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}
	var q reqdto.WindowQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid query", nil)
		return
	}

	available, err := h.availability.IsAvailable(c.Request.Context(), id, q.Start, q.End)
	if err != nil {
		httperr.AbortWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.AvailabilityResponse{
		SlotID:    id,
		StartTime: q.Start,
		EndTime:   q.End,
		Available: available,
	})
}

// @Summary Available slots at a location
// @Tags availability
// @Produce json
// @Param id path string true "Location ID"
// @Param start query string true "RFC3339 start"
// @Param end query string true "RFC3339 end"
// @Success 200 {array} resdto.SlotResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /api/locations/{id}/available-slots [get]
func (h *SlotHandler) AvailableSlots(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}
	var q reqdto.WindowQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid query", nil)
		return
	}

	views, err := h.availability.AvailableSlots(c.Request.Context(), id, q.Start, q.End)
	if err != nil {
		httperr.AbortWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromSlotViews(views))
}

// @Summary Bookings of a slot
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Slot ID"
// @Param limit query int false "Max items (1-200)"
// @Success 200 {array} resdto.BookingResponse
// @Failure 403 {object} httperr.Response
// @Router /api/slots/{id}/bookings [get]
func (h *SlotHandler) ListBookingsBySlot(c *gin.Context) {
	actor, id, ok := actorAndID(c)
	if !ok {
		return
	}
	limit, ok := limitFrom(c)
	if !ok {
		return
	}
	views, err := h.bookings.ListBySlot(c.Request.Context(), actor, id, limit)
	if err != nil {
		httperr.AbortWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromBookingViews(views))
}

// @Summary Bookings at a location
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Location ID"
// @Param limit query int false "Max items (1-200)"
// @Success 200 {array} resdto.BookingResponse
// @Failure 403 {object} httperr.Response
// @Router /api/locations/{id}/bookings [get]
func (h *SlotHandler) ListBookingsByLocation(c *gin.Context) {
	actor, id, ok := actorAndID(c)
	if !ok {
		return
	}
	limit, ok := limitFrom(c)
	if !ok {
		return
	}
	views, err := h.bookings.ListByLocation(c.Request.Context(), actor, id, limit)
	if err != nil {
		httperr.AbortWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromBookingViews(views))
}
