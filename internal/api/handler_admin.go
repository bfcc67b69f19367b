package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"roombook-backend/internal/booking"
	"roombook-backend/internal/model"
	"roombook-backend/internal/notify"
	"roombook-backend/internal/store"
)

// AllBookings handles GET /api/admin/bookings: every request, newest
// start first, for the review table.
func (h *Handler) AllBookings(c *gin.Context) {
	bookings, err := h.store.AllBookings(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve bookings"})
		return
	}
	c.JSON(http.StatusOK, bookings)
}

// DayGrid handles GET /api/admin/grid?date=: the hourly slot grid for
// every room on one date, served from the polled snapshot.
func (h *Handler) DayGrid(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date is required"})
		return
	}

	grid, err := h.grid.DayGrid(c.Request.Context(), date)
	if err != nil {
		if errors.Is(err, booking.ErrBadInput) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build schedule grid"})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"date": date, "hours": h.grid.SlotHours(), "rooms": grid})
}

type decisionRequest struct {
	Status model.BookingStatus `json:"status" binding:"required"`
	Note   string              `json:"note"`
}

// DecideBooking handles POST /api/admin/bookings/:id/decision. The
// transition happens at most once; a booking already out of Pending
// yields 409. The requester is notified afterwards, best-effort.
func (h *Handler) DecideBooking(c *gin.Context) {
	var req decisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Status != model.StatusConfirmed && req.Status != model.StatusRejected {
		c.JSON(http.StatusBadRequest, gin.H{"error": "status must be Confirmed or Rejected"})
		return
	}

	b, err := h.store.DecideBooking(c.Request.Context(), c.Param("id"), req.Status, req.Note)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "booking not found"})
		case errors.Is(err, store.ErrAlreadyDecided):
			c.JSON(http.StatusConflict, gin.H{"error": "booking already decided"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update booking"})
		}
		return
	}

	h.pool.Dispatch(notify.Event{Kind: notify.EventDecided, Booking: b})

	c.JSON(http.StatusOK, b)
}
