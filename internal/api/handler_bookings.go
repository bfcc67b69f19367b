package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"roombook-backend/internal/model"
	"roombook-backend/internal/mw"
	"roombook-backend/internal/notify"
	"roombook-backend/internal/store"
)

type createBookingRequest struct {
	RoomID   string `json:"room_id" binding:"required"`
	Date     string `json:"date" binding:"required"`
	Start    string `json:"start" binding:"required"`
	End      string `json:"end" binding:"required"`
	UserNote string `json:"user_note"`
}

// CreateBooking handles POST /api/bookings. The request is inserted as
// Pending; admin notifications are fanned out afterwards, best-effort.
func (h *Handler) CreateBooking(c *gin.Context) {
	var req createBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	room, ok := h.catalog.Get(req.RoomID)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown room"})
		return
	}

	start, err := h.live.ParseWallClock(req.Date, req.Start)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	end, err := h.live.ParseWallClock(req.Date, req.End)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !end.After(start) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "end time must be after start time"})
		return
	}
	if start.Before(h.live.Now()) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "start time is in the past"})
		return
	}
	if !h.live.WithinOperatingWindow(start, end) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "time range is outside operating hours"})
		return
	}

	b := model.Booking{
		UserEmail: c.GetString(mw.ContextEmailKey),
		RoomID:    room.ID,
		RoomName:  room.Name,
		StartTime: start.UTC(),
		EndTime:   end.UTC(),
		UserNote:  req.UserNote,
	}
	if err := h.store.CreateBooking(c.Request.Context(), &b); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create booking"})
		return
	}

	// The booking is committed; notification delivery must not undo it.
	h.pool.Dispatch(notify.Event{Kind: notify.EventCreated, Booking: b})

	c.JSON(http.StatusCreated, b)
}

// MyBookings handles GET /api/bookings: the caller's history, newest
// start first.
func (h *Handler) MyBookings(c *gin.Context) {
	email := c.GetString(mw.ContextEmailKey)
	bookings, err := h.store.BookingsByUser(c.Request.Context(), email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve bookings"})
		return
	}
	c.JSON(http.StatusOK, bookings)
}

// CancelBooking handles POST /api/bookings/:id/cancel. Only the owner
// may cancel, and only while the request is still Pending.
func (h *Handler) CancelBooking(c *gin.Context) {
	email := c.GetString(mw.ContextEmailKey)
	b, err := h.store.CancelBooking(c.Request.Context(), c.Param("id"), email)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "booking not found"})
		case errors.Is(err, store.ErrAlreadyDecided):
			c.JSON(http.StatusConflict, gin.H{"error": "booking is no longer pending"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to cancel booking"})
		}
		return
	}
	c.JSON(http.StatusOK, b)
}
