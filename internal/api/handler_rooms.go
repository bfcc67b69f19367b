package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"roombook-backend/internal/booking"
)

// ListRooms handles GET /api/rooms: the static catalog in its stable order.
func (h *Handler) ListRooms(c *gin.Context) {
	c.JSON(http.StatusOK, h.catalog.Rooms())
}

// FindAvailableRooms handles GET /api/rooms/available?date=&start=&end=.
// An inverted or zero-length range is not an error; it yields an empty
// list, matching the booking form's behavior.
func (h *Handler) FindAvailableRooms(c *gin.Context) {
	date := c.Query("date")
	start := c.Query("start")
	end := c.Query("end")
	if date == "" || start == "" || end == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "date, start and end are required"})
		return
	}

	rooms, err := h.live.FindAvailableRooms(c.Request.Context(), date, start, end)
	if err != nil {
		if errors.Is(err, booking.ErrBadInput) {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to check availability"})
		}
		return
	}
	c.JSON(http.StatusOK, rooms)
}
