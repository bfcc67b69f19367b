package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"roombook-backend/internal/mw"
)

// notificationPollLimit caps each poll response; the panel shows the
// most recent messages only.
const notificationPollLimit = 20

// ListNotifications handles GET /api/notifications. Clients poll this
// endpoint; there is no push channel.
func (h *Handler) ListNotifications(c *gin.Context) {
	email := c.GetString(mw.ContextEmailKey)
	ns, err := h.store.NotificationsFor(c.Request.Context(), email, notificationPollLimit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve notifications"})
		return
	}
	c.JSON(http.StatusOK, ns)
}

// MarkNotificationsRead handles POST /api/notifications/read, flipping
// every unread notification of the caller. Fired when the panel opens.
func (h *Handler) MarkNotificationsRead(c *gin.Context) {
	email := c.GetString(mw.ContextEmailKey)
	if err := h.store.MarkNotificationsRead(c.Request.Context(), email); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to mark notifications read"})
		return
	}
	c.Status(http.StatusNoContent)
}
