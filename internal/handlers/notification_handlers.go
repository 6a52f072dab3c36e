package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/swagmedia/swagmedia-golang/internal/middleware"
)

//
// --- Notification Handlers ---
//

// GetMyNotifications is the handler for GET /api/notifications.
// It retrieves the caller's notifications, unread and newest first.
func (h *Handlers) GetMyNotifications(c *gin.Context) {
	notifications, err := h.Notifications.ListForMember(middleware.MemberID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database query failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"notifications": notifications})
}

// MarkNotificationAsRead is the handler for PATCH /api/notifications/:id/read.
func (h *Handlers) MarkNotificationAsRead(c *gin.Context) {
	updated, err := h.Notifications.MarkRead(c.Param("id"), middleware.MemberID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update notification"})
		return
	}
	if !updated {
		c.JSON(http.StatusNotFound, gin.H{"error": "Notification not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Notification marked as read"})
}
