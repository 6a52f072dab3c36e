package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/swagmedia/swagmedia-golang/internal/access"
	"github.com/swagmedia/swagmedia-golang/internal/models"
)

//
// --- Admin: Enrollment Application Handlers ---
//

// GetApplications is the handler for GET /api/admin/applications.
func (h *Handlers) GetApplications(c *gin.Context) {
	apps, err := h.Applications.List()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database query failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"applications": apps})
}

// ApproveApplication is the handler for POST /api/admin/applications/:id/approve.
// It flips the application to approved and creates the member record,
// carrying the request IP over as the immutable registration address.
func (h *Handlers) ApproveApplication(c *gin.Context) {
	app, err := h.Applications.Get(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database query failed"})
		return
	}
	if app == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Application not found"})
		return
	}

	updated, err := h.Applications.SetStatus(app.ID, models.ApplicationApproved)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update application"})
		return
	}
	if !updated {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Application already processed"})
		return
	}

	member := &models.Member{
		ID:             uuid.NewString(),
		Login:          app.Login,
		PasswordHash:   app.PasswordHash,
		Nickname:       app.Nickname,
		VKLink:         app.VKLink,
		ChannelLink:    app.ChannelLink,
		IsApproved:     true,
		MediaTier:      models.TierFree,
		PreviewsLimit:  models.DefaultPreviewLimit,
		RegistrationIP: app.RequestIP,
		CreatedAt:      time.Now(),
	}
	if err := h.Members.Create(member); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create member"})
		return
	}

	h.Log.Info().Str("member", member.ID).Str("application", app.ID).Msg("application approved")
	c.JSON(http.StatusOK, gin.H{"message": "Application approved", "memberId": member.ID})
}

// RejectApplication is the handler for POST /api/admin/applications/:id/reject.
func (h *Handlers) RejectApplication(c *gin.Context) {
	updated, err := h.Applications.SetStatus(c.Param("id"), models.ApplicationRejected)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update application"})
		return
	}
	if !updated {
		c.JSON(http.StatusNotFound, gin.H{"error": "Application not found or already processed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Application rejected"})
}

//
// --- Admin: Moderation Handlers ---
//

// getMemberOr404 resolves the :id path param to a member.
func (h *Handlers) getMemberOr404(c *gin.Context) *models.Member {
	member, err := h.Members.Get(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database query failed"})
		return nil
	}
	if member == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Member not found"})
		return nil
	}
	return member
}

// addNotification records a message for the member. A failed insert is
// logged but does not fail the moderation action itself.
func (h *Handlers) addNotification(memberID, title, message, notifType string) {
	n := &models.Notification{
		ID:        uuid.NewString(),
		MemberID:  memberID,
		Title:     title,
		Message:   message,
		Type:      notifType,
		CreatedAt: time.Now(),
	}
	if err := h.Notifications.Create(n); err != nil {
		h.Log.Error().Err(err).Str("member", memberID).Msg("failed to add notification")
	}
}

// WarningInput is the JSON body for issuing a warning.
type WarningInput struct {
	Reason string `json:"reason" binding:"required"`
}

// GiveWarning is the handler for POST /api/admin/users/:id/warning.
// The third warning auto-blocks the member for 30 days.
func (h *Handlers) GiveWarning(c *gin.Context) {
	var input WarningInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	member := h.getMemberOr404(c)
	if member == nil {
		return
	}

	res, err := h.Warnings.Add(member, input.Reason)
	if err != nil {
		var vErr *access.ValidationError
		if errors.As(err, &vErr) {
			c.JSON(http.StatusBadRequest, gin.H{"error": vErr.Message})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to issue warning"})
		return
	}

	if res.AutoBlocked {
		h.addNotification(member.ID, "Account blocked",
			fmt.Sprintf("You reached %d warnings and are blocked for %d days. Last reason: %s",
				res.Count, access.WarningBanDays, input.Reason),
			models.NotificationError)
		c.JSON(http.StatusOK, gin.H{
			"message":        fmt.Sprintf("Member blocked (%d warnings reached)", res.Count),
			"warnings_count": res.Count,
			"auto_blocked":   true,
		})
		return
	}

	h.addNotification(member.ID, "Warning",
		fmt.Sprintf("You received a warning. Reason: %s. Total warnings: %d", input.Reason, res.Count),
		models.NotificationWarning)
	c.JSON(http.StatusOK, gin.H{
		"message":        fmt.Sprintf("Warning issued to %s", member.Nickname),
		"warnings_count": res.Count,
		"auto_blocked":   false,
	})
}

// EmergencyInput is the JSON body for an emergency block.
type EmergencyInput struct {
	Days   int    `json:"days" binding:"required"`
	Reason string `json:"reason" binding:"required"`
}

// SetEmergencyState is the handler for POST /api/admin/users/:id/emergency-state.
// It blocks the member and their registration address for an
// admin-chosen number of days (1-365).
func (h *Handlers) SetEmergencyState(c *gin.Context) {
	var input EmergencyInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	member := h.getMemberOr404(c)
	if member == nil {
		return
	}

	reason := fmt.Sprintf("%s: %s", access.ReasonEmergency, input.Reason)
	if err := h.Registry.Ban(member, input.Days, reason); err != nil {
		var vErr *access.ValidationError
		if errors.As(err, &vErr) {
			c.JSON(http.StatusBadRequest, gin.H{"error": vErr.Message})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to apply emergency state"})
		return
	}

	h.addNotification(member.ID, "Emergency state",
		fmt.Sprintf("An emergency block of %d days was applied to your account. Reason: %s. Login and registration from your IP are blocked until %s",
			input.Days, input.Reason, member.SuspendedUntil.Format("02.01.2006 15:04")),
		models.NotificationError)

	c.JSON(http.StatusOK, gin.H{
		"message":       fmt.Sprintf("Emergency state applied to '%s' for %d days", member.Nickname, input.Days),
		"user_id":       member.ID,
		"blocked_until": member.SuspendedUntil,
		"reason":        input.Reason,
		"ip_blocked":    member.RegistrationIP != nil,
	})
}

// ResetPreviews is the handler for POST /api/admin/users/:id/reset-previews.
// It zeroes the preview counter; a live suspension stays in place
// until an explicit unblacklist.
func (h *Handlers) ResetPreviews(c *gin.Context) {
	member := h.getMemberOr404(c)
	if member == nil {
		return
	}

	if err := h.Quota.Reset(member); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reset previews"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Preview counter reset"})
}

// UnblacklistMember is the handler for POST /api/admin/users/:id/unblacklist.
// It lifts the member suspension only. Any ban on the member's
// registration address stays until lifted by address.
func (h *Handlers) UnblacklistMember(c *gin.Context) {
	member := h.getMemberOr404(c)
	if member == nil {
		return
	}

	if err := h.Registry.Lift(member); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to unblacklist member"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Member unblacklisted"})
}

// UnblacklistAddress is the handler for DELETE /api/admin/blacklist/ips/:address.
func (h *Handlers) UnblacklistAddress(c *gin.Context) {
	address := c.Param("address")
	if address == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Address required"})
		return
	}

	if err := h.Registry.LiftAddress(address); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to unblacklist address"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Address unblacklisted"})
}

// GetBlacklist is the handler for GET /api/admin/blacklist.
// It returns the currently suspended members and banned addresses.
func (h *Handlers) GetBlacklist(c *gin.Context) {
	now := h.Clock.Now()

	members, err := h.Members.ListSuspended(now)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database query failed"})
		return
	}
	bans, err := h.Bans.ListActive(now)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database query failed"})
		return
	}

	blockedMembers := make([]gin.H, 0, len(members))
	for _, m := range members {
		blockedMembers = append(blockedMembers, gin.H{
			"id":              m.ID,
			"nickname":        m.Nickname,
			"vkLink":          m.VKLink,
			"blacklist_until": m.SuspendedUntil,
			"warnings":        m.Warnings,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"blacklisted_users": blockedMembers,
		"blacklisted_ips":   bans,
	})
}
