package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/swagmedia/swagmedia-golang/internal/access"
	"github.com/swagmedia/swagmedia-golang/internal/middleware"
	"github.com/swagmedia/swagmedia-golang/internal/models"
)

//
// --- Media Access Handlers ---
//

// respondAccessError maps the gating core's error taxonomy onto HTTP.
func respondAccessError(c *gin.Context, err error) {
	var fErr *access.ForbiddenError
	var vErr *access.ValidationError
	switch {
	case errors.Is(err, access.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Member not found"})
	case errors.As(err, &fErr):
		resp := gin.H{"error": fErr.Reason}
		if fErr.Until != nil {
			resp["blockedUntil"] = fErr.Until
		}
		c.JSON(http.StatusForbidden, resp)
	case errors.As(err, &vErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": vErr.Message})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Request failed"})
	}
}

// AccessMedia is the handler for POST /api/media/:id/access.
// All decision logic lives in the gateway; this just maps the outcome
// to JSON.
func (h *Handlers) AccessMedia(c *gin.Context) {
	viewerID := middleware.MemberID(c)
	targetID := c.Param("id")

	grant, err := h.Gateway.RequestAccess(viewerID, targetID)
	if err != nil {
		respondAccessError(c, err)
		return
	}

	resp := gin.H{
		"access_type": grant.AccessType,
		"data":        grant.Card,
	}
	if grant.AccessType == models.AccessPreview {
		resp["previews_remaining"] = grant.Remaining
		resp["message"] = fmt.Sprintf("Preview access. Previews remaining: %d", grant.Remaining)
	}
	c.JSON(http.StatusOK, resp)
}

// GetMediaList is the handler for GET /api/media-list.
// It lists approved members with a can_access flag derived from the
// policy; looking at the list consumes no previews.
func (h *Handlers) GetMediaList(c *gin.Context) {
	viewer, err := h.Members.Get(middleware.MemberID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database query failed"})
		return
	}
	if viewer == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Member not found"})
		return
	}

	members, err := h.Members.ListApproved()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database query failed"})
		return
	}

	mediaList := make([]gin.H, 0, len(members))
	for _, m := range members {
		mediaList = append(mediaList, gin.H{
			"id":          m.ID,
			"nickname":    m.Nickname,
			"vkLink":      m.VKLink,
			"channelLink": m.ChannelLink,
			"mediaType":   m.MediaTier,
			"can_access":  h.Policy.Decide(viewer, m) == access.Full,
		})
	}

	c.JSON(http.StatusOK, mediaList)
}

// GetMyPreviews is the handler for GET /api/user/previews.
func (h *Handlers) GetMyPreviews(c *gin.Context) {
	member, err := h.Members.Get(middleware.MemberID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database query failed"})
		return
	}
	if member == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Member not found"})
		return
	}

	resp := gin.H{
		"previews_used":      member.PreviewsUsed,
		"previews_limit":     member.PreviewsLimit,
		"previews_remaining": member.PreviewsRemaining(),
		"is_blacklisted":     h.Registry.IsActive(member),
	}
	if member.SuspendedUntil != nil {
		resp["blacklist_until"] = member.SuspendedUntil
	}
	c.JSON(http.StatusOK, resp)
}
