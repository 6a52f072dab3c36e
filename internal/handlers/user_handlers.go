package handlers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/swagmedia/swagmedia-golang/internal/auth"
	"github.com/swagmedia/swagmedia-golang/internal/models"
)

// --- Member Enrollment ---

// RegisterInput is the enrollment request body. Separate from
// models.Application so callers cannot inject an id or status.
type RegisterInput struct {
	Nickname    string `json:"nickname" binding:"required"`
	Login       string `json:"login" binding:"required"`
	Password    string `json:"password" binding:"required,min=8"`
	VKLink      string `json:"vkLink" binding:"required"`
	ChannelLink string `json:"channelLink" binding:"required"`
}

var channelDomains = []string{"t.me", "youtube.com", "youtu.be", "instagram.com"}

func validLink(link string, domains ...string) bool {
	lower := strings.ToLower(link)
	if !strings.HasPrefix(lower, "http://") && !strings.HasPrefix(lower, "https://") {
		return false
	}
	for _, d := range domains {
		if strings.Contains(lower, d) {
			return true
		}
	}
	return false
}

// Register is the handler for POST /api/register.
// It files an enrollment application; a member only exists once an
// admin approves it. Requests from banned addresses or from origin
// links belonging to suspended members are rejected up front.
func (h *Handlers) Register(c *gin.Context) {
	var input RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !validLink(input.VKLink, "vk.com") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "vkLink must be an http(s) link to vk.com"})
		return
	}
	if !validLink(input.ChannelLink, channelDomains...) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "channelLink must lead to Telegram, YouTube or Instagram"})
		return
	}

	// Re-registration abuse checks: the client address and the origin
	// link must both be clean.
	clientIP := c.ClientIP()
	banned, err := h.Registry.IsAddressActive(clientIP)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database query failed"})
		return
	}
	if banned {
		c.JSON(http.StatusForbidden, gin.H{"error": "This IP address is blocked"})
		return
	}

	existing, err := h.Members.FindByOrigin(input.VKLink)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database query failed"})
		return
	}
	if existing != nil && h.Registry.IsActive(existing) {
		c.JSON(http.StatusForbidden, gin.H{"error": "This VK link is blocked"})
		return
	}

	// Uniqueness across live members and pending applications.
	if taken, err := h.Members.LoginTaken(input.Login); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database query failed"})
		return
	} else if taken {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Login already exists"})
		return
	}
	if taken, err := h.Members.NicknameTaken(input.Nickname); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database query failed"})
		return
	} else if taken {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Nickname already exists"})
		return
	}
	if pending, err := h.Applications.PendingLoginOrNickname(input.Login, input.Nickname); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database query failed"})
		return
	} else if pending {
		c.JSON(http.StatusBadRequest, gin.H{"error": "An application with this login or nickname is already pending"})
		return
	}

	var password models.Password
	if err := password.Set(input.Password); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}

	app := &models.Application{
		ID:           uuid.NewString(),
		Nickname:     input.Nickname,
		Login:        input.Login,
		PasswordHash: password.Hash,
		VKLink:       input.VKLink,
		ChannelLink:  input.ChannelLink,
		Status:       models.ApplicationPending,
		RequestIP:    &clientIP,
		CreatedAt:    time.Now(),
	}

	if err := h.Applications.Create(app); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save application"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Enrollment application submitted, pending approval.",
		"id":      app.ID,
	})
}

// --- Login ---

type LoginInput struct {
	Login    string `json:"login" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login is the handler for POST /api/login.
func (h *Handlers) Login(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	member, err := h.Members.FindByLogin(input.Login)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database query failed"})
		return
	}
	if member == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid login or password"})
		return
	}

	password := models.Password{Hash: member.PasswordHash}
	matches, err := password.Matches(input.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify password"})
		return
	}
	if !matches {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid login or password"})
		return
	}

	// Suspended members cannot log in; tell them until when.
	if h.Registry.IsActive(member) {
		until := *member.SuspendedUntil
		daysLeft := int(until.Sub(h.Clock.Now()).Hours() / 24)
		c.JSON(http.StatusForbidden, gin.H{
			"error": fmt.Sprintf("Account blocked until %s. Days left: %d", until.Format("02.01.2006"), daysLeft),
		})
		return
	}

	if !member.IsApproved {
		c.JSON(http.StatusForbidden, gin.H{"error": "Account not approved"})
		return
	}

	token, err := auth.GenerateToken(member.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"access_token": token,
		"token_type":   "bearer",
		"user": gin.H{
			"id":            member.ID,
			"nickname":      member.Nickname,
			"adminLevel":    member.AdminLevel,
			"balance":       member.Balance,
			"mediaType":     member.MediaTier,
			"previewsUsed":  member.PreviewsUsed,
			"previewsLimit": member.PreviewsLimit,
		},
	})
}
