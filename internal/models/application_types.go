package models

import "time"

// Application statuses.
const (
	ApplicationPending  = "pending"
	ApplicationApproved = "approved"
	ApplicationRejected = "rejected"
)

// Application is an enrollment request awaiting admin review.
// A Member is only created once an admin approves it.
type Application struct {
	ID           string    `json:"id" db:"id"`
	Nickname     string    `json:"nickname" db:"nickname"`
	Login        string    `json:"login" db:"login"`
	PasswordHash string    `json:"-" db:"password_hash"`
	VKLink       string    `json:"vkLink" db:"vk_link"`
	ChannelLink  string    `json:"channelLink" db:"channel_link"`
	Status       string    `json:"status" db:"status"`
	RequestIP    *string   `json:"-" db:"request_ip"` // becomes the member's registration IP on approval
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
}
