package models

import (
	"time"

	"github.com/google/uuid"
)

// AddressBan is a network-origin-keyed ban record.
// At most one row exists per address: a second ban on the same
// address overwrites the expiry and reason instead of duplicating
// (the 'ip_address' column carries a UNIQUE key to back this).
type AddressBan struct {
	ID        string    `json:"id" db:"id"`
	IPAddress string    `json:"ipAddress" db:"ip_address"`
	VKLink    string    `json:"vkLink" db:"vk_link"` // origin link of the member that triggered the ban, for audit
	ExpiresAt time.Time `json:"blacklistUntil" db:"blacklist_until"`
	Reason    string    `json:"reason" db:"reason"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// Active reports whether the ban is still in force as of 'now'.
func (b *AddressBan) Active(now time.Time) bool {
	return b.ExpiresAt.After(now)
}

// NewAddressBan builds a ban record for the given address.
func NewAddressBan(address, vkLink string, expiresAt time.Time, reason string) *AddressBan {
	return &AddressBan{
		ID:        uuid.NewString(),
		IPAddress: address,
		VKLink:    vkLink,
		ExpiresAt: expiresAt,
		Reason:    reason,
		CreatedAt: time.Now(),
	}
}
