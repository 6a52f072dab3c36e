package models

import (
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Media tiers. Free members only see free content in full;
// paid members see everything.
const (
	TierFree = 0
	TierPaid = 1
)

// DefaultPreviewLimit is the number of redacted previews a free member
// may consume before the account is suspended.
const DefaultPreviewLimit = 3

// Member Model with Pointers for Nullable Fields
type Member struct {
	ID           string `json:"id" db:"id"`
	Login        string `json:"login" db:"login"`
	PasswordHash string `json:"-" db:"password_hash"`
	Nickname     string `json:"nickname" db:"nickname"`

	// VKLink is the origin-identifying link recorded at enrollment.
	// It is immutable after creation and is what an AddressBan
	// cross-references for audit.
	VKLink      string `json:"vkLink" db:"vk_link"`
	ChannelLink string `json:"channelLink" db:"channel_link"`

	Balance    int  `json:"balance" db:"balance"`
	AdminLevel int  `json:"adminLevel" db:"admin_level"`
	IsApproved bool `json:"isApproved" db:"is_approved"`

	// MediaTier is TierFree (0) or TierPaid (1).
	MediaTier int `json:"mediaType" db:"media_type"`

	Warnings      int `json:"warnings" db:"warnings"`
	PreviewsUsed  int `json:"previewsUsed" db:"previews_used"`
	PreviewsLimit int `json:"previewsLimit" db:"previews_limit"`

	// --- Nullable Fields (Pointers = Clean JSON) ---
	SuspendedUntil *time.Time `json:"blacklistUntil,omitempty" db:"blacklist_until"`
	RegistrationIP *string    `json:"registrationIp,omitempty" db:"registration_ip"`

	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// Suspended reports whether the member is suspended as of 'now'.
// Expiry is checked lazily; an expired suspension simply stops
// being active, there is no background sweep.
func (m *Member) Suspended(now time.Time) bool {
	return m.SuspendedUntil != nil && m.SuspendedUntil.After(now)
}

// PreviewsRemaining never goes negative, even if an admin lowers
// a member's limit below the used counter.
func (m *Member) PreviewsRemaining() int {
	remaining := m.PreviewsLimit - m.PreviewsUsed
	if remaining < 0 {
		return 0
	}
	return remaining
}

// Password Helper (Standard)
type Password struct {
	Plaintext *string
	Hash      string
}

func (p *Password) Set(plaintextPassword string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintextPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	p.Hash = string(hash)
	p.Plaintext = &plaintextPassword
	return nil
}

func (p *Password) Matches(plaintextPassword string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(p.Hash), []byte(plaintextPassword))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
