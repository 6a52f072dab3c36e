package models

import (
	"time"

	"github.com/google/uuid"
)

// Access kinds recorded in the audit log.
const (
	AccessFull    = "full"
	AccessPreview = "preview"
)

// AccessEvent is one append-only audit record of an access decision.
// Events are never read back, mutated or deleted by this service.
type AccessEvent struct {
	ID         string    `json:"id" db:"id"`
	ViewerID   string    `json:"userId" db:"user_id"`
	TargetID   string    `json:"mediaUserId" db:"media_user_id"`
	AccessType string    `json:"accessType" db:"access_type"` // AccessFull or AccessPreview
	AccessedAt time.Time `json:"accessedAt" db:"accessed_at"`
}

// NewAccessEvent stamps a fresh audit record.
func NewAccessEvent(viewerID, targetID, accessType string, at time.Time) *AccessEvent {
	return &AccessEvent{
		ID:         uuid.NewString(),
		ViewerID:   viewerID,
		TargetID:   targetID,
		AccessType: accessType,
		AccessedAt: at,
	}
}
