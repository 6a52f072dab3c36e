package store

import (
	"database/sql"
	"fmt"

	"github.com/swagmedia/swagmedia-golang/internal/models"
)

// AccessEventStore appends access decisions to the media_access audit
// table. The gating core never reads them back; rows are kept for
// offline review only.
type AccessEventStore struct {
	DB *sql.DB
}

func NewAccessEventStore(db *sql.DB) *AccessEventStore {
	return &AccessEventStore{DB: db}
}

func (s *AccessEventStore) Append(ev *models.AccessEvent) error {
	query := `
		INSERT INTO media_access
		(id, user_id, media_user_id, access_type, accessed_at)
		VALUES (?, ?, ?, ?, ?)`

	_, err := s.DB.Exec(query, ev.ID, ev.ViewerID, ev.TargetID, ev.AccessType, ev.AccessedAt)
	if err != nil {
		return fmt.Errorf("failed to append access event: %w", err)
	}
	return nil
}
