package store

import (
	"database/sql"
	"fmt"

	"github.com/swagmedia/swagmedia-golang/internal/models"
)

// NotificationStore persists member notifications.
type NotificationStore struct {
	DB *sql.DB
}

func NewNotificationStore(db *sql.DB) *NotificationStore {
	return &NotificationStore{DB: db}
}

func (s *NotificationStore) Create(n *models.Notification) error {
	query := `
		INSERT INTO notifications
		(id, user_id, title, message, type, is_read, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`

	_, err := s.DB.Exec(query, n.ID, n.MemberID, n.Title, n.Message, n.Type, n.IsRead, n.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert notification: %w", err)
	}
	return nil
}

// ListForMember returns a member's notifications, unread and newest
// first. Capped at 50 to keep the payload bounded.
func (s *NotificationStore) ListForMember(memberID string) ([]*models.Notification, error) {
	query := `
		SELECT id, user_id, title, message, type, is_read, created_at
		FROM notifications
		WHERE user_id = ?
		ORDER BY is_read ASC, created_at DESC
		LIMIT 50`

	rows, err := s.DB.Query(query, memberID)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	defer rows.Close()

	var notifications []*models.Notification
	for rows.Next() {
		var n models.Notification
		if err := rows.Scan(
			&n.ID,
			&n.MemberID,
			&n.Title,
			&n.Message,
			&n.Type,
			&n.IsRead,
			&n.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan notification row: %w", err)
		}
		notifications = append(notifications, &n)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating notification rows: %w", err)
	}
	return notifications, nil
}

// MarkRead marks one of the member's notifications as read. Returns
// false when the notification does not exist or belongs to someone
// else.
func (s *NotificationStore) MarkRead(id, memberID string) (bool, error) {
	query := `
		UPDATE notifications
		SET is_read = 1
		WHERE id = ? AND user_id = ?`

	result, err := s.DB.Exec(query, id, memberID)
	if err != nil {
		return false, fmt.Errorf("failed to mark notification read: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to check affected rows: %w", err)
	}
	return rowsAffected > 0, nil
}
