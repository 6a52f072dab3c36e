package store

import (
	"database/sql"
	"fmt"

	"github.com/swagmedia/swagmedia-golang/internal/models"
)

// ApplicationStore persists enrollment applications.
type ApplicationStore struct {
	DB *sql.DB
}

func NewApplicationStore(db *sql.DB) *ApplicationStore {
	return &ApplicationStore{DB: db}
}

func (s *ApplicationStore) Create(app *models.Application) error {
	query := `
		INSERT INTO applications
		(id, nickname, login, password_hash, vk_link, channel_link, status, request_ip, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := s.DB.Exec(query,
		app.ID, app.Nickname, app.Login, app.PasswordHash,
		app.VKLink, app.ChannelLink, app.Status, app.RequestIP, app.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert application: %w", err)
	}
	return nil
}

// Get returns (nil, nil) when no application has the given id.
func (s *ApplicationStore) Get(id string) (*models.Application, error) {
	query := `
		SELECT id, nickname, login, password_hash, vk_link, channel_link, status, request_ip, created_at
		FROM applications
		WHERE id = ?`

	var app models.Application
	var requestIP sql.NullString
	err := s.DB.QueryRow(query, id).Scan(
		&app.ID,
		&app.Nickname,
		&app.Login,
		&app.PasswordHash,
		&app.VKLink,
		&app.ChannelLink,
		&app.Status,
		&requestIP,
		&app.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query application: %w", err)
	}
	if requestIP.Valid {
		app.RequestIP = &requestIP.String
	}
	return &app, nil
}

// List returns all applications, newest first.
func (s *ApplicationStore) List() ([]*models.Application, error) {
	query := `
		SELECT id, nickname, login, password_hash, vk_link, channel_link, status, request_ip, created_at
		FROM applications
		ORDER BY created_at DESC`

	rows, err := s.DB.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}
	defer rows.Close()

	var apps []*models.Application
	for rows.Next() {
		var app models.Application
		var requestIP sql.NullString
		if err := rows.Scan(
			&app.ID,
			&app.Nickname,
			&app.Login,
			&app.PasswordHash,
			&app.VKLink,
			&app.ChannelLink,
			&app.Status,
			&requestIP,
			&app.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan application row: %w", err)
		}
		if requestIP.Valid {
			app.RequestIP = &requestIP.String
		}
		apps = append(apps, &app)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating application rows: %w", err)
	}
	return apps, nil
}

// SetStatus flips a pending application to approved/rejected.
// Returns false when the application was not pending (or missing).
func (s *ApplicationStore) SetStatus(id, status string) (bool, error) {
	query := `
		UPDATE applications
		SET status = ?
		WHERE id = ? AND status = ?`

	result, err := s.DB.Exec(query, status, id, models.ApplicationPending)
	if err != nil {
		return false, fmt.Errorf("failed to update application status: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to check affected rows: %w", err)
	}
	return rowsAffected > 0, nil
}

// PendingLoginOrNickname reports whether a pending application already
// claims the login or nickname.
func (s *ApplicationStore) PendingLoginOrNickname(login, nickname string) (bool, error) {
	var count int
	query := `
		SELECT COUNT(*) FROM applications
		WHERE status = ? AND (login = ? OR nickname = ?)`
	if err := s.DB.QueryRow(query, models.ApplicationPending, login, nickname).Scan(&count); err != nil {
		return false, fmt.Errorf("failed to check pending applications: %w", err)
	}
	return count > 0, nil
}
