package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/swagmedia/swagmedia-golang/internal/models"
)

// MemberStore is the MySQL-backed MemberDirectory. It also carries the
// wider queries the HTTP layer needs (login lookup, listings) that the
// gating core itself never calls.
type MemberStore struct {
	DB *sql.DB
}

func NewMemberStore(db *sql.DB) *MemberStore {
	return &MemberStore{DB: db}
}

const memberColumns = `id, login, password_hash, nickname, vk_link, channel_link,
		balance, admin_level, is_approved, media_type, warnings,
		previews_used, previews_limit, blacklist_until, registration_ip, created_at`

// rowScanner lets scanMember work for both QueryRow and Query rows.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanMember(row rowScanner) (*models.Member, error) {
	var m models.Member
	var suspended sql.NullTime
	var registrationIP sql.NullString

	err := row.Scan(
		&m.ID,
		&m.Login,
		&m.PasswordHash,
		&m.Nickname,
		&m.VKLink,
		&m.ChannelLink,
		&m.Balance,
		&m.AdminLevel,
		&m.IsApproved,
		&m.MediaTier,
		&m.Warnings,
		&m.PreviewsUsed,
		&m.PreviewsLimit,
		&suspended,
		&registrationIP,
		&m.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if suspended.Valid {
		m.SuspendedUntil = &suspended.Time
	}
	if registrationIP.Valid {
		m.RegistrationIP = &registrationIP.String
	}
	return &m, nil
}

// Get returns (nil, nil) when no member has the given id.
func (s *MemberStore) Get(id string) (*models.Member, error) {
	query := `
		SELECT ` + memberColumns + `
		FROM members
		WHERE id = ?`

	m, err := scanMember(s.DB.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query member: %w", err)
	}
	return m, nil
}

// FindByLogin returns (nil, nil) when the login is unknown.
func (s *MemberStore) FindByLogin(login string) (*models.Member, error) {
	query := `
		SELECT ` + memberColumns + `
		FROM members
		WHERE login = ?`

	m, err := scanMember(s.DB.QueryRow(query, login))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query member by login: %w", err)
	}
	return m, nil
}

// FindByOrigin looks a member up by origin-identifying link.
func (s *MemberStore) FindByOrigin(vkLink string) (*models.Member, error) {
	query := `
		SELECT ` + memberColumns + `
		FROM members
		WHERE vk_link = ?`

	m, err := scanMember(s.DB.QueryRow(query, vkLink))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query member by origin link: %w", err)
	}
	return m, nil
}

// Create inserts a freshly approved member.
func (s *MemberStore) Create(m *models.Member) error {
	query := `
		INSERT INTO members
		(id, login, password_hash, nickname, vk_link, channel_link,
		 balance, admin_level, is_approved, media_type, warnings,
		 previews_used, previews_limit, blacklist_until, registration_ip, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := s.DB.Exec(query,
		m.ID, m.Login, m.PasswordHash, m.Nickname, m.VKLink, m.ChannelLink,
		m.Balance, m.AdminLevel, m.IsApproved, m.MediaTier, m.Warnings,
		m.PreviewsUsed, m.PreviewsLimit, m.SuspendedUntil, m.RegistrationIP, m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert member: %w", err)
	}
	return nil
}

// Save persists the mutable member fields. Login, origin link and
// registration IP are immutable after creation and deliberately not
// included here.
func (s *MemberStore) Save(m *models.Member) error {
	query := `
		UPDATE members
		SET nickname = ?, channel_link = ?, balance = ?, admin_level = ?,
		    is_approved = ?, media_type = ?, warnings = ?,
		    previews_used = ?, previews_limit = ?, blacklist_until = ?
		WHERE id = ?`

	result, err := s.DB.Exec(query,
		m.Nickname, m.ChannelLink, m.Balance, m.AdminLevel,
		m.IsApproved, m.MediaTier, m.Warnings,
		m.PreviewsUsed, m.PreviewsLimit, m.SuspendedUntil,
		m.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update member: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows: %w", err)
	}
	if rowsAffected == 0 {
		// The member may have been removed externally between reads;
		// verify before treating an unchanged row as missing.
		existing, err := s.Get(m.ID)
		if err != nil {
			return err
		}
		if existing == nil {
			return fmt.Errorf("member %s no longer exists", m.ID)
		}
	}
	return nil
}

// ListApproved returns all currently approved members, oldest first.
func (s *MemberStore) ListApproved() ([]*models.Member, error) {
	query := `
		SELECT ` + memberColumns + `
		FROM members
		WHERE is_approved = 1
		ORDER BY created_at ASC`

	rows, err := s.DB.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to list approved members: %w", err)
	}
	defer rows.Close()

	var members []*models.Member
	for rows.Next() {
		m, err := scanMember(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan member row: %w", err)
		}
		members = append(members, m)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating member rows: %w", err)
	}
	return members, nil
}

// ListSuspended returns members whose suspension is still in force.
func (s *MemberStore) ListSuspended(now time.Time) ([]*models.Member, error) {
	query := `
		SELECT ` + memberColumns + `
		FROM members
		WHERE blacklist_until IS NOT NULL AND blacklist_until > ?
		ORDER BY blacklist_until ASC`

	rows, err := s.DB.Query(query, now)
	if err != nil {
		return nil, fmt.Errorf("failed to list suspended members: %w", err)
	}
	defer rows.Close()

	var members []*models.Member
	for rows.Next() {
		m, err := scanMember(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan member row: %w", err)
		}
		members = append(members, m)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating member rows: %w", err)
	}
	return members, nil
}

// LoginTaken reports whether a login is already used by a member or a
// pending application.
func (s *MemberStore) LoginTaken(login string) (bool, error) {
	var count int
	query := `
		SELECT COUNT(*) FROM members WHERE login = ?`
	if err := s.DB.QueryRow(query, login).Scan(&count); err != nil {
		return false, fmt.Errorf("failed to check login: %w", err)
	}
	return count > 0, nil
}

// NicknameTaken reports whether a nickname is already used.
func (s *MemberStore) NicknameTaken(nickname string) (bool, error) {
	var count int
	query := `
		SELECT COUNT(*) FROM members WHERE nickname = ?`
	if err := s.DB.QueryRow(query, nickname).Scan(&count); err != nil {
		return false, fmt.Errorf("failed to check nickname: %w", err)
	}
	return count > 0, nil
}
