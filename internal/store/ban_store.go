package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/swagmedia/swagmedia-golang/internal/models"
)

// AddressBanStore is the MySQL-backed address-ban storage. The
// address_bans table carries a UNIQUE key on ip_address, so the upsert
// is atomic per address and the at-most-one-record invariant holds
// under concurrent bans.
type AddressBanStore struct {
	DB *sql.DB
}

func NewAddressBanStore(db *sql.DB) *AddressBanStore {
	return &AddressBanStore{DB: db}
}

// Get returns (nil, nil) when the address has no ban record.
func (s *AddressBanStore) Get(address string) (*models.AddressBan, error) {
	query := `
		SELECT id, ip_address, vk_link, blacklist_until, reason, created_at
		FROM address_bans
		WHERE ip_address = ?`

	var ban models.AddressBan
	err := s.DB.QueryRow(query, address).Scan(
		&ban.ID,
		&ban.IPAddress,
		&ban.VKLink,
		&ban.ExpiresAt,
		&ban.Reason,
		&ban.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query address ban: %w", err)
	}
	return &ban, nil
}

// Upsert writes the ban, overwriting expiry, reason and origin link if
// a record for the address already exists.
func (s *AddressBanStore) Upsert(ban *models.AddressBan) error {
	query := `
		INSERT INTO address_bans
		(id, ip_address, vk_link, blacklist_until, reason, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE
		vk_link = VALUES(vk_link),
		blacklist_until = VALUES(blacklist_until),
		reason = VALUES(reason)`

	_, err := s.DB.Exec(query,
		ban.ID, ban.IPAddress, ban.VKLink, ban.ExpiresAt, ban.Reason, ban.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert address ban: %w", err)
	}
	return nil
}

// Delete removes the ban record for an address. Deleting an address
// without a record is not an error.
func (s *AddressBanStore) Delete(address string) error {
	query := `
		DELETE FROM address_bans
		WHERE ip_address = ?`

	if _, err := s.DB.Exec(query, address); err != nil {
		return fmt.Errorf("failed to delete address ban: %w", err)
	}
	return nil
}

// ListActive returns the bans still in force, soonest-expiring first.
func (s *AddressBanStore) ListActive(now time.Time) ([]*models.AddressBan, error) {
	query := `
		SELECT id, ip_address, vk_link, blacklist_until, reason, created_at
		FROM address_bans
		WHERE blacklist_until > ?
		ORDER BY blacklist_until ASC`

	rows, err := s.DB.Query(query, now)
	if err != nil {
		return nil, fmt.Errorf("failed to list address bans: %w", err)
	}
	defer rows.Close()

	var bans []*models.AddressBan
	for rows.Next() {
		var ban models.AddressBan
		if err := rows.Scan(
			&ban.ID,
			&ban.IPAddress,
			&ban.VKLink,
			&ban.ExpiresAt,
			&ban.Reason,
			&ban.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan address ban row: %w", err)
		}
		bans = append(bans, &ban)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating address ban rows: %w", err)
	}
	return bans, nil
}
