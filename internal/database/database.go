package database

import (
	"database/sql"
	"fmt"
	"os"
	"time"

	_ "github.com/go-sql-driver/mysql"
)

// OpenDB initializes and returns the connection pool. The DSN comes
// from the DB_DSN environment variable; a local-development fallback
// is used when it is unset.
func OpenDB() (*sql.DB, error) {
	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		dsn = "root:root@tcp(127.0.0.1:3306)/swagmedia?parseTime=true"
	}
	return OpenDBWithDSN(dsn)
}

// OpenDBWithDSN creates and configures a DB connection pool using any
// provided DSN string.
func OpenDBWithDSN(dsn string) (*sql.DB, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("error connecting to database: %w", err)
	}

	return db, nil
}

// EnsureSchema creates the tables on startup when they do not exist.
// The UNIQUE key on address_bans.ip_address backs the one-active-ban-
// per-address invariant: concurrent bans on the same address collapse
// into a single row via the upsert.
func EnsureSchema(db *sql.DB) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS members (
			id CHAR(36) PRIMARY KEY,
			login VARCHAR(100) NOT NULL UNIQUE,
			password_hash VARCHAR(100) NOT NULL,
			nickname VARCHAR(100) NOT NULL UNIQUE,
			vk_link VARCHAR(255) NOT NULL,
			channel_link VARCHAR(255) NOT NULL,
			balance INT NOT NULL DEFAULT 0,
			admin_level INT NOT NULL DEFAULT 0,
			is_approved BOOLEAN NOT NULL DEFAULT FALSE,
			media_type INT NOT NULL DEFAULT 0,
			warnings INT NOT NULL DEFAULT 0,
			previews_used INT NOT NULL DEFAULT 0,
			previews_limit INT NOT NULL DEFAULT 3,
			blacklist_until DATETIME NULL,
			registration_ip VARCHAR(45) NULL,
			created_at DATETIME NOT NULL,
			INDEX idx_members_vk_link (vk_link)
		)`,
		`CREATE TABLE IF NOT EXISTS address_bans (
			id CHAR(36) PRIMARY KEY,
			ip_address VARCHAR(45) NOT NULL UNIQUE,
			vk_link VARCHAR(255) NOT NULL,
			blacklist_until DATETIME NOT NULL,
			reason VARCHAR(500) NOT NULL,
			created_at DATETIME NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS media_access (
			id CHAR(36) PRIMARY KEY,
			user_id CHAR(36) NOT NULL,
			media_user_id CHAR(36) NOT NULL,
			access_type VARCHAR(10) NOT NULL,
			accessed_at DATETIME NOT NULL,
			INDEX idx_media_access_user (user_id)
		)`,
		`CREATE TABLE IF NOT EXISTS applications (
			id CHAR(36) PRIMARY KEY,
			nickname VARCHAR(100) NOT NULL,
			login VARCHAR(100) NOT NULL,
			password_hash VARCHAR(100) NOT NULL,
			vk_link VARCHAR(255) NOT NULL,
			channel_link VARCHAR(255) NOT NULL,
			status VARCHAR(20) NOT NULL DEFAULT 'pending',
			request_ip VARCHAR(45) NULL,
			created_at DATETIME NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS notifications (
			id CHAR(36) PRIMARY KEY,
			user_id CHAR(36) NOT NULL,
			title VARCHAR(255) NOT NULL,
			message TEXT NOT NULL,
			type VARCHAR(20) NOT NULL DEFAULT 'info',
			is_read BOOLEAN NOT NULL DEFAULT FALSE,
			created_at DATETIME NOT NULL,
			INDEX idx_notifications_user (user_id)
		)`,
	}

	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to ensure schema: %w", err)
		}
	}
	return nil
}
