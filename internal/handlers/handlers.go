package handlers

import (
	"database/sql"

	"github.com/rs/zerolog"
	"github.com/swagmedia/swagmedia-golang/internal/access"
	"github.com/swagmedia/swagmedia-golang/internal/store"
)

// Handlers struct holds all dependencies for our handlers.
type Handlers struct {
	DB *sql.DB

	Members       *store.MemberStore
	Applications  *store.ApplicationStore
	Bans          *store.AddressBanStore
	Notifications *store.NotificationStore

	Policy   *access.Policy
	Quota    *access.QuotaTracker
	Registry *access.SuspensionRegistry
	Warnings *access.WarningLedger
	Gateway  *access.Gateway
	Clock    access.Clock

	Log zerolog.Logger
}
