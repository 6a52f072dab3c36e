package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/swagmedia/swagmedia-golang/internal/access"
	"github.com/swagmedia/swagmedia-golang/internal/database"
	"github.com/swagmedia/swagmedia-golang/internal/handlers"
	"github.com/swagmedia/swagmedia-golang/internal/routes"
	"github.com/swagmedia/swagmedia-golang/internal/store"
)

func main() {
	// --- Load Environment Variables (.env) ---
	if err := godotenv.Load(); err != nil {
		log.Warn().Msg("could not load .env file, relying on system environment variables")
	}

	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()

	// --- Database Connection ---
	db, err := database.OpenDB()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	if err := database.EnsureSchema(db); err != nil {
		log.Fatal().Err(err).Msg("failed to ensure database schema")
	}
	logger.Info().Msg("database connection pool established")

	// --- Storage ---
	members := store.NewMemberStore(db)
	bans := store.NewAddressBanStore(db)
	events := store.NewAccessEventStore(db)
	applications := store.NewApplicationStore(db)
	notifications := store.NewNotificationStore(db)

	// --- Gating Core ---
	clock := access.SystemClock{}
	policy := access.NewPolicy(clock)
	quota := access.NewQuotaTracker(members)
	registry := access.NewSuspensionRegistry(members, bans, clock, logger)
	warnings := access.NewWarningLedger(members, registry, logger)
	gateway := access.NewGateway(members, policy, quota, registry, events, clock, logger)

	// --- Application Setup ---
	app := &handlers.Handlers{
		DB:            db,
		Members:       members,
		Applications:  applications,
		Bans:          bans,
		Notifications: notifications,
		Policy:        policy,
		Quota:         quota,
		Registry:      registry,
		Warnings:      warnings,
		Gateway:       gateway,
		Clock:         clock,
		Log:           logger,
	}

	// --- Router Setup ---
	router := routes.SetupRouter(app)

	// --- Start Server ---
	addr := os.Getenv("LISTEN_ADDR")
	if addr == "" {
		addr = ":8001"
	}
	logger.Info().Str("addr", addr).Msg("starting SwagMedia API server")
	if err := router.Run(addr); err != nil {
		log.Fatal().Err(err).Msg("failed to start server")
	}
}
