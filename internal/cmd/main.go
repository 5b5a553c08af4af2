package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/jonboulle/clockwork"
	"github.com/rs/cors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/sadiqful/tournament/clients/stripe"
	"github.com/sadiqful/tournament/internal/auth"
	"github.com/sadiqful/tournament/internal/dbconfig"
	"github.com/sadiqful/tournament/internal/events"
	"github.com/sadiqful/tournament/internal/livefeed"
	"github.com/sadiqful/tournament/internal/matches"
	"github.com/sadiqful/tournament/internal/notifications"
	"github.com/sadiqful/tournament/internal/payments"
	"github.com/sadiqful/tournament/internal/players"
	"github.com/sadiqful/tournament/internal/standings"
	"github.com/sadiqful/tournament/internal/teams"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Warn().Err(err).Msg("could not load .env file")
	}

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	cfg, err := LoadConfig(getEnv("CONFIG_PATH", "config.yaml"))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Database
	dbCfg := dbconfig.NewConfigFromEnv()
	pool, err := pgxpool.New(ctx, dbCfg.DSN())
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create database pool")
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to ping database")
	}

	// Event bus
	busCfg := events.DefaultJetStreamConfig()
	busCfg.URL = cfg.NATS.URL
	bus, err := events.NewJetStreamBus(busCfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to event bus")
	}
	defer bus.Close()

	dispatcher := events.NewJetStreamDispatcher(bus)

	log.Info().
		Str("database", dbCfg.Database).
		Str("nats_url", cfg.NATS.URL).
		Int("port", cfg.Server.Port).
		Msg("starting tournament server")

	// Domain wiring
	teamsApp := teams.NewApp(teams.NewRepository(pool), dispatcher)
	playersApp := players.NewApp(players.NewRepository(pool), teamsApp)

	stripeClient := stripe.NewClient(cfg.Stripe.SecretKey)
	verifier := stripe.NewWebhookVerifier(cfg.Stripe.WebhookSecret, clockwork.NewRealClock())
	paymentsApp := payments.NewApp(payments.NewRepository(pool), teamsApp, stripeClient, verifier, dispatcher)

	matchesRepo := matches.NewRepository(pool)
	matchesApp := matches.NewApp(matchesRepo, teamsApp, bus)
	standingsApp := standings.NewApp(teams.NewRepository(pool), matchesRepo)

	authApp := auth.NewApp(auth.NewRepository(pool), cfg.Auth.JWTSecret)
	authMW := auth.NewMiddleware(authApp)

	// Live feed
	connectionManager := livefeed.NewConnectionManager(livefeed.DefaultConnectionConfig())
	feedCfg := livefeed.DefaultConsumerConfig()
	feedCfg.StreamName = bus.StreamName()
	feedCfg.SubjectFilter = bus.SubjectFor(events.SubjectMatches)
	feedConsumer, err := livefeed.NewEventConsumer(bus.Conn(), connectionManager, feedCfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create livefeed consumer")
	}

	// Email worker
	var mailer notifications.Mailer = notifications.LogMailer{}
	if cfg.SMTP.Host != "" {
		mailer = notifications.NewSMTPMailer(notifications.SMTPConfig{
			Host:     cfg.SMTP.Host,
			Port:     cfg.SMTP.Port,
			Username: cfg.SMTP.Username,
			Password: cfg.SMTP.Password,
			From:     cfg.SMTP.From,
		})
	}
	workerCfg := notifications.DefaultWorkerConfig()
	workerCfg.StreamName = bus.StreamName()
	workerCfg.SubjectFilter = bus.SubjectFor(events.SubjectNotifications)
	emailWorker, err := notifications.NewWorker(bus.Conn(), mailer, workerCfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create email worker")
	}

	// HTTP routes
	mux := http.NewServeMux()
	auth.NewHandler(authApp).RegisterRoutes(mux)
	teams.NewHandler(teamsApp).RegisterRoutes(mux)
	players.NewHandler(playersApp).RegisterRoutes(mux)
	payments.NewHandler(paymentsApp).RegisterRoutes(mux)
	matches.NewHandler(matchesApp).RegisterRoutes(mux)
	standings.NewHandler(standingsApp).RegisterRoutes(mux)
	livefeed.NewHandler(connectionManager).RegisterRoutes(mux)

	adminMux := http.NewServeMux()
	teams.NewHandler(teamsApp).RegisterAdminRoutes(adminMux)
	players.NewHandler(playersApp).RegisterAdminRoutes(adminMux)
	payments.NewHandler(paymentsApp).RegisterAdminRoutes(adminMux)
	matches.NewHandler(matchesApp).RegisterAdminRoutes(adminMux)
	mux.Handle("/api/admin/", authMW.RequireAdmin(adminMux))

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	corsOptions := cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Authorization", "Content-Type", "Stripe-Signature"},
		AllowCredentials: true,
	}
	if len(corsOptions.AllowedOrigins) == 0 {
		corsOptions.AllowedOrigins = []string{"*"}
		corsOptions.AllowCredentials = false
	}

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      cors.New(corsOptions).Handler(mux),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Background services
	go connectionManager.Start(ctx)
	go func() {
		if err := feedConsumer.Start(ctx); err != nil {
			log.Error().Err(err).Msg("livefeed consumer failed")
		}
	}()
	go func() {
		if err := emailWorker.Start(ctx); err != nil {
			log.Error().Err(err).Msg("email worker failed")
		}
	}()

	go func() {
		log.Info().Str("addr", server.Addr).Msg("HTTP server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	sig := <-sigChan

	log.Info().Str("signal", sig.String()).Msg("received shutdown signal")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown failed")
	}

	cancel()
	time.Sleep(1 * time.Second)

	log.Info().Msg("tournament server shutdown complete")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
