// Command create-admin bootstraps an admin account so the admin API can be
// used on a fresh deployment.
package main

import (
	"context"
	"flag"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/sadiqful/tournament/internal/auth"
	"github.com/sadiqful/tournament/internal/dbconfig"
)

func main() {
	email := flag.String("email", "", "admin email address")
	password := flag.String("password", "", "admin password")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Warn().Err(err).Msg("could not load .env file")
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	if *email == "" || *password == "" {
		log.Fatal().Msg("both -email and -password are required")
	}

	ctx := context.Background()

	pool, err := pgxpool.New(ctx, dbconfig.NewConfigFromEnv().DSN())
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create database pool")
	}
	defer pool.Close()

	// The JWT secret is unused here; only the hashing path runs.
	app := auth.NewApp(auth.NewRepository(pool), "unused")
	admin, err := app.CreateAdmin(ctx, *email, *password)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create admin")
	}

	log.Info().Str("admin_id", admin.ID.String()).Str("email", admin.Email).Msg("admin created")
}
