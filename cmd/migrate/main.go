// Command migrate applies the postgres schema.
package main

import (
	"context"
	"database/sql"
	"time"

	"toiletmap-api/internal/config"
	"toiletmap-api/internal/logging"
	"toiletmap-api/internal/repository"

	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatal().Err(err).Msg("cannot load config")
	}
	logging.Setup(cfg.LogLevel, cfg.LogFormat)

	if cfg.StoreBackend != config.BackendPostgres {
		log.Info().Str("backend", cfg.StoreBackend).Msg("nothing to migrate")
		return
	}

	db, err := sql.Open("postgres", cfg.DBSource)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot open db")
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		log.Fatal().Err(err).Msg("cannot reach db")
	}
	if err := repository.EnsureSchema(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("schema migration failed")
	}
	log.Info().Int("statements", len(repository.Schema)).Msg("schema applied")
}
