package main

import (
	"os"
	"time"

	"mesa-backend/internal/config"
	"mesa-backend/internal/database"
	"mesa-backend/internal/server"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cfg := config.Load()
	database.Init(cfg)

	app := server.New(cfg)

	log.Info().Str("port", cfg.HTTPPort).Str("env", cfg.Env).Msg("server listening")
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
