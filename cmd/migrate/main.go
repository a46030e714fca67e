// cmd/migrate/main.go — applies or reverts the embedded SQL migrations.
// Uso: go run ./cmd/migrate [up|down [n]]
package main

import (
	"os"
	"strconv"

	"comanda/internal/config"
	"comanda/internal/infra"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	db, err := infra.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}

	cmd := "up"
	if len(os.Args) > 1 {
		cmd = os.Args[1]
	}
	switch cmd {
	case "up":
		err = infra.RunMigrations(db)
	case "down":
		n := 1
		if len(os.Args) > 2 {
			if n, err = strconv.Atoi(os.Args[2]); err != nil {
				log.Fatal().Err(err).Msg("n must be an integer")
			}
		}
		err = infra.RollbackMigrations(db, n)
	default:
		log.Fatal().Str("cmd", cmd).Msg("uso: migrate [up|down [n]]")
	}
	if err != nil {
		log.Fatal().Err(err).Str("cmd", cmd).Msg("migration failed")
	}
	log.Info().Str("cmd", cmd).Msg("ok")
}
