// migrate aplica o revierte el esquema PostgreSQL embebido.
//
// Uso: go run ./cmd/migrate [up|down|version]
// Lee DATABASE_URL (o DB_HOST, DB_PORT, ...) igual que la API.
package main

import (
	"fmt"
	"os"

	"github.com/jhoicas/stock-api/internal/infrastructure/postgres"
	"github.com/jhoicas/stock-api/pkg/config"
	"github.com/jhoicas/stock-api/pkg/logger"
)

func main() {
	cmd := "up"
	if len(os.Args) > 1 {
		cmd = os.Args[1]
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.Log.Level})

	if err := run(cmd, cfg.DB.ConnectionString(), log); err != nil {
		log.Error().Err(err).Str("cmd", cmd).Msg("migración fallida")
		os.Exit(1)
	}
}

func run(cmd, databaseURL string, log *logger.Logger) error {
	mg, err := postgres.NewMigrator(databaseURL)
	if err != nil {
		return err
	}
	defer mg.Close()

	switch cmd {
	case "up":
		err = mg.Up()
	case "down":
		err = mg.Down()
	case "version":
	default:
		return fmt.Errorf("comando desconocido %q (up|down|version)", cmd)
	}
	if err != nil {
		return err
	}

	v, dirty, err := mg.Version()
	if err != nil {
		return fmt.Errorf("leer versión: %w", err)
	}
	log.Info().Uint("version", v).Bool("dirty", dirty).Str("cmd", cmd).Msg("esquema")
	return nil
}
