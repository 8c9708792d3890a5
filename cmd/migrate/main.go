package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"tienda/internal/bootstrap"
	"tienda/internal/config"
	"tienda/internal/migrate"
)

func main() {
	status := flag.Bool("status", false, "print the current schema version instead of migrating")
	flag.Parse()

	cfg, err := bootstrap.LoadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	cfg.App.LogFile = ""
	log, _, _ := bootstrap.NewLogger("migrate", cfg.App)

	if cfg.DB.DSN == "" {
		log.Fatal().Msgf("%s_DB_DSN is required", config.EnvPrefix)
	}

	ctx := context.Background()
	if *status {
		version, dirty, err := migrate.Version(ctx, cfg.DB.DSN)
		if err != nil {
			log.Fatal().Err(err).Msg("read schema version")
		}
		log.Info().Uint("version", version).Bool("dirty", dirty).Msg("schema version")
		return
	}

	if err := migrate.Apply(ctx, cfg.DB.DSN); err != nil {
		log.Fatal().Err(err).Msg("apply migrations")
	}
	log.Info().Msg("migrations applied")
}
