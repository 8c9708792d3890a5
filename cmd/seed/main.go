package main

import (
	"context"
	"fmt"
	"os"

	"tienda/internal/bootstrap"
	"tienda/internal/seed"
)

func main() {
	cfg, err := bootstrap.LoadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	cfg.App.LogFile = ""
	log, _, _ := bootstrap.NewLogger("seed", cfg.App)

	ctx := context.Background()
	res, err := bootstrap.Open(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("open stores")
	}
	defer res.Close()

	added, err := seed.Apply(ctx, res.Products)
	if err != nil {
		log.Fatal().Err(err).Msg("seed apply")
	}
	log.Info().Int("added", added).Str("driver", cfg.Store.Driver).Msg("seed applied")
}
