package main

import (
	"context"
	"fmt"
	"os"

	"tienda/internal/bootstrap"
	"tienda/internal/console"
	"tienda/internal/seed"
	"tienda/internal/service/auth"
	"tienda/internal/service/cart"
	"tienda/internal/service/catalog"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := bootstrap.LoadConfig()
	if err != nil {
		return err
	}
	log, logCloser, err := bootstrap.NewLogger("tienda", cfg.App)
	if err != nil {
		return err
	}
	defer logCloser.Close()

	ctx := log.WithContext(context.Background())
	res, err := bootstrap.Open(ctx, cfg, log)
	if err != nil {
		log.Error().Err(err).Msg("open stores")
		return err
	}
	defer res.Close()

	opts := []catalog.Option{catalog.WithLogger(log)}
	if cfg.Store.SeedDefaults {
		opts = append(opts, catalog.WithSeed(seed.Products))
	}
	cat := catalog.New(res.Products, opts...)
	if err := cat.Load(ctx); err != nil {
		log.Error().Err(err).Msg("load catalog")
		return err
	}

	accounts, err := auth.FromConfig(cfg.Auth)
	if err != nil {
		return err
	}

	app := console.New(cat, cart.New(cat, res.Cart, log), accounts, os.Stdin, os.Stdout, console.Options{
		SaveCartOnExit: cfg.Cart.SaveOnExit,
		Logger:         log,
	})
	log.Info().Str("store_driver", cfg.Store.Driver).Str("cart_driver", cfg.Cart.Driver).Msg("tienda: started")
	if err := app.Run(ctx); err != nil {
		log.Error().Err(err).Msg("console stopped")
		return err
	}
	log.Info().Msg("tienda: stopped")
	return nil
}
