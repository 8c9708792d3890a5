package bootstrap

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"tienda/internal/config"
	"tienda/internal/db"
	"tienda/internal/logger"
	cartrepo "tienda/internal/repository/cart"
	productrepo "tienda/internal/repository/product"
)

const pingTimeout = 5 * time.Second

// Resources holds the configured stores for one process. Close releases every
// connection and file opened by Open.
type Resources struct {
	Config   *config.Config
	Logger   zerolog.Logger
	Products productrepo.Repository
	Cart     cartrepo.Repository

	pool    *pgxpool.Pool
	closers []func()
}

// LoadConfig reads an optional .env file and then the environment.
func LoadConfig() (*config.Config, error) {
	_ = godotenv.Load()
	return config.Load()
}

// NewLogger builds the process logger. Logs go to the configured file when one is
// set so they never mix with the console prompts.
func NewLogger(service string, cfg config.AppConfig) (zerolog.Logger, io.Closer, error) {
	var out io.Writer = os.Stderr
	var closer io.Closer = nopCloser{}
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return zerolog.Nop(), nil, fmt.Errorf("open log file: %w", err)
		}
		out, closer = f, f
	}
	return logger.New(logger.Options{
		ServiceName: service,
		Level:       logger.ParseLevel(cfg.LogLevel),
		Format:      cfg.LogFormat,
		Output:      out,
	}), closer, nil
}

// Open wires the product and cart stores selected by cfg.
func Open(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*Resources, error) {
	r := &Resources{Config: cfg, Logger: log}

	products, err := r.openProducts(ctx)
	if err != nil {
		r.Close()
		return nil, err
	}
	r.Products = products

	snapshot, err := r.openCart(ctx)
	if err != nil {
		r.Close()
		return nil, err
	}
	r.Cart = snapshot

	log.Debug().
		Str("store_driver", cfg.Store.Driver).
		Str("cart_driver", cfg.Cart.Driver).
		Msg("bootstrap: stores ready")
	return r, nil
}

// Close releases resources in reverse order of acquisition.
func (r *Resources) Close() {
	for i := len(r.closers) - 1; i >= 0; i-- {
		r.closers[i]()
	}
	r.closers = nil
}

func (r *Resources) openProducts(ctx context.Context) (productrepo.Repository, error) {
	switch r.Config.Store.Driver {
	case config.DriverPostgres:
		pool, err := r.postgres(ctx)
		if err != nil {
			return nil, err
		}
		return productrepo.NewPostgres(pool, r.Logger), nil
	case config.DriverFile:
		return productrepo.NewFile(r.Config.Store.CatalogPath, r.Logger), nil
	}
	return nil, fmt.Errorf("bootstrap: unsupported store driver %q", r.Config.Store.Driver)
}

func (r *Resources) openCart(ctx context.Context) (cartrepo.Repository, error) {
	cfg := r.Config
	switch cfg.Cart.Driver {
	case config.DriverRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
		defer cancel()
		if err := client.Ping(pingCtx).Err(); err != nil {
			_ = client.Close()
			return nil, fmt.Errorf("ping redis %s: %w", cfg.Redis.Addr, err)
		}
		r.closers = append(r.closers, func() { _ = client.Close() })
		return cartrepo.NewRedis(client, cfg.Redis.CartKey, cfg.Redis.CartTTL, r.Logger), nil
	case config.DriverPostgres:
		pool, err := r.postgres(ctx)
		if err != nil {
			return nil, err
		}
		return cartrepo.NewPostgres(pool, r.Logger), nil
	case config.DriverFile:
		return cartrepo.NewFile(cfg.Cart.Path, r.Logger), nil
	}
	return nil, fmt.Errorf("bootstrap: unsupported cart driver %q", cfg.Cart.Driver)
}

// postgres connects once and shares the pool between both stores.
func (r *Resources) postgres(ctx context.Context) (*pgxpool.Pool, error) {
	if r.pool != nil {
		return r.pool, nil
	}
	pool, err := db.Connect(ctx, r.Config.DB.DSN, r.Logger)
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}
	r.pool = pool
	r.closers = append(r.closers, pool.Close)
	return pool, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
