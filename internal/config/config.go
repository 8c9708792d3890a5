package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix is the prefix every configuration variable carries.
const EnvPrefix = "TIENDA"

const (
	DriverFile     = "file"
	DriverPostgres = "postgres"
	DriverRedis    = "redis"
)

// Config holds runtime configuration parsed from environment variables.
type Config struct {
	App   AppConfig
	Store StoreConfig
	Cart  CartConfig
	DB    DBConfig
	Redis RedisConfig
	Auth  AuthConfig
}

type AppConfig struct {
	LogLevel  string `envconfig:"TIENDA_LOG_LEVEL" default:"error"`
	LogFormat string `envconfig:"TIENDA_LOG_FORMAT" default:"console"`
	LogFile   string `envconfig:"TIENDA_LOG_FILE"`
}

type StoreConfig struct {
	Driver       string `envconfig:"TIENDA_STORE_DRIVER" default:"file"`
	CatalogPath  string `envconfig:"TIENDA_CATALOG_PATH" default:"productos.txt"`
	SeedDefaults bool   `envconfig:"TIENDA_SEED_DEFAULTS" default:"true"`
}

type CartConfig struct {
	Driver     string `envconfig:"TIENDA_CART_DRIVER" default:"file"`
	Path       string `envconfig:"TIENDA_CART_PATH" default:"carrito.txt"`
	SaveOnExit bool   `envconfig:"TIENDA_CART_SAVE_ON_EXIT" default:"false"`
}

type DBConfig struct {
	DSN string `envconfig:"TIENDA_DB_DSN"`
}

type RedisConfig struct {
	Addr     string        `envconfig:"TIENDA_REDIS_ADDR" default:"localhost:6379"`
	Password string        `envconfig:"TIENDA_REDIS_PASSWORD"`
	DB       int           `envconfig:"TIENDA_REDIS_DB" default:"0"`
	CartKey  string        `envconfig:"TIENDA_REDIS_CART_KEY" default:"tienda:cart"`
	CartTTL  time.Duration `envconfig:"TIENDA_REDIS_CART_TTL" default:"0s"`
}

type AuthConfig struct {
	AdminName     string `envconfig:"TIENDA_ADMIN_NAME" default:"admin"`
	AdminPassword string `envconfig:"TIENDA_ADMIN_PASSWORD" default:"admin"`
	UserName      string `envconfig:"TIENDA_USER_NAME" default:"user"`
	UserPassword  string `envconfig:"TIENDA_USER_PASSWORD"`
}

// Load reads the environment into a Config and validates it.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	cfg.Store.Driver = strings.ToLower(strings.TrimSpace(cfg.Store.Driver))
	cfg.Cart.Driver = strings.ToLower(strings.TrimSpace(cfg.Cart.Driver))
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects driver combinations that cannot be wired.
func (c Config) Validate() error {
	switch c.Store.Driver {
	case DriverFile:
		if strings.TrimSpace(c.Store.CatalogPath) == "" {
			return fmt.Errorf("config: %s_CATALOG_PATH required for the file store", EnvPrefix)
		}
	case DriverPostgres:
		if strings.TrimSpace(c.DB.DSN) == "" {
			return fmt.Errorf("config: %s_DB_DSN required for the postgres store", EnvPrefix)
		}
	default:
		return fmt.Errorf("config: unsupported store driver %q", c.Store.Driver)
	}

	switch c.Cart.Driver {
	case DriverFile:
		if strings.TrimSpace(c.Cart.Path) == "" {
			return fmt.Errorf("config: %s_CART_PATH required for the file cart store", EnvPrefix)
		}
	case DriverRedis:
		if strings.TrimSpace(c.Redis.Addr) == "" || strings.TrimSpace(c.Redis.CartKey) == "" {
			return fmt.Errorf("config: %s_REDIS_ADDR and %s_REDIS_CART_KEY required for the redis cart store", EnvPrefix, EnvPrefix)
		}
	case DriverPostgres:
		if strings.TrimSpace(c.DB.DSN) == "" {
			return fmt.Errorf("config: %s_DB_DSN required for the postgres cart store", EnvPrefix)
		}
	default:
		return fmt.Errorf("config: unsupported cart driver %q", c.Cart.Driver)
	}
	return nil
}
