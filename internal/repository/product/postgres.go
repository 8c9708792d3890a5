package product

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"tienda/internal/domain"
)

// DBPool matches the methods from *pgxpool.Pool that the repository uses.
type DBPool interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Begin(ctx context.Context) (pgx.Tx, error)
}

type postgresRepo struct {
	pool   DBPool
	logger zerolog.Logger
}

// NewPostgres keeps the catalog in the products table, ordered by position.
func NewPostgres(pool DBPool, logger zerolog.Logger) Repository {
	return &postgresRepo{pool: pool, logger: logger}
}

func (r *postgresRepo) Load(ctx context.Context) ([]domain.Product, error) {
	const q = `
SELECT id, name, price::text, stock, description
FROM products
ORDER BY position ASC
`
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		r.logger.Error().Err(err).Msg("product repo: list failed")
		return nil, err
	}
	defer rows.Close()

	result := []domain.Product{}
	for rows.Next() {
		var (
			p     domain.Product
			price string
		)
		if err := rows.Scan(&p.ID, &p.Name, &price, &p.Stock, &p.Description); err != nil {
			return nil, err
		}
		p.Price, err = decimal.NewFromString(price)
		if err != nil {
			return nil, fmt.Errorf("product %d: parse price %q: %w", p.ID, price, err)
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("product repo: list rows failed")
		return nil, err
	}
	r.logger.Debug().Int("count", len(result)).Msg("product repo: loaded")
	return result, nil
}

func (r *postgresRepo) Save(ctx context.Context, products []domain.Product) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM products`); err != nil {
		r.logger.Error().Err(err).Msg("product repo: clear failed")
		return err
	}

	const insert = `
INSERT INTO products (id, name, price, stock, description, position)
VALUES ($1, $2, $3::numeric, $4, $5, $6)
`
	for i, p := range products {
		if _, err := tx.Exec(ctx, insert, p.ID, p.Name, p.Price.String(), p.Stock, p.Description, i); err != nil {
			r.logger.Error().Int("id", p.ID).Err(err).Msg("product repo: insert failed")
			return fmt.Errorf("insert product %d: %w", p.ID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return err
	}
	r.logger.Debug().Int("count", len(products)).Msg("product repo: saved")
	return nil
}
