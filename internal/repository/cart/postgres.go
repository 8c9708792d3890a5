package cart

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

// NewPostgres keeps the snapshot in the cart_lines table.
func NewPostgres(pool DBPool, logger zerolog.Logger) Repository {
	return &postgresRepo{pool: pool, logger: logger}
}

func (r *postgresRepo) Load(ctx context.Context) ([]domain.CartSnapshotLine, error) {
	const q = `
SELECT product_id, name, quantity, price::text
FROM cart_lines
ORDER BY position ASC
`
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	lines := []domain.CartSnapshotLine{}
	for rows.Next() {
		var (
			line  domain.CartSnapshotLine
			price string
		)
		if err := rows.Scan(&line.ProductID, &line.Name, &line.Quantity, &price); err != nil {
			return nil, err
		}
		if line.Price, err = decimal.NewFromString(price); err != nil {
			return nil, fmt.Errorf("cart line %d: parse price %q: %w", line.ProductID, price, err)
		}
		lines = append(lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}

func (r *postgresRepo) Save(ctx context.Context, lines []domain.CartSnapshotLine) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM cart_lines`); err != nil {
		return err
	}
	for i, line := range lines {
		if _, err := tx.Exec(ctx, `
INSERT INTO cart_lines (product_id, name, quantity, price, position)
VALUES ($1, $2, $3, $4::numeric, $5)
`, line.ProductID, line.Name, line.Quantity, line.Price.String(), i); err != nil {
			r.logger.Error().Int("product_id", line.ProductID).Err(err).Msg("cart repo: insert failed")
			return err
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return err
	}
	r.logger.Debug().Int("lines", len(lines)).Msg("cart repo: saved")
	return nil
}
