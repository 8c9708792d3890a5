package product

import (
	"context"

	"tienda/internal/domain"
)

// Repository loads and saves the whole catalog. Save overwrites everything that was
// stored before, in slice order.
type Repository interface {
	Load(ctx context.Context) ([]domain.Product, error)
	Save(ctx context.Context, products []domain.Product) error
}
