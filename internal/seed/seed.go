package seed

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"tienda/internal/domain"
)

type productSeed struct {
	ID          int
	Name        string
	Price       string
	Stock       int
	Description string
}

var defaults = []productSeed{
	{ID: 101, Name: "Camisetas", Price: "10.00", Stock: 5, Description: "Camiseta de algodon"},
	{ID: 102, Name: "Pantalones", Price: "25.50", Stock: 10, Description: "Pantalon vaquero"},
	{ID: 103, Name: "Zapatos", Price: "49.99", Stock: 3, Description: "Zapato de cuero"},
	{ID: 104, Name: "Gorras", Price: "7.25", Stock: 20, Description: "Gorra ajustable"},
}

// Products returns a fresh copy of the default sample catalog.
func Products() []domain.Product {
	out := make([]domain.Product, 0, len(defaults))
	for _, s := range defaults {
		out = append(out, domain.Product{
			ID:          s.ID,
			Name:        s.Name,
			Price:       decimal.RequireFromString(s.Price),
			Stock:       s.Stock,
			Description: s.Description,
		})
	}
	return out
}

type store interface {
	Load(ctx context.Context) ([]domain.Product, error)
	Save(ctx context.Context, products []domain.Product) error
}

// Apply appends every default product whose id is not in the store yet and saves.
// Existing products, including their stock, are left untouched. It returns how many
// products were added.
func Apply(ctx context.Context, repo store) (int, error) {
	existing, err := repo.Load(ctx)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return 0, fmt.Errorf("load catalog: %w", err)
	}

	taken := make(map[int]struct{}, len(existing))
	for _, p := range existing {
		taken[p.ID] = struct{}{}
	}

	added := 0
	for _, p := range Products() {
		if _, ok := taken[p.ID]; ok {
			continue
		}
		existing = append(existing, p)
		added++
	}

	if added == 0 && err == nil {
		return 0, nil
	}
	if err := repo.Save(ctx, existing); err != nil {
		return 0, fmt.Errorf("save catalog: %w", err)
	}
	return added, nil
}
