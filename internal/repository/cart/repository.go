package cart

import (
	"context"

	"tienda/internal/domain"
)

// Repository persists one cart snapshot. Load returns an empty slice when nothing
// was saved yet.
type Repository interface {
	Load(ctx context.Context) ([]domain.CartSnapshotLine, error)
	Save(ctx context.Context, lines []domain.CartSnapshotLine) error
}
