package cart

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tienda/internal/domain"
)

func sampleLines() []domain.CartSnapshotLine {
	return []domain.CartSnapshotLine{
		{ProductID: 101, Name: "Camisetas", Quantity: 3, Price: decimal.RequireFromString("10.00")},
		{ProductID: 103, Name: "Zapatos", Quantity: 1, Price: decimal.RequireFromString("49.99")},
	}
}

func TestFile_LoadMissingIsEmpty(t *testing.T) {
	repo := NewFile(filepath.Join(t.TempDir(), "carrito.txt"), zerolog.Nop())
	lines, err := repo.Load(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, lines)
	assert.Empty(t, lines)
}

func TestFile_SaveThenLoad(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "carrito.txt")
	repo := NewFile(path, zerolog.Nop())

	require.NoError(t, repo.Save(ctx, sampleLines()))
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "101,Camisetas,3,10\n103,Zapatos,1,49.99\n", string(raw))

	got, err := repo.Load(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, 101, got[0].ProductID)
	assert.Equal(t, 3, got[0].Quantity)
	assert.True(t, got[1].Price.Equal(decimal.RequireFromString("49.99")))
}

func TestFile_LoadSkipsMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "carrito.txt")
	require.NoError(t, os.WriteFile(path, []byte("101,Camisetas,3,10\nnope\n"), 0o644))

	got, err := NewFile(path, zerolog.Nop()).Load(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 1)
}
