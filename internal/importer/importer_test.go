package importer

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/multierr"

	"tienda/internal/domain"
	productrepo "tienda/internal/repository/product"
	"tienda/internal/seed"
)

func TestTextImporter_RunIntoEmptyStore(t *testing.T) {
	data := "101,Camisetas,10.00,5,Algodon\n102,Pantalones,25.50,10\n"
	repo := productrepo.NewMemory()

	count, err := NewTextImporter(strings.NewReader(data), repo).Run(context.Background())
	if err != nil {
		t.Fatalf("import run: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected 2 products imported, got %d", count)
	}

	stored, err := repo.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(stored) != 2 || stored[0].ID != 101 || stored[1].ID != 102 {
		t.Fatalf("unexpected products: %+v", stored)
	}
	if stored[1].Description != domain.DefaultDescription {
		t.Fatalf("expected default description, got %q", stored[1].Description)
	}
}

func TestTextImporter_RunMergesByID(t *testing.T) {
	repo := productrepo.NewMemory(seed.Products()...)
	data := "103,Zapatos,39.99,8,Rebajados\n200,Bufanda,12,4\n"

	count, err := NewTextImporter(strings.NewReader(data), repo).Run(context.Background())
	if err != nil {
		t.Fatalf("import run: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected 2 imported, got %d", count)
	}

	stored, _ := repo.Load(context.Background())
	if len(stored) != len(seed.Products())+1 {
		t.Fatalf("expected one new product, got %d products", len(stored))
	}
	if stored[2].ID != 103 || stored[2].Stock != 8 || stored[2].Description != "Rebajados" {
		t.Fatalf("expected 103 replaced in place, got %+v", stored[2])
	}
	if last := stored[len(stored)-1]; last.ID != 200 {
		t.Fatalf("expected 200 appended, got %+v", last)
	}
	if repo.Saves() != 1 {
		t.Fatalf("expected a single save, got %d", repo.Saves())
	}
}

func TestTextImporter_RunSkipsMalformed(t *testing.T) {
	data := "101,Camisetas,10.00,5\nnot a record\n102,Pantalones,abc,1\n104,Gorras,7.25,20\n"
	repo := productrepo.NewMemory()

	count, err := NewTextImporter(strings.NewReader(data), repo).Run(context.Background())
	if err != nil {
		t.Fatalf("expected skipped records to be logged only, got %v", err)
	}
	if count != 2 {
		t.Fatalf("expected 2 imported, got %d", count)
	}
}

func TestTextImporter_RunNothingUsable(t *testing.T) {
	data := "garbage\n1,only,three\n"
	repo := productrepo.NewMemory()

	count, err := NewTextImporter(strings.NewReader(data), repo).Run(context.Background())
	if count != 0 {
		t.Fatalf("expected nothing imported, got %d", count)
	}
	if !errors.Is(err, domain.ErrMalformedRecord) || len(multierr.Errors(err)) != 2 {
		t.Fatalf("expected two malformed record errors, got %v", err)
	}
	if repo.Saves() != 0 {
		t.Fatalf("expected no save, got %d", repo.Saves())
	}
}

func TestTextImporter_RunSaveError(t *testing.T) {
	repo := productrepo.NewMemory()
	repo.SaveErr = errors.New("disk full")

	_, err := NewTextImporter(strings.NewReader("1,a,1,1\n"), repo).Run(context.Background())
	if err == nil || !strings.Contains(err.Error(), "disk full") {
		t.Fatalf("expected save error, got %v", err)
	}
}

func TestTextImporter_RunSkipsUnreachableIDs(t *testing.T) {
	data := "0,Fantasma,1,1\n-3,Negativo,1,1\n105,Bufanda,12,4\n"
	repo := productrepo.NewMemory()

	count, err := NewTextImporter(strings.NewReader(data), repo).Run(context.Background())
	if err != nil {
		t.Fatalf("import run: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected only the valid record imported, got %d", count)
	}
	stored, _ := repo.Load(context.Background())
	if len(stored) != 1 || stored[0].ID != 105 {
		t.Fatalf("unexpected products: %+v", stored)
	}
}
