package importer

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/rs/zerolog"
	"go.uber.org/multierr"

	"tienda/internal/domain"
	"tienda/internal/record"
)

// ProductStore is the catalog the import is merged into.
type ProductStore interface {
	Load(ctx context.Context) ([]domain.Product, error)
	Save(ctx context.Context, products []domain.Product) error
}

// TextImporter reads catalog records in the `id,name,price,stock[,description]`
// format and upserts them by id.
type TextImporter struct {
	reader io.Reader
	repo   ProductStore
	logger zerolog.Logger
}

func NewTextImporter(r io.Reader, repo ProductStore) *TextImporter {
	return &TextImporter{reader: r, repo: repo, logger: zerolog.Nop()}
}

func (i *TextImporter) WithLogger(logger zerolog.Logger) *TextImporter {
	i.logger = logger
	return i
}

// Run merges every decodable record into the store and saves once. Records whose
// id already exists replace the stored product in place; new ids are appended in
// input order. Malformed records are skipped and logged; they are only returned as
// an error when nothing could be imported.
func (i *TextImporter) Run(ctx context.Context) (int, error) {
	incoming, decodeErr := record.DecodeProducts(i.reader)
	if decodeErr != nil && !errors.Is(decodeErr, domain.ErrMalformedRecord) {
		return 0, fmt.Errorf("read records: %w", decodeErr)
	}
	for _, skipped := range multierr.Errors(decodeErr) {
		i.logger.Warn().Err(skipped).Msg("importer: skipped malformed record")
	}
	if len(incoming) == 0 {
		return 0, decodeErr
	}

	existing, err := i.repo.Load(ctx)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return 0, fmt.Errorf("load catalog: %w", err)
	}

	index := make(map[int]int, len(existing)+len(incoming))
	for pos, p := range existing {
		index[p.ID] = pos
	}
	updated := 0
	for _, p := range incoming {
		if pos, ok := index[p.ID]; ok {
			existing[pos] = p
			updated++
			continue
		}
		index[p.ID] = len(existing)
		existing = append(existing, p)
	}

	if err := i.repo.Save(ctx, existing); err != nil {
		return 0, fmt.Errorf("save catalog: %w", err)
	}
	i.logger.Info().
		Int("imported", len(incoming)).
		Int("updated", updated).
		Int("skipped", len(multierr.Errors(decodeErr))).
		Msg("importer: catalog merged")
	return len(incoming), nil
}
