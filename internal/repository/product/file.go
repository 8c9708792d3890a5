package product

import (
	"context"
	"errors"
	"io"

	"github.com/rs/zerolog"
	"go.uber.org/multierr"

	"tienda/internal/domain"
	"tienda/internal/record"
	"tienda/internal/repository/textfile"
)

type fileRepo struct {
	path   string
	logger zerolog.Logger
}

// NewFile stores the catalog as one delimited record per line at path.
func NewFile(path string, logger zerolog.Logger) Repository {
	return &fileRepo{path: path, logger: logger}
}

// Load returns domain.ErrNotFound when the file does not exist yet. Malformed
// records are skipped and logged.
func (r *fileRepo) Load(_ context.Context) ([]domain.Product, error) {
	var products []domain.Product
	err := textfile.Read(r.path, func(f io.Reader) error {
		var decodeErr error
		products, decodeErr = record.DecodeProducts(f)
		if decodeErr == nil {
			return nil
		}
		if !errors.Is(decodeErr, domain.ErrMalformedRecord) {
			return decodeErr
		}
		for _, skipped := range multierr.Errors(decodeErr) {
			r.logger.Warn().Str("path", r.path).Err(skipped).Msg("product repo: skipped malformed record")
		}
		return nil
	})
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			r.logger.Error().Str("path", r.path).Err(err).Msg("product repo: load failed")
		}
		return nil, err
	}
	r.logger.Debug().Str("path", r.path).Int("count", len(products)).Msg("product repo: loaded")
	return products, nil
}

func (r *fileRepo) Save(_ context.Context, products []domain.Product) error {
	err := textfile.Write(r.path, func(w io.Writer) error {
		return record.EncodeProducts(w, products)
	})
	if err != nil {
		r.logger.Error().Str("path", r.path).Err(err).Msg("product repo: save failed")
		return err
	}
	r.logger.Debug().Str("path", r.path).Int("count", len(products)).Msg("product repo: saved")
	return nil
}
