package cart

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

// NewFile stores the snapshot as `id,name,quantity,price` lines at path.
func NewFile(path string, logger zerolog.Logger) Repository {
	return &fileRepo{path: path, logger: logger}
}

func (r *fileRepo) Load(_ context.Context) ([]domain.CartSnapshotLine, error) {
	lines := []domain.CartSnapshotLine{}
	err := textfile.Read(r.path, func(f io.Reader) error {
		decoded, err := record.DecodeCartLines(f)
		lines = append(lines, decoded...)
		if err == nil {
			return nil
		}
		if !errors.Is(err, domain.ErrMalformedRecord) {
			return err
		}
		for _, skipped := range multierr.Errors(err) {
			r.logger.Warn().Str("path", r.path).Err(skipped).Msg("cart repo: skipped malformed record")
		}
		return nil
	})
	if errors.Is(err, domain.ErrNotFound) {
		return []domain.CartSnapshotLine{}, nil
	}
	if err != nil {
		return nil, err
	}
	return lines, nil
}

func (r *fileRepo) Save(_ context.Context, lines []domain.CartSnapshotLine) error {
	err := textfile.Write(r.path, func(w io.Writer) error {
		return record.EncodeCartLines(w, lines)
	})
	if err != nil {
		r.logger.Error().Str("path", r.path).Err(err).Msg("cart repo: save failed")
		return err
	}
	r.logger.Debug().Str("path", r.path).Int("lines", len(lines)).Msg("cart repo: saved")
	return nil
}
