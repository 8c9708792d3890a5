package cart

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.uber.org/multierr"

	"tienda/internal/domain"
	"tienda/internal/record"
)

// RedisClient is the subset of *redis.Client the snapshot store needs.
type RedisClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
}

type redisRepo struct {
	client RedisClient
	key    string
	ttl    time.Duration
	logger zerolog.Logger
}

// NewRedis stores the encoded snapshot text under key. A zero ttl keeps it forever.
func NewRedis(client RedisClient, key string, ttl time.Duration, logger zerolog.Logger) Repository {
	return &redisRepo{client: client, key: key, ttl: ttl, logger: logger}
}

func (r *redisRepo) Load(ctx context.Context) ([]domain.CartSnapshotLine, error) {
	raw, err := r.client.Get(ctx, r.key).Result()
	if errors.Is(err, redis.Nil) {
		return []domain.CartSnapshotLine{}, nil
	}
	if err != nil {
		r.logger.Error().Str("key", r.key).Err(err).Msg("cart repo: redis get failed")
		return nil, err
	}

	lines, err := record.DecodeCartLines(strings.NewReader(raw))
	if err != nil && !errors.Is(err, domain.ErrMalformedRecord) {
		return nil, err
	}
	for _, skipped := range multierr.Errors(err) {
		r.logger.Warn().Str("key", r.key).Err(skipped).Msg("cart repo: skipped malformed record")
	}
	if lines == nil {
		lines = []domain.CartSnapshotLine{}
	}
	return lines, nil
}

func (r *redisRepo) Save(ctx context.Context, lines []domain.CartSnapshotLine) error {
	var buf bytes.Buffer
	if err := record.EncodeCartLines(&buf, lines); err != nil {
		return err
	}
	if err := r.client.Set(ctx, r.key, buf.String(), r.ttl).Err(); err != nil {
		r.logger.Error().Str("key", r.key).Err(err).Msg("cart repo: redis set failed")
		return err
	}
	r.logger.Debug().Str("key", r.key).Int("lines", len(lines)).Msg("cart repo: saved")
	return nil
}
