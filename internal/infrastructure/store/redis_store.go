package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	redis "github.com/redis/go-redis/v9"

	"github.com/mrops-br/cart-ledger-api/internal/domain"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const redisConnectRetries = 10

// RedisStore keeps the serialized cart document under a single Redis
// key. Same layout as FileStore: one JSON array of line items.
type RedisStore struct {
	rdb    *redis.Client
	key    string
	tracer trace.Tracer
	logger *slog.Logger
}

// NewRedisStore connects to Redis with bounded exponential backoff and
// returns a store bound to key.
func NewRedisStore(addr string, db int, key string, tracer trace.Tracer, logger *slog.Logger) (*RedisStore, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   db,
	})

	for i := 0; i < redisConnectRetries; i++ {
		pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		err := rdb.Ping(pingCtx).Err()
		cancel()

		if err == nil {
			logger.Info("Connected to redis", slog.String("addr", addr))
			break
		}

		if i == redisConnectRetries-1 {
			return nil, fmt.Errorf("failed to connect to redis after %d retries: %w", redisConnectRetries, err)
		}

		backoff := time.Duration(1<<i) * time.Second
		if backoff > 30*time.Second {
			backoff = 30 * time.Second
		}
		logger.Warn("Redis not ready, retrying",
			slog.String("addr", addr),
			slog.Duration("backoff", backoff),
			slog.Int("attempt", i+1),
		)
		time.Sleep(backoff)
	}

	return &RedisStore{
		rdb:    rdb,
		key:    key,
		tracer: tracer,
		logger: logger,
	}, nil
}

// Load reads the cart document. A missing key or malformed value fails
// soft to an empty cart; only transport errors are logged, and even
// those load as empty rather than surfacing to the ledger.
func (s *RedisStore) Load(ctx context.Context) ([]domain.LineItem, error) {
	ctx, span := s.tracer.Start(ctx, "RedisStore.Load")
	defer span.End()

	span.SetAttributes(attribute.String("cart.store.key", s.key))

	data, err := s.rdb.Get(ctx, s.key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.logger.WarnContext(ctx, "Failed to read cart from redis, treating as empty",
				slog.String("key", s.key),
				slog.String("error", err.Error()),
			)
		}
		span.SetStatus(codes.Ok, "No stored cart")
		return []domain.LineItem{}, nil
	}

	var items []domain.LineItem
	if err := json.Unmarshal(data, &items); err != nil {
		s.logger.WarnContext(ctx, "Malformed cart value, treating as empty",
			slog.String("key", s.key),
			slog.String("error", err.Error()),
		)
		span.SetStatus(codes.Ok, "Malformed stored cart")
		return []domain.LineItem{}, nil
	}

	span.SetAttributes(attribute.Int("cart.items", len(items)))
	span.SetStatus(codes.Ok, "Cart loaded")
	return items, nil
}

// Save writes the full cart document under the store key.
func (s *RedisStore) Save(ctx context.Context, items []domain.LineItem) error {
	ctx, span := s.tracer.Start(ctx, "RedisStore.Save")
	defer span.End()

	span.SetAttributes(
		attribute.String("cart.store.key", s.key),
		attribute.Int("cart.items", len(items)),
	)

	data, err := marshalItems(items)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to serialize cart")
		return err
	}

	if err := s.rdb.Set(ctx, s.key, data, 0).Err(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to write cart")
		return err
	}

	s.logger.DebugContext(ctx, "Cart persisted",
		slog.String("key", s.key),
		slog.Int("items", len(items)),
	)

	span.SetStatus(codes.Ok, "Cart saved")
	return nil
}

// Close releases the underlying client.
func (s *RedisStore) Close() error {
	return s.rdb.Close()
}
