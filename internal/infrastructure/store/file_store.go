package store

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/mrops-br/cart-ledger-api/internal/domain"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// FileStore keeps the serialized cart as one JSON document on local
// disk. It is the durable local-storage backend: a missing or
// unparseable file loads as an empty cart and is never an error.
type FileStore struct {
	path   string
	tracer trace.Tracer
	logger *slog.Logger
}

// NewFileStore creates a file-backed cart store at path.
func NewFileStore(path string, tracer trace.Tracer, logger *slog.Logger) *FileStore {
	return &FileStore{
		path:   path,
		tracer: tracer,
		logger: logger,
	}
}

// Load reads the cart document. Fails soft on any read or parse error.
func (s *FileStore) Load(ctx context.Context) ([]domain.LineItem, error) {
	ctx, span := s.tracer.Start(ctx, "FileStore.Load")
	defer span.End()

	span.SetAttributes(attribute.String("cart.store.path", s.path))

	data, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			s.logger.WarnContext(ctx, "Failed to read cart file, treating as empty",
				slog.String("path", s.path),
				slog.String("error", err.Error()),
			)
		}
		span.SetStatus(codes.Ok, "No stored cart")
		return []domain.LineItem{}, nil
	}

	var items []domain.LineItem
	if err := json.Unmarshal(data, &items); err != nil {
		s.logger.WarnContext(ctx, "Malformed cart file, treating as empty",
			slog.String("path", s.path),
			slog.String("error", err.Error()),
		)
		span.SetStatus(codes.Ok, "Malformed stored cart")
		return []domain.LineItem{}, nil
	}

	span.SetAttributes(attribute.Int("cart.items", len(items)))
	span.SetStatus(codes.Ok, "Cart loaded")
	return items, nil
}

// Save writes the full cart document atomically (temp file + rename).
func (s *FileStore) Save(ctx context.Context, items []domain.LineItem) error {
	ctx, span := s.tracer.Start(ctx, "FileStore.Save")
	defer span.End()

	span.SetAttributes(
		attribute.String("cart.store.path", s.path),
		attribute.Int("cart.items", len(items)),
	)

	data, err := marshalItems(items)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to serialize cart")
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".cart-*.json")
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to create temp file")
		return err
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to write cart")
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to close temp file")
		return err
	}

	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to replace cart file")
		return err
	}

	s.logger.DebugContext(ctx, "Cart persisted",
		slog.String("path", s.path),
		slog.Int("items", len(items)),
	)

	span.SetStatus(codes.Ok, "Cart saved")
	return nil
}

// marshalItems is the one serialization point for every store backend,
// so the stored layout cannot diverge between them.
func marshalItems(items []domain.LineItem) ([]byte, error) {
	if items == nil {
		items = []domain.LineItem{}
	}
	return json.Marshal(items)
}
