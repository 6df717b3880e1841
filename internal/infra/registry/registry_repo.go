package registry

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/NasaVasa/haltwatch/internal/domain"
	"github.com/tidwall/pretty"
	"go.uber.org/zap"
)

const contentType = "application/json"

var prettyOptions = &pretty.Options{Width: 80, Indent: "  ", SortKeys: true}

// Repository persists the monitoring registry as one JSON document.
type Repository struct {
	store  domain.BlobStore
	key    string
	logger *zap.Logger
}

func NewRepository(store domain.BlobStore, key string, logger *zap.Logger) *Repository {
	return &Repository{store: store, key: key, logger: logger}
}

func (r *Repository) Load(ctx context.Context) (domain.Registry, error) {
	start := time.Now()
	body, err := r.store.Get(ctx, r.key)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			r.logger.Info("registry not found, starting empty", zap.String("key", r.key))
			return domain.Registry{}, nil
		}
		r.logger.Error("registry load failed", zap.String("key", r.key), zap.Error(err))
		return nil, err
	}

	registry, err := Decode(body)
	if err != nil {
		r.logger.Error("registry decode failed", zap.String("key", r.key), zap.Error(err))
		return nil, err
	}

	r.logger.Info(
		"registry loaded",
		zap.String("key", r.key),
		zap.Int("size", len(registry)),
		zap.Duration("duration", time.Since(start)),
	)
	return registry, nil
}

func (r *Repository) Save(ctx context.Context, registry domain.Registry) error {
	body, err := Encode(registry)
	if err != nil {
		return err
	}
	if err := r.store.Put(ctx, r.key, body, contentType); err != nil {
		r.logger.Error("registry save failed", zap.String("key", r.key), zap.Error(err))
		return err
	}
	r.logger.Info("registry saved", zap.String("key", r.key), zap.Int("size", len(registry)))
	return nil
}

// Decode parses a persisted registry document, rejecting anything that does
// not match the documented format. Tickers must already be trimmed and
// upper-case; they are never rewritten.
func Decode(body []byte) (domain.Registry, error) {
	var raw map[string]domain.MonitoringRecord
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedRegistry, err)
	}
	if raw == nil {
		return nil, fmt.Errorf("%w: document is not an object", domain.ErrMalformedRegistry)
	}

	registry := make(domain.Registry, len(raw))
	for ticker, record := range raw {
		if ticker == "" || domain.NormalizeTicker(ticker) != ticker {
			return nil, fmt.Errorf("%w: ticker %q is not normalized", domain.ErrMalformedRegistry, ticker)
		}
		if record.AddedDate.IsZero() {
			return nil, fmt.Errorf("%w: %s has no added_date", domain.ErrMalformedRegistry, ticker)
		}
		if record.Status == "" {
			return nil, fmt.Errorf("%w: %s has no status", domain.ErrMalformedRegistry, ticker)
		}
		registry[ticker] = record
	}
	return registry, nil
}

func Encode(registry domain.Registry) ([]byte, error) {
	if registry == nil {
		registry = domain.Registry{}
	}
	body, err := json.Marshal(registry)
	if err != nil {
		return nil, err
	}
	return pretty.PrettyOptions(body, prettyOptions), nil
}
