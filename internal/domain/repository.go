package domain

import (
	"context"
	"errors"
)

var (
	ErrNotFound          = errors.New("not found")
	ErrMalformedRegistry = errors.New("malformed registry")
	ErrNoTable           = errors.New("no tables found on the webpage")
	ErrMissingColumn     = errors.New("missing column")
)

// BlobStore is a flat key-value object store.
type BlobStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, body []byte, contentType string) error
}

type RegistryRepository interface {
	Load(ctx context.Context) (Registry, error)
	Save(ctx context.Context, registry Registry) error
}

type Notifier interface {
	Notify(ctx context.Context, subject, body string) error
}
