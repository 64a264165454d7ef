package model

import (
	"context"
	"io"
)

// Storage holds uploaded image objects. Keys are prefix-qualified
// ("images/...", "profile_pictures/...").
type Storage interface {
	Upload(ctx context.Context, key string, reader io.Reader) error
	Download(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}
