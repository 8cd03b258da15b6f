package storage

import (
	"context"
	"errors"
	"io"
)

// ErrNotFound is returned by Open when no blob exists under the key.
var ErrNotFound = errors.New("blob not found")

// BlobStore keeps punch proof photos under slash separated keys
type BlobStore interface {
	// Put writes the blob and returns the normalized key
	Put(ctx context.Context, key string, r io.Reader) (string, error)

	// Open streams a blob back, ErrNotFound when missing
	Open(ctx context.Context, key string) (io.ReadCloser, error)

	// Remove deletes a blob; removing a missing key is not an error
	Remove(ctx context.Context, key string) error
}
