package storage

import (
	"context"
	"io"
)

// PutResult describes a stored blob.
type PutResult struct {
	Key  string
	URL  string
	Size int64
}

// BlobStore is the external blob capability. Put failures are fatal for
// the caller; Delete failures during cascading/purge deletes are logged
// and suppressed by the lifecycle service.
type BlobStore interface {
	Put(ctx context.Context, reader io.Reader, size int64, contentType string) (*PutResult, error)
	Delete(ctx context.Context, key string) error
}
