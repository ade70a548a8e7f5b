package ports

import (
	"context"
	"io"
)

type PutObjectInput struct {
	ObjectKey   string
	ContentType string
	Reader      io.Reader
	Size        int64
}

type PutObjectOutput struct {
	// ObjectKey as stored. On localfs this is the input key; on gdrive it
	// is the real fileId so later reads can use it.
	ObjectKey string
	// URL is the externally addressable reference callers poll for.
	URL  string
	Size int64
}

// StorageProvider abstracts the object store holding uploaded images and
// generated videos (localfs, s3, gdrive).
type StorageProvider interface {
	Provider() string

	PutObject(ctx context.Context, in PutObjectInput) (PutObjectOutput, error)
	GetObject(ctx context.Context, objectKey string) (rc io.ReadCloser, contentType string, size int64, err error)
}
