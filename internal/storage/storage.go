package storage

import (
	"context"
	"io"
	"time"
)

type Uploader interface {
	Upload(ctx context.Context, objectName string, contentType string, r io.Reader) (storedPath string, err error)
}

// Signer produces short-lived signed upload URLs so candidates write straight
// to blob storage without ever holding bucket credentials.
type Signer interface {
	SignedPutURL(ctx context.Context, objectName string, contentType string, ttl time.Duration) (string, error)
	PublicURL(objectName string) string
}
