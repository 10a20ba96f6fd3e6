// internal/core/ports/photo_store.go
package ports

import (
	"context"
	"io"
)

// PhotoStore uploads image blobs and hands back a public URL.
// Objects are never read back or deleted by the application.
type PhotoStore interface {
	Upload(ctx context.Context, key string, body io.Reader, contentType string) (string, error)
}
