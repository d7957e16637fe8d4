// Package blob provides durable, streamed storage for document content,
// addressed by opaque generated handles.
package blob

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// Store is a durable byte store keyed by generated handle. Content is
// immutable once written and visible only after Put returns; a handle is
// never discoverable by another caller before that.
type Store interface {
	// Put streams r into storage and returns the handle of the new blob.
	// The blob is durable only when Put returns without error.
	Put(ctx context.Context, r io.Reader, hintName string) (string, error)

	// Get opens a read stream for the blob. Returns common.ErrorNotFound
	// if the handle is unknown. The caller must close the stream on every
	// exit path.
	Get(ctx context.Context, handle string) (io.ReadCloser, error)

	// Exists reports whether a blob exists for the handle.
	Exists(ctx context.Context, handle string) (bool, error)
}

// newHandle allocates a fresh opaque handle. The original file extension is
// kept so stored objects stay recognizable in the backend.
func newHandle(hintName string) string {
	d := time.Now()
	return fmt.Sprintf("documents/%d/%d/%d/%v%s",
		d.Year(), d.Month(), d.Day(), uuid.New(), filepath.Ext(hintName))
}
