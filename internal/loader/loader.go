// Package loader provides scoped acquisition of rule and trace file
// sources for classify/ingest: open once, hand back a stream, and
// guarantee the underlying handle is released exactly once.
package loader

import (
	"context"
	"io"
)

// Loader opens a single source for reading. Load may only be called
// once per Loader; Close releases whatever Load acquired and is safe to
// call even if Load was never called or already failed.
type Loader interface {
	Load(context.Context) (io.Reader, error)
	Close() error
}
