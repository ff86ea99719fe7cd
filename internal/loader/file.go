package loader

import (
	"context"
	"fmt"
	"io"
	"os"
)

// fileLoader streams filename rather than buffering it wholesale: rule
// and trace files are bounded by classify.RuleMax/PktMax lines but can
// still run to tens of megabytes, and classify/ingest only ever reads
// them once, line by line, through a bufio.Scanner.
type fileLoader struct {
	filename string
	f        *os.File
}

// FileLoader returns a Loader over filename. The file is opened lazily
// on Load so a Loader built for every glob match can be constructed
// before any of them are actually read.
func FileLoader(filename string) Loader {
	return &fileLoader{filename: filename}
}

func (l *fileLoader) Load(ctx context.Context) (io.Reader, error) {
	f, err := os.Open(l.filename)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", l.filename, err)
	}
	l.f = f
	return f, nil
}

// Close releases the handle Load opened. Idempotent: calling Close
// without a prior successful Load, or calling it twice, is a no-op.
func (l *fileLoader) Close() error {
	if l.f == nil {
		return nil
	}
	err := l.f.Close()
	l.f = nil
	return err
}
