package loader

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"
)

func TestFileLoader_LoadAndClose(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.txt")
	if err := os.WriteFile(path, []byte("hello\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	l := FileLoader(path)
	r, err := l.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	data, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if string(data) != "hello\n" {
		t.Fatalf("unexpected content: %q", data)
	}

	if err := l.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
}

func TestFileLoader_MissingFile(t *testing.T) {
	l := FileLoader(filepath.Join(t.TempDir(), "missing.txt"))
	if _, err := l.Load(context.Background()); err == nil {
		t.Fatalf("expected an error loading a missing file")
	}
}
