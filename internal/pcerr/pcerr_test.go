package pcerr

import (
	"errors"
	"testing"
)

func TestWrapAndIs(t *testing.T) {
	cause := errors.New("disk exploded")
	err := Wrap(FileOpen, cause, "cannot open file", "path", "/tmp/x", "line", 3)

	if !Is(err, FileOpen) {
		t.Fatalf("expected Is(err, FileOpen) to be true")
	}
	if Is(err, ParseFormat) {
		t.Fatalf("expected Is(err, ParseFormat) to be false")
	}

	msg := err.Error()
	if msg == "" {
		t.Fatalf("expected a non-empty error message")
	}
}

func TestWrap_NilCause(t *testing.T) {
	err := Wrap(CapacityExceeded, nil, "too many rules", "limit", 1024)
	if !Is(err, CapacityExceeded) {
		t.Fatalf("expected Is(err, CapacityExceeded) to be true")
	}
}
