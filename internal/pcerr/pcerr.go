// Package pcerr defines the fatal error kinds the classification kernel
// can raise and a small context-carrying wrapper, scaled down from the
// stack-capturing error packages elsewhere in the ecosystem: a one-shot
// CLI tool that logs its error and exits has no use for a stack trace,
// but still benefits from structured key/value context and errors.Is
// classification against a sentinel kind.
package pcerr

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Kind is one of the fatal error categories from the specification.
type Kind error

var (
	FileOpen          Kind = errors.New("file-open")
	ParseFormat       Kind = errors.New("parse-format")
	CapacityExceeded  Kind = errors.New("capacity-exceeded")
	UnsupportedMask   Kind = errors.New("unsupported-mask")
	AllocationFailure Kind = errors.New("allocation-failure")
	BuildFailure      Kind = errors.New("build-failure")
	SearchMismatch    Kind = errors.New("search-mismatch")
)

// Error wraps a Kind with a human-readable message and structured
// context. Unwrap returns Kind, so errors.Is(err, kind) holds; the
// wrapped cause appears in Error() but is not reached by Unwrap.
type Error struct {
	Kind Kind
	Msg  string
	Ctx  []KV
	Err  error
}

// KV is one piece of structured context.
type KV struct {
	Key string
	Val any
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Msg)
	if len(e.Ctx) > 0 {
		ctx := make([]KV, len(e.Ctx))
		copy(ctx, e.Ctx)
		sort.Slice(ctx, func(i, j int) bool { return ctx[i].Key < ctx[j].Key })
		b.WriteString(" [")
		for i, kv := range ctx {
			if i > 0 {
				b.WriteString(" ")
			}
			fmt.Fprintf(&b, "%s=%v", kv.Key, kv.Val)
		}
		b.WriteString("]")
	}
	if e.Err != nil {
		fmt.Fprintf(&b, ": %s", e.Err)
	}
	return b.String()
}

func (e *Error) Unwrap() error { return e.Kind }

// Wrap builds an *Error of the given kind with a message, an optional
// wrapped cause, and "key", value, "key", value, ... context pairs.
func Wrap(kind Kind, cause error, msg string, kvs ...any) *Error {
	e := &Error{Kind: kind, Msg: msg, Err: cause}
	for i := 0; i+1 < len(kvs); i += 2 {
		key, _ := kvs[i].(string)
		e.Ctx = append(e.Ctx, KV{Key: key, Val: kvs[i+1]})
	}
	return e
}

// Is reports whether err is (or wraps) a pcerr of the given kind.
func Is(err error, kind Kind) bool {
	return errors.Is(err, kind)
}
