// Package ingest implements the rule- and trace-file adapters: parsing
// Classbench-style range rules, prefix rules, and packet traces into the
// classify package's in-memory shapes. Parsing and file I/O are the only
// concerns here; the classification engines never see a file handle.
package ingest

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/gobwas/glob"

	"github.com/nsllab/pceval/classify"
	"github.com/nsllab/pceval/internal/loader"
	"github.com/nsllab/pceval/internal/pcerr"
)

// openMulti resolves path as a glob pattern (falling back to a literal
// single file when it has no glob metacharacters) and returns readers
// for every match in lexical order plus a function that closes all of
// them, which the caller defers. If opening any match fails, the files
// already opened are closed before the error is returned.
func openMulti(path string) ([]io.Reader, func(), error) {
	var files []string
	if strings.ContainsAny(path, "*?[{") {
		matches, err := expandGlob(path)
		if err != nil {
			return nil, nil, pcerr.Wrap(pcerr.FileOpen, err, "glob expansion failed", "pattern", path)
		}
		files = matches
	} else {
		files = []string{path}
	}

	if len(files) == 0 {
		return nil, nil, pcerr.Wrap(pcerr.FileOpen, nil, "no files matched", "pattern", path)
	}

	var (
		readers []io.Reader
		loaders []loader.Loader
	)
	for _, f := range files {
		fl := loader.FileLoader(f)
		r, err := fl.Load(context.Background())
		if err != nil {
			for _, l := range loaders {
				l.Close()
			}
			return nil, nil, pcerr.Wrap(pcerr.FileOpen, err, "cannot open file", "path", f)
		}
		readers = append(readers, r)
		loaders = append(loaders, fl)
	}

	closeAll := func() {
		for _, l := range loaders {
			l.Close()
		}
	}
	return readers, closeAll, nil
}

func scanLines(readers []io.Reader, perLine func(path string, lineNo int, line string) error) error {
	for i, r := range readers {
		path := fmt.Sprintf("<source %d>", i)
		if nf, ok := r.(interface{ Name() string }); ok {
			path = nf.Name()
		}
		sc := bufio.NewScanner(r)
		sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
		lineNo := 0
		for sc.Scan() {
			lineNo++
			line := strings.TrimSpace(sc.Text())
			if line == "" {
				continue
			}
			if err := perLine(path, lineNo, line); err != nil {
				return err
			}
		}
		if err := sc.Err(); err != nil {
			return pcerr.Wrap(pcerr.ParseFormat, err, "read error", "path", path, "line", lineNo)
		}
	}
	return nil
}

func parseIPMask(tok string) (ip uint32, prefixLen uint8, err error) {
	parts := strings.SplitN(tok, "/", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("expected A.B.C.D/m, got %q", tok)
	}
	octets := strings.Split(parts[0], ".")
	if len(octets) != 4 {
		return 0, 0, fmt.Errorf("expected dotted-quad, got %q", parts[0])
	}
	var v uint32
	for _, o := range octets {
		n, err := strconv.ParseUint(o, 10, 8)
		if err != nil {
			return 0, 0, fmt.Errorf("bad octet %q: %w", o, err)
		}
		v = (v << 8) | uint32(n)
	}
	m, err := strconv.ParseUint(parts[1], 10, 8)
	if err != nil {
		return 0, 0, fmt.Errorf("bad prefix length %q: %w", parts[1], err)
	}
	if m > 32 {
		m = 32
	}
	return v, uint8(m), nil
}

func parseProtoMask(tok string) (proto uint32, mask uint8, err error) {
	parts := strings.SplitN(tok, "/", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("expected PP/MM, got %q", tok)
	}
	p, err := strconv.ParseUint(parts[0], 16, 8)
	if err != nil {
		return 0, 0, fmt.Errorf("bad protocol byte %q: %w", parts[0], err)
	}
	mm, err := strconv.ParseUint(parts[1], 16, 8)
	if err != nil {
		return 0, 0, fmt.Errorf("bad protocol mask %q: %w", parts[1], err)
	}
	if mm != 0xFF && mm != 0x00 {
		return 0, 0, fmt.Errorf("protocol mask must be FF or 00, got %02X", mm)
	}
	return uint32(p), uint8(mm), nil
}

func prefixFromMask32(v uint32, prefixLen uint8) (low, high uint32) {
	m := classify.Mask(classify.DimSIP, prefixLen) // SIP/DIP share width 32
	low = v & m
	high = classify.Trunc(classify.DimSIP, v|^m)
	return
}

func expandGlob(pattern string) ([]string, error) {
	dir, base := filepath.Split(pattern)
	if dir == "" {
		dir = "."
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	g, err := glob.Compile(base)
	if err != nil {
		return nil, err
	}
	var matches []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if g.Match(e.Name()) {
			matches = append(matches, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(matches)
	return matches, nil
}
