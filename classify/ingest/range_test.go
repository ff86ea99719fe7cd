package ingest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/nsllab/pceval/classify"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatalf("writeFile: %v", err)
	}
	return p
}

func TestLoadRangeRules(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "rules.txt",
		"@10.0.0.0/8 192.168.0.0/16 1024 : 2048 80 : 80 06/FF 1\n"+
			"@0.0.0.0/0 0.0.0.0/0 2048 : 1024 443 : 443 00/00 2\n")

	rs, err := LoadRangeRules(path)
	if err != nil {
		t.Fatalf("LoadRangeRules: %v", err)
	}
	if len(rs) != 2 {
		t.Fatalf("expected 2 rules, got %d", len(rs))
	}

	r0 := rs[0]
	if r0.Low[classify.DimSIP] != 0x0A000000 || r0.High[classify.DimSIP] != 0x0AFFFFFF {
		t.Fatalf("unexpected SIP range: [%#x,%#x]", r0.Low[classify.DimSIP], r0.High[classify.DimSIP])
	}
	if r0.Low[classify.DimProto] != 6 || r0.High[classify.DimProto] != 6 {
		t.Fatalf("expected exact protocol 6, got [%d,%d]", r0.Low[classify.DimProto], r0.High[classify.DimProto])
	}
	if r0.Priority != 0 {
		t.Fatalf("expected priority 0 for rule id 1, got %d", r0.Priority)
	}

	r1 := rs[1]
	if r1.Low[classify.DimSPort] != 1024 || r1.High[classify.DimSPort] != 2048 {
		t.Fatalf("expected swapped sport range [1024,2048], got [%d,%d]",
			r1.Low[classify.DimSPort], r1.High[classify.DimSPort])
	}
	if r1.Low[classify.DimProto] != 0 || r1.High[classify.DimProto] != 0xFF {
		t.Fatalf("expected wildcard protocol range, got [%d,%d]", r1.Low[classify.DimProto], r1.High[classify.DimProto])
	}
}

func TestLoadRangeRules_BadFormat(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "bad.txt", "not a valid rule line\n")

	if _, err := LoadRangeRules(path); err == nil {
		t.Fatalf("expected a parse error")
	}
}
