package ingest

import (
	"testing"

	"github.com/nsllab/pceval/classify"
)

func TestLoadTrace(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "trace.txt",
		"167772160 3232235520 1500 80 6 1\n"+
			"0 0 0 0 0 2\n")

	tr, err := LoadTrace(path)
	if err != nil {
		t.Fatalf("LoadTrace: %v", err)
	}
	if len(tr) != 2 {
		t.Fatalf("expected 2 packets, got %d", len(tr))
	}
	if tr[0].Val[classify.DimSIP] != 167772160 {
		t.Fatalf("unexpected SIP: %d", tr[0].Val[classify.DimSIP])
	}
	if tr[0].Expected != 0 {
		t.Fatalf("expected priority 0 for rule id 1, got %d", tr[0].Expected)
	}
	if tr[1].Expected != 1 {
		t.Fatalf("expected priority 1 for rule id 2, got %d", tr[1].Expected)
	}
}

func TestLoadTrace_GlobMultiFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.trace", "1 1 1 1 1 1\n")
	writeFile(t, dir, "b.trace", "2 2 2 2 2 2\n")

	tr, err := LoadTrace(dir + "/*.trace")
	if err != nil {
		t.Fatalf("LoadTrace glob: %v", err)
	}
	if len(tr) != 2 {
		t.Fatalf("expected 2 packets across both files, got %d", len(tr))
	}
}
