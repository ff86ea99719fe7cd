package eval

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nsllab/pceval/classify/engine"
	_ "github.com/nsllab/pceval/classify/hypersplit"
	_ "github.com/nsllab/pceval/classify/tss"
	"github.com/nsllab/pceval/internal/xlog"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatalf("writeFile: %v", err)
	}
	return p
}

func TestRun_HyperSplit_BuildAndSearch(t *testing.T) {
	dir := t.TempDir()
	rulePath := writeFile(t, dir, "rules.txt",
		"@10.0.0.0/8 0.0.0.0/0 0 : 65535 80 : 80 06/FF 1\n"+
			"@0.0.0.0/0 0.0.0.0/0 0 : 65535 0 : 65535 00/00 2\n")
	tracePath := writeFile(t, dir, "trace.txt",
		"167772161 1 1 80 6 1\n"+
			"3232235521 1 1 443 17 2\n")

	res, err := Run(Options{
		EngineName: engine.IDHyperSplit,
		RulePath:   rulePath,
		TracePath:  tracePath,
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.RuleCount != 2 {
		t.Fatalf("expected 2 rules, got %d", res.RuleCount)
	}
	if res.PacketCount != 2 {
		t.Fatalf("expected 2 packets, got %d", res.PacketCount)
	}
	if res.Mismatches != 0 {
		t.Fatalf("expected 0 mismatches, got %d", res.Mismatches)
	}
}

func TestRun_SearchMismatchIsFatal(t *testing.T) {
	dir := t.TempDir()
	rulePath := writeFile(t, dir, "rules.txt",
		"@10.0.0.0/8 0.0.0.0/0 0 : 65535 80 : 80 06/FF 1\n")
	// Expected rule id 2 does not exist; the only match is rule 1 (priority 0).
	tracePath := writeFile(t, dir, "trace.txt", "167772161 1 1 80 6 2\n")

	_, err := Run(Options{
		EngineName: engine.IDHyperSplit,
		RulePath:   rulePath,
		TracePath:  tracePath,
	})
	if err == nil {
		t.Fatalf("expected a search-mismatch error")
	}
}

func TestRun_TSS_WithUpdate(t *testing.T) {
	dir := t.TempDir()
	rulePath := writeFile(t, dir, "rules.txt",
		"@10.0.0.0/8 0.0.0.0/0 0/0 80/16 06/FF 1\n")
	updatePath := writeFile(t, dir, "update.txt",
		"@11.0.0.0/8 0.0.0.0/0 0/0 443/16 06/FF 2\n")
	tracePath := writeFile(t, dir, "trace.txt",
		"167772161 1 1 80 6 1\n"+
			"184549377 1 1 443 6 2\n")

	res, err := Run(Options{
		EngineName: engine.IDTSS,
		RulePath:   rulePath,
		UpdatePath: updatePath,
		TracePath:  tracePath,
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.Mismatches != 0 {
		t.Fatalf("expected 0 mismatches, got %d", res.Mismatches)
	}
}

func TestRun_HyperSplitUpdateWarnsAndIsNotFatal(t *testing.T) {
	dir := t.TempDir()
	rulePath := writeFile(t, dir, "rules.txt",
		"@10.0.0.0/8 0.0.0.0/0 0 : 65535 80 : 80 06/FF 1\n")
	updatePath := writeFile(t, dir, "update.txt",
		"@11.0.0.0/8 0.0.0.0/0 0 : 65535 80 : 80 06/FF 2\n")

	var buf bytes.Buffer
	log := xlog.New(xlog.WithOutput(&buf), xlog.WithLevel("warn"))

	res, err := Run(Options{
		EngineName: engine.IDHyperSplit,
		RulePath:   rulePath,
		UpdatePath: updatePath,
		Log:        log,
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.RuleCount != 1 {
		t.Fatalf("expected 1 rule, got %d", res.RuleCount)
	}
	if !strings.Contains(buf.String(), "does not support incremental update") {
		t.Fatalf("expected a warning that -u had no effect, got %q", buf.String())
	}
}

func TestRun_UnknownEngine(t *testing.T) {
	_, err := Run(Options{EngineName: "does-not-exist", RulePath: "irrelevant"})
	if err == nil {
		t.Fatalf("expected an error for an unknown engine id")
	}
}
