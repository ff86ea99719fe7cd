// Package eval sequences one evaluation run: load rules, build,
// optionally update, release rule buffers, optionally search, release
// the trace, cleanup. It times every phase, logs at each boundary, and
// can emit Prometheus observations and a YAML report.
package eval

import (
	"time"

	"github.com/nsllab/pceval/classify"
	"github.com/nsllab/pceval/classify/engine"
	"github.com/nsllab/pceval/classify/ingest"
	"github.com/nsllab/pceval/eval/metrics"
	"github.com/nsllab/pceval/eval/report"
	"github.com/nsllab/pceval/internal/pcerr"
	"github.com/nsllab/pceval/internal/xlog"
)

// Options configures one run.
type Options struct {
	EngineName string
	RulePath   string
	TracePath  string // empty: skip search
	UpdatePath string // empty: skip update

	Metrics *metrics.Metrics // nil: metrics are no-ops
	Report  *report.Report   // nil: no report is built
	Log     *xlog.Logger
}

// Result summarizes the run for the CLI's exit-code decision and for
// anything the caller wants to print beyond the log lines already
// emitted during the run.
type Result struct {
	RuleCount        int
	PacketCount      int
	Mismatches       int
	PacketsPerSecond float64
}

// Run executes the full sequence described in the package doc. It
// returns a non-nil error on the first fatal condition (file open,
// parse, capacity, or search mismatch), per the specification's
// fail-fast error model.
func Run(opts Options) (Result, error) {
	var res Result

	eng, ok := engine.Lookup(opts.EngineName)
	if !ok {
		return res, pcerr.Wrap(pcerr.ParseFormat, nil, "unknown engine id", "engine", opts.EngineName)
	}

	rules, loadDur, err := timed(func() (any, error) { return eng.LoadRules(opts.RulePath) })
	if err != nil {
		return res, pcerr.Wrap(pcerr.FileOpen, err, "failed to load rules", "path", opts.RulePath)
	}
	res.RuleCount = ruleCount(rules)
	if opts.Report != nil {
		opts.Report.RuleCount = res.RuleCount
	}
	logPhase(opts, "load_rules", loadDur, res.RuleCount)

	idx, buildDur, err := timed(func() (any, error) { return eng.Build(rules) })
	if err != nil {
		return res, pcerr.Wrap(pcerr.BuildFailure, err, "build failed", "engine", opts.EngineName)
	}
	logPhase(opts, "build", buildDur, res.RuleCount)
	defer eng.Cleanup(idx)

	rules = nil // release rule buffer before the possibly-large trace load

	if opts.UpdatePath != "" {
		_, updateDur, uerr := timed(func() (any, error) { return nil, eng.InsertUpdate(idx, opts.UpdatePath) })
		switch {
		case uerr == engine.ErrNoIncrementalUpdate:
			if opts.Log != nil {
				opts.Log.Warnf("engine %q does not support incremental update, -u/--update %q had no effect",
					opts.EngineName, opts.UpdatePath)
			}
		case uerr != nil:
			return res, pcerr.Wrap(pcerr.BuildFailure, uerr, "update failed", "path", opts.UpdatePath)
		default:
			logPhase(opts, "update", updateDur, 0)
		}
	}

	if opts.TracePath == "" {
		return res, nil
	}

	trace, traceDur, terr := loadTrace(opts.TracePath)
	if terr != nil {
		return res, pcerr.Wrap(pcerr.FileOpen, terr, "failed to load trace", "path", opts.TracePath)
	}
	res.PacketCount = len(trace)
	logPhase(opts, "load_trace", traceDur, res.PacketCount)

	start := time.Now()
	for i, p := range trace {
		got := eng.Search(idx, p)
		if got != p.Expected {
			res.Mismatches++
			if opts.Log != nil {
				opts.Log.Errorf("search mismatch: packet=%d expected=%d computed=%d", i, p.Expected, got)
			}
			if opts.Metrics != nil {
				opts.Metrics.IncSearchOutcome("mismatch")
			}
			return res, pcerr.Wrap(pcerr.SearchMismatch, nil, "search mismatch",
				"packet", i, "expected", p.Expected, "computed", got)
		}
		if opts.Metrics != nil {
			if got == classify.NoMatch {
				opts.Metrics.IncSearchOutcome("no_match")
			} else {
				opts.Metrics.IncSearchOutcome("match")
			}
		}
	}
	searchDur := time.Since(start)
	logPhase(opts, "search", searchDur, res.PacketCount)

	if searchDur > 0 {
		res.PacketsPerSecond = float64(res.PacketCount) * 1_000_000 / float64(searchDur.Microseconds())
	}
	if opts.Metrics != nil {
		opts.Metrics.SetThroughput(res.PacketsPerSecond)
	}
	if opts.Report != nil {
		opts.Report.RuleCount = res.RuleCount
		opts.Report.PacketCount = res.PacketCount
		opts.Report.PacketsPerSec = res.PacketsPerSecond
		opts.Report.Mismatches = res.Mismatches
	}

	return res, nil
}

func timed(f func() (any, error)) (any, time.Duration, error) {
	start := time.Now()
	v, err := f()
	return v, time.Since(start), err
}

func loadTrace(path string) (classify.Trace, time.Duration, error) {
	start := time.Now()
	tr, err := ingest.LoadTrace(path)
	return tr, time.Since(start), err
}

func ruleCount(rules any) int {
	switch rs := rules.(type) {
	case classify.RangeRuleSet:
		return len(rs)
	case classify.PrefixRuleSet:
		return len(rs)
	default:
		return 0
	}
}

func logPhase(opts Options, phase string, d time.Duration, n int) {
	if opts.Log != nil {
		opts.Log.Infof("phase=%s duration_us=%d n=%d", phase, d.Microseconds(), n)
	}
	if opts.Metrics != nil {
		opts.Metrics.ObservePhase(metrics.Phase(phase), opts.EngineName, d.Seconds())
	}
	if opts.Report != nil {
		opts.Report.AddPhase(phase, d)
	}
}
