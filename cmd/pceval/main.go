// Command pceval runs one packet-classification evaluation: it loads a
// rule set, builds the chosen engine's index, optionally applies an
// update rule file and a packet trace, and reports phase timings and
// throughput.
package main

import (
	"fmt"
	"os"

	flag "github.com/spf13/pflag"

	"github.com/nsllab/pceval/classify/engine"
	"github.com/nsllab/pceval/classify/hypersplit"
	"github.com/nsllab/pceval/config"
	"github.com/nsllab/pceval/eval"
	"github.com/nsllab/pceval/eval/metrics"
	"github.com/nsllab/pceval/eval/report"
	"github.com/nsllab/pceval/internal/xlog"
)

func main() {
	os.Exit(realMain())
}

func realMain() int {
	var (
		algo        string
		rulePath    string
		tracePath   string
		updatePath  string
		parallel    int
		configPath  string
		reportPath  string
		metricsAddr string
		logLevel    string
		logFormat   string
		help        bool
	)

	flag.StringVarP(&algo, "algo", "a", "0", "engine id or alias: 0/hypersplit, 1/tss")
	flag.StringVarP(&rulePath, "rule", "r", "", "rule file (required, may be a glob)")
	flag.StringVarP(&tracePath, "trace", "t", "", "trace file (optional)")
	flag.StringVarP(&updatePath, "update", "u", "", "update rule file (optional, may be a glob)")
	flag.IntVarP(&parallel, "parallel", "j", 1, "HyperSplit build goroutine budget")
	flag.StringVarP(&configPath, "config", "c", "", "optional config file")
	flag.StringVarP(&reportPath, "report", "o", "", "write a YAML run report to this path")
	flag.StringVar(&metricsAddr, "metrics-addr", "", "serve Prometheus /metrics on this address")
	flag.StringVar(&logLevel, "log-level", "info", "log level")
	flag.StringVar(&logFormat, "log-format", "text", "log format: text or json")
	flag.BoolVarP(&help, "help", "h", false, "show usage")
	flag.Parse()

	if help {
		flag.Usage()
		return 0
	}

	if cfg, err := config.Load(configPath); err == nil {
		if !flag.CommandLine.Changed("log-level") && cfg.LogLevel != "" {
			logLevel = cfg.LogLevel
		}
		if !flag.CommandLine.Changed("log-format") && cfg.LogFormat != "" {
			logFormat = cfg.LogFormat
		}
		if !flag.CommandLine.Changed("metrics-addr") && cfg.MetricsAddr != "" {
			metricsAddr = cfg.MetricsAddr
		}
		if !flag.CommandLine.Changed("report") && cfg.ReportPath != "" {
			reportPath = cfg.ReportPath
		}
	}

	log := xlog.New(
		xlog.WithName("pceval"),
		xlog.WithLevel(logLevel),
		xlog.WithFormat(xlog.Format(logFormat)),
	)

	if rulePath == "" {
		log.Errorf("missing required -r/--rule")
		flag.Usage()
		return 2
	}

	if parallel > 1 {
		engine.WithHyperSplitConfig(hypersplit.Config{
			BinTh:            hypersplit.DefaultConfig().BinTh,
			MaxDepth:         hypersplit.DefaultConfig().MaxDepth,
			BuildParallelism: parallel,
		})
	}

	m := metrics.New()
	if metricsAddr != "" {
		go func() {
			if err := m.Serve(metricsAddr); err != nil {
				log.Errorf("metrics server stopped: %v", err)
			}
		}()
	}

	var rep *report.Report
	if reportPath != "" {
		rep = report.New(algo)
	}

	res, err := eval.Run(eval.Options{
		EngineName: algo,
		RulePath:   rulePath,
		TracePath:  tracePath,
		UpdatePath: updatePath,
		Metrics:    m,
		Report:     rep,
		Log:        log,
	})
	if err != nil {
		log.Errorf("run failed: %v", err)
		return 1
	}

	if rep != nil {
		if werr := rep.WriteFile(reportPath); werr != nil {
			log.Errorf("failed to write report: %v", werr)
			return 1
		}
	}

	fmt.Fprintf(os.Stdout, "rules=%d packets=%d mismatches=%d pps=%.2f\n",
		res.RuleCount, res.PacketCount, res.Mismatches, res.PacketsPerSecond)
	return 0
}
