// Package report writes the evaluation driver's run report: a YAML
// document capturing the run's identity, chosen engine, rule/packet
// counts, per-phase durations, and search throughput, so a run can be
// diffed against another or archived alongside its logs.
package report

import (
	"os"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// PhaseTiming records one phase's elapsed time.
type PhaseTiming struct {
	Phase        string `yaml:"phase"`
	Microseconds int64  `yaml:"microseconds"`
}

// Report is the full run report document.
type Report struct {
	RunID         string        `yaml:"run_id"`
	Engine        string        `yaml:"engine"`
	RuleCount     int           `yaml:"rule_count"`
	PacketCount   int           `yaml:"packet_count,omitempty"`
	Phases        []PhaseTiming `yaml:"phases"`
	PacketsPerSec float64       `yaml:"packets_per_second,omitempty"`
	Mismatches    int           `yaml:"mismatches"`
	GeneratedAt   time.Time     `yaml:"generated_at"`
}

// New seeds a Report with a fresh run id and the current engine name.
func New(engine string) *Report {
	return &Report{
		RunID:       uuid.NewString(),
		Engine:      engine,
		GeneratedAt: time.Now(),
	}
}

// AddPhase appends one phase's timing to the report.
func (r *Report) AddPhase(phase string, d time.Duration) {
	r.Phases = append(r.Phases, PhaseTiming{Phase: phase, Microseconds: d.Microseconds()})
}

// WriteFile marshals r as YAML and writes it to path.
func (r *Report) WriteFile(path string) error {
	data, err := yaml.Marshal(r)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
