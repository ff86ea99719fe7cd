package metrics

import "testing"

func TestMetrics_NilSafe(t *testing.T) {
	var m *Metrics
	m.ObservePhase(PhaseBuild, "0", 0.1)
	m.IncSearchOutcome("match")
	m.SetThroughput(1234)
}

func TestMetrics_RecordsWithoutPanicking(t *testing.T) {
	m := New()
	m.ObservePhase(PhaseBuild, "0", 0.05)
	m.IncSearchOutcome("match")
	m.IncSearchOutcome("no_match")
	m.SetThroughput(42000)
}
