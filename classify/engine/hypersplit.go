package engine

import (
	"github.com/nsllab/pceval/classify"
	"github.com/nsllab/pceval/classify/hypersplit"
	"github.com/nsllab/pceval/classify/ingest"
)

func init() {
	Register(hyperSplitEngine{cfg: hypersplit.DefaultConfig()}, IDHyperSplit, "hypersplit")
}

// WithHyperSplitConfig re-registers the HyperSplit engine using cfg
// instead of hypersplit.DefaultConfig(). Used by the CLI when
// -j/--parallel requests concurrent subtree construction.
func WithHyperSplitConfig(cfg hypersplit.Config) {
	Unregister(IDHyperSplit)
	Unregister("hypersplit")
	Register(hyperSplitEngine{cfg: cfg}, IDHyperSplit, "hypersplit")
}

type hyperSplitEngine struct {
	cfg hypersplit.Config
}

func (e hyperSplitEngine) LoadRules(path string) (any, error) {
	return ingest.LoadRangeRules(path)
}

func (e hyperSplitEngine) Build(rules any) (any, error) {
	rs := rules.(classify.RangeRuleSet)
	return hypersplit.Build(rs, e.cfg)
}

func (e hyperSplitEngine) InsertUpdate(idx any, path string) error {
	return ErrNoIncrementalUpdate
}

func (e hyperSplitEngine) Search(idx any, p classify.Packet) int {
	return hypersplit.Search(idx.(*hypersplit.Index), p)
}

func (e hyperSplitEngine) Cleanup(idx any) {
	if idx == nil {
		return
	}
	idx.(*hypersplit.Index).Cleanup()
}
