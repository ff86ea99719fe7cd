package engine

import (
	"github.com/nsllab/pceval/classify"
	"github.com/nsllab/pceval/classify/ingest"
	"github.com/nsllab/pceval/classify/tss"
)

func init() {
	Register(tssEngine{}, IDTSS, "tss")
}

type tssEngine struct{}

func (e tssEngine) LoadRules(path string) (any, error) {
	return ingest.LoadPrefixRules(path)
}

func (e tssEngine) Build(rules any) (any, error) {
	ps := rules.(classify.PrefixRuleSet)
	return tss.Build(ps)
}

func (e tssEngine) InsertUpdate(idx any, path string) error {
	delta, err := ingest.LoadPrefixRules(path)
	if err != nil {
		return err
	}
	return tss.InsertUpdate(idx.(*tss.Index), delta)
}

func (e tssEngine) Search(idx any, p classify.Packet) int {
	return tss.Search(idx.(*tss.Index), p)
}

func (e tssEngine) Cleanup(idx any) {
	if idx == nil {
		return
	}
	idx.(*tss.Index).Cleanup()
}
