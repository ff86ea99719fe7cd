// Package engine adapts the HyperSplit and TSS classifiers behind a
// single dynamic-dispatch interface, selected by the CLI's engine id
// the way the ecosystem this module was modeled on selects listeners,
// dialers and handlers by name through a generic registry.
package engine

import "github.com/nsllab/pceval/classify"

// Engine is the contract both classification engines satisfy: build an
// index from a rule file, optionally extend it with an update rule
// file, answer searches against it, and release it.
type Engine interface {
	// LoadRules parses path into the engine's native rule representation.
	LoadRules(path string) (any, error)
	// Build constructs an index from the rules LoadRules returned.
	Build(rules any) (any, error)
	// InsertUpdate extends idx with the rules parsed from path, or
	// returns ErrNoIncrementalUpdate if the engine does not support
	// incremental update (HyperSplit).
	InsertUpdate(idx any, path string) error
	// Search answers one packet query against idx.
	Search(idx any, p classify.Packet) int
	// Cleanup releases idx's storage.
	Cleanup(idx any)
}

// ErrNoIncrementalUpdate is returned by InsertUpdate on engines that
// only support rebuilding from scratch.
var ErrNoIncrementalUpdate = errNoIncrementalUpdate{}

type errNoIncrementalUpdate struct{}

func (errNoIncrementalUpdate) Error() string {
	return "engine: incremental update not supported, rebuild instead"
}

// IDs and aliases recognized by the CLI's -a flag.
const (
	IDHyperSplit = "0"
	IDTSS        = "1"
)
