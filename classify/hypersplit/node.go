package hypersplit

import "github.com/nsllab/pceval/classify"

// node is one entry in the tree's arena. Internal nodes carry a split
// dimension and threshold plus child indices; leaves carry a
// priority-sorted list of rule indices into the Index's captured rule
// slice. Using arena indices instead of heap pointers keeps the tree
// cache-local and lets Cleanup release the whole structure by dropping
// one slice, per the specification's design notes.
type node struct {
	leaf      bool
	splitDim  classify.Dim
	threshold uint32
	left      int32
	right     int32
	depth     uint8
	rules     []int32 // leaf only, ascending priority
}

// cell is the Cartesian product of per-dimension half-ranges inherited
// from a node's ancestors.
type cell [classify.NumDims]struct {
	low, high uint32
}

func rootCell() cell {
	var c cell
	for d := 0; d < classify.NumDims; d++ {
		c[d].low = 0
		c[d].high = classify.MaxValue(classify.Dim(d))
	}
	return c
}

// Index is the built HyperSplit structure: an arena of nodes plus the
// rule slice captured at build time. It is self-contained once Build
// returns; the caller's rule-set buffer may be discarded.
type Index struct {
	nodes []node
	rules classify.RangeRuleSet
}

// Cleanup releases the index's storage. Called once per built index;
// idempotent against a nil or already-cleaned Index.
func (idx *Index) Cleanup() {
	if idx == nil {
		return
	}
	idx.nodes = nil
	idx.rules = nil
}

// NumNodes reports the arena size, useful for tests and diagnostics.
func (idx *Index) NumNodes() int {
	if idx == nil {
		return 0
	}
	return len(idx.nodes)
}
