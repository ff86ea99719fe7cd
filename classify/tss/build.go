package tss

import "github.com/nsllab/pceval/classify"

// Build groups ps by tuple and inserts every rule into its bucket,
// preserving the ascending-priority chain invariant. The returned Index
// keeps its own reference to ps; the caller may discard ps's backing
// array once any further mutation is routed through InsertUpdate.
func Build(ps classify.PrefixRuleSet) (*Index, error) {
	idx := &Index{buckets: make(map[tuple]*bucket), rules: ps}
	for i := range ps {
		idx.addRule(int32(i))
	}
	return idx, nil
}

func (idx *Index) addRule(ri int32) {
	t := tupleOf(&idx.rules[ri])
	b, ok := idx.buckets[t]
	if !ok {
		b = newBucket(t)
		idx.buckets[t] = b
	}
	b.insert(idx.rules, ri)
}
