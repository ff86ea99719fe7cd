package tss

import "github.com/nsllab/pceval/classify"

// InsertUpdate adds delta's rules into idx's existing structure
// incrementally: each new rule locates or creates the bucket for its
// tuple and is inserted into that bucket's chain, preserving the
// ascending-priority invariant. Rules already in idx are untouched;
// there is no deletion path.
func InsertUpdate(idx *Index, delta classify.PrefixRuleSet) error {
	if idx == nil {
		return nil
	}
	base := int32(len(idx.rules))
	idx.rules = append(idx.rules, delta...)
	for i := range delta {
		idx.addRule(base + int32(i))
	}
	return nil
}
