// Package tss implements the Tuple-Space-Search classification engine:
// prefix rules are grouped by their per-dimension prefix-length vector
// (a "tuple"), each tuple owns a struct-keyed hash table of masked
// five-tuple keys, and search probes every bucket for the lowest
// (numerically smallest) matching priority.
package tss

import "github.com/nsllab/pceval/classify"

// tuple is the per-dimension prefix-length vector that identifies one
// bucket. Rules sharing a tuple share a bucket.
type tuple [classify.NumDims]uint8

// key is the packet's five-tuple masked down to a bucket's tuple,
// used as the map key for that bucket's chain table. It plays the
// role a flow key plays in a connection-tracking table: a small,
// comparable fixed-size array that the Go map hashes for us instead of a
// hand-rolled mixing function.
type key [classify.NumDims]uint32

func maskedKey(v [classify.NumDims]uint32, t tuple) key {
	var k key
	for d := 0; d < classify.NumDims; d++ {
		k[d] = v[d] & classify.Mask(classify.Dim(d), t[d])
	}
	return k
}

func tupleOf(r *classify.PrefixRule) tuple {
	var t tuple
	copy(t[:], r.PrefixLen[:])
	return t
}

// bucket is one tuple's hash table. Each chain is kept sorted by
// ascending priority so search can stop at the first match.
type bucket struct {
	t     tuple
	table map[key][]int32 // rule indices into Index.rules, ascending priority
}

func newBucket(t tuple) *bucket {
	return &bucket{t: t, table: make(map[key][]int32)}
}

// insert adds rule index ri (whose rule has value v) into the chain for
// v's masked key, preserving the ascending-priority chain invariant.
func (b *bucket) insert(rules classify.PrefixRuleSet, ri int32) {
	k := maskedKey(rules[ri].Value, b.t)
	chain := b.table[k]
	pos := 0
	for pos < len(chain) && rules[chain[pos]].Priority < rules[ri].Priority {
		pos++
	}
	chain = append(chain, 0)
	copy(chain[pos+1:], chain[pos:])
	chain[pos] = ri
	b.table[k] = chain
}

// Index is the built TSS structure: one bucket per distinct tuple plus
// the prefix rule slice captured at build time.
type Index struct {
	buckets map[tuple]*bucket
	rules   classify.PrefixRuleSet
}

// Cleanup releases the index's storage. Idempotent against a nil or
// already-cleaned Index.
func (idx *Index) Cleanup() {
	if idx == nil {
		return
	}
	idx.buckets = nil
	idx.rules = nil
}

// NumBuckets reports the tuple count, useful for tests and diagnostics.
func (idx *Index) NumBuckets() int {
	if idx == nil {
		return 0
	}
	return len(idx.buckets)
}
