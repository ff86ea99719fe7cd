package tss

import "github.com/nsllab/pceval/classify"

// Search probes every tuple bucket (in no mandated order), computing the
// packet's masked key per bucket and walking that bucket's chain for an
// exact masked-equality match. It returns the lowest (numerically
// smallest) matching priority across all buckets, or classify.NoMatch.
func Search(idx *Index, p classify.Packet) int {
	if idx == nil {
		return classify.NoMatch
	}

	best := classify.NoMatch
	for _, b := range idx.buckets {
		k := maskedKey(p.Val, b.t)
		chain, ok := b.table[k]
		if !ok || len(chain) == 0 {
			continue
		}
		// chain is ascending priority; its head is the best candidate
		// from this bucket once masked-equality is confirmed.
		ri := chain[0]
		if !idx.rules[ri].Matches(p.Val) {
			continue
		}
		pr := idx.rules[ri].Priority
		if best == classify.NoMatch || pr < best {
			best = pr
		}
	}
	return best
}
