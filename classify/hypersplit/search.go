package hypersplit

import "github.com/nsllab/pceval/classify"

// Search descends the tree from the root, at each internal node following
// left when the packet's value in the split dimension is <= the
// threshold and right otherwise, then linear-scans the leaf's
// priority-sorted rule list for the first rule the packet matches.
// It returns classify.NoMatch if no rule in the leaf matches.
func Search(idx *Index, p classify.Packet) int {
	if idx == nil || len(idx.nodes) == 0 {
		return classify.NoMatch
	}

	n := &idx.nodes[0]
	for !n.leaf {
		if p.Val[n.splitDim] <= n.threshold {
			n = &idx.nodes[n.left]
		} else {
			n = &idx.nodes[n.right]
		}
	}

	for _, ri := range n.rules {
		if idx.rules[ri].Contains(p.Val) {
			return idx.rules[ri].Priority
		}
	}
	return classify.NoMatch
}
