package hypersplit

import (
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/nsllab/pceval/classify"
)

// Build constructs a HyperSplit index from a range rule set. It never
// mutates rs; the returned Index captures its own copy-free view of rs
// (the caller may discard rs's backing storage once Build returns, since
// Index keeps its own reference to the slice header).
//
// When cfg.BuildParallelism > 1, independent subtrees are built
// concurrently via golang.org/x/sync/errgroup: each goroutine builds a
// complete, self-contained subtree into its own local node slice with no
// shared mutable state, and the parent splices the two finished subtrees
// into its own arena (rebasing child indices) after both finish. Observable
// search results are identical to a fully serial build.
func Build(rs classify.RangeRuleSet, cfg Config) (*Index, error) {
	if cfg.BinTh <= 0 {
		cfg.BinTh = DefaultConfig().BinTh
	}
	if cfg.MaxDepth <= 0 {
		cfg.MaxDepth = DefaultConfig().MaxDepth
	}
	if cfg.BuildParallelism <= 0 {
		cfg.BuildParallelism = 1
	}

	ruleIdx := make([]int32, len(rs))
	for i := range rs {
		ruleIdx[i] = int32(i)
	}

	nodes, err := build(rs, ruleIdx, rootCell(), 0, cfg.MaxDepth, cfg.BinTh, cfg.BuildParallelism)
	if err != nil {
		return nil, err
	}

	return &Index{nodes: nodes, rules: rs}, nil
}

func build(rs classify.RangeRuleSet, ruleIdx []int32, c cell, depth, maxDepth, binTh, budget int) ([]node, error) {
	if len(ruleIdx) <= binTh || depth >= maxDepth {
		return []node{leafNode(ruleIdx, rs, uint8(depth))}, nil
	}

	d, t, ok := chooseSplit(rs, ruleIdx, c)
	if !ok {
		return []node{leafNode(ruleIdx, rs, uint8(depth))}, nil
	}

	leftIdx, rightIdx := partition(rs, ruleIdx, d, t)

	leftCell, rightCell := c, c
	leftCell[d].high = t
	if t == classify.MaxValue(d) {
		rightCell[d].low = t
	} else {
		rightCell[d].low = t + 1
	}

	var leftNodes, rightNodes []node
	if budget > 1 {
		childBudget := budget / 2
		if childBudget < 1 {
			childBudget = 1
		}
		var g errgroup.Group
		g.Go(func() (err error) {
			leftNodes, err = build(rs, leftIdx, leftCell, depth+1, maxDepth, binTh, childBudget)
			return err
		})
		g.Go(func() (err error) {
			rightNodes, err = build(rs, rightIdx, rightCell, depth+1, maxDepth, binTh, childBudget)
			return err
		})
		if err := g.Wait(); err != nil {
			return nil, err
		}
	} else {
		var err error
		leftNodes, err = build(rs, leftIdx, leftCell, depth+1, maxDepth, binTh, 1)
		if err != nil {
			return nil, err
		}
		rightNodes, err = build(rs, rightIdx, rightCell, depth+1, maxDepth, binTh, 1)
		if err != nil {
			return nil, err
		}
	}

	return splice(d, t, uint8(depth), leftNodes, rightNodes), nil
}

// splice assembles a parent node and its two already-built subtrees into
// a single arena-ordered slice, rebasing the subtrees' internal indices
// by their new offset.
func splice(d classify.Dim, t uint32, depth uint8, left, right []node) []node {
	out := make([]node, 1+len(left)+len(right))
	leftOff := int32(1)
	rightOff := int32(1 + len(left))

	out[0] = node{
		leaf:      false,
		splitDim:  d,
		threshold: t,
		left:      leftOff,
		right:     rightOff,
		depth:     depth,
	}
	for i, n := range left {
		out[leftOff+int32(i)] = rebase(n, leftOff)
	}
	for i, n := range right {
		out[rightOff+int32(i)] = rebase(n, rightOff)
	}
	return out
}

func rebase(n node, off int32) node {
	if n.leaf {
		return n
	}
	n.left += off
	n.right += off
	return n
}

func leafNode(ruleIdx []int32, rs classify.RangeRuleSet, depth uint8) node {
	rules := make([]int32, len(ruleIdx))
	copy(rules, ruleIdx)
	sort.Slice(rules, func(i, j int) bool {
		return rs[rules[i]].Priority < rs[rules[j]].Priority
	})
	return node{leaf: true, depth: depth, rules: rules, left: -1, right: -1}
}

// chooseSplit evaluates every candidate (dimension, threshold) pair and
// returns the one minimizing the children-size-sum/|S| cost metric, with
// ties broken by lower dimension then lower threshold. ok is false when
// no candidate reduces |S| on both sides, signalling the caller to emit
// a leaf instead.
func chooseSplit(rs classify.RangeRuleSet, ruleIdx []int32, c cell) (bestDim classify.Dim, bestT uint32, ok bool) {
	n := len(ruleIdx)
	bestCost := -1.0

	for d := 0; d < classify.NumDims; d++ {
		dim := classify.Dim(d)
		cands := candidateThresholds(rs, ruleIdx, dim, c)
		for _, t := range cands {
			leftCount, rightCount := 0, 0
			for _, ri := range ruleIdx {
				if rs[ri].Low[dim] <= t {
					leftCount++
				}
				if rs[ri].High[dim] > t {
					rightCount++
				}
			}
			if leftCount == n || rightCount == n {
				continue // no progress on this candidate
			}
			cost := float64(leftCount+rightCount) / float64(n)
			if bestCost < 0 || cost < bestCost ||
				(cost == bestCost && (dim < bestDim || (dim == bestDim && t < bestT))) {
				bestCost = cost
				bestDim = dim
				bestT = t
				ok = true
			}
		}
	}
	return bestDim, bestT, ok
}

func candidateThresholds(rs classify.RangeRuleSet, ruleIdx []int32, d classify.Dim, c cell) []uint32 {
	seen := make(map[uint32]struct{}, len(ruleIdx)*2)
	var out []uint32
	add := func(v uint32) {
		if v < c[d].low || v > c[d].high {
			v = clamp(v, c[d].low, c[d].high)
		}
		if _, ok := seen[v]; !ok {
			seen[v] = struct{}{}
			out = append(out, v)
		}
	}
	for _, ri := range ruleIdx {
		add(rs[ri].Low[d])
		add(rs[ri].High[d])
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func clamp(v, lo, hi uint32) uint32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func partition(rs classify.RangeRuleSet, ruleIdx []int32, d classify.Dim, t uint32) (left, right []int32) {
	for _, ri := range ruleIdx {
		if rs[ri].Low[d] <= t {
			left = append(left, ri)
		}
		if rs[ri].High[d] > t {
			right = append(right, ri)
		}
	}
	return
}
