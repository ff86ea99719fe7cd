package classify

// RuleMax and PktMax are the capacity caps from the specification:
// exceeding either while loading is a fatal capacity-exceeded error.
const (
	RuleMax = 1 << 20 // 1,048,576
	PktMax  = 1 << 20
)

// RangeRuleSet is an ordered sequence of range rules, consumed by the
// HyperSplit engine.
type RangeRuleSet []RangeRule

// PrefixRuleSet is an ordered sequence of prefix rules, consumed by the
// TSS engine.
type PrefixRuleSet []PrefixRule

// ToRanges converts every rule in the set via PrefixRule.ToRange,
// preserving order and priority.
func (ps PrefixRuleSet) ToRanges() RangeRuleSet {
	rs := make(RangeRuleSet, len(ps))
	for i, p := range ps {
		rs[i] = p.ToRange()
	}
	return rs
}

// Trace is an ordered sequence of packets read from a trace file.
type Trace []Packet
