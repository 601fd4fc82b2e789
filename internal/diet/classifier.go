package diet

import (
	"sort"
	"strings"
)

// ConditionSet is a non-empty set of conditions as returned by Classify.
type ConditionSet map[Condition]struct{}

// NewConditionSet builds a set from labels.
func NewConditionSet(labels ...Condition) ConditionSet {
	cs := make(ConditionSet, len(labels))
	for _, l := range labels {
		cs[l] = struct{}{}
	}
	return cs
}

// Has reports membership.
func (cs ConditionSet) Has(c Condition) bool {
	_, ok := cs[c]
	return ok
}

// Labels returns the conditions sorted alphabetically.
func (cs ConditionSet) Labels() []Condition {
	out := make([]Condition, 0, len(cs))
	for c := range cs {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// String joins the sorted labels with ", ".
func (cs ConditionSet) String() string {
	labels := cs.Labels()
	parts := make([]string, len(labels))
	for i, l := range labels {
		parts[i] = string(l)
	}
	return strings.Join(parts, ", ")
}

// Classify returns the union of every matching rule, or exactly
// {General Health} when none matches.
func Classify(ev Evidence, rules []Rule) ConditionSet {
	cs := ConditionSet{}
	for _, r := range rules {
		if r.Matches(ev) {
			cs[r.Condition] = struct{}{}
		}
	}
	if len(cs) == 0 {
		cs[GeneralHealth] = struct{}{}
	}
	return cs
}
