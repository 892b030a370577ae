package wbs

import "strings"

// FilterAll is the sentinel meaning "no filter" for categorical fields; the
// empty string is accepted as an equivalent.
const FilterAll = "all"

// Filter is the set of predicates a projection applies, ANDed together.
// Search matches name and description case-insensitively.
type Filter struct {
	Search   string `json:"search"`
	Status   string `json:"status"`
	Type     string `json:"type"`
	Assignee string `json:"assignee"`
}

func active(v string) bool { return v != "" && v != FilterAll }

// Matches reports whether the node passes every active predicate.
func (f Filter) Matches(n *Node) bool {
	if f.Search != "" {
		q := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(n.Name), q) &&
			!strings.Contains(strings.ToLower(n.Description), q) {
			return false
		}
	}
	if active(f.Status) && string(n.Status) != f.Status {
		return false
	}
	if active(f.Type) && string(n.Type) != f.Type {
		return false
	}
	if active(f.Assignee) && n.Assignee != f.Assignee {
		return false
	}
	return true
}

// Apply returns the subsequence of nodes matching the filter, in input
// order. The input is never mutated; with no active predicates the result
// is an equal-order copy of the input.
func (f Filter) Apply(nodes []*Node) []*Node {
	out := make([]*Node, 0, len(nodes))
	for _, n := range nodes {
		if f.Matches(n) {
			out = append(out, n)
		}
	}
	return out
}
