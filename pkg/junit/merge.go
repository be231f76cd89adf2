package junit

import (
	"slices"
	"strings"
)

// MergeDecision tells what MergeOrAppend did with a candidate suite.
type MergeDecision int

const (
	// Appended means no existing suite matched and the candidate was added as a new sibling.
	Appended MergeDecision = iota
	// Merged means the candidate test cases were added to an existing suite.
	Merged
)

func (d MergeDecision) String() string {
	if d == Merged {
		return "merged"
	}
	return "appended"
}

// IsSameLogicalSuite reports whether two suites describe the same logical suite:
// same name, hostname and timestamp, and the same set of properties regardless of order.
// Two suites that both lack a timestamp have the same timestamp.
func IsSameLogicalSuite(a, b *TestSuite) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Name != b.Name || a.Hostname != b.Hostname || !sameTimestamp(a, b) {
		return false
	}
	return slices.Equal(sortedProperties(a.Properties), sortedProperties(b.Properties))
}

func sameTimestamp(a, b *TestSuite) bool {
	if a.TimestampMissing || b.TimestampMissing {
		return a.TimestampMissing == b.TimestampMissing
	}
	return a.Timestamp.Equal(b.Timestamp)
}

// MergeOrAppend adds candidate to suites. When a suite of suites is the same logical suite,
// copies of the candidate test cases are appended to it and its statistics are refreshed once.
// Otherwise a copy of candidate is appended to suites. The candidate itself is never aliased.
func MergeOrAppend(suites []*TestSuite, candidate *TestSuite) ([]*TestSuite, MergeDecision) {
	for _, existing := range suites {
		if IsSameLogicalSuite(existing, candidate) {
			for _, tc := range candidate.TestCases {
				existing.AddTestCaseNoUpdateStats(tc.Clone())
			}
			existing.UpdateStatistics()
			return suites, Merged
		}
	}

	clone := candidate.Clone()
	clone.UpdateStatistics()
	return append(suites, clone), Appended
}

// UnionSuites combines two suites into a new report. Suites of the same logical identity
// become one suite holding the test cases of both; other suites become two siblings.
// Neither argument is modified.
func UnionSuites(a, b *TestSuite) *TestSuites {
	root := &TestSuites{}
	root.TestSuites, _ = MergeOrAppend(root.TestSuites, a)
	root.TestSuites, _ = MergeOrAppend(root.TestSuites, b)
	root.UpdateStatistics()
	return root
}

func sortedProperties(properties []Property) []Property {
	sorted := slices.Clone(properties)
	slices.SortStableFunc(sorted, func(x, y Property) int {
		if c := strings.Compare(x.Name, y.Name); c != 0 {
			return c
		}
		return strings.Compare(x.Value, y.Value)
	})
	return sorted
}
