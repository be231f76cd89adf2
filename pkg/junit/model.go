// Package junit holds the JUnit report model, its parser and its XML serialization.
package junit

import (
	"slices"
	"time"

	"github.com/appsurify/testbrain/pkg/timeutil"
	"github.com/appsurify/testbrain/pkg/types"
)

// Result is the outcome of one test case. A test case without failure, error or skipped
// element is passed and carries empty type, message and stacktrace.
type Result struct {
	Status     types.Status `json:"status"`
	Type       string       `json:"type"`
	Message    string       `json:"message"`
	Stacktrace string       `json:"stacktrace"`
}

// Property is a name/value pair attached to a suite. Names are not required to be unique.
type Property struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type TestCase struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Classname string  `json:"classname"`
	File      string  `json:"file"`
	Line      string  `json:"line"`
	Time      float64 `json:"time"`
	SystemOut string  `json:"system_out"`
	SystemErr string  `json:"system_err"`
	Result    Result  `json:"result"`
}

// Equal reports whether both test cases hold the same attributes, texts and result.
func (tc *TestCase) Equal(other *TestCase) bool {
	if tc == nil || other == nil {
		return tc == other
	}
	return *tc == *other
}

// Clone returns a copy of the test case.
func (tc *TestCase) Clone() *TestCase {
	clone := *tc
	return &clone
}

type TestSuite struct {
	ID               string      `json:"id"`
	Name             string      `json:"name"`
	Errors           int         `json:"errors"`
	Failures         int         `json:"failures"`
	Skipped          int         `json:"skipped"`
	Passed           int         `json:"passed"`
	Tests            int         `json:"tests"`
	Time             float64     `json:"time"`
	Timestamp        time.Time   `json:"timestamp"`
	// TimestampMissing is set by the parser when the suite carried no usable timestamp
	// and Timestamp holds the parse time instead.
	TimestampMissing bool        `json:"-"`
	Hostname         string      `json:"hostname"`
	SystemOut        string      `json:"system_out"`
	SystemErr        string      `json:"system_err"`
	Properties       []Property  `json:"properties"`
	TestCases        []*TestCase `json:"testcases"`
}

// AddTestCase appends a test case and refreshes the suite statistics.
func (s *TestSuite) AddTestCase(tc *TestCase) {
	s.AddTestCaseNoUpdateStats(tc)
	s.UpdateStatistics()
}

// AddTestCaseNoUpdateStats appends a test case and leaves the statistics stale.
// Callers adding many cases call UpdateStatistics once at the end.
func (s *TestSuite) AddTestCaseNoUpdateStats(tc *TestCase) {
	s.TestCases = append(s.TestCases, tc)
}

// RemoveTestCase removes the first test case structurally equal to tc and refreshes the statistics.
// It reports whether a test case was removed.
func (s *TestSuite) RemoveTestCase(tc *TestCase) bool {
	for i, existing := range s.TestCases {
		if existing.Equal(tc) {
			s.TestCases = append(s.TestCases[:i], s.TestCases[i+1:]...)
			s.UpdateStatistics()
			return true
		}
	}
	return false
}

// AddProperty appends a property, duplicates included.
func (s *TestSuite) AddProperty(name, value string) {
	s.Properties = append(s.Properties, Property{Name: name, Value: value})
}

// UpdateStatistics recomputes the counters and the total time from the test cases.
// Test cases with an unknown status count in Tests only.
func (s *TestSuite) UpdateStatistics() {
	var tests, errors, failures, skipped, passed int
	var total float64

	for _, tc := range s.TestCases {
		tests++
		total += tc.Time

		switch tc.Result.Status {
		case types.StatusPassed:
			passed++
		case types.StatusError:
			errors++
		case types.StatusFailure:
			failures++
		case types.StatusSkipped:
			skipped++
		case types.StatusUnknown:
		}
	}

	s.Tests = tests
	s.Errors = errors
	s.Failures = failures
	s.Skipped = skipped
	s.Passed = passed
	s.Time = timeutil.RoundTime(total)
}

// Clone returns a deep copy of the suite.
func (s *TestSuite) Clone() *TestSuite {
	clone := *s
	clone.Properties = slices.Clone(s.Properties)
	if s.TestCases != nil {
		clone.TestCases = make([]*TestCase, 0, len(s.TestCases))
		for _, tc := range s.TestCases {
			clone.TestCases = append(clone.TestCases, tc.Clone())
		}
	}
	return &clone
}

// TestSuites is the root of a JUnit report.
type TestSuites struct {
	ID         string       `json:"id"`
	Name       string       `json:"name"`
	Errors     int          `json:"errors"`
	Failures   int          `json:"failures"`
	Skipped    int          `json:"skipped"`
	Passed     int          `json:"passed"`
	Tests      int          `json:"tests"`
	Time       float64      `json:"time"`
	TestSuites []*TestSuite `json:"testsuites"`
}

// AddTestSuite appends a suite without looking for an existing equal one, then refreshes the statistics.
func (r *TestSuites) AddTestSuite(s *TestSuite) {
	r.TestSuites = append(r.TestSuites, s)
	r.UpdateStatistics()
}

// MergeTestSuite merges s into an existing suite of the same logical identity, or appends it.
// The statistics are refreshed either way.
func (r *TestSuites) MergeTestSuite(s *TestSuite) MergeDecision {
	var decision MergeDecision
	r.TestSuites, decision = MergeOrAppend(r.TestSuites, s)
	r.UpdateStatistics()
	return decision
}

// UpdateStatistics refreshes every suite, then sums their counters.
func (r *TestSuites) UpdateStatistics() {
	var tests, errors, failures, skipped, passed int
	var total float64

	for _, s := range r.TestSuites {
		s.UpdateStatistics()

		tests += s.Tests
		errors += s.Errors
		failures += s.Failures
		skipped += s.Skipped
		passed += s.Passed
		total += s.Time
	}

	r.Tests = tests
	r.Errors = errors
	r.Failures = failures
	r.Skipped = skipped
	r.Passed = passed
	r.Time = timeutil.RoundTime(total)
}

// Clone returns a deep copy of the report.
func (r *TestSuites) Clone() *TestSuites {
	clone := *r
	if r.TestSuites != nil {
		clone.TestSuites = make([]*TestSuite, 0, len(r.TestSuites))
		for _, s := range r.TestSuites {
			clone.TestSuites = append(clone.TestSuites, s.Clone())
		}
	}
	return &clone
}
