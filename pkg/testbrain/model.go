// Package testbrain holds the dialect-neutral report model every input dialect converts to.
package testbrain

import (
	"slices"
	"time"

	"github.com/appsurify/testbrain/pkg/timeutil"
	"github.com/appsurify/testbrain/pkg/types"
)

// Test is one executed test with its result flattened onto it.
type Test struct {
	ID         string       `json:"id"`
	Name       string       `json:"name"`
	Classname  string       `json:"classname"`
	File       string       `json:"file"`
	Line       string       `json:"line"`
	Time       float64      `json:"time"`
	SystemOut  string       `json:"system_out"`
	SystemErr  string       `json:"system_err"`
	Status     types.Status `json:"status"`
	Type       string       `json:"type"`
	Message    string       `json:"message"`
	Stacktrace string       `json:"stacktrace"`
}

// Clone returns a copy of the test.
func (t *Test) Clone() *Test {
	clone := *t
	return &clone
}

type Property struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// TestRun groups the tests of one JUnit suite or one TRX test class.
type TestRun struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Errors     int        `json:"errors"`
	Failures   int        `json:"failures"`
	Skipped    int        `json:"skipped"`
	Passed     int        `json:"passed"`
	Total      int        `json:"total"`
	Time       float64    `json:"time"`
	Timestamp  time.Time  `json:"timestamp"`
	Hostname   string     `json:"hostname"`
	SystemOut  string     `json:"system_out"`
	SystemErr  string     `json:"system_err"`
	Properties []Property `json:"properties"`
	Tests      []*Test    `json:"tests"`
}

// AddTest appends a test. Statistics are refreshed by UpdateStatistics.
func (r *TestRun) AddTest(test *Test) {
	r.Tests = append(r.Tests, test)
}

// AddProperty appends a property, duplicates included.
func (r *TestRun) AddProperty(name, value string) {
	r.Properties = append(r.Properties, Property{Name: name, Value: value})
}

// UpdateStatistics recomputes the counters and the total time from the tests.
// Tests with an unknown status count in Total only.
func (r *TestRun) UpdateStatistics() {
	var total, errors, failures, skipped, passed int
	var seconds float64

	for _, test := range r.Tests {
		total++
		seconds += test.Time

		switch test.Status {
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

	r.Total = total
	r.Errors = errors
	r.Failures = failures
	r.Skipped = skipped
	r.Passed = passed
	r.Time = timeutil.RoundTime(seconds)
}

// Clone returns a deep copy of the run.
func (r *TestRun) Clone() *TestRun {
	clone := *r
	clone.Properties = slices.Clone(r.Properties)
	if r.Tests != nil {
		clone.Tests = make([]*Test, 0, len(r.Tests))
		for _, test := range r.Tests {
			clone.Tests = append(clone.Tests, test.Clone())
		}
	}
	return &clone
}

// TestSuite is the root of a Testbrain report: one whole report, holding one run per suite.
type TestSuite struct {
	ID       string     `json:"id"`
	Name     string     `json:"name"`
	Errors   int        `json:"errors"`
	Failures int        `json:"failures"`
	Skipped  int        `json:"skipped"`
	Passed   int        `json:"passed"`
	Total    int        `json:"total"`
	Time     float64    `json:"time"`
	TestRuns []*TestRun `json:"testruns"`
}

// AddTestRun appends a run. Statistics are refreshed by UpdateStatistics.
func (s *TestSuite) AddTestRun(run *TestRun) {
	s.TestRuns = append(s.TestRuns, run)
}

// UpdateStatistics refreshes every run, then sums their counters.
func (s *TestSuite) UpdateStatistics() {
	var total, errors, failures, skipped, passed int
	var seconds float64

	for _, run := range s.TestRuns {
		run.UpdateStatistics()

		total += run.Total
		errors += run.Errors
		failures += run.Failures
		skipped += run.Skipped
		passed += run.Passed
		seconds += run.Time
	}

	s.Total = total
	s.Errors = errors
	s.Failures = failures
	s.Skipped = skipped
	s.Passed = passed
	s.Time = timeutil.RoundTime(seconds)
}

// Clone returns a deep copy of the report.
func (s *TestSuite) Clone() *TestSuite {
	clone := *s
	if s.TestRuns != nil {
		clone.TestRuns = make([]*TestRun, 0, len(s.TestRuns))
		for _, run := range s.TestRuns {
			clone.TestRuns = append(clone.TestRuns, run.Clone())
		}
	}
	return &clone
}
