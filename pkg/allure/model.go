// Package allure reads the suites tree of an Allure generated report directory.
package allure

import (
	"strings"
	"time"
)

// Status is an Allure test status.
type Status string

const (
	StatusPassed  Status = "passed"
	StatusSkipped Status = "skipped"
	StatusFailed  Status = "failed"
	StatusBroken  Status = "broken"
	StatusUnknown Status = "unknown"
)

// ParseStatus matches an Allure status case-insensitively. Anything else is unknown.
func ParseStatus(value string) Status {
	switch status := Status(strings.ToLower(strings.TrimSpace(value))); status {
	case StatusPassed, StatusSkipped, StatusFailed, StatusBroken:
		return status
	default:
		return StatusUnknown
	}
}

// Time holds epoch milliseconds.
type Time struct {
	Start    int64 `json:"start"`
	Stop     int64 `json:"stop"`
	Duration int64 `json:"duration"`
}

// Seconds is the duration in seconds, computed from start and stop when no duration is recorded.
func (t Time) Seconds() float64 {
	duration := t.Duration
	if duration == 0 && t.Stop > t.Start {
		duration = t.Stop - t.Start
	}
	return float64(duration) / 1000
}

// StartTime is the start as a timestamp, or the zero time when unknown.
func (t Time) StartTime() time.Time {
	if t.Start == 0 {
		return time.Time{}
	}
	return time.UnixMilli(t.Start).UTC()
}

// Node is either a group of the suites tree or, when it has no children, a test case.
type Node struct {
	UID       string  `json:"uid"`
	Name      string  `json:"name"`
	ParentUID string  `json:"parentUid,omitempty"`
	Status    string  `json:"status,omitempty"`
	Time      Time    `json:"time"`
	Flaky     bool    `json:"flaky,omitempty"`
	Children  []*Node `json:"children,omitempty"`

	// Filled from data/test-cases/<uid>.json when present.
	StatusMessage string `json:"statusMessage,omitempty"`
	StatusTrace   string `json:"statusTrace,omitempty"`
}

// IsTestCase reports whether the node is a leaf of the suites tree.
func (n *Node) IsTestCase() bool {
	return len(n.Children) == 0
}

// Report is the root of data/suites.json. Each child is one suite.
type Report struct {
	UID      string  `json:"uid"`
	Name     string  `json:"name"`
	Children []*Node `json:"children"`
}

// TestCase is a leaf of the suites tree with the names of the groups above it, starting with its suite.
type TestCase struct {
	*Node
	Path []string
}

// Flatten returns every test case below the node in depth-first order.
// The node itself is returned when it is a test case.
func (n *Node) Flatten() []TestCase {
	var cases []TestCase
	var walk func(node *Node, path []string)
	walk = func(node *Node, path []string) {
		if node == nil {
			return
		}
		if node.IsTestCase() {
			cases = append(cases, TestCase{Node: node, Path: path})
			return
		}
		childPath := append(append([]string(nil), path...), node.Name)
		for _, child := range node.Children {
			walk(child, childPath)
		}
	}

	if n.IsTestCase() {
		walk(n, nil)
		return cases
	}
	for _, child := range n.Children {
		walk(child, []string{n.Name})
	}
	return cases
}
