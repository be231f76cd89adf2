// Package merger combines several reports of the same dialect into one report.
package merger

import (
	"github.com/appsurify/testbrain/internal/logger"
	"github.com/appsurify/testbrain/pkg/junit"
	"github.com/appsurify/testbrain/pkg/testbrain"
)

// MergeJUnit concatenates the suites of every report into a new report, in order.
// Suites repeated across reports stay separate siblings.
func MergeJUnit(reports []*junit.TestSuites) *junit.TestSuites {
	destination := &junit.TestSuites{}

	for _, report := range reports {
		for _, suite := range report.TestSuites {
			destination.TestSuites = append(destination.TestSuites, suite.Clone())
		}
	}

	destination.UpdateStatistics()
	return destination
}

// MergeJUnitSameSuites is MergeJUnit where suites of the same logical identity
// (see junit.IsSameLogicalSuite) are folded into one suite holding all their test cases.
func MergeJUnitSameSuites(reports []*junit.TestSuites) *junit.TestSuites {
	destination := &junit.TestSuites{}

	merged := 0
	for _, report := range reports {
		for _, suite := range report.TestSuites {
			var decision junit.MergeDecision
			destination.TestSuites, decision = junit.MergeOrAppend(destination.TestSuites, suite)
			if decision == junit.Merged {
				merged++
			}
		}
	}
	if merged > 0 {
		logger.Debugf("Merged %d suites into an existing suite", merged)
	}

	destination.UpdateStatistics()
	return destination
}

// MergeTestbrain concatenates the runs of every report into a new report, in order.
func MergeTestbrain(reports []*testbrain.TestSuite) *testbrain.TestSuite {
	destination := &testbrain.TestSuite{}

	for _, report := range reports {
		for _, run := range report.TestRuns {
			destination.AddTestRun(run.Clone())
		}
	}

	destination.UpdateStatistics()
	return destination
}
