// Package converter maps the parsed report models onto each other.
// Converters never modify their source and always return a model with refreshed statistics.
package converter

import (
	"github.com/appsurify/testbrain/pkg/junit"
	"github.com/appsurify/testbrain/pkg/testbrain"
)

// JUnitToTestbrain converts a JUnit report: one run per suite, one test per test case.
// Counters are recomputed rather than copied.
func JUnitToTestbrain(source *junit.TestSuites) *testbrain.TestSuite {
	destination := &testbrain.TestSuite{
		ID:   source.ID,
		Name: source.Name,
	}

	for _, suite := range source.TestSuites {
		run := &testbrain.TestRun{
			ID:        suite.ID,
			Name:      suite.Name,
			Timestamp: suite.Timestamp,
			Hostname:  suite.Hostname,
			SystemOut: suite.SystemOut,
			SystemErr: suite.SystemErr,
		}

		for _, property := range suite.Properties {
			run.AddProperty(property.Name, property.Value)
		}

		for _, tc := range suite.TestCases {
			run.AddTest(&testbrain.Test{
				ID:         tc.ID,
				Name:       tc.Name,
				Classname:  tc.Classname,
				File:       tc.File,
				Line:       tc.Line,
				Time:       tc.Time,
				SystemOut:  tc.SystemOut,
				SystemErr:  tc.SystemErr,
				Status:     tc.Result.Status,
				Type:       tc.Result.Type,
				Message:    tc.Result.Message,
				Stacktrace: tc.Result.Stacktrace,
			})
		}

		destination.AddTestRun(run)
	}

	destination.UpdateStatistics()
	return destination
}
