package converter

import (
	"strings"
	"time"

	"github.com/appsurify/testbrain/pkg/allure"
	"github.com/appsurify/testbrain/pkg/junit"
	"github.com/appsurify/testbrain/pkg/testbrain"
	"github.com/appsurify/testbrain/pkg/timeutil"
	"github.com/appsurify/testbrain/pkg/types"
)

var allureStatuses = map[allure.Status]types.Status{
	allure.StatusPassed:  types.StatusPassed,
	allure.StatusSkipped: types.StatusSkipped,
	allure.StatusFailed:  types.StatusFailure,
	allure.StatusBroken:  types.StatusError,
	allure.StatusUnknown: types.StatusUnknown,
}

// ResolveAllureStatus maps an Allure status, case-insensitively, onto the normalized vocabulary.
func ResolveAllureStatus(status string) types.Status {
	return allureStatuses[allure.ParseStatus(status)]
}

// AllureToJUnit converts an Allure report: one suite per top-level child of the suites tree.
func AllureToJUnit(source *allure.Report) *junit.TestSuites {
	destination := &junit.TestSuites{ID: source.UID}

	for _, child := range source.Children {
		cases := child.Flatten()
		suite := &junit.TestSuite{
			ID:        child.UID,
			Name:      child.Name,
			Timestamp: allureTimestamp(cases),
		}

		for _, tc := range cases {
			suite.AddTestCaseNoUpdateStats(&junit.TestCase{
				ID:        tc.UID,
				Name:      tc.Name,
				Classname: strings.Join(tc.Path, "."),
				Time:      tc.Time.Seconds(),
				Result: junit.Result{
					Status:     ResolveAllureStatus(tc.Status),
					Message:    tc.StatusMessage,
					Stacktrace: tc.StatusTrace,
				},
			})
		}

		destination.TestSuites = append(destination.TestSuites, suite)
	}

	destination.UpdateStatistics()
	return destination
}

// AllureToTestbrain converts an Allure report: one run per top-level child of the suites tree.
func AllureToTestbrain(source *allure.Report) *testbrain.TestSuite {
	destination := &testbrain.TestSuite{ID: source.UID}

	for _, child := range source.Children {
		cases := child.Flatten()
		run := &testbrain.TestRun{
			ID:        child.UID,
			Name:      child.Name,
			Timestamp: allureTimestamp(cases),
		}

		for _, tc := range cases {
			run.AddTest(&testbrain.Test{
				ID:         tc.UID,
				Name:       tc.Name,
				Classname:  strings.Join(tc.Path, "."),
				Time:       tc.Time.Seconds(),
				Status:     ResolveAllureStatus(tc.Status),
				Message:    tc.StatusMessage,
				Stacktrace: tc.StatusTrace,
			})
		}

		destination.AddTestRun(run)
	}

	destination.UpdateStatistics()
	return destination
}

// allureTimestamp is the start of the first test case that has one, or now.
func allureTimestamp(cases []allure.TestCase) time.Time {
	for _, tc := range cases {
		if start := tc.Time.StartTime(); !start.IsZero() {
			return start
		}
	}
	return timeutil.Now()
}
