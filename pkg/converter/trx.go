package converter

import (
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/appsurify/testbrain/internal/logger"
	"github.com/appsurify/testbrain/pkg/junit"
	"github.com/appsurify/testbrain/pkg/testbrain"
	"github.com/appsurify/testbrain/pkg/trx"
	"github.com/appsurify/testbrain/pkg/types"
)

var outcomeStatuses = map[string]types.Status{
	"Completed":           types.StatusPassed,
	"Passed":              types.StatusPassed,
	"PassedButRunAborted": types.StatusPassed,
	"NotExecuted":         types.StatusSkipped,
	"NotRunnable":         types.StatusSkipped,
	"Disconnected":        types.StatusSkipped,
	"Error":               types.StatusError,
	"Aborted":             types.StatusFailure,
	"Failed":              types.StatusFailure,
	"Timeout":             types.StatusFailure,
}

// ResolveStatus maps a TRX outcome onto the normalized status vocabulary. The match is
// case-sensitive; unexpected outcomes are unknown.
func ResolveStatus(outcome string) types.Status {
	if status, ok := outcomeStatuses[outcome]; ok {
		return status
	}
	return types.StatusUnknown
}

// TRXConverter converts one TRX run. Test definitions are grouped by test class, each class
// becoming one JUnit suite or one Testbrain run, and joined with their result by test id.
// Definitions without result are dropped.
type TRXConverter struct {
	source *trx.TestRun
	// lookup maps a test id to its result. The last result of a test id wins.
	lookup map[string]*trx.UnitTestResult
	groups []definitionGroup
	nextID int
}

type definitionGroup struct {
	testClass   string
	definitions []*trx.TestDefinition
}

// counters are accumulated while a group is converted, then checked against a recompute.
type counters struct {
	tests, failures, errors, skipped, passed int
	time                                     float64
	timestamp                                time.Time
	hostname                                 string
}

func (c *counters) add(result *trx.UnitTestResult, status types.Status) {
	c.tests++
	c.time += result.Duration
	c.hostname = result.ComputerName
	if c.timestamp.IsZero() {
		c.timestamp = result.StartTime
	}

	switch status {
	case types.StatusPassed:
		c.passed++
	case types.StatusFailure:
		c.failures++
	case types.StatusError:
		c.errors++
	case types.StatusSkipped:
		c.skipped++
	case types.StatusUnknown:
	}
}

// NewTRXConverter prepares the result lookup and the class groups of source.
func NewTRXConverter(source *trx.TestRun) *TRXConverter {
	c := &TRXConverter{
		source: source,
		lookup: make(map[string]*trx.UnitTestResult, len(source.UnitTestResults)),
	}

	for _, result := range source.UnitTestResults {
		c.lookup[result.TestID] = result
	}

	definitions := slices.Clone(source.TestDefinitions)
	slices.SortStableFunc(definitions, func(a, b *trx.TestDefinition) int {
		return strings.Compare(a.TestClass, b.TestClass)
	})

	for _, definition := range definitions {
		last := len(c.groups) - 1
		if last >= 0 && c.groups[last].testClass == definition.TestClass {
			c.groups[last].definitions = append(c.groups[last].definitions, definition)
			continue
		}
		c.groups = append(c.groups, definitionGroup{
			testClass:   definition.TestClass,
			definitions: []*trx.TestDefinition{definition},
		})
	}

	return c
}

// TRXToJUnit converts a TRX run into a JUnit report.
func TRXToJUnit(source *trx.TestRun) *junit.TestSuites {
	return NewTRXConverter(source).ToJUnit()
}

// TRXToTestbrain converts a TRX run into a Testbrain report.
func TRXToTestbrain(source *trx.TestRun) *testbrain.TestSuite {
	return NewTRXConverter(source).ToTestbrain()
}

// ToJUnit builds one suite per test class. Suite ids are allocated by this converter, from 0.
func (c *TRXConverter) ToJUnit() *junit.TestSuites {
	destination := &junit.TestSuites{}

	for _, group := range c.groups {
		suite := &junit.TestSuite{
			ID:   c.allocateID(),
			Name: group.testClass,
		}

		var acc counters
		for _, definition := range group.definitions {
			result, ok := c.resolve(definition)
			if !ok {
				continue
			}

			status := ResolveStatus(result.Outcome)
			acc.add(result, status)
			suite.AddTestCaseNoUpdateStats(&junit.TestCase{
				Name:      result.TestName,
				Classname: definition.TestClass,
				Time:      result.Duration,
				SystemOut: result.StdOut,
				SystemErr: result.StdErr,
				Result: junit.Result{
					Status:     status,
					Message:    result.Message,
					Stacktrace: result.Stacktrace,
				},
			})
		}

		suite.Hostname = acc.hostname
		suite.Timestamp = acc.timestamp
		suite.Tests = acc.tests
		suite.Failures = acc.failures
		suite.Errors = acc.errors
		suite.Skipped = acc.skipped
		suite.Passed = acc.passed
		suite.Time = acc.time

		suite.UpdateStatistics()
		checkCounters(group.testClass, acc, suite.Tests, suite.Failures, suite.Errors, suite.Skipped, suite.Passed)

		destination.TestSuites = append(destination.TestSuites, suite)
	}

	destination.UpdateStatistics()
	return destination
}

// ToTestbrain builds one run per test class. Run ids are allocated by this converter, from 0.
func (c *TRXConverter) ToTestbrain() *testbrain.TestSuite {
	destination := &testbrain.TestSuite{}

	for _, group := range c.groups {
		run := &testbrain.TestRun{
			ID:   c.allocateID(),
			Name: group.testClass,
		}

		var acc counters
		for _, definition := range group.definitions {
			result, ok := c.resolve(definition)
			if !ok {
				continue
			}

			status := ResolveStatus(result.Outcome)
			acc.add(result, status)
			run.AddTest(&testbrain.Test{
				Name:       result.TestName,
				Classname:  definition.TestClass,
				Time:       result.Duration,
				SystemOut:  result.StdOut,
				SystemErr:  result.StdErr,
				Status:     status,
				Message:    result.Message,
				Stacktrace: result.Stacktrace,
			})
		}

		run.Hostname = acc.hostname
		run.Timestamp = acc.timestamp
		run.Total = acc.tests
		run.Failures = acc.failures
		run.Errors = acc.errors
		run.Skipped = acc.skipped
		run.Passed = acc.passed
		run.Time = acc.time

		run.UpdateStatistics()
		checkCounters(group.testClass, acc, run.Total, run.Failures, run.Errors, run.Skipped, run.Passed)

		destination.AddTestRun(run)
	}

	destination.UpdateStatistics()
	return destination
}

func (c *TRXConverter) allocateID() string {
	id := strconv.Itoa(c.nextID)
	c.nextID++
	return id
}

func (c *TRXConverter) resolve(definition *trx.TestDefinition) (*trx.UnitTestResult, bool) {
	result, ok := c.lookup[definition.ID]
	if !ok {
		logger.Debugf("TRX test definition %s (%s) has no result, skipping", definition.ID, definition.Name)
	}
	return result, ok
}

func checkCounters(group string, acc counters, tests, failures, errors, skipped, passed int) {
	if acc.tests != tests || acc.failures != failures || acc.errors != errors ||
		acc.skipped != skipped || acc.passed != passed {
		logger.Warnf("Counters of %q differ after recompute: accumulated %d/%d/%d/%d/%d, recomputed %d/%d/%d/%d/%d",
			group, acc.tests, acc.failures, acc.errors, acc.skipped, acc.passed,
			tests, failures, errors, skipped, passed)
	}
}
