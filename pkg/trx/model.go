// Package trx holds the MSTest / Visual Studio TRX report model and its parser.
package trx

import "time"

// Times are the run level timestamps.
type Times struct {
	Creation time.Time `json:"creation"`
	Queuing  time.Time `json:"queuing"`
	Start    time.Time `json:"start"`
	Finish   time.Time `json:"finish"`
}

// RunTime is the number of seconds between creation and finish.
func (t Times) RunTime() float64 {
	return t.Finish.Sub(t.Creation).Seconds()
}

// ResultSummary holds the counters as written by the producer, corrected for aggregation wrappers.
type ResultSummary struct {
	Outcome  string `json:"outcome"`
	StdOut   string `json:"std_out"`
	Total    int    `json:"total"`
	Executed int    `json:"executed"`
	Passed   int    `json:"passed"`
	Failed   int    `json:"failed"`
	Errors   int    `json:"errors"`
}

type TestDefinition struct {
	ID          string `json:"id"`
	ExecutionID string `json:"execution_id"`
	Name        string `json:"name"`
	TestClass   string `json:"test_class"`
	TestMethod  string `json:"test_method"`
}

// UnitTestResult is one test execution. TestID references TestDefinition.ID.
type UnitTestResult struct {
	ExecutionID  string    `json:"execution_id"`
	TestID       string    `json:"test_id"`
	TestName     string    `json:"test_name"`
	Duration     float64   `json:"duration"`
	StartTime    time.Time `json:"start_time"`
	EndTime      time.Time `json:"end_time"`
	Outcome      string    `json:"outcome"`
	ComputerName string    `json:"computer_name"`
	Message      string    `json:"message"`
	Stacktrace   string    `json:"stacktrace"`
	StdOut       string    `json:"std_out"`
	StdErr       string    `json:"std_err"`
}

// RunTime is the number of seconds between start and end.
func (r *UnitTestResult) RunTime() float64 {
	return r.EndTime.Sub(r.StartTime).Seconds()
}

// TestRun is the root of a TRX report.
type TestRun struct {
	ID              string            `json:"id"`
	Name            string            `json:"name"`
	Times           Times             `json:"times"`
	ResultSummary   ResultSummary     `json:"result_summary"`
	TestDefinitions []*TestDefinition `json:"test_definitions"`
	UnitTestResults []*UnitTestResult `json:"unit_test_results"`
}
