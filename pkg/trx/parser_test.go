package trx_test

import (
	"encoding/xml"
	"testing"
	"time"

	"github.com/appsurify/testbrain/pkg/trx"
	"github.com/appsurify/testbrain/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFile(t *testing.T) {
	t.Parallel()

	run, err := trx.ParseFile("testdata/trx-mstest.trx")
	require.NoError(t, err)

	assert.Equal(t, "6a1f8c0e-0000-4a8b-9b1e-2c3d4e5f6a7b", run.ID)
	assert.Equal(t, time.Date(2021, 11, 2, 6, 31, 24, 637203600, time.UTC), run.Times.Creation.UTC())
	assert.InDelta(t, 1.4756416, run.Times.RunTime(), 0.0000001)

	summary := run.ResultSummary
	assert.Equal(t, "Failed", summary.Outcome)
	assert.Equal(t, "Test run summary output", summary.StdOut)
	assert.Equal(t, 7, summary.Total, "the aggregation wrapper is not a test")
	assert.Equal(t, 2, summary.Failed, "the failed wrapper is not a failure")
	assert.Equal(t, 7, summary.Executed)
	assert.Equal(t, 4, summary.Passed)

	require.Len(t, run.TestDefinitions, 6)
	assert.Equal(t, &trx.TestDefinition{
		ID:          "d1",
		ExecutionID: "e1",
		Name:        "Add",
		TestClass:   "Tests.MathTests",
		TestMethod:  "Add",
	}, run.TestDefinitions[0])
	assert.Equal(t, "Tests.DataTests.(System.Int32)", run.TestDefinitions[3].TestMethod)

	require.Len(t, run.UnitTestResults, 7)
	var executions []string
	for _, result := range run.UnitTestResults {
		executions = append(executions, result.ExecutionID)
	}
	assert.Equal(t, []string{"e1", "e2", "e3", "e5", "e6a", "e6b", "e6c"}, executions,
		"results are grouped per producer variant")

	add := run.UnitTestResults[0]
	assert.Equal(t, "d1", add.TestID)
	assert.Equal(t, "Add", add.TestName)
	assert.Equal(t, "BUILDAGENT", add.ComputerName)
	assert.Equal(t, "Passed", add.Outcome)
	assert.InDelta(t, 0.033, add.Duration, 0.0000001)
	assert.Equal(t, "adding numbers", add.StdOut)
	assert.Equal(t, "", add.Message)

	divide := run.UnitTestResults[1]
	assert.Equal(t, "System.DivideByZeroException: Attempted to divide by zero.", divide.Message)
	assert.Equal(t, "   at Tests.MathTests.Divide() in MathTests.cs:line 42", divide.Stacktrace)
	assert.Equal(t, "division warning", divide.StdErr)

	weird := run.UnitTestResults[3]
	assert.InDelta(t, 1.5, weird.Duration, 0.0000001, "missing duration falls back to end - start")

	inner := run.UnitTestResults[6]
	assert.Equal(t, "Failed", inner.Outcome)
	assert.Equal(t, "Assert.AreEqual failed. Expected:<3>. Actual:<4>.", inner.Message)
}

func TestParse_wrapperCorrection(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		innerOutcomes  []string
		expectedTotal  int
		expectedFailed int
	}{
		{name: "one failed inner result", innerOutcomes: []string{"Passed", "Failed", "Passed"}, expectedTotal: 9, expectedFailed: 1},
		{name: "all inner results passed", innerOutcomes: []string{"Passed", "Passed", "Passed"}, expectedTotal: 9, expectedFailed: 2},
		{name: "several failed inner results", innerOutcomes: []string{"Failed", "Failed", "Passed"}, expectedTotal: 9, expectedFailed: 1},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			doc := `<TestRun xmlns="http://microsoft.com/schemas/VisualStudio/TeamTest/2010">
  <ResultSummary outcome="Failed"><Counters total="10" failed="2"/></ResultSummary>
  <Results><TestResultAggregation testId="w" outcome="Failed"><InnerResults>`
			for _, outcome := range test.innerOutcomes {
				doc += `<UnitTestResult testId="w" outcome="` + outcome + `"/>`
			}
			doc += `</InnerResults></TestResultAggregation></Results></TestRun>`

			run, err := trx.Parse([]byte(doc))
			require.NoError(t, err)

			assert.Equal(t, test.expectedTotal, run.ResultSummary.Total)
			assert.Equal(t, test.expectedFailed, run.ResultSummary.Failed)
			assert.Len(t, run.UnitTestResults, len(test.innerOutcomes))
		})
	}
}

func TestParse_namespaceIsReadFromDocument(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		doc  string
	}{
		{name: "no namespace", doc: `<TestRun><Results><UnitTestResult testId="a" outcome="Passed"/></Results></TestRun>`},
		{name: "custom namespace", doc: `<TestRun xmlns="urn:custom"><Results><UnitTestResult testId="a" outcome="Passed"/></Results></TestRun>`},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			run, err := trx.Parse([]byte(test.doc))
			require.NoError(t, err)
			require.Len(t, run.UnitTestResults, 1)
			assert.Equal(t, "a", run.UnitTestResults[0].TestID)
			assert.InDelta(t, 0.0, run.UnitTestResults[0].Duration, 0)
		})
	}
}

func TestParse_errors(t *testing.T) {
	t.Parallel()

	_, err := trx.Parse([]byte(`<TestRun xmlns="http://microsoft.com/schemas/VisualStudio/TeamTest/2010"><Times/></TestRun>`))
	require.ErrorIs(t, err, trx.ErrMissingResults)

	_, err = trx.Parse([]byte(`<testsuites/>`))
	require.ErrorIs(t, err, trx.ErrIncorrectFormat)

	_, err = trx.Parse([]byte(`<TestRun><Results>`))
	var syntaxErr *xml.SyntaxError
	require.ErrorAs(t, err, &syntaxErr)
}

func TestNewParser_ambiguousSource(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() {
		trx.NewParser(types.Source{Text: []byte("<TestRun/>"), Path: "testdata/trx-mstest.trx"})
	})
}
