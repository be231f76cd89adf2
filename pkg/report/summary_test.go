package report_test

import (
	"bytes"
	"testing"

	"github.com/appsurify/testbrain/pkg/converter"
	"github.com/appsurify/testbrain/pkg/junit"
	"github.com/appsurify/testbrain/pkg/report"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarizeJUnit(t *testing.T) {
	t.Parallel()

	source, err := junit.ParseFile(junitFixture)
	require.NoError(t, err)

	summary := report.SummarizeJUnit(source)
	require.Len(t, summary.Rows, 2)
	assert.Equal(t, "JUnitXmlReporter.constructor", summary.Rows[1].Name)
	assert.Equal(t, 3, summary.Rows[1].Tests)
	assert.Equal(t, 3, summary.Total.Tests)
	assert.True(t, summary.Failed())

	assert.Equal(t, summary, report.SummarizeTestbrain(converter.JUnitToTestbrain(source)))
}

func TestPrintSummary(t *testing.T) {
	t.Parallel()

	summary := report.Summary{
		Rows: []report.SummaryRow{
			{Name: "tests.LoginTest", Hostname: "agent", Tests: 4, Passed: 1, Failures: 1, Errors: 1, Skipped: 1, Time: 1.234},
		},
		Total: report.SummaryRow{Tests: 4, Passed: 1, Failures: 1, Errors: 1, Skipped: 1, Time: 1.234},
	}
	assert.True(t, summary.Failed())

	var out bytes.Buffer
	report.PrintSummary(&out, summary)

	assert.Contains(t, out.String(), "NAME")
	assert.Contains(t, out.String(), "FAILURES")
	assert.Contains(t, out.String(), "tests.LoginTest")
	assert.Contains(t, out.String(), "1.234s")
	assert.Contains(t, out.String(), "TOTAL")
	assert.False(t, report.Summary{}.Failed())
}
