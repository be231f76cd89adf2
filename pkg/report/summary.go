package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/appsurify/testbrain/pkg/junit"
	"github.com/appsurify/testbrain/pkg/testbrain"
	"github.com/olekukonko/tablewriter"
)

// SummaryRow holds the counters of one suite (JUnit) or run (Testbrain).
type SummaryRow struct {
	Name     string
	Hostname string
	Tests    int
	Passed   int
	Failures int
	Errors   int
	Skipped  int
	Time     float64
}

type Summary struct {
	Rows  []SummaryRow
	Total SummaryRow
}

// Failed reports whether at least one test failed or raised an error.
func (s Summary) Failed() bool {
	return s.Total.Failures > 0 || s.Total.Errors > 0
}

func SummarizeJUnit(r *junit.TestSuites) Summary {
	summary := Summary{
		Total: SummaryRow{
			Name:     r.Name,
			Tests:    r.Tests,
			Passed:   r.Passed,
			Failures: r.Failures,
			Errors:   r.Errors,
			Skipped:  r.Skipped,
			Time:     r.Time,
		},
	}
	for _, s := range r.TestSuites {
		summary.Rows = append(summary.Rows, SummaryRow{
			Name:     s.Name,
			Hostname: s.Hostname,
			Tests:    s.Tests,
			Passed:   s.Passed,
			Failures: s.Failures,
			Errors:   s.Errors,
			Skipped:  s.Skipped,
			Time:     s.Time,
		})
	}
	return summary
}

func SummarizeTestbrain(s *testbrain.TestSuite) Summary {
	summary := Summary{
		Total: SummaryRow{
			Name:     s.Name,
			Tests:    s.Total,
			Passed:   s.Passed,
			Failures: s.Failures,
			Errors:   s.Errors,
			Skipped:  s.Skipped,
			Time:     s.Time,
		},
	}
	for _, run := range s.TestRuns {
		summary.Rows = append(summary.Rows, SummaryRow{
			Name:     run.Name,
			Hostname: run.Hostname,
			Tests:    run.Total,
			Passed:   run.Passed,
			Failures: run.Failures,
			Errors:   run.Errors,
			Skipped:  run.Skipped,
			Time:     run.Time,
		})
	}
	return summary
}

// PrintSummary renders the summary as a table, one line per suite and a total footer.
func PrintSummary(w io.Writer, summary Summary) {
	table := tablewriter.NewWriter(w)
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetFooterAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")

	var data [][]string
	for _, row := range summary.Rows {
		data = append(data, summaryCells(row))
	}

	table.AppendBulk(data)

	table.SetHeader([]string{"Name", "Hostname", "Tests", "Passed", "Failures", "Errors", "Skipped", "Time"})
	footer := summaryCells(summary.Total)
	footer[0] = "Total"
	table.SetFooter(footer)
	table.Render()
}

func summaryCells(row SummaryRow) []string {
	return []string{
		row.Name,
		row.Hostname,
		strconv.Itoa(row.Tests),
		strconv.Itoa(row.Passed),
		strconv.Itoa(row.Failures),
		strconv.Itoa(row.Errors),
		strconv.Itoa(row.Skipped),
		fmt.Sprintf("%.3fs", row.Time),
	}
}
