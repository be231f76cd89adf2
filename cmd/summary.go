package cmd

import (
	"fmt"
	"io"

	"github.com/appsurify/testbrain/pkg/junit"
	"github.com/appsurify/testbrain/pkg/report"
	"github.com/appsurify/testbrain/pkg/testbrain"
	"github.com/appsurify/testbrain/pkg/types"
	"github.com/spf13/cobra"
)

func summaryCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "summary <report>",
		Short: "Print the counters of a test report",
		Long: `testbrain summary prints one line per suite with its test counters and duration.
With --strict, the command fails when the report holds failed or errored tests.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			bindPFlagsSnakeCase(cmd.Flags())

			opts := summaryOpts{}
			hydrateOptsFromViper(&opts)

			return doSummary(cmd.OutOrStdout(), args[0], opts)
		},
	}

	cmd.Flags().StringP("format", "f", string(types.FormatJUnit),
		"Dialect of the report (junit|trx|allure|testbrain).")
	cmd.Flags().Bool("strict", false, "Fail when the report holds failed or errored tests.")

	return cmd
}

func doSummary(w io.Writer, path string, opts summaryOpts) error {
	format, err := types.ParseFormat(opts.Format)
	if err != nil {
		return err
	}

	source, err := loadReport(format, path)
	if err != nil {
		return err
	}

	var summary report.Summary
	if r, ok := source.(*junit.TestSuites); ok {
		summary = report.SummarizeJUnit(r)
	} else {
		converted, err := convertReport(source, types.FormatTestbrain)
		if err != nil {
			return err
		}
		summary = report.SummarizeTestbrain(converted.(*testbrain.TestSuite)) //nolint:forcetypeassert
	}

	report.PrintSummary(w, summary)

	if opts.Strict && summary.Failed() {
		return fmt.Errorf("%d failed and %d errored tests out of %d",
			summary.Total.Failures, summary.Total.Errors, summary.Total.Tests)
	}
	return nil
}
