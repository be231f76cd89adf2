package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/appsurify/testbrain/pkg/merger"
	"github.com/appsurify/testbrain/pkg/types"
	"github.com/spf13/cobra"
)

func mergeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "merge <path>...",
		Short: "Merge several reports of the same format into one",
		Long: `testbrain merge combines JUnit XML reports, or Testbrain JSON reports, into one report.

Each path can be a report file, a directory (every file below it is read, in lexical order),
or a .tar.gz, .tgz, .tar or .zip archive of reports.
Suites of the inputs are concatenated. With --merge-same-suites, JUnit suites with the same
name, hostname, timestamp and properties are folded into one suite.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			bindPFlagsSnakeCase(cmd.Flags())

			opts := mergeOpts{}
			hydrateOptsFromViper(&opts)

			return doMerge(cmd.Context(), cmd.OutOrStdout(), args, opts)
		},
	}

	cmd.Flags().StringP("format", "f", string(types.FormatJUnit),
		"Format of the merged reports (junit|testbrain).")
	cmd.Flags().StringSlice("exclude", []string{},
		"Exclude pattern (.dockerignore syntax) of files inside directories and archives. Can be repeated.")
	cmd.Flags().Bool("merge-same-suites", false,
		"Fold JUnit suites of the same logical identity into one suite.")
	addReportFlags(cmd)
	addOutputFlags(cmd)

	return cmd
}

func doMerge(ctx context.Context, w io.Writer, paths []string, opts mergeOpts) error {
	format, err := types.ParseFormat(opts.Format)
	if err != nil {
		return err
	}

	var merged any
	switch format {
	case types.FormatJUnit:
		merged, err = merger.JUnitFromPaths(ctx, paths, opts.Exclude, opts.MergeSameSuites)
	case types.FormatTestbrain:
		merged, err = merger.TestbrainFromPaths(ctx, paths, opts.Exclude)
	case types.FormatTRX, types.FormatAllure:
		return fmt.Errorf("can't merge %s reports, convert them first", format)
	}
	if err != nil {
		return err
	}

	if err := decorate(merged, opts.Report); err != nil {
		return err
	}

	return writeReport(ctx, w, opts.Out, merged)
}
