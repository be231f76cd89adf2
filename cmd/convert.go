package cmd

import (
	"context"
	"io"

	"github.com/appsurify/testbrain/pkg/types"
	"github.com/spf13/cobra"
)

func convertCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "convert <report>",
		Short: "Convert a test report to the Testbrain or the JUnit format",
		Long: `testbrain convert reads a JUnit XML file, a TRX file or an Allure report directory
and converts it to the Testbrain report format (default) or to JUnit.

TRX test definitions without result are dropped. Allure suites become one suite per top-level suite.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			bindPFlagsSnakeCase(cmd.Flags())

			opts := convertOpts{}
			hydrateOptsFromViper(&opts)

			return doConvert(cmd.Context(), cmd.OutOrStdout(), args[0], opts)
		},
	}

	cmd.Flags().String("from", string(types.FormatJUnit),
		"Dialect of the input report (junit|trx|allure).")
	cmd.Flags().String("to", string(types.FormatTestbrain),
		"Format of the produced report (testbrain|junit).")
	addReportFlags(cmd)
	addOutputFlags(cmd)

	return cmd
}

func doConvert(ctx context.Context, w io.Writer, path string, opts convertOpts) error {
	from, err := types.ParseFormat(opts.From)
	if err != nil {
		return err
	}
	to, err := types.ParseFormat(opts.To)
	if err != nil {
		return err
	}

	source, err := loadReport(from, path)
	if err != nil {
		return err
	}

	converted, err := convertReport(source, to)
	if err != nil {
		return err
	}

	if err := decorate(converted, opts.Report); err != nil {
		return err
	}

	return writeReport(ctx, w, opts.Out, converted)
}
