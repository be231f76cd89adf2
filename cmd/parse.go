package cmd

import (
	"context"
	"io"

	"github.com/appsurify/testbrain/pkg/types"
	"github.com/spf13/cobra"
)

func parseCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse <report>",
		Short: "Parse a test report and print its model",
		Long: `testbrain parse reads a JUnit XML file, a TRX file, an Allure report directory or a Testbrain
JSON file and prints the parsed model, without converting it.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			bindPFlagsSnakeCase(cmd.Flags())

			opts := parseOpts{}
			hydrateOptsFromViper(&opts)

			return doParse(cmd.Context(), cmd.OutOrStdout(), args[0], opts)
		},
	}

	cmd.Flags().StringP("format", "f", string(types.FormatJUnit),
		"Dialect of the report (junit|trx|allure|testbrain).")
	addOutputFlags(cmd)

	return cmd
}

func doParse(ctx context.Context, w io.Writer, path string, opts parseOpts) error {
	format, err := types.ParseFormat(opts.Format)
	if err != nil {
		return err
	}

	model, err := loadReport(format, path)
	if err != nil {
		return err
	}

	return writeReport(ctx, w, opts.Out, model)
}
