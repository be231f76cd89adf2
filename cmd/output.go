package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/appsurify/testbrain/internal/logger"
	"github.com/appsurify/testbrain/pkg/junit"
	"github.com/appsurify/testbrain/pkg/report"
	"github.com/appsurify/testbrain/pkg/storage"
	"github.com/appsurify/testbrain/pkg/strutil"
	"github.com/appsurify/testbrain/pkg/testbrain"
	"github.com/appsurify/testbrain/pkg/types"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var newUploader = func(ctx context.Context, region, bucket string) (types.FileUploader, error) {
	uploader, err := storage.NewS3Uploader(ctx, region, bucket)
	if err != nil {
		return nil, err
	}
	return uploader, nil
}

func addOutputFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("output", "o", "",
		"Path of the file to write the report to. The report is printed on stdout when empty.")
	cmd.Flags().String("output-format", defaultOutputFormat,
		"Serialization of the report (json|yaml|xml).")
	cmd.Flags().Bool("upload", false,
		"Upload the written report to the S3 bucket configured by s3.bucket (TESTBRAIN_S3_BUCKET).")
}

func addReportFlags(cmd *cobra.Command) {
	cmd.Flags().String("report-id", "",
		"Identifier of the produced report. A time-ordered UUID is generated for Testbrain reports when empty.")
	cmd.Flags().String("report-name", "", "Name of the produced report.")
	cmd.Flags().StringSlice("property", []string{},
		"Property (key=value) added to every suite of the produced report. Can be repeated.")
}

// writeReport serializes the model to stdout or to the output file, then uploads the file if asked.
func writeReport(ctx context.Context, w io.Writer, opts outputOpts, model any) error {
	format, err := report.ParseOutputFormat(opts.OutputFormat)
	if err != nil {
		return err
	}

	data, err := report.Marshal(model, format)
	if err != nil {
		return err
	}

	if opts.Output == "" {
		if opts.Upload {
			return errors.New("--upload requires --output")
		}
		_, err = w.Write(data)
		return err
	}

	if err := os.WriteFile(opts.Output, data, 0o644); err != nil { //nolint:gosec
		return fmt.Errorf("can't write report: %w", err)
	}
	logger.Infof("Report written to %s", opts.Output)

	if !opts.Upload {
		return nil
	}
	return uploadReport(ctx, opts.S3, opts.Output, data)
}

func uploadReport(ctx context.Context, opts s3Opts, filePath string, data []byte) error {
	fingerprint, err := report.Fingerprint(data)
	if err != nil {
		return err
	}

	uploader, err := newUploader(ctx, opts.Region, opts.Bucket)
	if err != nil {
		return err
	}

	url, err := storage.Publish(ctx, uploader, filePath, storage.ObjectKey(opts.Prefix, fingerprint, filePath))
	if err != nil {
		return err
	}

	logger.Infof("Report %s uploaded: %s", fingerprint, url)
	return nil
}

// decorate sets the id, name and properties of a produced report.
func decorate(model any, opts reportOpts) error {
	properties, err := strutil.ParseKVStrings(opts.Property)
	if err != nil {
		return err
	}

	switch m := model.(type) {
	case *testbrain.TestSuite:
		if opts.ReportID != "" {
			m.ID = opts.ReportID
		}
		if m.ID == "" {
			id, err := uuid.NewV7()
			if err != nil {
				return fmt.Errorf("can't generate report id: %w", err)
			}
			m.ID = id.String()
		}
		if opts.ReportName != "" {
			m.Name = opts.ReportName
		}
		for _, run := range m.TestRuns {
			for _, property := range properties {
				run.AddProperty(property.Key, property.Value)
			}
		}
	case *junit.TestSuites:
		if opts.ReportID != "" {
			m.ID = opts.ReportID
		}
		if opts.ReportName != "" {
			m.Name = opts.ReportName
		}
		for _, suite := range m.TestSuites {
			for _, property := range properties {
				suite.AddProperty(property.Key, property.Value)
			}
		}
	default:
		return fmt.Errorf("can't decorate a %T report", model)
	}

	return nil
}
