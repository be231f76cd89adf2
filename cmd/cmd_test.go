//nolint:testpackage
package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/appsurify/testbrain/pkg/junit"
	"github.com/appsurify/testbrain/pkg/mock"
	"github.com/appsurify/testbrain/pkg/report"
	"github.com/appsurify/testbrain/pkg/types"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

const (
	junitFixture    = "../pkg/junit/testdata/junit-normal.xml"
	noSuitesFixture = "../pkg/junit/testdata/junit-no-suites-tag.xml"
	trxFixture      = "../pkg/trx/testdata/trx-mstest.trx"
	allureFixture   = "../pkg/allure/testdata/allure-report"
)

func TestDoConvert_trxToTestbrain(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	err := doConvert(context.Background(), &out, trxFixture, convertOpts{
		From:   "trx",
		To:     "testbrain",
		Report: reportOpts{ReportName: "nightly", Property: []string{"branch=main", "commit=abc=def"}},
	})
	require.NoError(t, err)

	result, err := report.FromJSONTestbrain(out.Bytes())
	require.NoError(t, err)

	assert.Equal(t, "nightly", result.Name)
	assert.Equal(t, 5, result.Total)
	require.Len(t, result.TestRuns, 3)

	id, err := uuid.Parse(result.ID)
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(7), id.Version())

	for _, run := range result.TestRuns {
		require.Len(t, run.Properties, 2)
		assert.Equal(t, "commit", run.Properties[1].Name)
		assert.Equal(t, "abc=def", run.Properties[1].Value)
	}
}

func TestDoConvert_toJUnit(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		from   string
		path   string
		suites int
	}{
		{name: "junit", from: "junit", path: junitFixture, suites: 2},
		{name: "trx", from: "TRX", path: trxFixture, suites: 3},
		{name: "allure", from: "allure", path: allureFixture, suites: 3},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			var out bytes.Buffer
			err := doConvert(context.Background(), &out, test.path, convertOpts{
				From:   test.from,
				To:     "junit",
				Out:    outputOpts{OutputFormat: "xml"},
				Report: reportOpts{ReportID: "run-42"},
			})
			require.NoError(t, err)

			result, err := junit.Parse(out.Bytes())
			require.NoError(t, err)
			assert.Equal(t, "run-42", result.ID)
			assert.Len(t, result.TestSuites, test.suites)
		})
	}
}

func TestDoConvert_errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		path     string
		opts     convertOpts
		expected string
	}{
		{
			name:     "unknown dialect",
			path:     junitFixture,
			opts:     convertOpts{From: "nunit", To: "testbrain"},
			expected: `unsupported report format "nunit"`,
		},
		{
			name:     "junit to trx",
			path:     junitFixture,
			opts:     convertOpts{From: "junit", To: "trx"},
			expected: "can't convert a *junit.TestSuites report to trx",
		},
		{
			name:     "wrong dialect",
			path:     junitFixture,
			opts:     convertOpts{From: "trx", To: "testbrain"},
			expected: "incorrect TRX format",
		},
		{
			name:     "invalid property",
			path:     junitFixture,
			opts:     convertOpts{From: "junit", To: "testbrain", Report: reportOpts{Property: []string{"=value"}}},
			expected: "empty key",
		},
		{
			name:     "upload without output",
			path:     junitFixture,
			opts:     convertOpts{From: "junit", To: "testbrain", Out: outputOpts{Upload: true}},
			expected: "--upload requires --output",
		},
		{
			name:     "invalid output format",
			path:     junitFixture,
			opts:     convertOpts{From: "junit", To: "testbrain", Out: outputOpts{OutputFormat: "html"}},
			expected: "not a valid output format",
		},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			err := doConvert(context.Background(), &bytes.Buffer{}, test.path, test.opts)
			require.Error(t, err)
			assert.ErrorContains(t, err, test.expected)
		})
	}
}

func TestDoParse(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	err := doParse(context.Background(), &out, trxFixture, parseOpts{
		Format: "trx",
		Out:    outputOpts{OutputFormat: "yaml"},
	})
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, yaml.Unmarshal(out.Bytes(), &decoded))
	assert.Contains(t, decoded, "unit_test_results")

	err = doParse(context.Background(), &out, trxFixture, parseOpts{
		Format: "trx",
		Out:    outputOpts{OutputFormat: "xml"},
	})
	require.ErrorContains(t, err, "can't encode *trx.TestRun to XML")
}

func writeFixtures(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	for _, fixture := range []string{junitFixture, noSuitesFixture, junitFixture} {
		data, err := os.ReadFile(fixture)
		require.NoError(t, err)

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		name := filepath.Join(dir, string(rune('a'+len(entries)))+"-"+filepath.Base(fixture))
		require.NoError(t, os.WriteFile(name, data, 0o644))
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.md"), []byte("# reports"), 0o644))

	return dir
}

func TestDoMerge(t *testing.T) {
	t.Parallel()

	dir := writeFixtures(t)

	var out bytes.Buffer
	err := doMerge(context.Background(), &out, []string{dir}, mergeOpts{
		Format:  "junit",
		Exclude: []string{"*.md"},
	})
	require.NoError(t, err)

	var concatenated junit.TestSuites
	require.NoError(t, json.Unmarshal(out.Bytes(), &concatenated))
	assert.Len(t, concatenated.TestSuites, 5)
	assert.Equal(t, 10, concatenated.Tests)

	out.Reset()
	err = doMerge(context.Background(), &out, []string{dir}, mergeOpts{
		Format:          "junit",
		Exclude:         []string{"*.md"},
		MergeSameSuites: true,
	})
	require.NoError(t, err)

	var folded junit.TestSuites
	require.NoError(t, json.Unmarshal(out.Bytes(), &folded))
	assert.Len(t, folded.TestSuites, 3)
	assert.Equal(t, 10, folded.Tests)
}

func TestDoMerge_testbrain(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	for _, name := range []string{"one.json", "two.json"} {
		var out bytes.Buffer
		require.NoError(t, doConvert(context.Background(), &out, trxFixture, convertOpts{From: "trx", To: "testbrain"}))
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), out.Bytes(), 0o644))
	}

	var out bytes.Buffer
	err := doMerge(context.Background(), &out, []string{dir}, mergeOpts{
		Format: "testbrain",
		Report: reportOpts{ReportID: "merged"},
	})
	require.NoError(t, err)

	result, err := report.FromJSONTestbrain(out.Bytes())
	require.NoError(t, err)
	assert.Equal(t, "merged", result.ID)
	assert.Len(t, result.TestRuns, 6)
	assert.Equal(t, 10, result.Total)

	err = doMerge(context.Background(), &out, []string{dir}, mergeOpts{Format: "trx"})
	require.ErrorContains(t, err, "convert them first")
}

func TestDoSummary(t *testing.T) {
	t.Parallel()

	tests := []struct {
		format string
		path   string
		name   string
	}{
		{format: "junit", path: junitFixture, name: "JUnitXmlReporter.constructor"},
		{format: "trx", path: trxFixture, name: "Tests.MathTests"},
		{format: "allure", path: allureFixture, name: "Login"},
	}

	for _, test := range tests {
		test := test
		t.Run(test.format, func(t *testing.T) {
			t.Parallel()

			var out bytes.Buffer
			require.NoError(t, doSummary(&out, test.path, summaryOpts{Format: test.format}))
			assert.Contains(t, out.String(), test.name)

			err := doSummary(&bytes.Buffer{}, test.path, summaryOpts{Format: test.format, Strict: true})
			require.Error(t, err)
			assert.ErrorContains(t, err, "failed and")
		})
	}
}

//nolint:paralleltest
func TestDoMerge_upload(t *testing.T) {
	uploader := mock.NewUploader()
	var bucket string
	previous := newUploader
	newUploader = func(_ context.Context, _, b string) (types.FileUploader, error) {
		bucket = b
		return uploader, nil
	}
	t.Cleanup(func() { newUploader = previous })

	output := filepath.Join(t.TempDir(), "merged.json")
	err := doMerge(context.Background(), &bytes.Buffer{}, []string{junitFixture, noSuitesFixture}, mergeOpts{
		Format: "junit",
		Out: outputOpts{
			Output: output,
			Upload: true,
			S3:     s3Opts{Bucket: "reports-bucket", Prefix: "ci"},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "reports-bucket", bucket)
	require.Len(t, uploader.Uploads, 1)

	written, err := os.ReadFile(output)
	require.NoError(t, err)
	fingerprint, err := report.Fingerprint(written)
	require.NoError(t, err)

	assert.Equal(t, "ci/"+fingerprint+"/merged.json", uploader.Uploads[0].TargetPath)
	assert.Equal(t, written, uploader.Uploads[0].Content)
}

//nolint:paralleltest
func TestRootCommand(t *testing.T) {
	t.Setenv("TESTBRAIN_CONFIG", "")
	t.Setenv("TESTBRAIN_LOG_LEVEL", "error")

	out := mock.NewWriter()
	rootCmd.SetOut(out)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	})

	rootCmd.SetArgs([]string{"version"})
	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, out.String(), "version: vunreleased-dev")

	rootCmd.SetArgs([]string{"convert", "--from", "trx", "--to", "junit", "--output-format", "xml", trxFixture})
	require.NoError(t, rootCmd.Execute())
	assert.True(t, strings.Contains(out.String(), `<testsuite id="0" name="Tests.DataTests"`), out.String())

	rootCmd.SetArgs([]string{"summary", "--format", "junit", "--strict", junitFixture})
	require.Error(t, rootCmd.Execute())
}

func TestGenerateDocs(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, generateDocs(mergeCommand(), dir))

	data, err := os.ReadFile(filepath.Join(dir, "merge.md"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "---\ntitle: \"merge\"\n---\n"), string(data))
	assert.Contains(t, string(data), "--merge-same-suites")
}
