package junit_test

import (
	"testing"

	"github.com/appsurify/testbrain/pkg/junit"
	"github.com/appsurify/testbrain/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToXML(t *testing.T) {
	t.Parallel()

	suite := newTestSuite("s",
		newTestCase("ok", types.StatusPassed, 0.5),
		&junit.TestCase{
			Name:      "ko",
			Classname: "pkg.Class",
			Time:      1,
			Result: junit.Result{
				Status:     types.StatusFailure,
				Type:       "AssertionError",
				Message:    "expected <1>",
				Stacktrace: "at line 3",
			},
		},
		newTestCase("odd", types.StatusUnknown, 0))
	suite.AddProperty("os", "linux")

	root := &junit.TestSuites{Name: "all"}
	root.AddTestSuite(suite)

	out, err := junit.ToXML(root)
	require.NoError(t, err)

	doc := string(out)
	assert.Contains(t, doc, `<?xml version="1.0" encoding="UTF-8"?>`)
	assert.Contains(t, doc, `<testsuites name="all" tests="3" errors="0" failures="1" skipped="0" passed="1" time="1.500">`)
	assert.Contains(t, doc, `timestamp="2024-01-02T03:04:05.000000"`)
	assert.Contains(t, doc, `<property name="os" value="linux"></property>`)
	assert.Contains(t, doc, `<failure type="AssertionError" message="expected &lt;1&gt;">at line 3</failure>`)
	assert.NotContains(t, doc, "<error")
}

func TestToXML_roundTrip(t *testing.T) {
	t.Parallel()

	original, err := junit.ParseFile("testdata/junit-no-suites-tag.xml")
	require.NoError(t, err)

	out, err := junit.ToXML(original)
	require.NoError(t, err)

	parsed, err := junit.Parse(out)
	require.NoError(t, err)

	require.Len(t, parsed.TestSuites, 1)
	assert.Equal(t, original.Tests, parsed.Tests)
	assert.Equal(t, original.Failures, parsed.Failures)
	assert.Equal(t, original.Errors, parsed.Errors)
	assert.Equal(t, original.Skipped, parsed.Skipped)
	assert.Equal(t, original.TestSuites[0].TestCases, parsed.TestSuites[0].TestCases)
	assert.True(t, original.TestSuites[0].Timestamp.Equal(parsed.TestSuites[0].Timestamp))
}
