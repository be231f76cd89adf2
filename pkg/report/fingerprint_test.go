package report_test

import (
	"strings"
	"testing"

	"github.com/appsurify/testbrain/pkg/report"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFingerprint(t *testing.T) {
	t.Parallel()

	first, err := report.Fingerprint([]byte(`{"total": 1}`))
	require.NoError(t, err)
	again, err := report.Fingerprint([]byte(`{"total": 1}`))
	require.NoError(t, err)
	other, err := report.Fingerprint([]byte(`{"total": 2}`))
	require.NoError(t, err)

	assert.Equal(t, first, again)
	assert.NotEqual(t, first, other)
	assert.Len(t, strings.Split(first, "-"), 4)
}
