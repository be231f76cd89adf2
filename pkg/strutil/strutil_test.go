//nolint:testpackage
package strutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDedupeStrSlice(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    []string
		expected []string
	}{
		{
			name:     "No duplicates",
			input:    []string{"a.xml", "b.xml", "c.xml"},
			expected: []string{"a.xml", "b.xml", "c.xml"},
		},
		{
			name:     "Duplicates in input",
			input:    []string{"a.xml", "b.xml", "a.xml", "c.xml", "b.xml"},
			expected: []string{"a.xml", "b.xml", "c.xml"},
		},
		{
			name:     "All elements are duplicates",
			input:    []string{"a.xml", "a.xml", "a.xml"},
			expected: []string{"a.xml"},
		},
		{
			name:     "Case-sensitive duplicates",
			input:    []string{"a.xml", "A.xml", "a.xml"},
			expected: []string{"a.xml", "A.xml"},
		},
		{
			name:     "Empty input",
			input:    nil,
			expected: nil,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.expected, DedupeStrSlice(tt.input))
		})
	}
}

func TestParseKVStrings(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    []string
		expected []KeyValue
	}{
		{
			name:     "Single key-value pair",
			input:    []string{"branch=main"},
			expected: []KeyValue{{Key: "branch", Value: "main"}},
		},
		{
			name:  "Order is preserved",
			input: []string{"os=linux", "arch=amd64", "os=darwin"},
			expected: []KeyValue{
				{Key: "os", Value: "linux"},
				{Key: "arch", Value: "amd64"},
				{Key: "os", Value: "darwin"},
			},
		},
		{
			name:     "No equals sign in string",
			input:    []string{"flaky"},
			expected: []KeyValue{{Key: "flaky"}},
		},
		{
			name:     "Value containing equals sign",
			input:    []string{"data=this=is=value"},
			expected: []KeyValue{{Key: "data", Value: "this=is=value"}},
		},
		{
			name:     "Empty input slice",
			input:    []string{},
			expected: []KeyValue{},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			result, err := ParseKVStrings(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestParseKVStrings_emptyKey(t *testing.T) {
	t.Parallel()

	_, err := ParseKVStrings([]string{"=value"})
	require.Error(t, err)
	assert.ErrorContains(t, err, "empty key")
}

func TestParseTypeInfo(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input    string
		expected string
	}{
		{input: "TestMethod1", expected: "TestMethod1"},
		{input: "Namespace.Class.Method", expected: "Namespace.Class."},
		{input: "Namespace.Outer+Inner.Method(int,string)", expected: "Namespace.Outer+Inner.(int,string)"},
		{input: "Method(System.String)", expected: "Method(System.String)"},
		{input: "", expected: ""},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.expected, ParseTypeInfo(tt.input))
		})
	}
}
