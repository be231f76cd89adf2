package report

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/appsurify/testbrain/pkg/junit"
	"github.com/appsurify/testbrain/pkg/testbrain"
	"gopkg.in/yaml.v3"
)

// OutputFormat is a serialization of a report.
type OutputFormat string

const (
	JSONFormat OutputFormat = "json"
	YAMLFormat OutputFormat = "yaml"
	XMLFormat  OutputFormat = "xml"
)

// ParseOutputFormat validates the value of an output format flag. The default is JSON.
func ParseOutputFormat(value string) (OutputFormat, error) {
	switch format := OutputFormat(strings.ToLower(strings.TrimSpace(value))); format {
	case "":
		return JSONFormat, nil
	case JSONFormat, YAMLFormat, XMLFormat:
		return format, nil
	case "yml":
		return YAMLFormat, nil
	default:
		return "", fmt.Errorf("%q is not a valid output format (json, yaml, xml)", value)
	}
}

// Extension returns the file extension of the format, dot included.
func (f OutputFormat) Extension() string {
	return "." + string(f)
}

// Marshal serializes a *junit.TestSuites or a *testbrain.TestSuite.
func Marshal(model any, format OutputFormat) ([]byte, error) {
	switch format {
	case JSONFormat:
		return ToJSON(model)
	case YAMLFormat:
		return ToYAML(model)
	case XMLFormat:
		return ToXML(model)
	default:
		return nil, fmt.Errorf("unsupported output format %q", format)
	}
}

// ToJSON serializes a report to indented JSON, field for field.
func ToJSON(model any) ([]byte, error) {
	data, err := json.MarshalIndent(model, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("can't encode report to JSON: %w", err)
	}
	return data, nil
}

// ToYAML serializes a report to YAML with the same keys, in the same order, as ToJSON.
func ToYAML(model any) ([]byte, error) {
	data, err := json.Marshal(model)
	if err != nil {
		return nil, fmt.Errorf("can't encode report to YAML: %w", err)
	}

	var document yaml.Node
	if err := yaml.Unmarshal(data, &document); err != nil {
		return nil, fmt.Errorf("can't encode report to YAML: %w", err)
	}
	resetStyle(&document)

	out, err := yaml.Marshal(&document)
	if err != nil {
		return nil, fmt.Errorf("can't encode report to YAML: %w", err)
	}
	return out, nil
}

// resetStyle drops the flow style and quoting the JSON input left on the nodes.
func resetStyle(node *yaml.Node) {
	node.Style = 0
	for _, child := range node.Content {
		resetStyle(child)
	}
}

// ToXML serializes a JUnit report to a JUnit XML document, or a Testbrain report to its XML form.
func ToXML(model any) ([]byte, error) {
	switch m := model.(type) {
	case *junit.TestSuites:
		return junit.ToXML(m)
	case *testbrain.TestSuite:
		return testbrain.ToXML(m)
	default:
		return nil, fmt.Errorf("can't encode %T to XML", model)
	}
}

// FromJSONTestbrain decodes a Testbrain report produced by ToJSON.
func FromJSONTestbrain(data []byte) (*testbrain.TestSuite, error) {
	result := &testbrain.TestSuite{}
	if err := json.Unmarshal(data, result); err != nil {
		return nil, fmt.Errorf("can't decode Testbrain report: %w", err)
	}
	return result, nil
}
