package junit

import (
	"errors"
	"fmt"

	"github.com/appsurify/testbrain/pkg/timeutil"
	"github.com/appsurify/testbrain/pkg/types"
	"github.com/appsurify/testbrain/pkg/xmltree"
)

// ErrIncorrectFormat is returned when the document root is neither testsuites nor testsuite.
var ErrIncorrectFormat = errors.New("incorrect JUnit XML format")

// Parser reads one JUnit document. Each parser owns its result.
type Parser struct {
	source    types.Source
	namespace string
	result    *TestSuites
}

// NewParser creates a parser for the given source.
// It panics when both text and path are set.
func NewParser(source types.Source) *Parser {
	if source.Ambiguous() {
		panic("junit: parser source has both text and path")
	}
	return &Parser{
		source: source,
		result: &TestSuites{},
	}
}

// Parse parses a JUnit document held in memory.
func Parse(data []byte) (*TestSuites, error) {
	return NewParser(types.Source{Text: data}).Parse()
}

// ParseFile parses the JUnit document stored at path.
func ParseFile(path string) (*TestSuites, error) {
	return NewParser(types.Source{Path: path}).Parse()
}

// Parse reads the whole document and returns the report with refreshed statistics.
func (p *Parser) Parse() (*TestSuites, error) {
	data, err := p.source.Read()
	if err != nil {
		return nil, err
	}

	root, err := xmltree.Parse(data)
	if err != nil {
		return nil, err
	}
	p.namespace = root.Namespace()

	var suiteElements []*xmltree.Node
	switch {
	case root.Is(p.namespace, "testsuites"):
		p.readRoot(root)
		suiteElements = root.FindAll(p.namespace, "testsuite")
	case root.Is(p.namespace, "testsuite"):
		suiteElements = []*xmltree.Node{root}
	default:
		return nil, fmt.Errorf("%w: unexpected root element %q", ErrIncorrectFormat, root.Name.Local)
	}

	for _, element := range suiteElements {
		p.result.TestSuites = append(p.result.TestSuites, p.readTestSuite(element))
	}
	p.result.UpdateStatistics()

	return p.result, nil
}

func (p *Parser) readRoot(root *xmltree.Node) {
	p.result.ID = root.AttrDefault("id", "")
	p.result.Name = root.AttrDefault("name", "")
	p.result.Errors = root.AttrInt("errors")
	p.result.Failures = root.AttrInt("failures")
	p.result.Skipped = root.AttrInt("skipped")
	p.result.Passed = root.AttrInt("passed")
	p.result.Tests = root.AttrInt("tests")
	p.result.Time = root.AttrFloat("time")
}

func (p *Parser) readTestSuite(element *xmltree.Node) *TestSuite {
	suite := &TestSuite{
		ID:        element.AttrDefault("id", ""),
		Name:      element.AttrDefault("name", ""),
		Hostname:  element.AttrDefault("hostname", ""),
		Errors:    element.AttrInt("errors"),
		Failures:  element.AttrInt("failures"),
		Skipped:   element.AttrInt("skipped"),
		Passed:    element.AttrInt("passed"),
		Tests:     element.AttrInt("tests"),
		Time:      element.AttrFloat("time"),
		SystemOut: element.FindText(p.namespace, "system-out", ""),
		SystemErr: element.FindText(p.namespace, "system-err", ""),
	}

	timestamp, ok := timeutil.ParseDatetime(element.AttrDefault("timestamp", ""))
	suite.Timestamp, suite.TimestampMissing = timestamp, !ok

	for _, property := range element.FindPath(p.namespace, "properties").FindAll(p.namespace, "property") {
		suite.AddProperty(property.AttrDefault("name", ""), property.AttrDefault("value", ""))
	}

	for _, tc := range element.FindAll(p.namespace, "testcase") {
		suite.AddTestCaseNoUpdateStats(p.readTestCase(tc))
	}
	suite.UpdateStatistics()

	return suite
}

func (p *Parser) readTestCase(element *xmltree.Node) *TestCase {
	return &TestCase{
		ID:        element.AttrDefault("id", ""),
		Name:      element.AttrDefault("name", ""),
		Classname: element.AttrDefault("classname", ""),
		File:      element.AttrDefault("file", ""),
		Line:      element.AttrDefault("line", ""),
		Time:      element.AttrFloat("time"),
		SystemOut: element.FindText(p.namespace, "system-out", ""),
		SystemErr: element.FindText(p.namespace, "system-err", ""),
		Result:    p.readResult(element),
	}
}

// readResult resolves the outcome in priority order: skipped, failure, error, then passed.
func (p *Parser) readResult(element *xmltree.Node) Result {
	candidates := []struct {
		tag    string
		status types.Status
	}{
		{tag: "skipped", status: types.StatusSkipped},
		{tag: "failure", status: types.StatusFailure},
		{tag: "error", status: types.StatusError},
	}

	for _, candidate := range candidates {
		found := element.Find(p.namespace, candidate.tag)
		if found == nil {
			continue
		}
		return Result{
			Status:     candidate.status,
			Type:       found.AttrDefault("type", ""),
			Message:    found.AttrDefault("message", ""),
			Stacktrace: found.Text,
		}
	}

	return Result{Status: types.StatusPassed}
}
