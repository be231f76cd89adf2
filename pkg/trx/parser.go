package trx

import (
	"errors"
	"fmt"

	"github.com/appsurify/testbrain/internal/logger"
	"github.com/appsurify/testbrain/pkg/strutil"
	"github.com/appsurify/testbrain/pkg/timeutil"
	"github.com/appsurify/testbrain/pkg/types"
	"github.com/appsurify/testbrain/pkg/xmltree"
)

var (
	// ErrIncorrectFormat is returned when the document root is not TestRun.
	ErrIncorrectFormat = errors.New("incorrect TRX format")
	// ErrMissingResults is returned when the document has no Results element.
	ErrMissingResults = errors.New("TRX document has no Results element")
)

// resultTags are the result elements written by the different producers, in lookup order.
var resultTags = []string{
	"UnitTestResult",
	"TestResultAggregation",
	"GenericTestResult",
	"TestResult",
	"ManualTestResult",
}

// Parser reads one TRX document. Each parser owns its result.
type Parser struct {
	source    types.Source
	namespace string
	result    *TestRun
}

// NewParser creates a parser for the given source.
// It panics when both text and path are set.
func NewParser(source types.Source) *Parser {
	if source.Ambiguous() {
		panic("trx: parser source has both text and path")
	}
	return &Parser{
		source: source,
		result: &TestRun{},
	}
}

// Parse parses a TRX document held in memory.
func Parse(data []byte) (*TestRun, error) {
	return NewParser(types.Source{Text: data}).Parse()
}

// ParseFile parses the TRX document stored at path.
func ParseFile(path string) (*TestRun, error) {
	return NewParser(types.Source{Path: path}).Parse()
}

// Parse reads the whole document. Every lookup is qualified with the default namespace of the root.
func (p *Parser) Parse() (*TestRun, error) {
	data, err := p.source.Read()
	if err != nil {
		return nil, err
	}

	root, err := xmltree.Parse(data)
	if err != nil {
		return nil, err
	}
	p.namespace = root.Namespace()

	if !root.Is(p.namespace, "TestRun") {
		return nil, fmt.Errorf("%w: unexpected root element %q", ErrIncorrectFormat, root.Name.Local)
	}

	p.result.ID = root.AttrDefault("id", "")
	p.result.Name = root.AttrDefault("name", "")
	p.readTimes(root)
	p.readResultSummary(root)
	p.readTestDefinitions(root)

	if err := p.readUnitTestResults(root); err != nil {
		return nil, err
	}

	return p.result, nil
}

func (p *Parser) readTimes(root *xmltree.Node) {
	times := root.Find(p.namespace, "Times")
	p.result.Times = Times{
		Creation: timeutil.StringToDatetime(times.AttrDefault("creation", "")),
		Queuing:  timeutil.StringToDatetime(times.AttrDefault("queuing", "")),
		Start:    timeutil.StringToDatetime(times.AttrDefault("start", "")),
		Finish:   timeutil.StringToDatetime(times.AttrDefault("finish", "")),
	}
}

func (p *Parser) readResultSummary(root *xmltree.Node) {
	summary := root.Find(p.namespace, "ResultSummary")
	counters := summary.Find(p.namespace, "Counters")

	p.result.ResultSummary = ResultSummary{
		Outcome:  summary.AttrDefault("outcome", ""),
		StdOut:   summary.Find(p.namespace, "Output").FindText(p.namespace, "StdOut", ""),
		Total:    counters.AttrInt("total"),
		Executed: counters.AttrInt("executed"),
		Passed:   counters.AttrInt("passed"),
		Failed:   counters.AttrInt("failed"),
		Errors:   counters.AttrInt("errors"),
	}
}

func (p *Parser) readTestDefinitions(root *xmltree.Node) {
	definitions := root.Find(p.namespace, "TestDefinitions")

	for _, element := range definitions.FindAll(p.namespace, "UnitTest") {
		definition := &TestDefinition{
			ID:          element.AttrDefault("id", ""),
			Name:        element.AttrDefault("name", ""),
			ExecutionID: element.Find(p.namespace, "Execution").AttrDefault("id", ""),
		}

		if method := element.Find(p.namespace, "TestMethod"); method != nil {
			definition.TestClass = method.AttrDefault("className", "")
			definition.TestMethod = strutil.ParseTypeInfo(method.AttrDefault("name", ""))
		}

		p.result.TestDefinitions = append(p.result.TestDefinitions, definition)
	}
}

// readUnitTestResults collects the results of every producer variant, grouped per variant.
// Aggregation wrappers contribute their inner results and are removed from the summary counters.
func (p *Parser) readUnitTestResults(root *xmltree.Node) error {
	results := root.Find(p.namespace, "Results")
	if results == nil {
		return ErrMissingResults
	}

	for _, tag := range resultTags {
		for _, element := range results.FindAll(p.namespace, tag) {
			inner := element.Find(p.namespace, "InnerResults")
			if inner == nil {
				p.result.UnitTestResults = append(p.result.UnitTestResults, p.readUnitTestResult(element))
				continue
			}

			hasFailed := false
			for _, innerElement := range inner.FindAll(p.namespace, "UnitTestResult") {
				result := p.readUnitTestResult(innerElement)
				if result.Outcome == "Failed" {
					hasFailed = true
				}
				p.result.UnitTestResults = append(p.result.UnitTestResults, result)
			}

			p.result.ResultSummary.Total--
			if hasFailed {
				p.result.ResultSummary.Failed--
			}
			logger.Debugf("TRX wrapper result %q excluded from summary counters (failed inner result: %t)",
				element.AttrDefault("testName", ""), hasFailed)
		}
	}

	return nil
}

func (p *Parser) readUnitTestResult(element *xmltree.Node) *UnitTestResult {
	startTime, hasStart := element.Attr("startTime")
	endTime, hasEnd := element.Attr("endTime")

	result := &UnitTestResult{
		ExecutionID:  element.AttrDefault("executionId", ""),
		TestID:       element.AttrDefault("testId", ""),
		TestName:     element.AttrDefault("testName", ""),
		ComputerName: element.AttrDefault("computerName", ""),
		Outcome:      element.AttrDefault("outcome", ""),
		Duration:     timeutil.TimespanToFloat(element.AttrDefault("duration", "")),
		StartTime:    timeutil.StringToDatetime(startTime),
		EndTime:      timeutil.StringToDatetime(endTime),
	}

	output := element.Find(p.namespace, "Output")
	errorInfo := output.Find(p.namespace, "ErrorInfo")
	result.Message = errorInfo.FindText(p.namespace, "Message", "")
	result.Stacktrace = errorInfo.FindText(p.namespace, "StackTrace", "")
	result.StdOut = output.FindText(p.namespace, "StdOut", "")
	result.StdErr = output.FindText(p.namespace, "StdErr", "")

	if result.Duration == 0 && hasStart && hasEnd {
		result.Duration = result.RunTime()
	}

	return result
}
