package junit

import (
	"encoding/xml"
	"fmt"
	"strconv"

	"github.com/appsurify/testbrain/pkg/timeutil"
	"github.com/appsurify/testbrain/pkg/types"
)

type xmlTestSuites struct {
	XMLName    xml.Name       `xml:"testsuites"`
	ID         string         `xml:"id,attr,omitempty"`
	Name       string         `xml:"name,attr,omitempty"`
	Tests      int            `xml:"tests,attr"`
	Errors     int            `xml:"errors,attr"`
	Failures   int            `xml:"failures,attr"`
	Skipped    int            `xml:"skipped,attr"`
	Passed     int            `xml:"passed,attr"`
	Time       string         `xml:"time,attr"`
	TestSuites []xmlTestSuite `xml:"testsuite"`
}

type xmlTestSuite struct {
	XMLName    xml.Name       `xml:"testsuite"`
	ID         string         `xml:"id,attr,omitempty"`
	Name       string         `xml:"name,attr"`
	Hostname   string         `xml:"hostname,attr,omitempty"`
	Timestamp  string         `xml:"timestamp,attr"`
	Tests      int            `xml:"tests,attr"`
	Errors     int            `xml:"errors,attr"`
	Failures   int            `xml:"failures,attr"`
	Skipped    int            `xml:"skipped,attr"`
	Passed     int            `xml:"passed,attr"`
	Time       string         `xml:"time,attr"`
	Properties *xmlProperties `xml:"properties,omitempty"`
	TestCases  []xmlTestCase  `xml:"testcase"`
	SystemOut  string         `xml:"system-out,omitempty"`
	SystemErr  string         `xml:"system-err,omitempty"`
}

type xmlProperties struct {
	Properties []xmlProperty `xml:"property"`
}

type xmlProperty struct {
	Name  string `xml:"name,attr"`
	Value string `xml:"value,attr"`
}

type xmlTestCase struct {
	XMLName   xml.Name   `xml:"testcase"`
	ID        string     `xml:"id,attr,omitempty"`
	Name      string     `xml:"name,attr"`
	ClassName string     `xml:"classname,attr"`
	File      string     `xml:"file,attr,omitempty"`
	Line      string     `xml:"line,attr,omitempty"`
	Time      string     `xml:"time,attr"`
	Skipped   *xmlResult `xml:"skipped,omitempty"`
	Failure   *xmlResult `xml:"failure,omitempty"`
	Error     *xmlResult `xml:"error,omitempty"`
	SystemOut string     `xml:"system-out,omitempty"`
	SystemErr string     `xml:"system-err,omitempty"`
}

type xmlResult struct {
	Type       string `xml:"type,attr,omitempty"`
	Message    string `xml:"message,attr,omitempty"`
	Stacktrace string `xml:",chardata"`
}

// ToXML serializes the report as an indented JUnit document, prolog included.
// Passed and unknown results have no result element.
func ToXML(r *TestSuites) ([]byte, error) {
	doc := xmlTestSuites{
		ID:       r.ID,
		Name:     r.Name,
		Tests:    r.Tests,
		Errors:   r.Errors,
		Failures: r.Failures,
		Skipped:  r.Skipped,
		Passed:   r.Passed,
		Time:     formatTime(r.Time),
	}

	for _, s := range r.TestSuites {
		doc.TestSuites = append(doc.TestSuites, toXMLTestSuite(s))
	}

	out, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("can't marshal junit report: %w", err)
	}

	return append([]byte(xml.Header), out...), nil
}

func toXMLTestSuite(s *TestSuite) xmlTestSuite {
	suite := xmlTestSuite{
		ID:        s.ID,
		Name:      s.Name,
		Hostname:  s.Hostname,
		Timestamp: timeutil.DatetimeToString(s.Timestamp),
		Tests:     s.Tests,
		Errors:    s.Errors,
		Failures:  s.Failures,
		Skipped:   s.Skipped,
		Passed:    s.Passed,
		Time:      formatTime(s.Time),
		SystemOut: s.SystemOut,
		SystemErr: s.SystemErr,
	}

	if len(s.Properties) > 0 {
		suite.Properties = &xmlProperties{}
		for _, p := range s.Properties {
			suite.Properties.Properties = append(suite.Properties.Properties, xmlProperty(p))
		}
	}

	for _, tc := range s.TestCases {
		suite.TestCases = append(suite.TestCases, toXMLTestCase(tc))
	}

	return suite
}

func toXMLTestCase(tc *TestCase) xmlTestCase {
	testCase := xmlTestCase{
		ID:        tc.ID,
		Name:      tc.Name,
		ClassName: tc.Classname,
		File:      tc.File,
		Line:      tc.Line,
		Time:      formatTime(tc.Time),
		SystemOut: tc.SystemOut,
		SystemErr: tc.SystemErr,
	}

	result := &xmlResult{
		Type:       tc.Result.Type,
		Message:    tc.Result.Message,
		Stacktrace: tc.Result.Stacktrace,
	}

	switch tc.Result.Status {
	case types.StatusSkipped:
		testCase.Skipped = result
	case types.StatusFailure:
		testCase.Failure = result
	case types.StatusError:
		testCase.Error = result
	case types.StatusPassed, types.StatusUnknown:
	}

	return testCase
}

func formatTime(seconds float64) string {
	return strconv.FormatFloat(seconds, 'f', 3, 64)
}
