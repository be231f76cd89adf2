package testbrain

import (
	"encoding/xml"
	"fmt"
	"strconv"

	"github.com/appsurify/testbrain/pkg/timeutil"
)

type xmlTestSuite struct {
	XMLName  xml.Name     `xml:"testsuite"`
	ID       string       `xml:"id,attr,omitempty"`
	Name     string       `xml:"name,attr,omitempty"`
	Total    int          `xml:"total,attr"`
	Errors   int          `xml:"errors,attr"`
	Failures int          `xml:"failures,attr"`
	Skipped  int          `xml:"skipped,attr"`
	Passed   int          `xml:"passed,attr"`
	Time     string       `xml:"time,attr"`
	TestRuns []xmlTestRun `xml:"testrun"`
}

type xmlTestRun struct {
	ID         string         `xml:"id,attr,omitempty"`
	Name       string         `xml:"name,attr"`
	Hostname   string         `xml:"hostname,attr,omitempty"`
	Timestamp  string         `xml:"timestamp,attr"`
	Total      int            `xml:"total,attr"`
	Errors     int            `xml:"errors,attr"`
	Failures   int            `xml:"failures,attr"`
	Skipped    int            `xml:"skipped,attr"`
	Passed     int            `xml:"passed,attr"`
	Time       string         `xml:"time,attr"`
	Properties *xmlProperties `xml:"properties,omitempty"`
	Tests      []xmlTest      `xml:"test"`
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

type xmlTest struct {
	ID         string `xml:"id,attr,omitempty"`
	Name       string `xml:"name,attr"`
	Classname  string `xml:"classname,attr"`
	File       string `xml:"file,attr,omitempty"`
	Line       string `xml:"line,attr,omitempty"`
	Time       string `xml:"time,attr"`
	Status     string `xml:"status,attr"`
	Type       string `xml:"type,attr,omitempty"`
	Message    string `xml:"message,omitempty"`
	Stacktrace string `xml:"stacktrace,omitempty"`
	SystemOut  string `xml:"system-out,omitempty"`
	SystemErr  string `xml:"system-err,omitempty"`
}

// ToXML serializes the report as an indented XML document, prolog included.
func ToXML(s *TestSuite) ([]byte, error) {
	doc := xmlTestSuite{
		ID:       s.ID,
		Name:     s.Name,
		Total:    s.Total,
		Errors:   s.Errors,
		Failures: s.Failures,
		Skipped:  s.Skipped,
		Passed:   s.Passed,
		Time:     strconv.FormatFloat(s.Time, 'f', 3, 64),
	}

	for _, run := range s.TestRuns {
		xmlRun := xmlTestRun{
			ID:        run.ID,
			Name:      run.Name,
			Hostname:  run.Hostname,
			Timestamp: timeutil.DatetimeToString(run.Timestamp),
			Total:     run.Total,
			Errors:    run.Errors,
			Failures:  run.Failures,
			Skipped:   run.Skipped,
			Passed:    run.Passed,
			Time:      strconv.FormatFloat(run.Time, 'f', 3, 64),
			SystemOut: run.SystemOut,
			SystemErr: run.SystemErr,
		}

		if len(run.Properties) > 0 {
			xmlRun.Properties = &xmlProperties{}
			for _, p := range run.Properties {
				xmlRun.Properties.Properties = append(xmlRun.Properties.Properties, xmlProperty(p))
			}
		}

		for _, test := range run.Tests {
			xmlRun.Tests = append(xmlRun.Tests, xmlTest{
				ID:         test.ID,
				Name:       test.Name,
				Classname:  test.Classname,
				File:       test.File,
				Line:       test.Line,
				Time:       strconv.FormatFloat(test.Time, 'f', 3, 64),
				Status:     string(test.Status),
				Type:       test.Type,
				Message:    test.Message,
				Stacktrace: test.Stacktrace,
				SystemOut:  test.SystemOut,
				SystemErr:  test.SystemErr,
			})
		}

		doc.TestRuns = append(doc.TestRuns, xmlRun)
	}

	out, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("can't marshal testbrain report: %w", err)
	}

	return append([]byte(xml.Header), out...), nil
}
