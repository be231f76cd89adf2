package cmd

import (
	"fmt"

	"github.com/appsurify/testbrain/internal/logger"
	"github.com/appsurify/testbrain/pkg/allure"
	"github.com/appsurify/testbrain/pkg/converter"
	"github.com/appsurify/testbrain/pkg/junit"
	"github.com/appsurify/testbrain/pkg/report"
	"github.com/appsurify/testbrain/pkg/testbrain"
	"github.com/appsurify/testbrain/pkg/trx"
	"github.com/appsurify/testbrain/pkg/types"
)

// loadReport parses the report at path in its own dialect.
func loadReport(format types.Format, path string) (any, error) {
	logger.Debugf("Loading %s report %s", format, path)

	switch format {
	case types.FormatJUnit:
		return junit.ParseFile(path)
	case types.FormatTRX:
		return trx.ParseFile(path)
	case types.FormatAllure:
		return allure.ParseDir(path)
	case types.FormatTestbrain:
		data, err := types.Source{Path: path}.Read()
		if err != nil {
			return nil, err
		}
		return report.FromJSONTestbrain(data)
	default:
		return nil, fmt.Errorf("unsupported report format %q", format)
	}
}

// convertReport converts a parsed report to the JUnit or the Testbrain model.
func convertReport(source any, to types.Format) (any, error) {
	switch to {
	case types.FormatTestbrain:
		switch s := source.(type) {
		case *junit.TestSuites:
			return converter.JUnitToTestbrain(s), nil
		case *trx.TestRun:
			return converter.TRXToTestbrain(s), nil
		case *allure.Report:
			return converter.AllureToTestbrain(s), nil
		case *testbrain.TestSuite:
			return s, nil
		}
	case types.FormatJUnit:
		switch s := source.(type) {
		case *junit.TestSuites:
			return s, nil
		case *trx.TestRun:
			return converter.TRXToJUnit(s), nil
		case *allure.Report:
			return converter.AllureToJUnit(s), nil
		}
	case types.FormatTRX, types.FormatAllure:
	}

	return nil, fmt.Errorf("can't convert a %T report to %s", source, to)
}
