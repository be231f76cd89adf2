// Package report provides tools to output test reports.
//
// The main functionalities include:
//   - Serializing JUnit and Testbrain reports to JSON, YAML or XML.
//   - Decoding Testbrain JSON reports.
//   - Printing a per-suite summary table.
//   - Computing a human-readable fingerprint of a serialized report.
package report
