package allure

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/appsurify/testbrain/internal/logger"
	"github.com/appsurify/testbrain/pkg/types"
)

// ErrNotReportRoot is returned when the given path is not the root directory of an Allure report,
// for instance the data directory or the suites.json file itself.
var ErrNotReportRoot = errors.New("not an Allure report root directory")

const (
	dataDir      = "data"
	suitesFile   = "suites.json"
	testCasesDir = "test-cases"
)

// Parser reads one Allure report. Each parser owns its result.
// A source path is the report root directory; source text is the content of data/suites.json.
type Parser struct {
	source types.Source
	result *Report
}

// NewParser creates a parser for the given source.
// It panics when both text and path are set.
func NewParser(source types.Source) *Parser {
	if source.Ambiguous() {
		panic("allure: parser source has both text and path")
	}
	return &Parser{
		source: source,
		result: &Report{},
	}
}

// Parse parses the content of a suites.json file.
func Parse(data []byte) (*Report, error) {
	return NewParser(types.Source{Text: data}).Parse()
}

// ParseDir parses the Allure report whose root directory is dir.
func ParseDir(dir string) (*Report, error) {
	return NewParser(types.Source{Path: dir}).Parse()
}

func (p *Parser) Parse() (*Report, error) {
	if p.source.Path == "" {
		if err := p.decode(p.source.Text); err != nil {
			return nil, err
		}
		return p.result, nil
	}

	suitesPath, err := suitesPathOf(p.source.Path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(suitesPath) //nolint:gosec
	if err != nil {
		return nil, fmt.Errorf("can't read allure suites %s: %w", suitesPath, err)
	}

	if err := p.decode(data); err != nil {
		return nil, err
	}

	casesDir := filepath.Join(p.source.Path, dataDir, testCasesDir)
	for _, child := range p.result.Children {
		for _, tc := range child.Flatten() {
			readTestCaseDetails(casesDir, tc.Node)
		}
	}

	return p.result, nil
}

func (p *Parser) decode(data []byte) error {
	if err := json.Unmarshal(data, p.result); err != nil {
		return fmt.Errorf("can't decode allure suites: %w", err)
	}
	p.result.Children = pruneNil(p.result.Children)
	return nil
}

// pruneNil drops the null entries of a children list, at every depth.
func pruneNil(nodes []*Node) []*Node {
	nodes = slices.DeleteFunc(nodes, func(n *Node) bool { return n == nil })
	for _, n := range nodes {
		n.Children = pruneNil(n.Children)
	}
	return nodes
}

func suitesPathOf(root string) (string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return "", fmt.Errorf("can't open allure report %s: %w", root, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%w: %s is a file", ErrNotReportRoot, root)
	}

	suitesPath := filepath.Join(root, dataDir, suitesFile)
	info, err = os.Stat(suitesPath)
	if err != nil || !info.Mode().IsRegular() {
		return "", fmt.Errorf("%w: %s has no %s/%s", ErrNotReportRoot, root, dataDir, suitesFile)
	}

	return suitesPath, nil
}

// readTestCaseDetails fills the status message and trace of a test case from its own file.
// A missing file leaves the node untouched.
func readTestCaseDetails(casesDir string, node *Node) {
	if node.UID == "" {
		return
	}

	data, err := os.ReadFile(filepath.Join(casesDir, node.UID+".json"))
	if err != nil {
		return
	}

	var details struct {
		StatusMessage string `json:"statusMessage"`
		StatusTrace   string `json:"statusTrace"`
	}
	if err := json.Unmarshal(data, &details); err != nil {
		logger.Warnf("Ignoring invalid allure test case %s: %v", node.UID, err)
		return
	}

	node.StatusMessage = details.StatusMessage
	node.StatusTrace = details.StatusTrace
}
