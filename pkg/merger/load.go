package merger

import (
	"context"
	"fmt"
	"runtime"

	"github.com/appsurify/testbrain/internal/logger"
	"github.com/appsurify/testbrain/pkg/junit"
	"github.com/appsurify/testbrain/pkg/report"
	"github.com/appsurify/testbrain/pkg/testbrain"
	"github.com/appsurify/testbrain/pkg/types"
	"golang.org/x/sync/errgroup"
)

// parseAll runs parse on every source concurrently, each with its own parser.
// Results keep the order of sources. The first error cancels the remaining work.
func parseAll[T any](ctx context.Context, sources []types.Source, parse func(types.Source) (T, error)) ([]T, error) {
	results := make([]T, len(sources))

	errG, ctx := errgroup.WithContext(ctx)
	errG.SetLimit(runtime.NumCPU())

	for i, source := range sources {
		i, source := i, source
		errG.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			result, err := parse(source)
			if err != nil {
				if source.Path != "" {
					return fmt.Errorf("can't parse report %s: %w", source.Path, err)
				}
				return fmt.Errorf("can't parse report #%d: %w", i, err)
			}
			results[i] = result
			return nil
		})
	}

	if err := errG.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func fileSources(files []string) []types.Source {
	sources := make([]types.Source, 0, len(files))
	for _, file := range files {
		sources = append(sources, types.Source{Path: file})
	}
	return sources
}

func textSources(reports [][]byte) []types.Source {
	sources := make([]types.Source, 0, len(reports))
	for _, text := range reports {
		sources = append(sources, types.Source{Text: text})
	}
	return sources
}

func parseJUnit(source types.Source) (*junit.TestSuites, error) {
	return junit.NewParser(source).Parse()
}

func parseTestbrain(source types.Source) (*testbrain.TestSuite, error) {
	data, err := source.Read()
	if err != nil {
		return nil, err
	}
	return report.FromJSONTestbrain(data)
}

// ParseJUnitFiles parses JUnit XML files concurrently. Reports are returned in the order of files.
func ParseJUnitFiles(ctx context.Context, files []string) ([]*junit.TestSuites, error) {
	return parseAll(ctx, fileSources(files), parseJUnit)
}

// ParseTestbrainFiles decodes Testbrain JSON files concurrently. Reports are returned in the order of files.
func ParseTestbrainFiles(ctx context.Context, files []string) ([]*testbrain.TestSuite, error) {
	return parseAll(ctx, fileSources(files), parseTestbrain)
}

// JUnitFromReports parses in-memory JUnit documents and merges them.
func JUnitFromReports(ctx context.Context, reports [][]byte, mergeSameSuites bool) (*junit.TestSuites, error) {
	parsed, err := parseAll(ctx, textSources(reports), parseJUnit)
	if err != nil {
		return nil, err
	}
	return mergeJUnit(parsed, mergeSameSuites), nil
}

// JUnitFromPaths collects the JUnit files of paths (files, directories or archives),
// parses them and merges them.
func JUnitFromPaths(ctx context.Context, paths, exclude []string, mergeSameSuites bool) (*junit.TestSuites, error) {
	inputs, err := CollectFiles(paths, exclude)
	if err != nil {
		return nil, err
	}
	defer inputs.Close()

	logger.Infof("Merging %d JUnit reports", len(inputs.Files))
	parsed, err := ParseJUnitFiles(ctx, inputs.Files)
	if err != nil {
		return nil, err
	}
	return mergeJUnit(parsed, mergeSameSuites), nil
}

// TestbrainFromReports decodes in-memory Testbrain JSON documents and merges them.
func TestbrainFromReports(ctx context.Context, reports [][]byte) (*testbrain.TestSuite, error) {
	parsed, err := parseAll(ctx, textSources(reports), parseTestbrain)
	if err != nil {
		return nil, err
	}
	return MergeTestbrain(parsed), nil
}

// TestbrainFromPaths collects the Testbrain JSON files of paths, decodes them and merges them.
func TestbrainFromPaths(ctx context.Context, paths, exclude []string) (*testbrain.TestSuite, error) {
	inputs, err := CollectFiles(paths, exclude)
	if err != nil {
		return nil, err
	}
	defer inputs.Close()

	logger.Infof("Merging %d Testbrain reports", len(inputs.Files))
	parsed, err := ParseTestbrainFiles(ctx, inputs.Files)
	if err != nil {
		return nil, err
	}
	return MergeTestbrain(parsed), nil
}

func mergeJUnit(reports []*junit.TestSuites, mergeSameSuites bool) *junit.TestSuites {
	if mergeSameSuites {
		return MergeJUnitSameSuites(reports)
	}
	return MergeJUnit(reports)
}
