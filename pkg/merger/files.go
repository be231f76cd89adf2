package merger

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/appsurify/testbrain/internal/logger"
	"github.com/appsurify/testbrain/pkg/strutil"
	"github.com/mholt/archiver/v3"
	"github.com/moby/patternmatcher"
)

var archiveExtensions = []string{".tar.gz", ".tgz", ".tar", ".zip"}

// Inputs are the report files found by CollectFiles.
// Close removes the directories archives were extracted to.
type Inputs struct {
	Files    []string
	tempDirs []string
}

func (in *Inputs) Close() {
	for _, dir := range in.tempDirs {
		if err := os.RemoveAll(dir); err != nil {
			logger.Errorf("can't remove directory %s: %v", dir, err)
		}
	}
	in.tempDirs = nil
}

// CollectFiles expands paths into report files. A directory contributes every regular file below it,
// in lexical order, except those matching one of the exclude patterns (relative to the directory).
// An archive is extracted to a temporary directory first. Any other path is taken as is.
// Files given twice are kept once.
func CollectFiles(paths []string, exclude []string) (*Inputs, error) {
	matcher, err := patternmatcher.New(exclude)
	if err != nil {
		return nil, fmt.Errorf("invalid exclude patterns: %w", err)
	}

	inputs := &Inputs{}
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			inputs.Close()
			return nil, fmt.Errorf("can't access %s: %w", path, err)
		}

		switch {
		case info.IsDir():
			files, err := walkDir(path, matcher)
			if err != nil {
				inputs.Close()
				return nil, err
			}
			inputs.Files = append(inputs.Files, files...)
		case IsArchive(path):
			dir, err := LoadArchive(path)
			if err != nil {
				inputs.Close()
				return nil, err
			}
			inputs.tempDirs = append(inputs.tempDirs, dir)

			files, err := walkDir(dir, matcher)
			if err != nil {
				inputs.Close()
				return nil, err
			}
			inputs.Files = append(inputs.Files, files...)
		default:
			inputs.Files = append(inputs.Files, path)
		}
	}

	inputs.Files = strutil.DedupeStrSlice(inputs.Files)
	return inputs, nil
}

// IsArchive reports whether the path has a supported archive extension.
func IsArchive(path string) bool {
	lower := strings.ToLower(path)
	return slices.ContainsFunc(archiveExtensions, func(ext string) bool {
		return strings.HasSuffix(lower, ext)
	})
}

// LoadArchive extracts a .tar.gz, .tgz, .tar or .zip archive into a new temporary directory
// and returns its path. The caller removes the directory.
func LoadArchive(path string) (string, error) {
	dir, err := os.MkdirTemp("", "testbrain-reports-")
	if err != nil {
		return "", fmt.Errorf("can't create temporary directory: %w", err)
	}

	logger.Debugf("Extracting %s to %s", path, dir)
	if err := archiver.Unarchive(path, dir); err != nil {
		_ = os.RemoveAll(dir)
		return "", fmt.Errorf("can't extract archive %s: %w", path, err)
	}

	return dir, nil
}

func walkDir(root string, matcher *patternmatcher.PatternMatcher) ([]string, error) {
	var files []string

	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !entry.Type().IsRegular() {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		excluded, err := matcher.MatchesOrParentMatches(filepath.ToSlash(rel))
		if err != nil {
			return fmt.Errorf("can't match exclude patterns for %s: %w", rel, err)
		}
		if excluded {
			logger.Debugf("Excluding %s", path)
			return nil
		}

		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("can't walk directory %s: %w", root, err)
	}

	return files, nil
}
