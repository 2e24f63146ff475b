package fileutil

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
)

// ScanOptions configures the directory scanning behavior
type ScanOptions struct {
	// Pattern is a regex pattern to match filenames (without extension)
	Pattern string
	// Extensions is a list of file extensions to include (e.g., ".md", ".yaml")
	Extensions []string
	// Recursive enables recursive directory scanning
	Recursive bool
	// ExcludeDirs is a list of directory names to exclude (e.g., ".git", "node_modules")
	ExcludeDirs []string
	// MaxDepth limits recursion depth (0 = unlimited, 1 = current dir only)
	MaxDepth int
	// IncludeHidden descends into directories starting with "."
	IncludeHidden bool
}

// ScanResult contains the results of a directory scan
type ScanResult struct {
	// Files contains the absolute paths of all matched files, sorted
	Files []string
	// Dirs contains the absolute paths of every directory visited, root first
	Dirs []string
	// Errors contains any errors encountered during scanning
	Errors []error
}

// ScanDirectory scans a directory for files matching the provided options
func ScanDirectory(dir string, opts ScanOptions) (*ScanResult, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to access directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("path is not a directory: %s", dir)
	}

	filter, err := newFilter(opts)
	if err != nil {
		return nil, err
	}

	root, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve directory: %w", err)
	}

	result := &ScanResult{
		Files:  make([]string, 0),
		Dirs:   []string{root},
		Errors: make([]error, 0),
	}

	excluded := make(map[string]bool, len(opts.ExcludeDirs))
	for _, name := range opts.ExcludeDirs {
		excluded[name] = true
	}

	err = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			result.Errors = append(result.Errors, fmt.Errorf("error accessing %s: %w", path, err))
			return nil
		}
		if path == root {
			return nil
		}

		if d.IsDir() {
			if excluded[d.Name()] || (!opts.IncludeHidden && strings.HasPrefix(d.Name(), ".")) {
				return filepath.SkipDir
			}
			if !opts.Recursive {
				return filepath.SkipDir
			}
			if opts.MaxDepth > 0 {
				relPath, _ := filepath.Rel(root, path)
				depth := strings.Count(relPath, string(filepath.Separator)) + 1
				if depth >= opts.MaxDepth {
					return filepath.SkipDir
				}
			}
			result.Dirs = append(result.Dirs, path)
			return nil
		}

		if filter.Match(d.Name()) {
			result.Files = append(result.Files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk directory: %w", err)
	}

	sort.Strings(result.Files)

	return result, nil
}

// MatchesExtension reports whether filename has one of exts, case-insensitively
func MatchesExtension(filename string, exts []string) bool {
	f, err := newFilter(ScanOptions{Extensions: exts})
	if err != nil {
		return false
	}
	return f.Match(filepath.Base(filename))
}

type fileFilter struct {
	exts    map[string]bool
	pattern *regexp.Regexp
}

func newFilter(opts ScanOptions) (*fileFilter, error) {
	f := &fileFilter{exts: make(map[string]bool, len(opts.Extensions))}
	for _, ext := range opts.Extensions {
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		f.exts[strings.ToLower(ext)] = true
	}

	if opts.Pattern != "" {
		re, err := regexp.Compile(opts.Pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern: %w", err)
		}
		f.pattern = re
	}
	return f, nil
}

// Match checks the extension and, when set, the pattern against the name
// without its extension.
func (f *fileFilter) Match(name string) bool {
	ext := filepath.Ext(name)
	if len(f.exts) > 0 && !f.exts[strings.ToLower(ext)] {
		return false
	}
	if f.pattern != nil && !f.pattern.MatchString(strings.TrimSuffix(name, ext)) {
		return false
	}
	return true
}
