package parser

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/harrison/reqlint/internal/fileutil"
	"github.com/harrison/reqlint/internal/models"
)

// Format represents the format of a requirements file
type Format int

const (
	// FormatUnknown represents an unknown or unsupported file format
	FormatUnknown Format = iota
	// FormatMarkdown represents free-form Markdown (.md, .markdown) requirements
	FormatMarkdown
	// FormatYAML represents structured YAML (.yaml, .yml) requirement records
	FormatYAML
)

// SupportedExtensions lists every extension DetectFormat recognises
var SupportedExtensions = []string{".md", ".markdown", ".yaml", ".yml"}

// String returns the string representation of the Format
func (f Format) String() string {
	switch f {
	case FormatMarkdown:
		return "markdown"
	case FormatYAML:
		return "yaml"
	default:
		return "unknown"
	}
}

// Parser is the interface that all requirement parsers implement
type Parser interface {
	// Parse reads from an io.Reader and returns the raw, unnormalized records
	Parse(r io.Reader) (*models.RequirementSet, error)
}

// DetectFormat detects the requirements format based on file extension
//   - .md, .markdown -> FormatMarkdown
//   - .yaml, .yml -> FormatYAML
//   - all others -> FormatUnknown
func DetectFormat(filename string) Format {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".md", ".markdown":
		return FormatMarkdown
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatUnknown
	}
}

// NewParser creates a new parser instance for the specified format
func NewParser(format Format) (Parser, error) {
	switch format {
	case FormatMarkdown:
		return NewMarkdownParser(), nil
	case FormatYAML:
		return NewYAMLParser(), nil
	default:
		return nil, fmt.Errorf("unsupported format: %v", format)
	}
}

// ParseFile detects the format of path, parses it and records the absolute
// path as the set's source. Records are returned unnormalized.
func ParseFile(path string) (*models.RequirementSet, error) {
	format := DetectFormat(path)
	if format == FormatUnknown {
		return nil, fmt.Errorf("unknown file format: %s (supported: %s)", path, strings.Join(SupportedExtensions, ", "))
	}

	parser, err := NewParser(format)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	set, err := parser.Parse(file)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		absPath = path
	}
	set.Sources = []string{absPath}

	return set, nil
}

// DirectoryScanOptions returns the options used to discover requirement
// files inside a directory argument.
func DirectoryScanOptions() fileutil.ScanOptions {
	return fileutil.ScanOptions{
		Extensions:  SupportedExtensions,
		Recursive:   true,
		ExcludeDirs: []string{".git", "node_modules", ".reqlint"},
	}
}

// ResolveInputs expands a list of files and directories into a deduplicated
// list of requirement files. Directories are scanned recursively for every
// supported extension and contribute their files in sorted order. Explicit
// files keep their argument position and must have a supported extension.
func ResolveInputs(paths []string) ([]string, error) {
	if len(paths) == 0 {
		return nil, fmt.Errorf("no paths provided")
	}

	opts := DirectoryScanOptions()

	seen := make(map[string]bool)
	var files []string
	add := func(p string) {
		if !seen[p] {
			seen[p] = true
			files = append(files, p)
		}
	}

	for _, path := range paths {
		absPath, err := filepath.Abs(path)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve path %q: %w", path, err)
		}

		info, err := os.Stat(absPath)
		if err != nil {
			if os.IsNotExist(err) {
				return nil, fmt.Errorf("path %q does not exist", path)
			}
			return nil, fmt.Errorf("failed to access path %q: %w", path, err)
		}

		if !info.IsDir() {
			if DetectFormat(absPath) == FormatUnknown {
				return nil, fmt.Errorf("unknown file format: %s (supported: %s)", path, strings.Join(SupportedExtensions, ", "))
			}
			add(absPath)
			continue
		}

		result, err := fileutil.ScanDirectory(absPath, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to scan directory %q: %w", path, err)
		}
		sort.Strings(result.Files)
		for _, file := range result.Files {
			add(file)
		}
	}

	if len(files) == 0 {
		return nil, fmt.Errorf("no requirement files found (supported: %s)", strings.Join(SupportedExtensions, ", "))
	}

	return files, nil
}
