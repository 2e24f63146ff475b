package fileutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeTree creates every relative path under root with placeholder content
func writeTree(t *testing.T, root string, files ...string) {
	t.Helper()
	for _, f := range files {
		path := filepath.Join(root, f)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte("Availability 99.9%"), 0644))
	}
}

func baseNames(paths []string) []string {
	names := make([]string, 0, len(paths))
	for _, p := range paths {
		names = append(names, filepath.Base(p))
	}
	return names
}

func TestScanDirectory(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root,
		"checkout.md",
		"payments.yaml",
		"notes.txt",
		"Search.MD",
		"nfr/availability.yml",
		"nfr/perf/latency.markdown",
		".drafts/secret.md",
		"node_modules/pkg/readme.md",
		"archive/old.md",
	)
	reqExts := []string{".md", ".markdown", ".yaml", ".yml"}

	tests := []struct {
		name string
		opts ScanOptions
		want []string
		dirs int
	}{
		{
			name: "top level only",
			opts: ScanOptions{Extensions: reqExts},
			want: []string{"Search.MD", "checkout.md", "payments.yaml"},
			dirs: 1,
		},
		{
			name: "recursive with exclusions",
			opts: ScanOptions{Extensions: reqExts, Recursive: true, ExcludeDirs: []string{"node_modules", "archive"}},
			want: []string{"Search.MD", "checkout.md", "availability.yml", "latency.markdown", "payments.yaml"},
			dirs: 3,
		},
		{
			name: "depth limit",
			opts: ScanOptions{Extensions: reqExts, Recursive: true, MaxDepth: 2, ExcludeDirs: []string{"node_modules", "archive"}},
			want: []string{"Search.MD", "checkout.md", "availability.yml", "payments.yaml"},
			dirs: 2,
		},
		{
			name: "hidden included",
			opts: ScanOptions{Extensions: []string{"md"}, Recursive: true, IncludeHidden: true, ExcludeDirs: []string{"node_modules", "archive", "nfr"}},
			want: []string{"secret.md", "Search.MD", "checkout.md"},
			dirs: 2,
		},
		{
			name: "pattern on name without extension",
			opts: ScanOptions{Pattern: "^(checkout|payments)$", Extensions: reqExts, Recursive: true},
			want: []string{"checkout.md", "payments.yaml"},
			dirs: 6,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ScanDirectory(root, tt.opts)
			require.NoError(t, err)
			assert.ElementsMatch(t, tt.want, baseNames(result.Files))
			assert.Len(t, result.Dirs, tt.dirs)
			assert.Equal(t, root, result.Dirs[0])
			assert.Empty(t, result.Errors)
		})
	}
}

func TestScanDirectory_SortedAbsolutePaths(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, "b.md", "a.md", "sub/c.yaml")

	result, err := ScanDirectory(root, ScanOptions{Recursive: true})
	require.NoError(t, err)

	require.Len(t, result.Files, 3)
	for _, f := range result.Files {
		assert.True(t, filepath.IsAbs(f), "expected absolute path, got %s", f)
	}
	assert.IsIncreasing(t, result.Files)
}

func TestScanDirectory_Errors(t *testing.T) {
	root := t.TempDir()

	_, err := ScanDirectory(filepath.Join(root, "missing"), ScanOptions{})
	assert.Error(t, err)

	file := filepath.Join(root, "req.md")
	writeTree(t, root, "req.md")
	_, err = ScanDirectory(file, ScanOptions{})
	assert.ErrorContains(t, err, "not a directory")

	_, err = ScanDirectory(root, ScanOptions{Pattern: "(unclosed"})
	assert.ErrorContains(t, err, "invalid pattern")
}

func TestScanDirectory_Empty(t *testing.T) {
	result, err := ScanDirectory(t.TempDir(), ScanOptions{Recursive: true})
	require.NoError(t, err)
	assert.Empty(t, result.Files)
	assert.Len(t, result.Dirs, 1)
}

func TestMatchesExtension(t *testing.T) {
	exts := []string{".md", "yaml"}

	assert.True(t, MatchesExtension("/tmp/reqs/Checkout.MD", exts))
	assert.True(t, MatchesExtension("payments.yaml", exts))
	assert.False(t, MatchesExtension("payments.yml", exts))
	assert.False(t, MatchesExtension("README", exts))
}
