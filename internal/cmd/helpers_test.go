package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

const cleanYAML = `requirements:
  - id: R1
    type: nfr
    text: API latency p95 < 300 ms
  - id: R2
    type: func
    text: As a user I can export reports
    acceptance:
      - CSV download works
`

const failingYAML = `requirements:
  - id: R1
    type: nfr
    text: Availability 99.9%
  - id: R2
    type: nfr
    text: Availability 99.5%
  - id: R3
    type: nfr
    text: The UI should be fast
`

const extractMarkdown = `# Performance

- The API shall respond within 300 ms.
- As a user I can export reports
  - CSV download works

` + "```" + `
- not a requirement
` + "```" + `
`

// lockedBuffer is a bytes.Buffer safe for the concurrent writes of watch mode
type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func writeFixture(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// emptyConfig isolates a test from any .reqlint/config.yaml above the package
func emptyConfig(t *testing.T) string {
	t.Helper()
	return writeFixture(t, t.TempDir(), "config.yaml", "")
}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	return executeContext(t, context.Background(), args...)
}

func executeContext(t *testing.T, ctx context.Context, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("REQLINT_CONFIG", "")

	var stdout, stderr bytes.Buffer
	root := NewRootCommand()
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)
	err := root.ExecuteContext(ctx)
	return stdout.String(), stderr.String(), err
}
