package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	// DirName is the per-project configuration directory
	DirName = ".reqlint"
	// FileName is the configuration file inside DirName
	FileName = "config.yaml"
	// EnvConfigPath overrides config discovery when set
	EnvConfigPath = "REQLINT_CONFIG"
)

// ResolveConfigPath decides which config file to load.
// Priority order:
//  1. explicit path (the --config flag)
//  2. REQLINT_CONFIG environment variable
//  3. the nearest .reqlint/config.yaml walking up from start
//
// It returns "" when nothing is found, which LoadConfig treats as defaults.
// An explicit or environment path that does not exist is an error.
func ResolveConfigPath(explicit, start string) (string, error) {
	for _, candidate := range []struct {
		path   string
		origin string
	}{
		{explicit, "--config"},
		{os.Getenv(EnvConfigPath), EnvConfigPath},
	} {
		if candidate.path == "" {
			continue
		}
		if _, err := os.Stat(candidate.path); err != nil {
			return "", fmt.Errorf("config file from %s not found: %w", candidate.origin, err)
		}
		return candidate.path, nil
	}

	return findProjectConfig(start)
}

// findProjectConfig walks up from start looking for .reqlint/config.yaml
func findProjectConfig(start string) (string, error) {
	if start == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		start = cwd
	}

	current, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", start, err)
	}

	for {
		candidate := filepath.Join(current, DirName, FileName)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}

		parent := filepath.Dir(current)
		if parent == current {
			return "", nil
		}
		current = parent
	}
}
