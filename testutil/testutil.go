package testutil

import (
	"os"
	"strconv"
	"strings"
	"testing"
)

// WriteIntsFile writes values to a temporary file, separated by sep, and
// returns its path. The file is removed when the test finishes.
func WriteIntsFile(t *testing.T, values []int, sep string) string {
	t.Helper()

	tmpFile, err := os.CreateTemp(t.TempDir(), "ints_*.txt")
	if err != nil {
		t.Fatalf("Failed to create temp input file: %v", err)
	}

	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.Itoa(v)
	}
	if _, err := tmpFile.WriteString(strings.Join(parts, sep) + "\n"); err != nil {
		t.Fatalf("Failed to write to temp input file: %v", err)
	}
	tmpFile.Close()

	return tmpFile.Name()
}

// WriteConfigFile writes a TOML config to a temporary file and returns its path.
func WriteConfigFile(t *testing.T, content string) string {
	t.Helper()

	tmpFile, err := os.CreateTemp(t.TempDir(), "sortx_*.toml")
	if err != nil {
		t.Fatalf("Failed to create temp config file: %v", err)
	}
	if _, err := tmpFile.WriteString(content); err != nil {
		t.Fatalf("Failed to write to temp config file: %v", err)
	}
	tmpFile.Close()

	return tmpFile.Name()
}

// TempFilePath returns a cross-platform temporary file path
// with the given pattern. Does not create the file.
func TempFilePath(t *testing.T, pattern string) string {
	t.Helper()

	tmpFile, err := os.CreateTemp(t.TempDir(), pattern)
	if err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}

	path := tmpFile.Name()
	tmpFile.Close()
	os.Remove(path) // Remove immediately, just need the path

	return path
}
