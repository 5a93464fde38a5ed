// Package testutil provides shared test helpers used across integration
// and e2e test packages.
package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// RepoRoot returns the absolute path to the repository root by walking
// up from the current working directory. It fails the test if the
// working directory cannot be determined.
func RepoRoot(t *testing.T) string {
	t.Helper()
	dir, err := os.Getwd()
	require.NoError(t, err)
	return filepath.Clean(filepath.Join(dir, "..", ".."))
}

// SampleBugsFile returns the path of the committed offline bug snapshot.
func SampleBugsFile(t *testing.T) string {
	t.Helper()
	return filepath.Join(RepoRoot(t), "fixtures", "bugs-sample.yaml")
}

// RecordingReport collects result and diagnostic lines in memory.
type RecordingReport struct {
	Results     []string
	Diagnostics []string
}

func (r *RecordingReport) Result(line string) error {
	r.Results = append(r.Results, line)
	return nil
}

func (r *RecordingReport) Diagnostic(line string) error {
	r.Diagnostics = append(r.Diagnostics, line)
	return nil
}

// Stdout renders the result lines the way they reach standard output.
func (r *RecordingReport) Stdout() string {
	if len(r.Results) == 0 {
		return ""
	}
	return strings.Join(r.Results, "\n") + "\n"
}
