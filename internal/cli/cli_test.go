package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/jcant0n/improvecomments/internal/llmrewrite"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCLI(t *testing.T, args ...string) (code int, out string, errOut string) {
	t.Helper()
	var outBuf, errBuf bytes.Buffer
	code, _ = Run(append([]string{"improvecomments"}, args...), &RunOptions{Out: &outBuf, Err: &errBuf})
	return code, outBuf.String(), errBuf.String()
}

func TestRunMissingDirectoryArgument(t *testing.T) {
	code, _, errOut := runCLI(t)
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "Usage: improvecomments")
}

func TestRunMissingCredentialExitsBeforeFilesystemAccess(t *testing.T) {
	t.Setenv(llmrewrite.APIKeyEnv, "")

	// The directory doesn't exist; the credential failure must win, proving no
	// filesystem access happened first.
	code, _, errOut := runCLI(t, filepath.Join(t.TempDir(), "nope"))
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, llmrewrite.APIKeyEnv)
	assert.NotContains(t, errOut, "does not exist")
}

func TestRunInvalidMaxWorkers(t *testing.T) {
	t.Setenv(llmrewrite.APIKeyEnv, "sk-test")

	code, _, errOut := runCLI(t, t.TempDir(), "abc")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "maxWorkers")

	code, _, _ = runCLI(t, t.TempDir(), "0")
	assert.Equal(t, 1, code)
}

func TestRunUnknownFlag(t *testing.T) {
	code, _, _ := runCLI(t, "--nonsense", ".")
	assert.Equal(t, 2, code)
}

func TestRunHelp(t *testing.T) {
	code, _, errOut := runCLI(t, "--help")
	assert.Equal(t, 0, code)
	assert.Contains(t, errOut, "Usage: improvecomments")
	assert.Contains(t, errOut, "--grammar")
}

func TestRunVersion(t *testing.T) {
	code, out, _ := runCLI(t, "--version")
	assert.Equal(t, 0, code)
	assert.Contains(t, out, Version)
}

func TestRunEmptyDirectoryEndToEnd(t *testing.T) {
	// With a key set and no eligible files, the run completes with a zero
	// tally and no network calls.
	t.Setenv(llmrewrite.APIKeyEnv, "sk-test")

	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "notes.txt"), []byte("hi"), 0o644))

	code, out, _ := runCLI(t, root, "2", "TRUE")
	assert.Equal(t, 0, code)
	assert.Contains(t, out, "Total modified files: 0 / 0")
	assert.Contains(t, out, "Total time: ")
}

func TestIncludeSubdirectoriesToken(t *testing.T) {
	assert.True(t, includeSubdirectories("true"))
	assert.True(t, includeSubdirectories("TRUE"))
	assert.True(t, includeSubdirectories("True"))
	assert.False(t, includeSubdirectories("false"))
	assert.False(t, includeSubdirectories("tru"))  // typos mean false
	assert.False(t, includeSubdirectories("yes"))
	assert.False(t, includeSubdirectories(""))
}
