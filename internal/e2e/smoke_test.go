package e2e

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSmokeFlow(t *testing.T) {
	home := t.TempDir()
	binaryPath := buildBinary(t)

	_, stderr, err := runGPTBridge(t, binaryPath, home, "quota", "set", "123456789012345678", "25")
	require.NoError(t, err, "stderr: %s", stderr)

	stdout, stderr, err := runGPTBridge(t, binaryPath, home, "quota", "list")
	require.NoError(t, err, "stderr: %s", stderr)
	assert.Contains(t, stdout, "123456789012345678")
	assert.Contains(t, stdout, "25")

	stdout, stderr, err = runGPTBridge(t, binaryPath, home, "status", "--json")
	require.NoError(t, err, "stderr: %s", stderr)
	assert.Contains(t, stdout, "\"remaining\": 25")

	stdout, _, err = runGPTBridge(t, binaryPath, home, "version")
	require.NoError(t, err)
	assert.NotEmpty(t, strings.TrimSpace(stdout))
}

func buildBinary(t *testing.T) string {
	t.Helper()

	binaryPath := filepath.Join(t.TempDir(), "gptbridge-e2e")
	cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/gptbridge")
	cmd.Dir = repoRoot(t)

	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "build gptbridge binary: %s", string(output))
	return binaryPath
}

func runGPTBridge(t *testing.T, binaryPath, home string, args ...string) (string, string, error) {
	t.Helper()

	cmd := exec.Command(binaryPath, args...)
	cmd.Env = append(os.Environ(), "HOME="+home, "GPTBRIDGE_STORE_BACKEND=sqlite")

	var stdout bytes.Buffer
	var stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	return stdout.String(), stderr.String(), err
}

func repoRoot(t *testing.T) string {
	t.Helper()

	wd, err := os.Getwd()
	require.NoError(t, err)
	return filepath.Clean(filepath.Join(wd, "..", ".."))
}
