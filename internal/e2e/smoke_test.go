package e2e

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSmokeFlow(t *testing.T) {
	home := t.TempDir()
	binaryPath := buildBinary(t)
	feedPath := filepath.Join(t.TempDir(), "feed.json")
	require.NoError(t, os.WriteFile(feedPath, []byte(`[
		{"id": "s-1", "sender": "GSENDER", "recipient": "GRECIPIENT", "totalAmount": "1000", "withdrawnAmount": "100", "startTime": "2026-01-01T00:00:00Z", "endTime": 4102444800000, "status": "Active", "tokenSymbol": "XLM"}
	]`), 0o600))

	stdout, stderr, err := runStreams(t, binaryPath, home, "stream", "import", "--quiet", feedPath)
	require.NoError(t, err, "stderr: %s", stderr)
	assert.Contains(t, stdout, "imported 1 streams")

	stdout, stderr, err = runStreams(t, binaryPath, home, "stream", "show", "s-1")
	require.NoError(t, err, "stderr: %s", stderr)
	assert.Contains(t, stdout, "Withdrawn: 100.0000 XLM (10.0%)")
	assert.Contains(t, stdout, "remaining")
}

func buildBinary(t *testing.T) string {
	t.Helper()

	binaryPath := filepath.Join(t.TempDir(), "streams-e2e")
	cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/streams")
	cmd.Dir = repoRoot(t)

	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "build streams binary: %s", string(output))
	return binaryPath
}

func runStreams(t *testing.T, binaryPath, home string, args ...string) (string, string, error) {
	t.Helper()

	cmd := exec.Command(binaryPath, args...)
	cmd.Env = append(os.Environ(), "HOME="+home)

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
