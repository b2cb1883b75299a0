package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionPrintsBuildVersion(t *testing.T) {
	stdout, _, err := executeCLI(t, t.TempDir(), "version")
	require.NoError(t, err)
	assert.Equal(t, "dev\n", stdout)
}

func TestQuotaSetThenList(t *testing.T) {
	home := t.TempDir()

	stdout, _, err := executeCLI(t, home, "quota", "set", "111", "10")
	require.NoError(t, err)
	assert.Equal(t, "quota for 111 set to 10\n", stdout)

	stdout, _, err = executeCLI(t, home, "quota", "set", "222", "unlimited")
	require.NoError(t, err)
	assert.Equal(t, "quota for 222 set to unlimited\n", stdout)

	stdout, _, err = executeCLI(t, home, "quota", "list")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, []string{"PRINCIPAL", "QUOTA"}, strings.Fields(lines[0]))
	assert.Equal(t, []string{"111", "10"}, strings.Fields(lines[1]))
	assert.Equal(t, []string{"222", "unlimited"}, strings.Fields(lines[2]))

	data, err := os.ReadFile(filepath.Join(home, ".config", "gptbridge", "quotas.json"))
	require.NoError(t, err)
	var stored map[string]int64
	require.NoError(t, json.Unmarshal(data, &stored))
	assert.Equal(t, map[string]int64{"111": 10, "222": -1}, stored)
}

func TestQuotaSetRejectsInvalidCount(t *testing.T) {
	testCases := []struct {
		name    string
		count   string
		wantErr string
	}{
		{name: "negative", count: "-3", wantErr: "must not be negative"},
		{name: "not a number", count: "lots", wantErr: "parse quota \"lots\""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			home := t.TempDir()

			// "--" stops cobra from reading a negative count as a shorthand flag.
			_, _, err := executeCLI(t, home, "quota", "set", "111", "--", tc.count)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
			assert.NoFileExists(t, filepath.Join(home, ".config", "gptbridge", "quotas.json"))
		})
	}
}

func TestQuotaSetWorksOnEveryBackend(t *testing.T) {
	testCases := []struct {
		backend string
		file    string
	}{
		{backend: "json", file: "quotas.json"},
		{backend: "yaml", file: "state.yaml"},
		{backend: "toml", file: "state.toml"},
		{backend: "sqlite", file: "gptbridge.db"},
	}

	for _, tc := range testCases {
		t.Run(tc.backend, func(t *testing.T) {
			home := t.TempDir()
			t.Setenv("GPTBRIDGE_STORE_BACKEND", tc.backend)

			_, _, err := executeCLI(t, home, "quota", "set", "111", "3")
			require.NoError(t, err)

			stdout, _, err := executeCLI(t, home, "quota", "list")
			require.NoError(t, err)
			assert.Contains(t, stdout, "111")
			assert.FileExists(t, filepath.Join(home, ".config", "gptbridge", tc.file))
		})
	}
}

func TestInvalidConfigFails(t *testing.T) {
	home := t.TempDir()
	t.Setenv("GPTBRIDGE_STORE_BACKEND", "mongo")

	_, _, err := executeCLI(t, home, "quota", "list")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "store.backend")
}

func TestConfigFlagSelectsFile(t *testing.T) {
	home := t.TempDir()
	storeDir := filepath.Join(home, "data")
	configPath := filepath.Join(home, "bridge.toml")
	require.NoError(t, os.WriteFile(configPath, []byte("[store]\nbackend = \"toml\"\ndir = \""+storeDir+"\"\n"), 0o600))

	_, _, err := executeCLI(t, home, "--config", configPath, "quota", "set", "111", "1")
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(storeDir, "state.toml"))
}

func TestSessionListMarksExpired(t *testing.T) {
	home := t.TempDir()
	fresh := time.Now().UTC().Add(-time.Hour).Format(time.RFC3339)
	require.NoError(t, writeSessionsFixture(home, map[string]string{
		"t-old":   "2020-01-01T00:00:00Z",
		"t-fresh": fresh,
	}))

	stdout, _, err := executeCLI(t, home, "session", "list")
	require.NoError(t, err)
	assert.Contains(t, stdout, "t-old")
	assert.Contains(t, stdout, "t-fresh")

	stdout, _, err = executeCLI(t, home, "session", "list", "--expired")
	require.NoError(t, err)
	assert.Contains(t, stdout, "t-old")
	assert.NotContains(t, stdout, "t-fresh")
	assert.Contains(t, stdout, "next sweep at")
}

func TestStatusRendersQuotasAndSessions(t *testing.T) {
	home := t.TempDir()
	require.NoError(t, writeSessionsFixture(home, map[string]string{"t1": "2020-01-01T00:00:00Z"}))

	_, _, err := executeCLI(t, home, "quota", "set", "111", "0")
	require.NoError(t, err)

	stdout, _, err := executeCLI(t, home, "status")
	require.NoError(t, err)
	assert.Contains(t, stdout, "principals: 1  sessions: 1")
	assert.Contains(t, stdout, "exhausted")
	assert.Contains(t, stdout, "[expired]")
}

func TestStatusJSONOutput(t *testing.T) {
	home := t.TempDir()

	_, _, err := executeCLI(t, home, "quota", "set", "111", "4")
	require.NoError(t, err)

	stdout, _, err := executeCLI(t, home, "status", "--json")
	require.NoError(t, err)
	assert.True(t, json.Valid([]byte(stdout)))
	assert.Contains(t, stdout, "\"principal\": \"111\"")
	assert.Contains(t, stdout, "\"remaining\": 4")
}

func TestSecretSetAndRemoveUseFileFallback(t *testing.T) {
	home := t.TempDir()
	t.Setenv("PATH", t.TempDir())

	stdout, _, err := executeCLI(t, home, "secret", "set", "--name", "openai", "--value", "sk-test")
	require.NoError(t, err)
	assert.Contains(t, stdout, "stored openai secret")

	secretPath := filepath.Join(home, ".config", "gptbridge", "secrets", "gptbridge", "openai", "api_key")
	data, err := os.ReadFile(secretPath)
	require.NoError(t, err)
	assert.Equal(t, "sk-test", string(data))

	_, _, err = executeCLI(t, home, "secret", "remove", "--name", "openai")
	require.NoError(t, err)
	assert.NoFileExists(t, secretPath)
}

func TestSecretSetRequiresValueFlag(t *testing.T) {
	_, _, err := executeCLI(t, t.TempDir(), "secret", "set", "--name", "discord")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "required flag(s) \"value\" not set")
}

func TestSecretSetRejectsUnknownName(t *testing.T) {
	_, _, err := executeCLI(t, t.TempDir(), "secret", "set", "--name", "slack", "--value", "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown secret")
}

func TestServeFailsWithoutCredentials(t *testing.T) {
	home := t.TempDir()
	t.Setenv("PATH", t.TempDir())
	t.Setenv("GPTBRIDGE_DISCORD_TOKEN", "")

	_, _, err := executeCLI(t, home, "serve")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "resolve discord credential")
}

func executeCLI(t *testing.T, home string, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("HOME", home)

	root := newRootCmd()
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetArgs(args)

	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func writeSessionsFixture(home string, sessions map[string]string) error {
	configDir := filepath.Join(home, ".config", "gptbridge")
	if err := os.MkdirAll(configDir, 0o700); err != nil {
		return err
	}

	data, err := json.Marshal(sessions)
	if err != nil {
		return err
	}

	return os.WriteFile(filepath.Join(configDir, "sessions.json"), data, 0o600)
}
