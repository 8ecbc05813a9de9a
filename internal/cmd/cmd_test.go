package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/monopole/shbridge/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// executeCommand runs a fresh command tree with args,
// feeding it stdin, and returns captured output.
func executeCommand(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	// Keep the user's own config out of it.
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	root := NewRootCmd()
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestRootCommandTree(t *testing.T) {
	root := NewRootCmd()
	assert.Equal(t, "shbridge", root.Use)
	names := make(map[string]bool)
	for _, c := range root.Commands() {
		names[c.Name()] = true
	}
	for _, n := range []string{"run", "items", "config"} {
		assert.True(t, names[n], "missing subcommand %s", n)
	}
}

func TestRunStatements(t *testing.T) {
	out, err := executeCommand(t, "", "run", "--", "echo alpha", "echo beta")
	require.NoError(t, err)
	assert.Equal(t, "out: alpha\nout: beta\n", out)
}

func TestRunForwardsStdin(t *testing.T) {
	out, err := executeCommand(t, "Dorothy\n",
		"run", "--", "read name", "echo hi $name")
	require.NoError(t, err)
	assert.Equal(t, "out: hi Dorothy\n", out)
}

func TestRunPlain(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	root := NewRootCmd()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetIn(strings.NewReader(""))
	root.SetArgs([]string{"run", "--plain", "--", "echo alpha", "echo oops 1>&2"})
	require.NoError(t, root.Execute())
	assert.Equal(t, "alpha\n", out.String())
	assert.Equal(t, "oops\n", errOut.String())
}

func TestRunExitCode(t *testing.T) {
	out, err := executeCommand(t, "", "run", "--", "echo oops 1>&2", "exit 3")
	var exitErr *ExitCodeError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 3, exitErr.Code)
	assert.Equal(t, "exit status 3", err.Error())
	assert.Equal(t, "err: oops\n", out)
}

func TestRunItem(t *testing.T) {
	path := writeConfig(t, `
items:
  - name: Echo
    statements: ["read x", "echo [$x]"]
`)
	out, err := executeCommand(t, "boo\n", "--config", path, "run", "--item", "Echo")
	require.NoError(t, err)
	assert.Equal(t, "out: [boo]\n", out)
}

func TestRunArgErrors(t *testing.T) {
	testCases := map[string]struct {
		args     []string
		expected string
	}{
		"nothing": {
			args:     []string{"run"},
			expected: "nothing to run",
		},
		"both": {
			args:     []string{"run", "--item", "Greet", "--", "echo"},
			expected: "not both",
		},
		"unknown item": {
			args:     []string{"run", "--item", "Nope"},
			expected: `no item named "Nope"`,
		},
	}
	for n, tc := range testCases {
		t.Run(n, func(t *testing.T) {
			_, err := executeCommand(t, "", tc.args...)
			if assert.Error(t, err) {
				assert.Contains(t, err.Error(), tc.expected)
			}
		})
	}
}

func TestRunBadShell(t *testing.T) {
	t.Setenv("SHBRIDGE_SHELL_PATH", "/no/such/shell")
	_, err := executeCommand(t, "", "run", "--", "echo hi")
	if assert.Error(t, err) {
		assert.Contains(t, err.Error(), "/no/such/shell")
	}
}

func TestItems(t *testing.T) {
	out, err := executeCommand(t, "", "items")
	require.NoError(t, err)
	assert.Contains(t, out, "Clone repo\n")
	assert.Contains(t, out, "Push repo (secret input)\n")
	assert.Contains(t, out, "    git push\n")
}

func TestConfigShow(t *testing.T) {
	path := writeConfig(t, "ui:\n  poll_interval_ms: 40\n")
	out, err := executeCommand(t, "", "--config", path, "config", "show")
	require.NoError(t, err)
	var cfg config.Config
	require.NoError(t, yaml.Unmarshal([]byte(out), &cfg))
	assert.Equal(t, 40, cfg.UI.PollIntervalMs)
	assert.Equal(t, "/bin/sh", cfg.Shell.Path)
}

func TestConfigInvalid(t *testing.T) {
	path := writeConfig(t, "buffers:\n  input: -1\n")
	_, err := executeCommand(t, "", "--config", path, "items")
	if assert.Error(t, err) {
		assert.Contains(t, err.Error(), "buffers.input")
	}
}

func TestConfigMissingExplicitFile(t *testing.T) {
	_, err := executeCommand(t, "", "--config", "/no/such/config.yaml", "items")
	if assert.Error(t, err) {
		assert.Contains(t, err.Error(), "reading config")
	}
}

func TestConfigInit(t *testing.T) {
	home := t.TempDir()
	root := NewRootCmd()
	t.Setenv("XDG_CONFIG_HOME", home)
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetArgs([]string{"config", "init"})
	require.NoError(t, root.Execute())
	path := filepath.Join(home, "shbridge", "config.yaml")
	assert.Contains(t, buf.String(), path)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Clone repo")

	root = NewRootCmd()
	root.SetOut(buf)
	root.SetArgs([]string{"config", "init"})
	assert.ErrorContains(t, root.Execute(), "already exists")
}
