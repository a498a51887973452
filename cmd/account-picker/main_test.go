package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/term"

	"account-picker/pkg/accounts"
)

// isolate keeps config discovery and .env loading inside a temp dir.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "xdg"))
	t.Setenv("ACCOUNT_PICKER_CONFIG", "")
	t.Chdir(dir)
	return dir
}

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestExitCodeFromErr(t *testing.T) {
	assert.Equal(t, 130, exitCodeFromErr(errAborted))
	assert.Equal(t, 2, exitCodeFromErr(errNotTerminal))
	assert.Equal(t, 1, exitCodeFromErr(errors.New("boom")))
	assert.Equal(t, 1, exitCodeFromErr(accounts.ErrAccountNotFound))
}

func TestAccountsLifecycle(t *testing.T) {
	dir := isolate(t)
	reg := filepath.Join(dir, "reg.json")

	out, err := run(t, "", "--accounts-file", reg, "accounts", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No accounts registered")

	out, err = run(t, "", "--accounts-file", reg, "accounts", "add", "--label", "Personal", "--email", "x@y.com")
	require.NoError(t, err)
	assert.Contains(t, out, `Added ChatGPT account "Personal"`)

	out, err = run(t, "sk-proj-secret-1234\n", "--accounts-file", reg, "accounts", "add", "--label", "CI", "--kind", "apikey", "--activate")
	require.NoError(t, err)
	assert.Contains(t, out, `Added API key account "CI"`)

	data, err := os.ReadFile(reg)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "secret")

	out, err = run(t, "", "--accounts-file", reg, "accounts", "list", "-o", "json")
	require.NoError(t, err)
	var views []accountView
	require.NoError(t, json.Unmarshal([]byte(out), &views))
	require.Len(t, views, 2)
	assert.Equal(t, "x@y.com", views[0].Email)
	assert.False(t, views[0].Active)
	assert.Equal(t, "sk-...1234", views[1].MaskedAPIKey)
	assert.True(t, views[1].Active)

	out, err = run(t, "", "--accounts-file", reg, "accounts", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "ACTIVE")
	assert.Contains(t, out, "sk-...1234")

	out, err = run(t, "", "--accounts-file", reg, "accounts", "use", views[0].ID)
	require.NoError(t, err)
	assert.Contains(t, out, views[0].ID)

	out, err = run(t, "", "--accounts-file", reg, "accounts", "list", "-o", "yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "label: Personal")

	_, err = run(t, "", "--accounts-file", reg, "accounts", "remove", views[1].ID)
	require.NoError(t, err)

	_, err = run(t, "", "--accounts-file", reg, "accounts", "use", "missing")
	require.ErrorIs(t, err, accounts.ErrAccountNotFound)
}

func TestAccountsAdd_Validation(t *testing.T) {
	dir := isolate(t)
	reg := filepath.Join(dir, "reg.json")

	_, err := run(t, "", "--accounts-file", reg, "accounts", "add", "--label", "x", "--kind", "oauth")
	require.ErrorIs(t, err, accounts.ErrInvalidAccount)

	_, err = run(t, "\n", "--accounts-file", reg, "accounts", "add", "--label", "x", "--kind", "apikey")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty api key")

	_, err = run(t, "", "--accounts-file", reg, "accounts", "add")
	require.Error(t, err)

	_, err = run(t, "", "--accounts-file", reg, "accounts", "list", "-o", "xml")
	require.Error(t, err)
}

func TestConfigPathAndShow(t *testing.T) {
	dir := isolate(t)
	cfgPath := filepath.Join(dir, "c.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("theme: light\naccounts_file: /srv/a.json\n"), 0o644))

	out, err := run(t, "", "--config", cfgPath, "config", "path")
	require.NoError(t, err)
	assert.Contains(t, out, "Using: "+cfgPath)
	assert.Contains(t, out, "Accounts: /srv/a.json")

	out, err = run(t, "", "--config", cfgPath, "--theme", "none", "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "theme: none")
}

func TestInvalidFlagOverride(t *testing.T) {
	isolate(t)
	_, err := run(t, "", "--theme", "neon", "config", "path")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown theme")
}

func TestRootRequiresTerminal(t *testing.T) {
	if term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd())) {
		t.Skip("running attached to a terminal")
	}
	isolate(t)
	_, err := run(t, "")
	require.ErrorIs(t, err, errNotTerminal)
}

func TestReadAPIKey(t *testing.T) {
	var prompt bytes.Buffer
	k, err := readAPIKey(strings.NewReader("  sk-abc123456789  \nignored\n"), &prompt)
	require.NoError(t, err)
	assert.Equal(t, "sk-abc123456789", k)
	assert.Empty(t, prompt.String())

	k, err = readAPIKey(strings.NewReader("no-newline-key"), &prompt)
	require.NoError(t, err)
	assert.Equal(t, "no-newline-key", k)

	_, err = readAPIKey(strings.NewReader(""), &prompt)
	require.Error(t, err)
}
