package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCmd(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	cmd := newRootCommand()
	var outBuf, errBuf bytes.Buffer
	cmd.SetOut(&outBuf)
	cmd.SetErr(&errBuf)
	cmd.SetArgs(args)
	err = cmd.Execute()
	return outBuf.String(), errBuf.String(), err
}

func TestParseCommandPrintsTree(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.tt")
	require.NoError(t, os.WriteFile(path, []byte("hello world\n"), 0644))

	stdout, _, err := runCmd(t, "parse", path)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Paragraph")
	assert.Contains(t, stdout, "Sentence")
	assert.Contains(t, stdout, `Text("hello world")`)
}

func TestParseCommandReportsDiagnosticOnFailure(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.tt")
	// An unmatched scope close has no opening counterpart to pair with.
	require.NoError(t, os.WriteFile(path, []byte("}\n"), 0644))

	_, stderr, err := runCmd(t, "parse", path)
	require.Error(t, err)
	assert.NotEmpty(t, stderr)
}

func TestParseCommandMissingFile(t *testing.T) {
	_, _, err := runCmd(t, "parse", filepath.Join(t.TempDir(), "missing.tt"))
	require.Error(t, err)
}

func TestParseCommandTreeOnlySuppressesWarnings(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.tt")
	// Reusing the include name "a" while it is open raises a
	// RecursionWarning, which the default config enables.
	contents := `[-load("a", "[load(\"a\", \"x\")]")-]` + "\n"
	require.NoError(t, os.WriteFile(path, []byte(contents), 0644))

	stdout, stderr, err := runCmd(t, "parse", "--tree-only", path)
	require.NoError(t, err)
	assert.Empty(t, stderr)
	assert.Contains(t, stdout, "Paragraph")
}

func TestParseCommandColorFlagNeverDisablesStyling(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.tt")
	require.NoError(t, os.WriteFile(path, []byte("}\n"), 0644))

	_, stderr, err := runCmd(t, "parse", "--color", "never", path)
	require.Error(t, err)
	assert.NotContains(t, stderr, "\x1b[")
}
