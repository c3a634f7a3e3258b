// Copyright 2026 The SPYQ Authors
// SPDX-License-Identifier: MIT

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// resetValidateFlags resets all package-level validate flags to their
// default values.
func resetValidateFlags() {
	validateFix = false

	validateCmd.Flags().VisitAll(func(f *pflag.Flag) {
		f.Changed = false
		_ = f.Value.Set(f.DefValue)
	})
}

func TestValidateCmd_FlagsRegistered(t *testing.T) {
	f := validateCmd.Flags().Lookup("fix")
	require.NotNil(t, f, "flag --fix not registered")
	assert.Equal(t, "false", f.DefValue)
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestValidateCommand_ExitCodeOnViolations(t *testing.T) {
	resetValidateFlags()
	path := writeFile(t, t.TempDir(), "bad.py", "def f(:\n    pass\n")

	rootCmd.SetArgs([]string{"validate", path})
	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)

	err := rootCmd.Execute()
	require.Error(t, err)

	var ece *exitCodeError
	require.ErrorAs(t, err, &ece)
	assert.Equal(t, ExitViolationsFound, ece.ExitCode())
	assert.Contains(t, out.String(), "bad.py")
}

func TestValidateFile_Clean(t *testing.T) {
	path := writeFile(t, t.TempDir(), "ok.py",
		"def add(a, b):\n    \"\"\"Return the sum.\"\"\"\n    return a + b\n")

	res := validateFile(path, false)
	require.NoError(t, res.err)
	assert.True(t, res.report.Valid())
	assert.Empty(t, res.report.Violations)
	assert.False(t, res.fixed)
}

func TestValidateFile_SyntaxError(t *testing.T) {
	path := writeFile(t, t.TempDir(), "bad.py", "def f(:\n    pass\n")

	res := validateFile(path, false)
	require.NoError(t, res.err)
	assert.False(t, res.report.Valid())
}

func TestValidateFile_FixRewritesInPlace(t *testing.T) {
	path := writeFile(t, t.TempDir(), "broken.py", "def f():\n    print(\"hi")

	res := validateFile(path, true)
	require.NoError(t, res.err)
	assert.True(t, res.fixed)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `print("hi")`)
}

func TestValidateFile_FixLeavesUnfixableAlone(t *testing.T) {
	content := "def broken(\n    return"
	path := writeFile(t, t.TempDir(), "hopeless.py", content)

	res := validateFile(path, true)
	require.NoError(t, res.err)
	assert.False(t, res.fixed)
	assert.False(t, res.report.Valid())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, content, string(data), "unfixable file must not be rewritten")
}

func TestValidateFile_MissingFile(t *testing.T) {
	res := validateFile(filepath.Join(t.TempDir(), "nope.py"), false)
	require.Error(t, res.err)
	assert.Contains(t, res.err.Error(), "cannot read")
}

func TestValidateFile_UsesProjectRules(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, ".spyq.yaml", "rules:\n  forbid_print: true\n")
	path := writeFile(t, dir, "app.py",
		"def f():\n    \"\"\"Doc.\"\"\"\n    print(\"x\")\n")

	res := validateFile(path, false)
	require.NoError(t, res.err)

	found := false
	for _, v := range res.report.Violations {
		if v.Rule == "no-print" {
			found = true
		}
	}
	assert.True(t, found, "project config must enable the no-print rule")
}
