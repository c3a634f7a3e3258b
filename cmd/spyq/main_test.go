package main

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExitError_Message(t *testing.T) {
	err := exitError(ExitInvalidArgs, "spyq: bad path %q", "/nope")
	assert.Equal(t, 1, err.ExitCode())
	assert.Equal(t, `spyq: bad path "/nope"`, err.Error())
}

func TestExitError_DefaultMessages(t *testing.T) {
	assert.Equal(t, "spyq: validation found problems", exitError(ExitViolationsFound, "").Error())
	assert.Equal(t, "spyq: generation failed", exitError(ExitGenerationFailed, "").Error())
	assert.Equal(t, "spyq: error", exitError(ExitInvalidArgs, "").Error())
}

func TestExitError_ErrorsAs(t *testing.T) {
	var target *exitCodeError
	err := error(exitError(ExitGenerationFailed, "boom"))
	require.True(t, errors.As(err, &target))
	assert.Equal(t, ExitGenerationFailed, target.ExitCode())
}

func TestRootCommandWiring(t *testing.T) {
	names := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"generate", "validate", "providers", "mcp", "version"} {
		assert.True(t, names[want], "missing subcommand %q", want)
	}
}
