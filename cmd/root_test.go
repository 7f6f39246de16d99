package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voxctl/voxctl/internal/version"
)

func TestSubcommandsRegistered(t *testing.T) {
	names := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"listen", "process", "commands", "version"} {
		assert.True(t, names[want], "missing subcommand %q", want)
	}
}

func TestVersionCommandOutput(t *testing.T) {
	out := new(bytes.Buffer)
	versionCmd.SetOut(out)
	versionCmd.Run(versionCmd, nil)

	require.Contains(t, out.String(), "voxctl")
	assert.Contains(t, out.String(), version.String())
}

func TestScreenSizeFallback(t *testing.T) {
	w, h := screenSize()
	assert.Greater(t, w, 0)
	assert.Greater(t, h, 0)
}
