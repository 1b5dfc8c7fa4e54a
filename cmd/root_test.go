package cmd

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubcommandsRegistered(t *testing.T) {
	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{
		"workspaces", "workspace", "status", "info", "history", "labels", "label",
		"get", "add", "checkout", "undo", "delete", "rename", "checkin", "merge",
		"branches", "branch", "lock", "conflicts", "resolve", "print", "tool", "config", "version",
	} {
		assert.True(t, names[want], "missing command %s", want)
	}

	sub := map[string]bool{}
	for _, c := range workspaceCmd.Commands() {
		sub[c.Name()] = true
	}
	for _, want := range []string{"show", "find", "create", "update", "delete", "map", "unmap", "cloak", "localpath"} {
		assert.True(t, sub[want], "missing workspace command %s", want)
	}
}

func TestVersionCommand(t *testing.T) {
	SetVersion("1.2.3")
	t.Cleanup(func() { SetVersion("dev") })

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"version", "--config", filepath.Join(t.TempDir(), "config.json")})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	})

	require.NoError(t, rootCmd.Execute())
	assert.Equal(t, "1.2.3\n", out.String())
}

func TestUnknownOutputFormat(t *testing.T) {
	outputFlag = "xml"
	t.Cleanup(func() { outputFlag = "table" })
	_, err := newService()
	assert.Error(t, err)
}

func TestGetKeepsPartialResultsByDefault(t *testing.T) {
	assert.Equal(t, "false", getCmd.Flags().Lookup("strict").DefValue)
	assert.True(t, syncOptions().IgnoreExitCode)

	strictGet = true
	t.Cleanup(func() { strictGet = false })
	assert.False(t, syncOptions().IgnoreExitCode)
}
