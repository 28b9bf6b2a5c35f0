package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bridgen/internal/ir"
)

func TestRootInvalidFormat(t *testing.T) {
	_, err := runCommand(t, "--format", "xml", "check", "-i", "whatever.rs")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid format")
}

func TestRootVersion(t *testing.T) {
	out, err := runCommand(t, "--version")
	require.NoError(t, err)
	assert.Contains(t, out, ir.ToolVersion)
}

func TestRootHelpListsCommands(t *testing.T) {
	out, err := runCommand(t, "--help")
	require.NoError(t, err)
	assert.Contains(t, out, "extract")
	assert.Contains(t, out, "check")
}
