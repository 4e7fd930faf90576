package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestGetRebinCmd_Exists verifies getRebinCmd returns
// a valid command.
func TestGetRebinCmd_Exists(t *testing.T) {
	cmd := getRebinCmd()
	require.NotNil(t, cmd, "Rebin command should exist")
	assert.Equal(t, "rebin", cmd.Name(),
		"Command name should be rebin")
}

// TestGetRebinCmd_BinSizeFlag verifies --bin-size flag.
func TestGetRebinCmd_BinSizeFlag(t *testing.T) {
	cmd := getRebinCmd()

	flag := cmd.Flags().Lookup("bin-size")
	require.NotNil(t, flag, "--bin-size flag should exist")
	assert.Equal(t, "b", flag.Shorthand,
		"Short form should be -b")
	assert.Contains(t, flag.Usage, "configuration",
		"Usage should say the default comes from configuration")
}

// TestGetRebinCmd_AllFlag verifies --all flag.
func TestGetRebinCmd_AllFlag(t *testing.T) {
	cmd := getRebinCmd()

	flag := cmd.Flags().Lookup("all")
	require.NotNil(t, flag, "--all flag should exist")
	assert.Equal(t, "false", flag.DefValue,
		"Default should rebin preferred origins only")
}

// TestGetRebinCmd_HasRunE verifies run function is set.
func TestGetRebinCmd_HasRunE(t *testing.T) {
	cmd := getRebinCmd()

	assert.NotNil(t, cmd.RunE,
		"RunE should be set")
}
