package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestGetConvertCmd_Exists verifies getConvertCmd returns
// a valid command.
func TestGetConvertCmd_Exists(t *testing.T) {
	cmd := getConvertCmd()
	require.NotNil(t, cmd, "Convert command should exist")
	assert.Equal(t, "convert", cmd.Name(),
		"Command name should be convert")
}

// TestGetConvertCmd_ShortDescription verifies short
// description.
func TestGetConvertCmd_ShortDescription(t *testing.T) {
	cmd := getConvertCmd()

	assert.NotEmpty(t, cmd.Short,
		"Short description should not be empty")
	assert.Contains(t, cmd.Short, "format",
		"Short description should mention formats")
}

// TestGetConvertCmd_LongDescription verifies long
// description.
func TestGetConvertCmd_LongDescription(t *testing.T) {
	cmd := getConvertCmd()

	assert.NotEmpty(t, cmd.Long,
		"Long description should not be empty")
	assert.Contains(t, cmd.Long, "zmap",
		"Long description should list input formats")
	assert.Contains(t, cmd.Long, "standard input",
		"Long description should mention stdin fallback")
}

// TestGetConvertCmd_HasRunE verifies run function is set.
func TestGetConvertCmd_HasRunE(t *testing.T) {
	cmd := getConvertCmd()

	assert.NotNil(t, cmd.RunE,
		"RunE should be set")
}

// TestGetConvertCmd_FormatFlags verifies --from and --to flags.
func TestGetConvertCmd_FormatFlags(t *testing.T) {
	cmd := getConvertCmd()

	fromFlag := cmd.Flags().Lookup("from")
	require.NotNil(t, fromFlag, "--from flag should exist")
	assert.Equal(t, "f", fromFlag.Shorthand,
		"Short form should be -f")
	assert.Equal(t, "xml", fromFlag.DefValue,
		"Default input format should be xml")

	toFlag := cmd.Flags().Lookup("to")
	require.NotNil(t, toFlag, "--to flag should exist")
	assert.Equal(t, "t", toFlag.Shorthand,
		"Short form should be -t")
	assert.Equal(t, "xml", toFlag.DefValue,
		"Default output format should be xml")
}

// TestGetConvertCmd_ImporterFlags verifies importer tuning flags.
func TestGetConvertCmd_ImporterFlags(t *testing.T) {
	cmd := getConvertCmd()

	for _, name := range []string{
		"output", "compression", "authority", "network",
		"no-picks", "jma-only", "uncertainties", "check-header",
	} {
		flag := cmd.Flags().Lookup(name)
		assert.NotNil(t, flag, "--%s flag should exist", name)
	}

	comp := cmd.Flags().Lookup("compression")
	require.NotNil(t, comp)
	assert.Equal(t, "auto", comp.DefValue,
		"Compression should default to auto detection")
}

// TestGetConvertCmd_HelpText verifies help text content.
func TestGetConvertCmd_HelpText(t *testing.T) {
	cmd := getConvertCmd()

	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"--help"})

	err := cmd.Execute()
	require.NoError(t, err)

	helpText := buf.String()
	assert.Contains(t, helpText, "convert",
		"Help should mention convert")
	assert.Contains(t, helpText, "--from",
		"Help should document --from")
	assert.Contains(t, helpText, "--to",
		"Help should document --to")
}
