package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestVersionCmd verifies the version subcommand output.
func TestVersionCmd(t *testing.T) {
	buf := &bytes.Buffer{}

	cmd := newRootCmd()
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"version"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, buf.String(), "ordersync dev (none)")
}

// TestRootCmd_MissingConfig verifies the sync fails fast without the required
// billing secret key.
func TestRootCmd_MissingConfig(t *testing.T) {
	t.Setenv("STRIPE_SECRET_KEY", "")

	buf := &bytes.Buffer{}

	cmd := newRootCmd()
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing required configuration")
}
