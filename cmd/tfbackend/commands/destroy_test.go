package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDestroy(t *testing.T) {
	cmd := Destroy()

	require.NotNil(t, cmd)
	assert.Equal(t, "destroy", cmd.Use)
	assert.Contains(t, cmd.Long, "irreversible")
}

func TestDestroy_Flags(t *testing.T) {
	cmd := Destroy()

	configFlag := cmd.Flags().Lookup("config")
	require.NotNil(t, configFlag, "config flag should exist")
	assert.Equal(t, "c", configFlag.Shorthand)

	forceFlag := cmd.Flags().Lookup("force")
	require.NotNil(t, forceFlag, "force flag should exist")
	assert.Equal(t, "false", forceFlag.DefValue)
}
