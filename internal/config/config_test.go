package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, "authvault.db", c.DatabasePath)
	assert.Equal(t, "device.key", c.DeviceKeyPath)
}

func TestLoadConfig_UsesDefaultsBeforeParsing(t *testing.T) {
	cfg := LoadConfig()

	require.NotNil(t, cfg, "LoadConfig must not return nil")
	assert.Equal(t, "authvault.db", cfg.DatabasePath)
	assert.Equal(t, "device.key", cfg.DeviceKeyPath)
}
