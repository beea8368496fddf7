// Package config handles configuration for the AuthVault CLI, including
// defaults, an optional JSON overlay, and command-line flags.
package config

// Config holds runtime settings for the application.
//
// Fields:
//   - DatabasePath: path of the local SQLite database holding every record.
//   - DeviceKeyPath: path of the per-device secret that seals the keyring slot.
type Config struct {
	DatabasePath  string
	DeviceKeyPath string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.DatabasePath = "authvault.db"
	c.DeviceKeyPath = "device.key"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
