package config

import "time"

// Config is the top-level zmxlink configuration.
type Config struct {
	Host    HostConfig            `toml:"host"`
	Reports ReportsConfig         `toml:"reports"`
	Lenses  map[string]LensConfig `toml:"lenses"`
	Debug   bool                  `toml:"debug"`
}

// HostConfig describes how to reach the design host's extension socket.
type HostConfig struct {
	Network string `toml:"network"` // "tcp" or "unix"
	Address string `toml:"address"`
	Timeout string `toml:"timeout"` // Go duration string, e.g. "2m"
}

// ReportsConfig controls text report retrieval.
type ReportsConfig struct {
	SettingsDir string `toml:"settings_dir"` // saved analysis settings files
	Timeout     string `toml:"timeout"`
}

// LensConfig is a named lens file shortcut for the load command.
type LensConfig struct {
	Path string `toml:"path"`
}

// Defaults for unset host fields.
const (
	DefaultNetwork = "tcp"
	DefaultAddress = "127.0.0.1:4970"
	DefaultTimeout = 2 * time.Minute
)

// NetworkOrDefault returns the configured network, defaulted.
func (h HostConfig) NetworkOrDefault() string {
	if h.Network == "" {
		return DefaultNetwork
	}
	return h.Network
}

// AddressOrDefault returns the configured address, defaulted.
func (h HostConfig) AddressOrDefault() string {
	if h.Address == "" {
		return DefaultAddress
	}
	return h.Address
}

// TimeoutOrDefault returns the configured timeout, defaulted. Invalid
// durations are caught by Validate; here they fall back to the default.
func (h HostConfig) TimeoutOrDefault() time.Duration {
	d, err := time.ParseDuration(h.Timeout)
	if err != nil || d <= 0 {
		return DefaultTimeout
	}
	return d
}
