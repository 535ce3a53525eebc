package config

import (
	"os"
	"path/filepath"
	"runtime"
)

// DefaultPath returns the default configuration file location.
// Uses XDG_CONFIG_HOME if set, otherwise ~/.config/packsync/packsync.yaml.
func DefaultPath() string {
	return filepath.Join(baseDir("XDG_CONFIG_HOME", ".config"), "packsync.yaml")
}

// DefaultPackDir returns the default package installation root.
// Uses XDG_DATA_HOME if set, otherwise ~/.local/share/packsync.
func DefaultPackDir() string {
	return baseDir("XDG_DATA_HOME", ".local", "share")
}

// DefaultLogFile returns the default append log location.
// Uses XDG_STATE_HOME if set, otherwise ~/.local/state/packsync/packsync.log.
func DefaultLogFile() string {
	return filepath.Join(baseDir("XDG_STATE_HOME", ".local", "state"), "packsync.log")
}

// baseDir resolves <base>/packsync, where base comes from the given XDG
// variable or its home-relative fallback.
func baseDir(env string, fallback ...string) string {
	if xdg := os.Getenv(env); xdg != "" {
		return filepath.Join(xdg, "packsync")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		if runtime.GOOS == "windows" {
			return filepath.Join(os.TempDir(), "packsync")
		}
		return filepath.Join("/tmp", "packsync")
	}
	parts := append([]string{home}, fallback...)
	parts = append(parts, "packsync")
	return filepath.Join(parts...)
}

// EffectivePackDir returns the configured pack directory or the default.
func (c *Config) EffectivePackDir() string {
	if c.PackDir != "" {
		return c.PackDir
	}
	return DefaultPackDir()
}

// EffectiveLogFile returns the configured log file or the default.
func (c *Config) EffectiveLogFile() string {
	if c.LogFile != "" {
		return c.LogFile
	}
	return DefaultLogFile()
}
