// Package config loads gepulse configuration from viper and the environment.
package config

import (
	"os"
	"path/filepath"
	"strings"
)

// DefaultDatabasePath returns the flip database location used when
// database.path is not configured, following the XDG data convention.
func DefaultDatabasePath() string {
	return ExpandPath("$HOME/.local/share/gepulse/gepulse.db")
}

// ExpandPath expands a leading ~ and $VAR style environment variables
// in a file path.
func ExpandPath(path string) string {
	switch {
	case path == "":
		return path
	case path == "~":
		if home, err := os.UserHomeDir(); err == nil {
			path = home
		}
	case strings.HasPrefix(path, "~/"):
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, strings.TrimPrefix(path, "~/"))
		}
	}

	return os.ExpandEnv(path)
}
