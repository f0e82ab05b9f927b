package config

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

// AppName names the XDG subdirectories.
const AppName = "coda"

// ConfigDir returns the XDG-compliant config directory for coda
// Typically ~/.config/coda/ on Linux
func ConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// ConfigPath returns the full path to the config file.
// CODA_CONFIG overrides the XDG location.
func ConfigPath() string {
	if p := os.Getenv("CODA_CONFIG"); p != "" {
		return p
	}
	return filepath.Join(ConfigDir(), "config.json5")
}

// DataDir returns the XDG-compliant data directory for coda
// Typically ~/.local/share/coda/ on Linux
func DataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// DefaultStorePath is where the credential file lives when nothing overrides it.
func DefaultStorePath() string {
	return filepath.Join(DataDir(), "users_database.txt")
}
