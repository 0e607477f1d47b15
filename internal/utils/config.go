package utils

import (
	"os"
	"path/filepath"
)

// GetConfigDir returns ~/.gallery, falling back to the working directory
// when the home directory cannot be resolved.
func GetConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "." // fallback
	}
	return filepath.Join(home, ".gallery")
}

// GetConfigPath returns the default config file location.
func GetConfigPath() string {
	return filepath.Join(GetConfigDir(), "config.yaml")
}
