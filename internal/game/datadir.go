package game

import (
	"os"
	"path/filepath"
)

// DataDir returns the directory where saves and logs are stored.
// Follows XDG Base Directory spec: $XDG_DATA_HOME/bonebound,
// defaulting to ~/.local/share/bonebound.
func DataDir() (string, error) {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "bonebound"), nil
}
