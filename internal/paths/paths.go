package paths

import (
	"fmt"
	"os"
	"path/filepath"
)

// StateDirEnvVar overrides the default state directory when set.
const StateDirEnvVar = "NOTEIT_STATE_DIR"

// HomeDir returns the current user's home directory.
func HomeDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home directory: %w", err)
	}
	return home, nil
}

// DefaultStateDir returns the noteit state directory, honoring
// NOTEIT_STATE_DIR before falling back to ~/.local/state/noteit.
func DefaultStateDir() (string, error) {
	if dir := os.Getenv(StateDirEnvVar); dir != "" {
		return dir, nil
	}

	home, err := HomeDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(home, ".local", "state", "noteit"), nil
}

// DefaultConfigPath returns the global config file path.
func DefaultConfigPath() (string, error) {
	home, err := HomeDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(home, ".config", "noteit", "config.toml"), nil
}

// ResolveWithDefault returns override when set, otherwise the result of fallback.
func ResolveWithDefault(override string, fallback func() (string, error)) (string, error) {
	if override != "" {
		return override, nil
	}
	return fallback()
}
