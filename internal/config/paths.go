package config

import (
	"os"
	"path/filepath"
)

const appDirName = ".arrive"

// DataDir returns the base data directory, honoring the configured
// override when one is set.
func (c Settings) DataDir() (string, error) {
	if dir := c.Storage.DataDir; dir != "" {
		return resolvePath(dir)
	}
	return defaultDataDir()
}

func defaultDataDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, appDirName), nil
}

// SettingsPath is where settings.toml lives. Always under the default
// dir: the override it may contain cannot relocate itself.
func SettingsPath() (string, error) {
	dataDir, err := defaultDataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dataDir, "settings.toml"), nil
}

func (c Settings) DBPath() (string, error) {
	dataDir, err := c.DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dataDir, "arrive.db"), nil
}

func (c Settings) CheckpointsPath() (string, error) {
	dataDir, err := c.DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dataDir, "checkpoints.json"), nil
}

func (c Settings) JourneysPath() (string, error) {
	dataDir, err := c.DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dataDir, "journeys.json"), nil
}

func (c Settings) SurveysPath() (string, error) {
	dataDir, err := c.DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dataDir, "sessions.json"), nil
}

func (c Settings) NotesPath() (string, error) {
	dataDir, err := c.DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dataDir, "notes.json"), nil
}

func (c Settings) LogPath() (string, error) {
	dataDir, err := c.DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dataDir, "arrive.log"), nil
}

func resolvePath(path string) (string, error) {
	if len(path) >= 2 && path[:2] == "~/" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, path[2:]), nil
	}
	if filepath.IsAbs(path) {
		return path, nil
	}
	dataDir, err := defaultDataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dataDir, path), nil
}
