package config

import (
	"errors"
	"os"
	"strings"

	toml "github.com/pelletier/go-toml/v2"

	"arrive/internal/store"
)

type Settings struct {
	Storage  StorageConfig  `toml:"storage"`
	Logging  LoggingConfig  `toml:"logging"`
	Research ResearchConfig `toml:"research"`
	UI       UIConfig       `toml:"ui"`
}

type StorageConfig struct {
	// DataDir overrides the default ~/.arrive location.
	DataDir string `toml:"data_dir"`
	Backend string `toml:"backend"`
}

type LoggingConfig struct {
	Level string `toml:"level"`
}

type ResearchConfig struct {
	// Facilitator pre-fills the researcher name for facilitated runs.
	Facilitator string `toml:"facilitator"`
}

type UIConfig struct {
	NoteMinHeight int `toml:"note_min_height"`
	NoteMaxHeight int `toml:"note_max_height"`
}

func DefaultSettings() Settings {
	return Settings{
		Storage: StorageConfig{
			Backend: store.RepositoryBackendBbolt,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
		UI: UIConfig{
			NoteMinHeight: 3,
			NoteMaxHeight: 8,
		},
	}
}

func LoadSettings() (Settings, error) {
	path, err := SettingsPath()
	if err != nil {
		return Settings{}, err
	}
	return loadSettingsFromPath(path)
}

func (c Settings) Backend() string {
	backend := strings.ToLower(strings.TrimSpace(c.Storage.Backend))
	if backend == "" {
		return store.RepositoryBackendBbolt
	}
	return backend
}

func (c Settings) LogLevel() string {
	level := strings.TrimSpace(c.Logging.Level)
	if level == "" {
		return "info"
	}
	return level
}

func (c Settings) DefaultFacilitator() string {
	return strings.TrimSpace(c.Research.Facilitator)
}

// NoteHeights bounds the multiline note input.
func (c Settings) NoteHeights() (minHeight, maxHeight int) {
	minHeight = c.UI.NoteMinHeight
	maxHeight = c.UI.NoteMaxHeight
	if minHeight <= 0 {
		minHeight = 3
	}
	if maxHeight <= 0 {
		maxHeight = 8
	}
	if maxHeight < minHeight {
		maxHeight = minHeight
	}
	return minHeight, maxHeight
}

// RepositoryPaths resolves every storage location under the data dir.
func (c Settings) RepositoryPaths() (store.RepositoryPaths, error) {
	checkpoints, err := c.CheckpointsPath()
	if err != nil {
		return store.RepositoryPaths{}, err
	}
	journeys, err := c.JourneysPath()
	if err != nil {
		return store.RepositoryPaths{}, err
	}
	surveys, err := c.SurveysPath()
	if err != nil {
		return store.RepositoryPaths{}, err
	}
	notes, err := c.NotesPath()
	if err != nil {
		return store.RepositoryPaths{}, err
	}
	db, err := c.DBPath()
	if err != nil {
		return store.RepositoryPaths{}, err
	}
	return store.RepositoryPaths{
		CheckpointsPath: checkpoints,
		JourneysPath:    journeys,
		SurveysPath:     surveys,
		NotesPath:       notes,
		DBPath:          db,
	}, nil
}

func loadSettingsFromPath(path string) (Settings, error) {
	cfg := DefaultSettings()
	if err := readTOML(path, &cfg); err != nil {
		return Settings{}, err
	}
	return cfg, nil
}

func readTOML(path string, out any) error {
	path = strings.TrimSpace(path)
	if path == "" {
		return errors.New("path is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil
	}
	return toml.Unmarshal(data, out)
}
