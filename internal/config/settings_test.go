package config

import (
	"os"
	"path/filepath"
	"testing"

	"arrive/internal/store"
)

func TestDefaultSettings(t *testing.T) {
	cfg := DefaultSettings()
	if cfg.Backend() != store.RepositoryBackendBbolt {
		t.Fatalf("default backend = %q", cfg.Backend())
	}
	if cfg.LogLevel() != "info" {
		t.Fatalf("default log level = %q", cfg.LogLevel())
	}
	minHeight, maxHeight := cfg.NoteHeights()
	if minHeight != 3 || maxHeight != 8 {
		t.Fatalf("default note heights = %d/%d", minHeight, maxHeight)
	}
}

func TestLoadSettingsFromPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.toml")
	content := `
[storage]
backend = "file"
data_dir = "/tmp/arrive-test"

[logging]
level = "debug"

[research]
facilitator = "Jero"

[ui]
note_min_height = 2
note_max_height = 1
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write settings: %v", err)
	}
	cfg, err := loadSettingsFromPath(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Backend() != store.RepositoryBackendFile {
		t.Fatalf("backend = %q", cfg.Backend())
	}
	if cfg.LogLevel() != "debug" || cfg.DefaultFacilitator() != "Jero" {
		t.Fatalf("unexpected settings: %+v", cfg)
	}
	dataDir, err := cfg.DataDir()
	if err != nil || dataDir != "/tmp/arrive-test" {
		t.Fatalf("data dir = %q err=%v", dataDir, err)
	}
	minHeight, maxHeight := cfg.NoteHeights()
	if minHeight != 2 || maxHeight != 2 {
		t.Fatalf("max below min should clamp to min, got %d/%d", minHeight, maxHeight)
	}
}

func TestLoadSettingsMissingFileUsesDefaults(t *testing.T) {
	cfg, err := loadSettingsFromPath(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("missing file must not error: %v", err)
	}
	if cfg.Backend() != store.RepositoryBackendBbolt {
		t.Fatalf("missing file should fall back to defaults")
	}
}

func TestRepositoryPathsUnderDataDir(t *testing.T) {
	cfg := DefaultSettings()
	cfg.Storage.DataDir = t.TempDir()
	paths, err := cfg.RepositoryPaths()
	if err != nil {
		t.Fatalf("paths: %v", err)
	}
	for name, path := range map[string]string{
		"checkpoints": paths.CheckpointsPath,
		"journeys":    paths.JourneysPath,
		"surveys":     paths.SurveysPath,
		"notes":       paths.NotesPath,
		"db":          paths.DBPath,
	} {
		if filepath.Dir(path) != cfg.Storage.DataDir {
			t.Fatalf("%s path %q not under data dir", name, path)
		}
	}
}
