package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	settings, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if settings.ManifestPath != DefaultManifestPath {
		t.Errorf("ManifestPath = %q, want %q", settings.ManifestPath, DefaultManifestPath)
	}
	if !settings.PlayAudio {
		t.Error("PlayAudio should default to true")
	}
	if settings.Timeout() != 0 {
		t.Errorf("Timeout() = %v, want 0", settings.Timeout())
	}
}

func TestLoad_PartialOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	data := `{"manifest_path": "list.txt", "play_audio": false, "request_timeout": 1.5, "audio_file_stem": "track"}`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	settings, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if settings.ManifestPath != "list.txt" {
		t.Errorf("ManifestPath = %q", settings.ManifestPath)
	}
	if settings.PlayAudio {
		t.Error("PlayAudio should be overridden to false")
	}
	if settings.Timeout() != 1500*time.Millisecond {
		t.Errorf("Timeout() = %v, want 1.5s", settings.Timeout())
	}

	names := settings.FileNames()
	if names.AudioStem != "track" || names.ImageStem != "image" {
		t.Errorf("FileNames() = %+v", names)
	}
}

func TestLoad_InvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte("{"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil {
		t.Error("Load() expected error for invalid JSON")
	}
}

func TestSettings_SaveCreatesDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.json")
	settings := DefaultSettings()
	settings.ClassifyBy = "extension"

	if err := settings.Save(path); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if loaded.ClassifyBy != "extension" {
		t.Errorf("ClassifyBy = %q, want extension", loaded.ClassifyBy)
	}
}

func TestSettings_FileNamesEmptyStems(t *testing.T) {
	settings := &Settings{}
	names := settings.FileNames()
	if names.ImageStem != "image" || names.AudioStem != "music" {
		t.Errorf("FileNames() = %+v, want defaults", names)
	}
}
