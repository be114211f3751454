package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/handiism/manifest-fetcher/internal/model"
)

// DefaultManifestPath is read when no manifest is given.
const DefaultManifestPath = "file/inFile.txt"

// Settings holds all configuration options.
type Settings struct {
	// Manifest settings
	ManifestPath string `json:"manifest_path"`
	ClassifyBy   string `json:"classify_by"` // line, extension

	// File naming
	ImageFileStem string `json:"image_file_stem"`
	AudioFileStem string `json:"audio_file_stem"`

	// Download settings
	RequestTimeout float64 `json:"request_timeout"` // seconds, 0 disables
	UserAgent      string  `json:"user_agent"`

	// Image settings
	DescribeImages      bool `json:"describe_images"`
	ImagePreviewMaxSize int  `json:"image_preview_max_size"` // 0 disables

	// Playback settings
	PlayAudio     bool `json:"play_audio"`
	ShowTrackInfo bool `json:"show_track_info"`

	// Playlist settings
	CreatePlaylist bool   `json:"create_playlist"`
	PlaylistPath   string `json:"playlist_path"`   // extension added from format
	PlaylistFormat string `json:"playlist_format"` // m3u, pls, wpl
	M3UExtended    bool   `json:"m3u_extended"`
}

// DefaultSettings returns settings with default values.
func DefaultSettings() *Settings {
	names := model.DefaultFileNames()
	return &Settings{
		ManifestPath: DefaultManifestPath,
		ClassifyBy:   "line",

		ImageFileStem: names.ImageStem,
		AudioFileStem: names.AudioStem,

		RequestTimeout: 0,
		UserAgent:      "",

		DescribeImages:      true,
		ImagePreviewMaxSize: 0,

		PlayAudio:     true,
		ShowTrackInfo: true,

		CreatePlaylist: false,
		PlaylistPath:   "played",
		PlaylistFormat: "m3u",
		M3UExtended:    true,
	}
}

// Load reads settings from a JSON file.
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultSettings(), nil
		}
		return nil, err
	}

	settings := DefaultSettings()
	if err := json.Unmarshal(data, settings); err != nil {
		return nil, err
	}

	return settings, nil
}

// Save writes settings to a JSON file.
func (s *Settings) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// FileNames converts settings to model.FileNames. Empty stems fall back
// to the defaults.
func (s *Settings) FileNames() model.FileNames {
	names := model.DefaultFileNames()
	if s.ImageFileStem != "" {
		names.ImageStem = s.ImageFileStem
	}
	if s.AudioFileStem != "" {
		names.AudioStem = s.AudioFileStem
	}
	return names
}

// Timeout returns RequestTimeout as a duration.
func (s *Settings) Timeout() time.Duration {
	if s.RequestTimeout <= 0 {
		return 0
	}
	return time.Duration(s.RequestTimeout * float64(time.Second))
}
