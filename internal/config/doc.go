// Package config provides configuration management for the manifest fetcher.
//
// This package handles:
//   - Loading and saving settings from JSON files
//   - Default configuration values
//   - Conversion to model.FileNames and durations for other packages
//
// # Default Settings
//
// Use DefaultSettings() to get sensible defaults:
//
//	settings := config.DefaultSettings()
//	// Reads file/inFile.txt
//	// Saves image.jpg / music.mp3 into each entry's directory
//	// Plays audio entries, no request timeout
//
// # Loading from File
//
//	settings, err := config.Load("/path/to/config.json")
//	if err != nil {
//	    // Uses defaults if file doesn't exist
//	}
//
// # Configuration Options
//
// Settings includes options for:
//   - Manifest location and classification mode
//   - Output file stems
//   - Request timeout and User-Agent
//   - Image inspection and previews
//   - Playback and track info display
//   - History playlist generation
package config
