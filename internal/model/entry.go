package model

import (
	"net/url"
)

// ResourceKind classifies a manifest entry by the kind of media it names.
type ResourceKind int

const (
	// KindUnknown marks an entry that is neither an image nor audio.
	// Such entries are skipped without error.
	KindUnknown ResourceKind = iota

	// KindImage marks an entry saved as "<dir>image.jpg".
	KindImage

	// KindAudio marks an entry saved as "<dir>music.mp3" and played afterwards.
	KindAudio
)

// String returns a lowercase name for the kind.
func (k ResourceKind) String() string {
	switch k {
	case KindImage:
		return "image"
	case KindAudio:
		return "audio"
	default:
		return "unknown"
	}
}

// Extension returns the fixed file extension for the kind, including the dot.
//
// Returns an empty string for KindUnknown.
func (k ResourceKind) Extension() string {
	switch k {
	case KindImage:
		return ".jpg"
	case KindAudio:
		return ".mp3"
	default:
		return ""
	}
}

// FileNames holds the file name stems used for each resource kind.
//
// Extensions are fixed per kind; only the stem can be changed.
//
// Example:
//
//	names := DefaultFileNames()
//	KindImage.FileName(names) // "image.jpg"
//	KindAudio.FileName(names) // "music.mp3"
type FileNames struct {
	// ImageStem is the stem for image entries. Default "image".
	ImageStem string

	// AudioStem is the stem for audio entries. Default "music".
	AudioStem string
}

// DefaultFileNames returns the stems "image" and "music".
func DefaultFileNames() FileNames {
	return FileNames{
		ImageStem: "image",
		AudioStem: "music",
	}
}

// FileName returns the target file name for the kind using the given stems.
func (k ResourceKind) FileName(names FileNames) string {
	switch k {
	case KindImage:
		return names.ImageStem + k.Extension()
	case KindAudio:
		return names.AudioStem + k.Extension()
	default:
		return ""
	}
}

// ManifestEntry is one classified manifest line.
//
// Entries are transient: the orchestrator builds one per line and drops it
// as soon as the entry's work has finished.
type ManifestEntry struct {
	// SourceURL is the absolute URL to fetch.
	SourceURL *url.URL

	// DestinationDir is used verbatim as a prefix of the output path.
	// No separator is inserted, so "./out/" and "./out" give different paths.
	DestinationDir string

	// Kind is the classification of the raw line.
	Kind ResourceKind

	// Line is the 1-based line number in the manifest.
	Line int

	// Raw is the original line text.
	Raw string
}

// LocalPath returns DestinationDir concatenated with the kind's file name.
//
// Successive entries of the same kind with the same DestinationDir resolve
// to the same path; the later download overwrites the earlier one.
func (e *ManifestEntry) LocalPath(names FileNames) string {
	return e.DestinationDir + e.Kind.FileName(names)
}

// DownloadResult describes the outcome of a single download.
type DownloadResult struct {
	// LocalPath is where the bytes were written.
	LocalPath string

	// Succeeded reports whether every byte was transferred.
	Succeeded bool

	// Err holds the transfer failure, if any.
	Err error

	// Bytes is the number of bytes written to LocalPath.
	Bytes int64
}
