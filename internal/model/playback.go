package model

import "time"

// PlaybackEventType identifies a playback notification.
type PlaybackEventType int

const (
	// PlaybackStarted is sent once the engine accepted the stream.
	PlaybackStarted PlaybackEventType = iota

	// PlaybackFinished is sent when the stream played to its end.
	PlaybackFinished

	// PlaybackStopped is sent when playback was stopped explicitly.
	PlaybackStopped

	// PlaybackFailed is sent when the engine reported an error.
	PlaybackFailed
)

// String returns a lowercase name for the event type.
func (t PlaybackEventType) String() string {
	switch t {
	case PlaybackStarted:
		return "started"
	case PlaybackFinished:
		return "finished"
	case PlaybackStopped:
		return "stopped"
	case PlaybackFailed:
		return "failed"
	}
	return "unknown"
}

// Terminal reports whether the event ends a playback session.
func (t PlaybackEventType) Terminal() bool {
	return t != PlaybackStarted
}

// PlaybackEvent is delivered to playback listeners.
type PlaybackEvent struct {
	Type PlaybackEventType
	Path string
	Err  error
}

// PlayedTrack records one completed playback for the history playlist.
type PlayedTrack struct {
	// Path is the local file that was played.
	Path string

	// Artist and Title come from ID3 tags and may be empty.
	Artist string
	Title  string

	// Duration is the wall-clock playback time.
	Duration time.Duration
}

// DisplayTitle returns "Artist - Title", the title alone, or the path.
func (t *PlayedTrack) DisplayTitle() string {
	switch {
	case t.Artist != "" && t.Title != "":
		return t.Artist + " - " + t.Title
	case t.Title != "":
		return t.Title
	default:
		return t.Path
	}
}
