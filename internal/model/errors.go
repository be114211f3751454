package model

import (
	"errors"
	"fmt"
)

// Errors that terminate a manifest run.
var (
	// ErrManifestNotFound means the manifest could not be opened or read.
	ErrManifestNotFound = errors.New("manifest not found")

	// ErrMalformedEntry means a manifest line has a structural problem.
	ErrMalformedEntry = errors.New("malformed entry")

	// ErrTransfer means a download failed on the network or the disk.
	ErrTransfer = errors.New("transfer error")

	// ErrPlayback means the audio engine failed to decode or output a file.
	ErrPlayback = errors.New("playback error")
)

// EntryError ties a terminating error to the manifest line that caused it.
type EntryError struct {
	Line int
	Raw  string
	Err  error
}

func (e *EntryError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *EntryError) Unwrap() error {
	return e.Err
}
