// Package model defines the core data structures used throughout
// manifest-fetcher.
//
// # ManifestEntry
//
// ManifestEntry is one classified manifest line. Its local path is the
// destination directory followed by a fixed file name per kind:
//
//	entry := &model.ManifestEntry{DestinationDir: "./out/", Kind: model.KindImage}
//	fmt.Println(entry.LocalPath(model.DefaultFileNames())) // ./out/image.jpg
//
// # Errors
//
// A run stops at the first error. Every such error wraps one of
// ErrManifestNotFound, ErrMalformedEntry, ErrTransfer or ErrPlayback, and
// errors caused by a line are wrapped in an EntryError carrying its number:
//
//	var entryErr *model.EntryError
//	if errors.As(err, &entryErr) && errors.Is(err, model.ErrTransfer) {
//	    fmt.Printf("download on line %d failed\n", entryErr.Line)
//	}
//
// # Playback
//
// PlaybackEvent is emitted by the audio player. PlayedTrack records a
// finished playback for the run history.
package model
