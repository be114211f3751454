// Package download provides the orchestration logic for fetching manifest
// entries and playing audio entries.
//
// # Orchestrator
//
// The Orchestrator coordinates a run:
//
//  1. Open the manifest
//  2. Read one line
//  3. Classify it (unknown lines are skipped)
//  4. Download it with a Task
//  5. For audio, play the downloaded file
//  6. Repeat from 2 until the manifest ends or an entry fails
//
// # Basic Usage
//
//	player := audio.NewPlayer(audio.NewOtoEngine())
//	orch := download.NewOrchestrator(settings, player, func(event download.ProgressEvent) {
//	    fmt.Println(event.Message)
//	})
//
//	if err := orch.Run(ctx); err != nil {
//	    log.Fatal(err)
//	}
//
// # Sequencing
//
// Each entry's work runs on its own goroutine, but the orchestrator waits for
// it before reading the next line. Downloads and playback therefore never
// overlap, and at most one playback session exists. The fixed output names
// (image.jpg, music.mp3) rely on this: two same-kind entries with the same
// destination write the same file, the later one winning.
//
// # Failure
//
// The first error stops the run and unread lines are abandoned. There is no
// retry. Errors carry the line number via model.EntryError.
//
// # Progress Tracking
//
// Progress is reported via a callback function that receives ProgressEvent:
//
//	type ProgressEvent struct {
//	    Message string
//	    Level   ProgressLevel // Info, Verbose, Warning, Error, Success
//	    Line    int
//	    RunID   string
//	}
package download
