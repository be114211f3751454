package download

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/handiism/manifest-fetcher/internal/audio"
	"github.com/handiism/manifest-fetcher/internal/config"
	"github.com/handiism/manifest-fetcher/internal/http"
	ioutils "github.com/handiism/manifest-fetcher/internal/io"
	"github.com/handiism/manifest-fetcher/internal/manifest"
	"github.com/handiism/manifest-fetcher/internal/model"
	"golang.org/x/sync/errgroup"
)

// Orchestrator drives a manifest run: it reads lines, classifies them,
// downloads each entry and plays audio entries.
type Orchestrator struct {
	settings     *config.Settings
	httpClient   *http.Client
	classifier   *manifest.Classifier
	player       *audio.Player
	playlist     *audio.PlaylistCreator
	imageService *ioutils.ImageService
	fileNames    model.FileNames

	runID string
	state atomic.Int32

	linesRead  int32
	skipped    int32
	downloaded int32
	played     int32
	bytes      int64

	mu          sync.Mutex
	history     []model.PlayedTrack
	currentLine int

	onProgress func(ProgressEvent)
}

// NewOrchestrator creates an Orchestrator. The player is shared; its
// playback listener is replaced so playback events reach onProgress.
func NewOrchestrator(settings *config.Settings, player *audio.Player, onProgress func(ProgressEvent)) *Orchestrator {
	o := &Orchestrator{
		settings:     settings,
		httpClient:   http.NewClient(settings.Timeout(), settings.UserAgent),
		classifier:   manifest.NewClassifier(manifest.ParseClassifyMode(settings.ClassifyBy)),
		player:       player,
		playlist:     audio.NewPlaylistCreator(audio.ParsePlaylistFormat(settings.PlaylistFormat), settings.M3UExtended),
		imageService: ioutils.NewImageService(),
		fileNames:    settings.FileNames(),
		runID:        uuid.NewString(),
		onProgress:   onProgress,
	}
	player.SetPlaybackListener(o.onPlayback)
	return o
}

// RunID returns the identifier attached to this run's events.
func (o *Orchestrator) RunID() string {
	return o.runID
}

// State returns the current state.
func (o *Orchestrator) State() State {
	return State(o.state.Load())
}

// Progress returns a snapshot of the run counters.
func (o *Orchestrator) Progress() Stats {
	return Stats{
		LinesRead:  atomic.LoadInt32(&o.linesRead),
		Skipped:    atomic.LoadInt32(&o.skipped),
		Downloaded: atomic.LoadInt32(&o.downloaded),
		Played:     atomic.LoadInt32(&o.played),
		Bytes:      atomic.LoadInt64(&o.bytes),
	}
}

// History returns the tracks played so far, in order.
func (o *Orchestrator) History() []model.PlayedTrack {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]model.PlayedTrack(nil), o.history...)
}

// Run processes the manifest from the first line to the last.
//
// Entries are handled strictly one at a time: the work for a line is
// launched on its own goroutine and awaited before the next line is read.
// The first error ends the run; remaining lines are never read. The
// returned error wraps one of model.ErrManifestNotFound,
// model.ErrMalformedEntry, model.ErrTransfer or model.ErrPlayback, or
// the context's error when playback was interrupted.
func (o *Orchestrator) Run(ctx context.Context) error {
	o.setState(StateReading)

	reader, err := manifest.Open(o.settings.ManifestPath)
	if err != nil {
		return o.fail(err)
	}
	defer reader.Close()

	if o.settings.CreatePlaylist {
		defer o.writePlaylist(ctx)
	}

	o.progress(ProgressEvent{Message: fmt.Sprintf("Reading manifest %s", o.settings.ManifestPath), Level: LevelInfo})

	for reader.Next() {
		atomic.AddInt32(&o.linesRead, 1)
		if err := o.dispatch(ctx, reader.LineNumber(), reader.Line()); err != nil {
			return o.fail(err)
		}
		o.setState(StateReading)
	}

	if err := reader.Err(); err != nil {
		return o.fail(err)
	}

	o.setState(StateDone)
	stats := o.Progress()
	o.progress(ProgressEvent{
		Message: fmt.Sprintf("Finished: %d downloaded, %d played, %d skipped", stats.Downloaded, stats.Played, stats.Skipped),
		Level:   LevelSuccess,
	})
	return nil
}

// dispatch classifies one line and, unless it is skipped, runs its work as
// a separate unit and waits for it.
func (o *Orchestrator) dispatch(ctx context.Context, lineNum int, line string) error {
	o.setState(StateDispatching)
	o.setCurrentLine(lineNum)
	defer o.setCurrentLine(0)

	entry, err := o.classifier.Classify(lineNum, line)
	if err != nil {
		return &model.EntryError{Line: lineNum, Raw: line, Err: err}
	}

	if entry.Kind == model.KindUnknown {
		atomic.AddInt32(&o.skipped, 1)
		o.progress(ProgressEvent{Message: fmt.Sprintf("Skipping %s: neither image nor audio", entry.SourceURL), Level: LevelVerbose, Line: lineNum})
		return nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return o.process(gctx, entry)
	})

	if err := g.Wait(); err != nil {
		return &model.EntryError{Line: lineNum, Raw: line, Err: err}
	}
	return nil
}

// process downloads an entry and, for audio, plays the downloaded file.
func (o *Orchestrator) process(ctx context.Context, entry *model.ManifestEntry) error {
	o.setState(StateDownloading)
	o.progress(ProgressEvent{Message: fmt.Sprintf("Downloading %s %s", entry.Kind, entry.SourceURL), Level: LevelVerbose, Line: entry.Line})

	task := NewTask(o.httpClient, entry.SourceURL.String(), entry.DestinationDir, entry.Kind.FileName(o.fileNames))
	var reported int64
	result := task.Run(ctx, func(written, total int64) {
		atomic.AddInt64(&o.bytes, written-reported)
		reported = written
	})
	if !result.Succeeded {
		return result.Err
	}

	atomic.AddInt32(&o.downloaded, 1)
	o.progress(ProgressEvent{Message: fmt.Sprintf("Downloaded: %s (%d bytes)", result.LocalPath, result.Bytes), Level: LevelInfo, Line: entry.Line})

	switch entry.Kind {
	case model.KindImage:
		o.inspectImage(ctx, entry, result.LocalPath)
	case model.KindAudio:
		if o.settings.PlayAudio {
			return o.play(ctx, entry, result.LocalPath)
		}
	}
	return nil
}

func (o *Orchestrator) inspectImage(ctx context.Context, entry *model.ManifestEntry, path string) {
	if o.settings.DescribeImages {
		info, err := o.imageService.Describe(path)
		if err != nil {
			o.progress(ProgressEvent{Message: fmt.Sprintf("%s is not a decodable image: %v", path, err), Level: LevelWarning, Line: entry.Line})
		} else {
			o.progress(ProgressEvent{Message: fmt.Sprintf("Image %s: %s", path, info), Level: LevelVerbose, Line: entry.Line})
		}
	}

	if o.settings.ImagePreviewMaxSize > 0 {
		preview := ioutils.SiblingPath(path, "_preview")
		if err := o.imageService.WritePreview(ctx, path, preview, o.settings.ImagePreviewMaxSize); err != nil {
			o.progress(ProgressEvent{Message: fmt.Sprintf("Error creating preview for %s: %v", path, err), Level: LevelWarning, Line: entry.Line})
		} else {
			o.progress(ProgressEvent{Message: fmt.Sprintf("Created preview %s", preview), Level: LevelVerbose, Line: entry.Line})
		}
	}
}

func (o *Orchestrator) play(ctx context.Context, entry *model.ManifestEntry, path string) error {
	track := model.PlayedTrack{Path: path}
	if abs, err := filepath.Abs(path); err == nil {
		track.Path = abs
	}

	if o.settings.ShowTrackInfo {
		info, err := audio.ReadTrackInfo(path)
		if err != nil {
			o.progress(ProgressEvent{Message: fmt.Sprintf("Could not read tags of %s: %v", path, err), Level: LevelVerbose, Line: entry.Line})
		}
		track.Artist = info.Artist
		track.Title = info.Title
	}

	o.progress(ProgressEvent{Message: fmt.Sprintf("Playing %s", track.DisplayTitle()), Level: LevelInfo, Line: entry.Line})

	started := time.Now()
	if err := o.player.Play(ctx, path); err != nil {
		return err
	}
	track.Duration = time.Since(started)

	atomic.AddInt32(&o.played, 1)
	o.mu.Lock()
	o.history = append(o.history, track)
	o.mu.Unlock()
	return nil
}

func (o *Orchestrator) onPlayback(event model.PlaybackEvent) {
	line := o.getCurrentLine()
	switch event.Type {
	case model.PlaybackStarted:
		o.setState(StatePlaying)
	case model.PlaybackFinished:
		o.progress(ProgressEvent{Message: fmt.Sprintf("Finished playing %s", event.Path), Level: LevelVerbose, Line: line})
	case model.PlaybackStopped:
		o.progress(ProgressEvent{Message: fmt.Sprintf("Stopped playing %s", event.Path), Level: LevelWarning, Line: line})
	case model.PlaybackFailed:
		o.progress(ProgressEvent{Message: fmt.Sprintf("Playback of %s failed: %v", event.Path, event.Err), Level: LevelVerbose, Line: line})
	}
}

func (o *Orchestrator) writePlaylist(ctx context.Context) {
	history := o.History()
	if len(history) == 0 {
		return
	}

	path := o.settings.PlaylistPath + o.playlist.Extension()
	content := o.playlist.CreatePlaylist("manifest run "+o.runID, history)

	if err := ioutils.EnsureParentDir(path); err != nil {
		o.progress(ProgressEvent{Message: fmt.Sprintf("Error creating playlist directory: %v", err), Level: LevelWarning})
		return
	}
	if err := ioutils.WriteFile(ctx, path, []byte(content)); err != nil {
		o.progress(ProgressEvent{Message: fmt.Sprintf("Error creating playlist: %v", err), Level: LevelWarning})
		return
	}
	o.progress(ProgressEvent{Message: fmt.Sprintf("Created playlist %s (%d tracks)", path, len(history)), Level: LevelSuccess})
}

// fail marks the run failed and reports err as the run's single error event.
func (o *Orchestrator) fail(err error) error {
	o.setState(StateFailed)

	event := ProgressEvent{Message: err.Error(), Level: LevelError}
	var entryErr *model.EntryError
	if errors.As(err, &entryErr) {
		event.Line = entryErr.Line
		event.Message = entryErr.Err.Error()
	}
	o.progress(event)
	return err
}

func (o *Orchestrator) setState(s State) {
	o.state.Store(int32(s))
}

func (o *Orchestrator) setCurrentLine(line int) {
	o.mu.Lock()
	o.currentLine = line
	o.mu.Unlock()
}

func (o *Orchestrator) getCurrentLine() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.currentLine
}

func (o *Orchestrator) progress(event ProgressEvent) {
	if event.RunID == "" {
		event.RunID = o.runID
	}
	if event.Line == 0 && event.Level != LevelSuccess {
		event.Line = o.getCurrentLine()
	}
	if o.onProgress != nil {
		o.onProgress(event)
	}
}
