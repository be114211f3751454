package audio

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/handiism/manifest-fetcher/internal/model"
)

// Player plays local audio files through an Engine, one at a time.
//
// Play blocks until the file has played to the end. Whatever ends the
// session (natural finish, explicit stop or an engine error), the stream is
// closed exactly once and the listener receives the terminal event after
// the release.
//
// Example:
//
//	player := NewPlayer(NewOtoEngine())
//	player.SetPlaybackListener(func(ev model.PlaybackEvent) {
//	    fmt.Println(ev.Type, ev.Path)
//	})
//
//	if err := player.Play(ctx, "./out/music.mp3"); err != nil {
//	    // errors.Is(err, model.ErrPlayback)
//	}
type Player struct {
	engine Engine

	// session serialises playback so at most one stream is active.
	session sync.Mutex

	mu       sync.RWMutex
	listener func(model.PlaybackEvent)
}

// NewPlayer creates a Player backed by engine.
func NewPlayer(engine Engine) *Player {
	return &Player{engine: engine}
}

// SetPlaybackListener registers fn to receive playback events.
// Pass nil to remove the listener.
func (p *Player) SetPlaybackListener(fn func(model.PlaybackEvent)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.listener = fn
}

// Play opens path and plays it to completion.
//
// Cancelling ctx stops playback and returns ctx.Err(). Decode and output
// failures return an error wrapping model.ErrPlayback.
func (p *Player) Play(ctx context.Context, path string) (err error) {
	p.session.Lock()
	defer p.session.Unlock()

	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("%w: %v", model.ErrPlayback, err)
	}
	defer file.Close()

	stream, err := p.engine.Open(file)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", model.ErrPlayback, path, err)
	}

	event := model.PlaybackEvent{Type: model.PlaybackFailed, Path: path}
	defer func() {
		if cerr := stream.Close(); cerr != nil && event.Err == nil {
			event.Type = model.PlaybackFailed
			event.Err = fmt.Errorf("%w: closing %s: %v", model.ErrPlayback, path, cerr)
			err = event.Err
		}
		p.notify(event)
	}()

	p.notify(model.PlaybackEvent{Type: model.PlaybackStarted, Path: path})

	done := make(chan error, 1)
	go func() { done <- stream.Play() }()

	var playErr error
	select {
	case playErr = <-done:
	case <-ctx.Done():
		stream.Stop()
		playErr = <-done
		if playErr == nil {
			event.Type = model.PlaybackStopped
			event.Err = ctx.Err()
			return event.Err
		}
	}

	if playErr != nil {
		event.Err = fmt.Errorf("%w: %s: %v", model.ErrPlayback, path, playErr)
		return event.Err
	}

	event.Type = model.PlaybackFinished
	return nil
}

func (p *Player) notify(event model.PlaybackEvent) {
	p.mu.RLock()
	fn := p.listener
	p.mu.RUnlock()

	if fn != nil {
		fn(event)
	}
}
