package audio

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
	"github.com/hajimehoshi/go-mp3"
)

// Stream is one opened playback session.
type Stream interface {
	// Play starts output and blocks until the stream reaches its stop state,
	// either because the data ran out or because Stop was called.
	// It returns any decode or output error reported by the engine.
	Play() error

	// Stop asks a running Play to return early. Safe to call more than once.
	Stop()

	// Close releases the session's resources.
	Close() error
}

// Engine opens playback sessions over encoded audio.
type Engine interface {
	Open(r io.Reader) (Stream, error)
}

// OtoEngine decodes MP3 with go-mp3 and plays it through an oto context.
//
// oto allows a single context per process, so the context is created on the
// first Open using that file's sample rate. Later files with a different
// sample rate are rejected rather than played at the wrong speed.
type OtoEngine struct {
	pollInterval time.Duration

	once       sync.Once
	ctx        *oto.Context
	sampleRate int
	initErr    error
}

// NewOtoEngine creates an engine that polls playback state every 10ms.
func NewOtoEngine() *OtoEngine {
	return &OtoEngine{pollInterval: 10 * time.Millisecond}
}

// Open decodes the MP3 header and prepares a player for it.
func (e *OtoEngine) Open(r io.Reader) (Stream, error) {
	decoder, err := mp3.NewDecoder(r)
	if err != nil {
		return nil, fmt.Errorf("decode mp3: %w", err)
	}

	ctx, err := e.context(decoder.SampleRate())
	if err != nil {
		return nil, err
	}

	return &otoStream{
		player:       ctx.NewPlayer(decoder),
		pollInterval: e.pollInterval,
		stop:         make(chan struct{}),
	}, nil
}

func (e *OtoEngine) context(sampleRate int) (*oto.Context, error) {
	e.once.Do(func() {
		ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
			SampleRate:   sampleRate,
			ChannelCount: 2,
			Format:       oto.FormatSignedInt16LE,
		})
		if err != nil {
			e.initErr = fmt.Errorf("open audio device: %w", err)
			return
		}
		<-ready
		e.ctx = ctx
		e.sampleRate = sampleRate
	})

	if e.initErr != nil {
		return nil, e.initErr
	}
	if sampleRate != e.sampleRate {
		return nil, fmt.Errorf("sample rate %d Hz differs from output rate %d Hz", sampleRate, e.sampleRate)
	}
	return e.ctx, nil
}

type otoStream struct {
	player       *oto.Player
	pollInterval time.Duration
	stop         chan struct{}
	stopOnce     sync.Once
}

func (s *otoStream) Play() error {
	s.player.Play()

	ticker := time.NewTicker(s.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stop:
			s.player.Pause()
			return s.player.Err()
		case <-ticker.C:
			if !s.player.IsPlaying() {
				return s.player.Err()
			}
		}
	}
}

func (s *otoStream) Stop() {
	s.stopOnce.Do(func() { close(s.stop) })
}

func (s *otoStream) Close() error {
	return s.player.Close()
}
