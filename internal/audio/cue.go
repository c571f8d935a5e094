// Package audio plays the hero roar. Sound is best effort: every entry point
// is safe without a working output device.
package audio

import (
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/mp3"
	"github.com/gopxl/beep/speaker"
	"go.uber.org/zap"
)

const sampleRate = beep.SampleRate(48000)

// RoarLength is how long the synthesized fallback lasts.
const RoarLength = 700 * time.Millisecond

var ErrNotInitialized = errors.New("audio output not initialized")

// Player mixes the roar cue into the speaker. It satisfies hero.Cue.
type Player struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	clip        *beep.Buffer
	initialized bool
	log         *zap.Logger

	// the speaker goroutine reads the mixer; changes go through its lock
	lockSpeaker   func()
	unlockSpeaker func()
}

func NewPlayer(logger *zap.Logger) *Player {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Player{
		mixer:         &beep.Mixer{},
		log:           logger,
		lockSpeaker:   speaker.Lock,
		unlockSpeaker: speaker.Unlock,
	}
}

// Initialize opens the speaker. Calling it again is a no-op.
func (p *Player) Initialize() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}
	speaker.Play(p.mixer)
	p.initialized = true
	return nil
}

// LoadMP3 decodes the cue file into memory so it can be replayed from the
// start on every roar.
func (p *Player) LoadMP3(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open cue: %w", err)
	}
	stream, format, err := mp3.Decode(f)
	if err != nil {
		_ = f.Close()
		return fmt.Errorf("decode cue: %w", err)
	}
	defer stream.Close()

	buf := beep.NewBuffer(format)
	buf.Append(stream)

	p.mu.Lock()
	p.clip = buf
	p.mu.Unlock()

	p.log.Debug("roar cue loaded",
		zap.String("path", path),
		zap.Int("samples", buf.Len()),
		zap.Int("sample_rate", int(format.SampleRate)),
	)
	return nil
}

// Loaded reports whether a decoded clip is available.
func (p *Player) Loaded() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.clip != nil
}

// Play restarts the roar. Without a loaded clip a synthesized growl is used.
func (p *Player) Play() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return ErrNotInitialized
	}
	s := p.streamLocked()
	p.lockSpeaker()
	p.mixer.Add(s)
	p.unlockSpeaker()
	return nil
}

func (p *Player) streamLocked() beep.Streamer {
	if p.clip == nil {
		return beep.Take(sampleRate.N(RoarLength), NewRoarGenerator(sampleRate))
	}
	s := beep.Streamer(p.clip.Streamer(0, p.clip.Len()))
	if from := p.clip.Format().SampleRate; from != sampleRate {
		s = beep.Resample(4, from, sampleRate, s)
	}
	return s
}

// Close silences anything still playing.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	p.lockSpeaker()
	p.mixer.Clear()
	p.unlockSpeaker()
	p.initialized = false
}
