// Package speaker plays sound effects on the local sound card.
package speaker

import (
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"github.com/tomz197/evade/internal/audio"
)

const sampleRate = beep.SampleRate(44100)

// Speaker plays effects on the local sound card through a shared mixer.
type Speaker struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
}

// New creates an uninitialized speaker; call Init before playing.
func New() *Speaker {
	return &Speaker{mixer: &beep.Mixer{}}
}

// Init opens the audio device and starts the mixer.
func (s *Speaker) Init() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}
	speaker.Play(s.mixer)
	s.initialized = true
	return nil
}

// Close silences everything still playing.
func (s *Speaker) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return
	}
	speaker.Lock()
	s.mixer.Clear()
	speaker.Unlock()
	s.initialized = false
}

// Play implements audio.Player. It is a no-op before Init.
func (s *Speaker) Play(effect audio.Effect) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return
	}
	streamer := Synthesize(effect)
	if streamer == nil {
		return
	}
	speaker.Lock()
	s.mixer.Add(streamer)
	speaker.Unlock()
}

// Synthesize builds the streamer for an effect, or nil for unknown effects.
func Synthesize(effect audio.Effect) beep.Streamer {
	switch effect {
	case audio.EffectGameOver:
		return GameOverSound(sampleRate)
	case audio.EffectPowerUp:
		return PowerUpSound(sampleRate)
	case audio.EffectDecoy:
		return DecoySound(sampleRate)
	default:
		return nil
	}
}
