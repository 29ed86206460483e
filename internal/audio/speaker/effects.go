package speaker

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/tomz197/evade/internal/audio"
)

// Wave is an oscillator shape.
type Wave int

const (
	WaveSine Wave = iota
	WaveSaw
	WaveNoise
)

// tone is a fixed-length oscillator with optional vibrato.
type tone struct {
	rate     beep.SampleRate
	wave     Wave
	freq     float64
	vibHz    float64 // Vibrato rate
	vibDepth float64 // Vibrato depth as a fraction of freq
	phase    float64
	position int
	total    int
}

// NewTone creates a streamer that plays freq for the given duration.
func NewTone(freq float64, duration time.Duration, wave Wave, rate beep.SampleRate) beep.Streamer {
	return &tone{rate: rate, wave: wave, freq: freq, total: rate.N(duration)}
}

// newVibratoTone is NewTone with a periodic pitch wobble.
func newVibratoTone(freq float64, duration time.Duration, wave Wave, rate beep.SampleRate, vibHz, vibDepth float64) beep.Streamer {
	return &tone{rate: rate, wave: wave, freq: freq, total: rate.N(duration), vibHz: vibHz, vibDepth: vibDepth}
}

func (t *tone) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if t.position >= t.total {
			return i, i > 0
		}

		var v float64
		switch t.wave {
		case WaveSine:
			v = math.Sin(2 * math.Pi * t.phase)
		case WaveSaw:
			v = 2 * (t.phase - 0.5)
		case WaveNoise:
			v = rand.Float64()*2 - 1
		}
		samples[i][0] = v
		samples[i][1] = v

		freq := t.freq
		if t.vibHz > 0 {
			sec := float64(t.position) / float64(t.rate)
			freq *= 1 + t.vibDepth*math.Sin(2*math.Pi*t.vibHz*sec)
		}
		t.phase += freq / float64(t.rate)
		t.phase -= math.Floor(t.phase)
		t.position++
	}
	return len(samples), true
}

func (t *tone) Err() error { return nil }

// envelope fades a streamer in over attack and out over release.
type envelope struct {
	streamer beep.Streamer
	position int
	attack   int
	release  int
	total    int
}

// NewEnvelope shapes s, which should last duration, with a linear attack and release.
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return &envelope{
		streamer: s,
		attack:   rate.N(attack),
		release:  rate.N(release),
		total:    rate.N(duration),
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		vol := 1.0
		if e.attack > 0 && e.position < e.attack {
			vol = float64(e.position) / float64(e.attack)
		}
		if left := e.total - e.position; e.release > 0 && left < e.release {
			vol = math.Max(float64(left)/float64(e.release), 0)
		}
		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// withVolume scales s linearly; 0 or less is silent.
func withVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// note is a single step of a melody.
type note struct {
	freq     float64
	duration time.Duration
}

// gameOverMelody is a descending, wobbling "disappointed" phrase.
var gameOverMelody = []note{
	{196.00, 380 * time.Millisecond},  // G3
	{185.00, 380 * time.Millisecond},  // F#3
	{174.61, 380 * time.Millisecond},  // F3
	{164.81, 1100 * time.Millisecond}, // E3, held
}

// GameOverSound plays the game-over phrase.
func GameOverSound(rate beep.SampleRate) beep.Streamer {
	parts := make([]beep.Streamer, 0, len(gameOverMelody))
	for i, n := range gameOverMelody {
		var osc beep.Streamer
		if i == len(gameOverMelody)-1 {
			osc = newVibratoTone(n.freq, n.duration, WaveSaw, rate, 6, 0.02)
		} else {
			osc = NewTone(n.freq, n.duration, WaveSaw, rate)
		}
		parts = append(parts, NewEnvelope(osc, n.duration, 20*time.Millisecond, n.duration/3, rate))
	}
	return withVolume(beep.Seq(parts...), 0.3)
}

// PowerUpSound plays a short two-partial bell.
func PowerUpSound(rate beep.SampleRate) beep.Streamer {
	const d = 300 * time.Millisecond
	fund := NewEnvelope(NewTone(880, d, WaveSine, rate), d, 5*time.Millisecond, 250*time.Millisecond, rate)
	over := NewEnvelope(NewTone(1760, d, WaveSine, rate), d, 5*time.Millisecond, 150*time.Millisecond, rate)
	return withVolume(beep.Mix(withVolume(fund, 0.7), withVolume(over, 0.3)), 0.4)
}

// DecoySound plays a quick noise whoosh.
func DecoySound(rate beep.SampleRate) beep.Streamer {
	const d = 180 * time.Millisecond
	noise := NewEnvelope(NewTone(0, d, WaveNoise, rate), d, 60*time.Millisecond, 110*time.Millisecond, rate)
	return withVolume(noise, 0.2)
}

// Length returns the number of samples an effect lasts.
func Length(effect audio.Effect) int {
	switch effect {
	case audio.EffectGameOver:
		var total time.Duration
		for _, n := range gameOverMelody {
			total += n.duration
		}
		return sampleRate.N(total)
	case audio.EffectPowerUp:
		return sampleRate.N(300 * time.Millisecond)
	case audio.EffectDecoy:
		return sampleRate.N(180 * time.Millisecond)
	default:
		return 0
	}
}
