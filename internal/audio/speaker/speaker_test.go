package speaker

import (
	"testing"
	"time"

	"github.com/gopxl/beep"
	"github.com/tomz197/evade/internal/audio"
)

// drain streams s until it ends or limit samples have been read, checking
// every sample stays in range.
func drain(t *testing.T, s beep.Streamer, limit int) int {
	t.Helper()
	buf := make([][2]float64, 512)
	total := 0
	for total < limit {
		n, ok := s.Stream(buf)
		for i := 0; i < n; i++ {
			if buf[i][0] < -1 || buf[i][0] > 1 || buf[i][1] < -1 || buf[i][1] > 1 {
				t.Fatalf("sample %d out of range: %v", total+i, buf[i])
			}
		}
		total += n
		if !ok {
			break
		}
	}
	return total
}

func TestToneStopsAfterDuration(t *testing.T) {
	rate := beep.SampleRate(44100)
	osc := NewTone(440, 10*time.Millisecond, WaveSine, rate)

	if n := drain(t, osc, 1<<20); n != rate.N(10*time.Millisecond) {
		t.Fatalf("streamed %d samples, want %d", n, rate.N(10*time.Millisecond))
	}
	if n, ok := osc.Stream(make([][2]float64, 16)); n != 0 || ok {
		t.Fatalf("drained tone returned %d/%v", n, ok)
	}
	if osc.Err() != nil {
		t.Fatalf("unexpected error: %v", osc.Err())
	}
}

func TestEnvelopeStartsSilent(t *testing.T) {
	rate := beep.SampleRate(44100)
	d := 50 * time.Millisecond
	env := NewEnvelope(NewTone(440, d, WaveSaw, rate), d, 10*time.Millisecond, 10*time.Millisecond, rate)

	samples := make([][2]float64, 4)
	env.Stream(samples)
	if samples[0][0] != 0 {
		t.Fatalf("first sample = %f, want 0 during attack", samples[0][0])
	}
}

func TestGameOverSoundLength(t *testing.T) {
	want := Length(audio.EffectGameOver)
	if n := drain(t, GameOverSound(sampleRate), 4*want); n != want {
		t.Fatalf("game over sound streamed %d samples, want %d", n, want)
	}
}

func TestDecoySoundLength(t *testing.T) {
	want := Length(audio.EffectDecoy)
	if n := drain(t, DecoySound(sampleRate), 4*want); n != want {
		t.Fatalf("decoy sound streamed %d samples, want %d", n, want)
	}
}

func TestPowerUpSoundGoesQuiet(t *testing.T) {
	want := Length(audio.EffectPowerUp)
	s := PowerUpSound(sampleRate)

	head := make([][2]float64, want)
	n, _ := s.Stream(head)
	if n != want {
		t.Fatalf("power-up sound streamed %d samples, want %d", n, want)
	}
	loud := false
	for _, v := range head {
		if v[0] != 0 {
			loud = true
			break
		}
	}
	if !loud {
		t.Fatal("power-up sound is silent")
	}

	tail := make([][2]float64, 256)
	n, _ = s.Stream(tail)
	for i := 0; i < n; i++ {
		if tail[i][0] != 0 {
			t.Fatalf("sample %d past the end is %f, want silence", want+i, tail[i][0])
		}
	}
}

func TestSynthesizeUnknownEffect(t *testing.T) {
	if Synthesize(audio.Effect(99)) != nil {
		t.Fatal("unknown effect should have no streamer")
	}
	if Length(audio.Effect(99)) != 0 {
		t.Fatal("unknown effect should have zero length")
	}
}

func TestSpeakerPlayBeforeInitIsNoop(t *testing.T) {
	s := New()
	s.Play(audio.EffectGameOver)
	s.Close()
	if s.mixer.Len() != 0 {
		t.Fatalf("mixer has %d streamers before init", s.mixer.Len())
	}
}
