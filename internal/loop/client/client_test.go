package client

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/tomz197/evade/internal/audio"
	"github.com/tomz197/evade/internal/input"
	"github.com/tomz197/evade/internal/loop/config"
)

// recorder is an audio.Player that remembers what it was asked to play.
type recorder struct {
	effects []audio.Effect
}

func (r *recorder) Play(effect audio.Effect) {
	r.effects = append(r.effects, effect)
}

func fixedSize(w, h int) func() (int, int, error) {
	return func() (int, int, error) { return w, h, nil }
}

// newTestClient creates a client on a pipe that never delivers input.
func newTestClient(t *testing.T, opts Options) (*Client, *bytes.Buffer) {
	t.Helper()
	pr, pw := io.Pipe()
	t.Cleanup(func() { pw.Close() })

	if opts.TermSizeFunc == nil {
		opts.TermSizeFunc = fixedSize(160, 80)
	}
	var out bytes.Buffer
	return New(bufio.NewReader(pr), &out, opts), &out
}

func TestClampTermSize(t *testing.T) {
	tests := []struct {
		name                   string
		termW, termH           int
		wantW, wantH           int
		wantOffCol, wantOffRow int
	}{
		{"wide terminal", 200, 60, 120, 60, 40, 0},
		{"tall terminal", 100, 80, 100, 50, 0, 15},
		{"exact fit", 160, 80, 160, 80, 0, 0},
		{"huge terminal", 400, 200, 160, 80, 120, 60},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h, offCol, offRow := clampTermSize(tt.termW, tt.termH)
			if w != tt.wantW || h != tt.wantH || offCol != tt.wantOffCol || offRow != tt.wantOffRow {
				t.Fatalf("clampTermSize(%d,%d) = %d,%d,%d,%d", tt.termW, tt.termH, w, h, offCol, offRow)
			}
		})
	}
}

func TestMouseMotionSetsTarget(t *testing.T) {
	c, _ := newTestClient(t, Options{Sound: audio.Nop{}})

	c.state.Input = input.Input{Mouse: input.Mouse{Col: 81, Row: 41, Moved: true}}
	in := c.worldInput()
	if in.Target == nil {
		t.Fatal("mouse motion should set a target")
	}
	wantX, wantY, _ := c.canvas.TerminalToLogical(81, 41)
	if in.Target.X != wantX || in.Target.Y != wantY {
		t.Fatalf("target = (%f,%f), want (%f,%f)", in.Target.X, in.Target.Y, wantX, wantY)
	}
	if in.PlaceDecoy {
		t.Fatal("motion alone must not place a decoy")
	}
}

func TestMouseOutsideCanvasIgnored(t *testing.T) {
	c, _ := newTestClient(t, Options{TermSizeFunc: fixedSize(200, 60), Sound: audio.Nop{}})

	// The render area is offset 40 columns; column 10 is in the margin.
	c.state.Input = input.Input{Mouse: input.Mouse{Col: 10, Row: 10, Moved: true}}
	if in := c.worldInput(); in.Target != nil {
		t.Fatalf("target set from the margin: %+v", in.Target)
	}
}

func TestKeysNudgeTarget(t *testing.T) {
	c, _ := newTestClient(t, Options{Sound: audio.Nop{}})
	c.world.Mouse.Set(100, 100)

	c.state.Input = input.Input{Right: true, Down: true}
	in := c.worldInput()
	if in.Target == nil || in.Target.X != 100+config.KeyNudge || in.Target.Y != 100+config.KeyNudge {
		t.Fatalf("nudged target = %+v", in.Target)
	}
}

func TestDecoyTriggersOnPressEdge(t *testing.T) {
	c, _ := newTestClient(t, Options{Sound: audio.Nop{}})

	c.state.Input = input.Input{Space: true}
	if !c.worldInput().PlaceDecoy {
		t.Fatal("space press should place a decoy")
	}
	if c.worldInput().PlaceDecoy {
		t.Fatal("held space must not place another decoy")
	}
	c.state.Input = input.Input{}
	c.worldInput()
	c.state.Input = input.Input{Mouse: input.Mouse{Col: 5, Row: 5, Moved: true, Clicked: true}}
	if !c.worldInput().PlaceDecoy {
		t.Fatal("click should place a decoy")
	}
}

func TestGameOverFlow(t *testing.T) {
	rec := &recorder{}
	c, _ := newTestClient(t, Options{Sound: rec})

	c.state.Input = input.Input{Enter: true}
	c.updateStartState()
	if c.state.GameState != GameStatePlaying {
		t.Fatalf("state = %v, want playing", c.state.GameState)
	}

	c.state.Input = input.Input{}
	c.world.Health = 1
	c.world.Mouse.Set(c.world.Player.X, c.world.Player.Y)
	c.world.Enemies[0].X, c.world.Enemies[0].Y = c.world.Player.X, c.world.Player.Y
	c.updatePlayingState()

	if c.state.GameState != GameStateOver {
		t.Fatalf("state = %v, want over", c.state.GameState)
	}
	if len(rec.effects) != 1 || rec.effects[0] != audio.EffectGameOver {
		t.Fatalf("effects = %v, want one game over", rec.effects)
	}

	// Restart is refused until the delay has passed.
	c.state.Input = input.Input{Space: true}
	c.state.delta = 100 * time.Millisecond
	c.updateOverState()
	if c.state.GameState != GameStateOver {
		t.Fatal("restart accepted during the delay")
	}

	c.state.delta = 2 * time.Second
	c.updateOverState()
	c.updateOverState()
	if c.state.GameState != GameStatePlaying {
		t.Fatalf("state = %v, want playing after restart", c.state.GameState)
	}
	if c.world.Health != config.InitialHealth || c.world.Over {
		t.Fatal("restart should start a fresh world")
	}
	if c.state.games != 2 {
		t.Fatalf("games = %d, want 2", c.state.games)
	}
}

func TestEscapeReturnsToTitle(t *testing.T) {
	rec := &recorder{}
	c, _ := newTestClient(t, Options{Sound: rec})
	c.startGame()
	c.world.Time = 100

	c.state.Input = input.Input{Escape: true}
	c.updatePlayingState()
	if c.state.GameState != GameStateStart {
		t.Fatalf("state = %v, want start", c.state.GameState)
	}
	if c.world.Time != config.InitialTimerFrames {
		t.Fatal("leaving a game should discard its world")
	}
	if len(rec.effects) != 0 {
		t.Fatalf("effects = %v, want none", rec.effects)
	}

	c.startGame()
	c.state.GameState = GameStateOver
	c.state.restartDelay = config.RestartDelaySeconds
	c.updateOverState()
	if c.state.GameState != GameStateStart {
		t.Fatalf("state = %v, want start from game over", c.state.GameState)
	}
}

func TestPowerUpAndDecoySounds(t *testing.T) {
	rec := &recorder{}
	c, _ := newTestClient(t, Options{Sound: rec})
	c.startGame()
	c.state.spaceHeld = false

	c.state.Input = input.Input{Space: true}
	c.updatePlayingState()
	if len(rec.effects) != 1 || rec.effects[0] != audio.EffectDecoy {
		t.Fatalf("effects = %v, want decoy", rec.effects)
	}

	c.world.Health = config.PowerUpThreshold - 1
	c.world.PowerUp.Show()
	c.world.Player.X, c.world.Player.Y = config.PowerUpX, config.PowerUpY
	c.world.Mouse.Set(config.PowerUpX, config.PowerUpY)
	c.state.Input = input.Input{}
	c.updatePlayingState()
	if len(rec.effects) != 2 || rec.effects[1] != audio.EffectPowerUp {
		t.Fatalf("effects = %v, want power-up", rec.effects)
	}
}

func TestInactivity(t *testing.T) {
	c, _ := newTestClient(t, Options{
		Sound:                audio.Nop{},
		InactivityWarn:       time.Second,
		InactivityDisconnect: 10 * time.Second,
	})
	now := time.Now()

	c.lastInput = now.Add(-2 * time.Second)
	c.processInput(now)
	if !c.state.isInactive || !c.state.Running {
		t.Fatalf("inactive/running = %v/%v, want warning only", c.state.isInactive, c.state.Running)
	}

	c.lastInput = now.Add(-11 * time.Second)
	c.processInput(now)
	if c.state.Running {
		t.Fatal("idle client should be disconnected")
	}
}

func TestInactivityDisabledByDefault(t *testing.T) {
	c, _ := newTestClient(t, Options{Sound: audio.Nop{}})
	now := time.Now()
	c.lastInput = now.Add(-time.Hour)
	c.processInput(now)
	if c.state.isInactive || !c.state.Running {
		t.Fatal("zero limits should disable inactivity handling")
	}
}

func TestShutdownEventShowsCountdown(t *testing.T) {
	reg := NewRegistry()
	c, _ := newTestClient(t, Options{Sound: audio.Nop{}, Registry: reg})

	reg.mu.RLock()
	h := reg.clients[c.handle.ID]
	reg.mu.RUnlock()
	h.Events <- Event{Type: EventShutdown}

	c.processEvents()
	if c.state.GameState != GameStateShutdown {
		t.Fatalf("state = %v, want shutdown", c.state.GameState)
	}
	if c.state.shutdownTimer != config.ShutdownDisplaySeconds {
		t.Fatalf("shutdown timer = %f", c.state.shutdownTimer)
	}

	c.state.delta = time.Duration(config.ShutdownDisplaySeconds+1) * time.Second
	c.updateShutdownState()
	if c.state.Running {
		t.Fatal("client should stop once the countdown runs out")
	}
}

func TestDrawFrameShowsHUD(t *testing.T) {
	c, out := newTestClient(t, Options{Sound: audio.Nop{}})
	c.startGame()

	if err := c.drawFrame(); err != nil {
		t.Fatalf("draw: %v", err)
	}
	if !strings.Contains(out.String(), "Health: 500") || !strings.Contains(out.String(), "Time: 5000") {
		t.Fatalf("HUD missing from output")
	}
}

func TestDefaultSoundRingsBell(t *testing.T) {
	c, out := newTestClient(t, Options{})
	c.startGame()
	c.world.Health = 1
	c.world.Mouse.Set(c.world.Player.X, c.world.Player.Y)
	c.world.Enemies[0].X, c.world.Enemies[0].Y = c.world.Player.X, c.world.Player.Y

	c.updatePlayingState()
	if err := c.drawFrame(); err != nil {
		t.Fatalf("draw: %v", err)
	}
	if !strings.Contains(out.String(), "\a") {
		t.Fatal("game over should ring the terminal bell")
	}
	if !strings.Contains(out.String(), "Time's up") && !strings.Contains(out.String(), "wore you down") {
		t.Fatal("outcome line missing")
	}
}

func TestRunQuitsOnQ(t *testing.T) {
	var out bytes.Buffer
	c := New(bufio.NewReader(strings.NewReader("q")), &out, Options{
		TermSizeFunc: fixedSize(80, 40),
		Sound:        audio.Nop{},
	})

	done := make(chan error, 1)
	go func() { done <- c.Run(context.Background()) }()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("run: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("client did not quit")
	}
	if !strings.Contains(out.String(), "\033[?1003h") || !strings.Contains(out.String(), "\033[?1003l") {
		t.Fatal("mouse tracking should be enabled and then disabled")
	}
}

func TestRunStopsOnContextCancel(t *testing.T) {
	reg := NewRegistry()
	c, _ := newTestClient(t, Options{Sound: audio.Nop{}, Registry: reg})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- c.Run(ctx) }()
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("run: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("client ignored cancellation")
	}
	if reg.Len() != 0 {
		t.Fatal("client should unregister when it stops")
	}
}
