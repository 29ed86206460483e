// Package client runs one game session on a terminal: it reads input, steps
// the session's own world and renders it.
package client

import (
	"bufio"
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/tomz197/evade/internal/audio"
	"github.com/tomz197/evade/internal/draw"
	"github.com/tomz197/evade/internal/input"
	"github.com/tomz197/evade/internal/loop/config"
	"github.com/tomz197/evade/internal/loop/world"
	"github.com/tomz197/evade/internal/object"
)

// Client handles rendering and input for a single connection.
type Client struct {
	registry     *Registry
	handle       *Handle
	state        *ClientState
	world        *world.World
	canvas       *draw.Canvas
	chunkWriter  *draw.ChunkWriter // Accumulates UI text for chunked output
	writer       io.Writer
	inputStream  *input.Stream
	lastInput    time.Time
	username     string
	termSizeFunc draw.TermSizeFunc
	frameTime    time.Duration
	sound        audio.Player
	logger       *log.Logger
	styles       styles

	inactivityWarn       time.Duration
	inactivityDisconnect time.Duration
}

// Options configures the client. Zero values pick sensible defaults.
type Options struct {
	TermSizeFunc draw.TermSizeFunc
	Username     string
	FPS          int
	Sound        audio.Player // Defaults to the terminal bell
	Registry     *Registry    // Optional; lets a server ask the client to leave
	Logger       *log.Logger

	// Idle limits; zero disables the check.
	InactivityWarn       time.Duration
	InactivityDisconnect time.Duration
}

// New creates a client that reads keys and mouse reports from r and draws
// to w.
func New(r *bufio.Reader, w io.Writer, opts Options) *Client {
	termSizeFunc := opts.TermSizeFunc
	if termSizeFunc == nil {
		termSizeFunc = draw.DefaultTermSizeFunc
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	termWidth, termHeight, _ := draw.TerminalSizeRawWith(termSizeFunc)
	renderWidth, renderHeight, offsetCol, offsetRow := clampTermSize(termWidth, termHeight)
	canvas := draw.NewScaledCanvas(renderWidth, renderHeight, config.FieldWidth, config.FieldHeight)
	canvas.SetOffset(offsetCol, offsetRow)
	chunkWriter := draw.NewChunkWriter(w, offsetCol, offsetRow)

	sound := opts.Sound
	if sound == nil {
		sound = audio.NewBell(chunkWriter)
	}

	c := &Client{
		registry:             opts.Registry,
		state:                NewClientState(),
		world:                world.New(),
		canvas:               canvas,
		chunkWriter:          chunkWriter,
		writer:               w,
		inputStream:          input.StartStream(r),
		lastInput:            time.Now(),
		username:             opts.Username,
		termSizeFunc:         termSizeFunc,
		frameTime:            config.FrameTime(opts.FPS),
		sound:                sound,
		logger:               logger,
		styles:               newStyles(w),
		inactivityWarn:       opts.InactivityWarn,
		inactivityDisconnect: opts.InactivityDisconnect,
	}
	if c.registry != nil {
		c.handle = c.registry.Register(opts.Username)
	}
	return c
}

// Run starts the client loop. Blocks until the player quits, the input ends,
// ctx is cancelled or the shutdown countdown runs out.
func (c *Client) Run(ctx context.Context) error {
	draw.HideCursor(c.writer)
	draw.EnableMouse(c.writer)
	defer draw.ShowCursor(c.writer)
	defer draw.DisableMouse(c.writer)
	draw.ClearScreen(c.writer)

	if c.registry != nil {
		defer c.registry.Unregister(c.handle.ID)
	}
	defer c.inputStream.Stop()

	lastTime := time.Now()

	for c.state.Running {
		select {
		case <-ctx.Done():
			c.state.Running = false
			continue
		default:
		}

		frameStart := time.Now()
		c.state.delta = frameStart.Sub(lastTime)
		lastTime = frameStart

		// Process input
		c.processInput(frameStart)

		// Check for server events
		c.processEvents()

		// Handle screen resize
		c.updateScreen()

		// Handle game state
		switch c.state.GameState {
		case GameStateStart:
			c.updateStartState()
		case GameStatePlaying:
			c.updatePlayingState()
		case GameStateOver:
			c.updateOverState()
		case GameStateShutdown:
			c.updateShutdownState()
		}

		// Draw frame
		if err := c.drawFrame(); err != nil {
			return err
		}

		// Frame timing
		elapsed := time.Since(frameStart)
		if elapsed < c.frameTime {
			time.Sleep(c.frameTime - elapsed)
		}
	}

	draw.ClearScreen(c.writer)
	return nil
}

// processInput reads input and tracks inactivity.
func (c *Client) processInput(now time.Time) {
	c.state.Input = input.ReadInput(c.inputStream)

	idle := now.Sub(c.lastInput)
	switch {
	case c.state.Input.Any():
		c.lastInput = now
		c.state.isInactive = false
	case c.inactivityDisconnect > 0 && idle > c.inactivityDisconnect:
		c.logger.Info("disconnecting idle client", "user", c.username, "idle", idle.Round(time.Second))
		c.state.Running = false
	case c.inactivityWarn > 0 && idle > c.inactivityWarn:
		c.state.isInactive = true
	}

	if c.state.Input.Quit || c.inputStream.Closed() {
		c.state.Running = false
	}
}

// processEvents handles notifications from the registry.
func (c *Client) processEvents() {
	if c.handle == nil {
		return
	}
	for {
		select {
		case event := <-c.handle.Events:
			switch event.Type {
			case EventShutdown:
				if c.state.GameState != GameStateShutdown {
					c.state.GameState = GameStateShutdown
					c.state.shutdownTimer = config.ShutdownDisplaySeconds
				}
			}
		default:
			return
		}
	}
}

// updateScreen handles terminal resize, clamping to max render resolution.
// On actual size changes, clears the terminal to remove residual pixels
// outside the new canvas area (e.g. old borders or offset content).
func (c *Client) updateScreen() {
	termWidth, termHeight, err := draw.TerminalSizeRawWith(c.termSizeFunc)
	if err != nil {
		return
	}
	renderWidth, renderHeight, offsetCol, offsetRow := clampTermSize(termWidth, termHeight)

	if renderWidth != c.canvas.TerminalWidth() || renderHeight != c.canvas.TerminalHeight() ||
		offsetCol != c.canvas.OffsetCol() || offsetRow != c.canvas.OffsetRow() {
		draw.ClearScreen(c.writer)
		c.canvas.ForceRedraw()
	}

	c.canvas.Resize(renderWidth, renderHeight)
	c.canvas.SetOffset(offsetCol, offsetRow)
	c.chunkWriter.SetOffset(offsetCol, offsetRow)
}

// clampTermSize fits the square field into the terminal. A cell is two
// sub-pixels tall, so a square area is twice as many columns as rows. The
// result is also capped at the max render resolution and centred.
func clampTermSize(termWidth, termHeight int) (renderWidth, renderHeight, offsetCol, offsetRow int) {
	renderWidth = min(termWidth, config.MaxTermWidth)
	renderHeight = min(termHeight, config.MaxTermHeight)
	if renderWidth > 2*renderHeight {
		renderWidth = 2 * renderHeight
	} else {
		renderHeight = renderWidth / 2
	}
	offsetCol = (termWidth - renderWidth) / 2
	offsetRow = (termHeight - renderHeight) / 2
	return
}

// startPressed reports whether the player asked to start a game this frame.
func (c *Client) startPressed() bool {
	in := c.state.Input
	return in.Space || in.Enter || in.Mouse.Clicked
}

// updateStartState handles the start screen.
func (c *Client) updateStartState() {
	if c.startPressed() {
		c.startGame()
	}
}

// updatePlayingState turns the frame's input into a world step and reacts to
// what happened.
func (c *Client) updatePlayingState() {
	if c.state.Input.Escape {
		c.returnToTitle()
		return
	}

	ev := c.world.Step(c.worldInput())

	if ev.DecoyPlaced {
		c.sound.Play(audio.EffectDecoy)
	}
	if ev.PowerUpCollected {
		c.sound.Play(audio.EffectPowerUp)
	}
	if ev.GameOver {
		c.sound.Play(audio.EffectGameOver)
		c.state.GameState = GameStateOver
		c.state.restartDelay = config.RestartDelaySeconds
		c.logger.Info("game over",
			"user", c.username,
			"outcome", c.world.Outcome,
			"health", c.world.DisplayHealth(),
			"frames", c.world.Frame,
		)
	}
}

// worldInput maps the mouse and keyboard onto a world.Input. The mouse sets
// the target directly; held direction keys nudge it from wherever it is.
func (c *Client) worldInput() world.Input {
	var in world.Input
	keys := c.state.Input

	if keys.Mouse.Moved {
		if x, y, ok := c.canvas.TerminalToLogical(keys.Mouse.Col, keys.Mouse.Row); ok {
			in.Target = &object.Marker{X: x, Y: y}
		}
	}

	var dx, dy float64
	if keys.Left {
		dx -= config.KeyNudge
	}
	if keys.Right {
		dx += config.KeyNudge
	}
	if keys.Up {
		dy -= config.KeyNudge
	}
	if keys.Down {
		dy += config.KeyNudge
	}
	if dx != 0 || dy != 0 {
		x, y := c.world.Mouse.Position()
		if in.Target != nil {
			x, y = in.Target.Position()
		}
		in.Target = &object.Marker{X: x + dx, Y: y + dy}
	}

	in.PlaceDecoy = keys.Mouse.Clicked || (keys.Space && !c.state.spaceHeld)
	c.state.spaceHeld = keys.Space
	return in
}

// updateOverState handles the game over screen.
func (c *Client) updateOverState() {
	if c.state.Input.Escape {
		c.returnToTitle()
		return
	}
	if c.state.restartDelay > 0 {
		c.state.restartDelay -= c.state.delta.Seconds()
		if c.state.restartDelay < 0 {
			c.state.restartDelay = 0
		}
		return
	}
	if c.startPressed() {
		c.startGame()
	}
}

// startGame starts or restarts the game with a fresh world.
func (c *Client) startGame() {
	input.ResetKeyInput(c.inputStream)
	c.world = world.New()
	c.state.spaceHeld = true
	c.state.games++
	c.state.GameState = GameStatePlaying
	c.logger.Debug("game started", "user", c.username, "game", c.state.games)
}

// returnToTitle drops the current game and shows the title screen.
func (c *Client) returnToTitle() {
	input.ResetKeyInput(c.inputStream)
	c.world = world.New()
	c.state.GameState = GameStateStart
	c.logger.Debug("back to title", "user", c.username)
}

// updateShutdownState handles the shutdown screen countdown.
func (c *Client) updateShutdownState() {
	c.state.shutdownTimer -= c.state.delta.Seconds()
	if c.state.shutdownTimer <= 0 {
		c.state.Running = false
	}
}
