package client

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/tomz197/evade/internal/draw"
	"github.com/tomz197/evade/internal/loop/config"
	"github.com/tomz197/evade/internal/loop/world"
)

// styles holds the text styles for one terminal.
type styles struct {
	title    lipgloss.Style
	gameOver lipgloss.Style
	hud      lipgloss.Style
	warn     lipgloss.Style
	prompt   lipgloss.Style
	dim      lipgloss.Style
}

// newStyles binds styles to w. The profile is pinned to 256 colours to match
// the canvas palette instead of probing the remote terminal.
func newStyles(w io.Writer) styles {
	r := lipgloss.NewRenderer(w)
	r.SetColorProfile(termenv.ANSI256)
	return styles{
		title:    r.NewStyle().Bold(true).Foreground(paletteColor(draw.ColorGreen)),
		gameOver: r.NewStyle().Bold(true).Foreground(paletteColor(draw.ColorPurple)),
		hud:      r.NewStyle().Bold(true).Foreground(lipgloss.Color("255")),
		warn:     r.NewStyle().Bold(true).Foreground(paletteColor(draw.ColorOrange)),
		prompt:   r.NewStyle().Foreground(paletteColor(draw.ColorMint)),
		dim:      r.NewStyle().Foreground(paletteColor(draw.ColorGray)),
	}
}

func paletteColor(c draw.Color) lipgloss.Color {
	return lipgloss.Color(strconv.Itoa(int(c)))
}

// ASCII art (figlet "small" font)
var (
	titleArt = []string{
		` ___ __   __   _    ___   ___ `,
		`| __|\ \ / /  /_\  |   \ | __|`,
		`| _|  \ V /  / _ \ | |) || _| `,
		`|___|  \_/  /_/ \_\|___/ |___|`,
	}
	gameOverArt = []string{
		`   ___   _   __  __ ___    _____   _____ ___  `,
		`  / __| /_\ |  \/  | __|  / _ \ \ / / __| _ \ `,
		` | (_ |/ _ \| |\/| | _|  | (_) \ V /| _||   / `,
		`  \___/_/ \_\_|  |_|___|  \___/ \_/ |___|_|_\ `,
	}
)

var controlLines = []string{
	"Mouse  . . . . . . . . Steer",
	"Arrows / WASD  . . . . Nudge",
	"Click / SPACE  . . . . Decoy",
	"Esc  . . . . . . . . .  Menu",
	"Q  . . . . . . . . . .  Quit",
}

// drawFrame draws the current frame.
func (c *Client) drawFrame() error {
	// On game state or inactivity transitions, do a full terminal clear
	// so UI elements from the previous state don't persist on screen.
	stateChanged := c.state.GameState != c.state.prevGameState
	inactiveChanged := c.state.isInactive != c.state.wasInactive
	if stateChanged || inactiveChanged {
		c.chunkWriter.WriteString("\033[H\033[2J")
		c.canvas.ForceRedraw()
		c.state.prevGameState = c.state.GameState
		c.state.wasInactive = c.state.isInactive
	}

	c.canvas.Clear()
	c.world.Draw(c.canvas)

	// Render canvas to terminal
	if err := c.canvas.Render(c.chunkWriter); err != nil {
		return err
	}

	// Draw border when terminal exceeds max render resolution
	if err := c.canvas.RenderBorder(c.chunkWriter); err != nil {
		return err
	}

	// Draw UI overlay
	c.drawUI()

	return c.chunkWriter.Flush()
}

// drawUI draws the text overlay for the current state.
func (c *Client) drawUI() {
	centerX := c.canvas.TerminalWidth() / 2
	centerY := c.canvas.TerminalHeight() / 2

	if c.state.GameState == GameStateShutdown {
		c.drawShutdownScreen(centerX, centerY)
		return
	}

	if c.state.isInactive {
		c.drawInactivityScreen(centerX, centerY)
		return
	}

	switch c.state.GameState {
	case GameStatePlaying:
		c.drawPlayingHUD()
	case GameStateStart:
		c.drawStartScreen(centerX, centerY)
	case GameStateOver:
		c.drawOverScreen(centerX, centerY)
	}
}

// overlay writes s centred on a row and marks the cells dirty, so the canvas
// repaints them once the text stops being drawn.
func (c *Client) overlay(centerX, row int, s string) {
	col, width := c.chunkWriter.WriteCentered(centerX, row, s)
	c.canvas.MarkTextDirty(col, row, width)
}

// blinkOn toggles blinking prompts.
func blinkOn() bool {
	return time.Now().UnixMilli()/600%2 == 0
}

// drawArt writes art centred with its first line on row top.
func (c *Client) drawArt(centerX, top int, art []string, style lipgloss.Style) {
	for i, line := range art {
		c.chunkWriter.WriteCentered(centerX, top+i, style.Render(line))
	}
}

// drawPlayingHUD draws health and time. Text fields use fixed-width
// formatting so shrinking values don't leave residual characters on screen.
func (c *Client) drawPlayingHUD() {
	text := fmt.Sprintf("Health: %-4d  Time: %-5d", c.world.DisplayHealth(), c.world.Time)
	c.chunkWriter.WriteAt(2, 1, c.styles.hud.Render(text))
	c.canvas.MarkTextDirty(2, 1, lipgloss.Width(text))
}

// drawStartScreen draws the title screen.
func (c *Client) drawStartScreen(centerX, centerY int) {
	top := centerY - 7
	c.drawArt(centerX, top, titleArt, c.styles.title)

	cw := c.chunkWriter
	row := top + len(titleArt) + 1
	cw.WriteCentered(centerX, row, c.styles.dim.Render("~ Run from the red, grab the orange ~"))

	row += 2
	cw.WriteCentered(centerX, row, "Controls")
	for i, line := range controlLines {
		cw.WriteCentered(centerX, row+1+i, line)
	}

	// Blinking start prompt
	row += len(controlLines) + 2
	if blinkOn() {
		c.overlay(centerX, row, c.styles.prompt.Render(">>  Press SPACE to Start  <<"))
	} else {
		c.canvas.MarkTextDirty(1, row, c.canvas.TerminalWidth())
	}
}

// drawOverScreen draws the game over screen.
func (c *Client) drawOverScreen(centerX, centerY int) {
	top := centerY - 6
	c.drawArt(centerX, top, gameOverArt, c.styles.gameOver)

	cw := c.chunkWriter
	row := top + len(gameOverArt) + 1
	cw.WriteCentered(centerX, row, c.styles.warn.Render(outcomeText(c.world)))

	row += 2
	stats := fmt.Sprintf("Health: %d   Time: %d", c.world.DisplayHealth(), c.world.Time)
	cw.WriteCentered(centerX, row, stats)

	row += 2
	if c.state.restartDelay > 0 {
		c.canvas.MarkTextDirty(1, row, c.canvas.TerminalWidth())
		return
	}
	if blinkOn() {
		c.overlay(centerX, row, c.styles.prompt.Render(">>  Press SPACE to Restart  <<"))
	} else {
		c.canvas.MarkTextDirty(1, row, c.canvas.TerminalWidth())
	}
}

// outcomeText is the line shown under GAME OVER.
func outcomeText(w *world.World) string {
	switch w.Outcome {
	case world.OutcomeHealthDepleted:
		return "The enemies wore you down"
	case world.OutcomeTimeUp:
		return "Time's up"
	default:
		return ""
	}
}

// drawInactivityScreen draws the inactivity warning screen.
func (c *Client) drawInactivityScreen(centerX, centerY int) {
	left := int((c.inactivityDisconnect - time.Since(c.lastInput)).Seconds())
	if left < 0 {
		left = 0
	}

	c.overlay(centerX, centerY-2, c.styles.warn.Render("INACTIVITY WARNING"))
	c.overlay(centerX, centerY, fmt.Sprintf("You have been inactive for too long. Disconnecting in %3d seconds.", left))
	c.overlay(centerX, centerY+2, c.styles.dim.Render("Press any key to continue"))
}

// drawShutdownScreen draws the server shutdown notification screen.
func (c *Client) drawShutdownScreen(centerX, centerY int) {
	cw := c.chunkWriter
	cw.WriteCentered(centerX, centerY-3, c.styles.warn.Render("SERVER SHUTTING DOWN"))
	cw.WriteCentered(centerX, centerY-1, "The server is restarting for maintenance.")
	cw.WriteCentered(centerX, centerY, "Please reconnect in a moment.")

	remaining := int(c.state.shutdownTimer) + 1
	if remaining > int(config.ShutdownDisplaySeconds) {
		remaining = int(config.ShutdownDisplaySeconds)
	}
	cw.WriteCentered(centerX, centerY+2, fmt.Sprintf("Disconnecting in %2d seconds...", remaining))
	cw.WriteCentered(centerX, centerY+4, c.styles.dim.Render("Press Q to disconnect now"))
}
