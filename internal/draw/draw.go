// Package draw renders the game field to a terminal using half-block
// characters and ANSI escape sequences.
package draw

// Block characters for drawing.
const (
	BlockFull      = '█'
	BlockEmpty     = ' '
	BlockUpperHalf = '▀'
	BlockLowerHalf = '▄'
)

// Color is an ANSI 256-colour palette index. The zero value is an unset pixel,
// so palette entry 0 (black) cannot be painted.
type Color uint8

// Palette used by the game entities.
const (
	ColorNone   Color = 0
	ColorGreen  Color = 40
	ColorMint   Color = 120
	ColorRed    Color = 196
	ColorOrange Color = 208
	ColorPurple Color = 129
	ColorGray   Color = 244
)

// ColorReset resets all SGR attributes.
const ColorReset = "\033[0m"
