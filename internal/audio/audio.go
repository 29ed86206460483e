// Package audio names the game's sound effects and the players that need
// no sound card.
package audio

import (
	"io"
	"sync"

	"github.com/tomz197/evade/internal/draw"
)

// Effect identifies a sound effect.
type Effect int

const (
	EffectGameOver Effect = iota
	EffectPowerUp
	EffectDecoy
)

// Player plays sound effects. Implementations must not block the caller.
type Player interface {
	Play(effect Effect)
}

// Nop is a silent Player.
type Nop struct{}

// Play implements Player.
func (Nop) Play(Effect) {}

// Bell rings the terminal bell for game over. It is the only sound a remote
// terminal can make, so other effects are silent.
type Bell struct {
	mu sync.Mutex
	w  io.Writer
}

// NewBell creates a Bell that writes to the terminal w.
func NewBell(w io.Writer) *Bell {
	return &Bell{w: w}
}

// Play implements Player.
func (b *Bell) Play(effect Effect) {
	if effect != EffectGameOver {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	draw.Bell(b.w)
}
