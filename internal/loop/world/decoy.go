package world

import (
	"github.com/tomz197/evade/internal/draw"
	"github.com/tomz197/evade/internal/loop/config"
	"github.com/tomz197/evade/internal/object"
)

// placeDecoy puts a fresh decoy on the field and points every enemy at it.
// An already active decoy is replaced, restarting the countdown.
func (w *World) placeDecoy() {
	w.Decoy = object.NewDecoy(config.DecoyX, config.DecoyY, config.DecoyDiameter, config.DecoyShowFrames, w.Frame)
	w.retarget(w.Decoy)
	object.SpawnBurst(w.Decoy.X, w.Decoy.Y, 10, 3, 20, draw.ColorMint, w)
}

// expireDecoy removes a decoy whose show duration has elapsed and sends the
// enemies back after the player. Reports whether a decoy expired.
func (w *World) expireDecoy() bool {
	if w.Decoy == nil || !w.Decoy.Expired(w.Frame) {
		return false
	}
	w.Decoy = nil
	w.retarget(w.Player)
	return true
}

func (w *World) retarget(t object.Target) {
	for _, e := range w.Enemies {
		e.Target = t
	}
}
