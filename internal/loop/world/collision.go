package world

import (
	"github.com/tomz197/evade/internal/draw"
	"github.com/tomz197/evade/internal/loop/config"
	"github.com/tomz197/evade/internal/object"
)

// checkCollisions charges one point of damage per enemy touching the player
// and returns the number of hits.
func (w *World) checkCollisions() int {
	hits := 0
	for _, e := range w.Enemies {
		if e.CollidesWith(w.Player) {
			hits++
		}
	}
	w.Health -= hits * config.DamagePerHit
	return hits
}

// updatePowerUp collects a visible power-up under the player, or reveals a
// hidden one once health runs low.
func (w *World) updatePowerUp() (shown, collected bool) {
	if w.PowerUp.HitBy(w.Player) {
		w.Health += config.PowerUpBonus
		w.PowerUp.Hide()
		object.SpawnBurst(w.PowerUp.X, w.PowerUp.Y, 16, 4, 30, draw.ColorOrange, w)
		return false, true
	}
	if w.Health < config.PowerUpThreshold && !w.PowerUp.Visible {
		w.PowerUp.Show()
		return true, false
	}
	return false, false
}
