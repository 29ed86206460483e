package object

import "github.com/tomz197/evade/internal/draw"

// PowerUp restores health when the player collects it. It only exists on the
// field while visible.
type PowerUp struct {
	X, Y     float64
	Diameter float64
	Visible  bool
}

// NewPowerUp creates a hidden power-up.
func NewPowerUp(x, y, diameter float64) *PowerUp {
	return &PowerUp{X: x, Y: y, Diameter: diameter}
}

// Position implements Collider.
func (p *PowerUp) Position() (float64, float64) {
	return p.X, p.Y
}

// Radius implements Collider.
func (p *PowerUp) Radius() float64 {
	return p.Diameter / 2
}

// Show makes the power-up collectible.
func (p *PowerUp) Show() {
	p.Visible = true
}

// Hide removes the power-up from the field.
func (p *PowerUp) Hide() {
	p.Visible = false
}

// HitBy reports whether c touches the power-up while it is visible.
func (p *PowerUp) HitBy(c Collider) bool {
	return p.Visible && Overlaps(p, c)
}

// Draw renders the power-up as an orange disc when visible.
func (p *PowerUp) Draw(ctx DrawContext) {
	if !p.Visible {
		return
	}
	ctx.Canvas.FillCircle(p.X, p.Y, p.Radius(), draw.ColorOrange)
}
