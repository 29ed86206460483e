package object

import "github.com/tomz197/evade/internal/draw"

// Decoy is a stationary stand-in for the player that enemies chase for a
// limited number of frames.
type Decoy struct {
	X, Y       float64
	Diameter   float64
	ShowFrames int // Frames the decoy stays active
	SpawnFrame int // Frame at which the decoy was placed
}

// NewDecoy places a decoy at the given frame.
func NewDecoy(x, y, diameter float64, showFrames, frame int) *Decoy {
	return &Decoy{X: x, Y: y, Diameter: diameter, ShowFrames: showFrames, SpawnFrame: frame}
}

// Position implements Target.
func (d *Decoy) Position() (float64, float64) {
	return d.X, d.Y
}

// Radius implements Collider.
func (d *Decoy) Radius() float64 {
	return d.Diameter / 2
}

// Expired reports whether the show duration has elapsed at frame.
func (d *Decoy) Expired(frame int) bool {
	return frame >= d.SpawnFrame+d.ShowFrames
}

// Remaining returns the frames left before expiry, never negative.
func (d *Decoy) Remaining(frame int) int {
	left := d.SpawnFrame + d.ShowFrames - frame
	if left < 0 {
		return 0
	}
	return left
}

// Draw renders the decoy as a green disc with an outline ring that starts
// blinking during the last fifth of its lifetime.
func (d *Decoy) Draw(ctx DrawContext) {
	ctx.Canvas.FillCircle(d.X, d.Y, d.Radius(), draw.ColorGreen)
	if d.Remaining(ctx.Frame) > d.ShowFrames/5 || ctx.Frame/8%2 == 0 {
		ctx.Canvas.StrokeCircle(d.X, d.Y, d.Radius()*2, draw.ColorGreen)
	}
}
