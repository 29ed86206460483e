package object

import (
	"math"

	"github.com/tomz197/evade/internal/draw"
)

// SnapDistance is how close an agent must be to its target to stop on it.
const SnapDistance = 1.0

// Collision diameters.
const (
	PlayerDiameter = 45.0
	EnemyDiameter  = 70.0
)

// Agent is an entity that pursues a target in a straight line.
type Agent struct {
	X, Y     float64 // Centre position
	Speed    float64 // Distance travelled per frame
	Target   Target  // What the agent is moving toward
	Diameter float64 // Collision circle diameter
}

// Position implements Target and Collider.
func (a *Agent) Position() (float64, float64) {
	return a.X, a.Y
}

// Radius implements Collider.
func (a *Agent) Radius() float64 {
	return a.Diameter / 2
}

// Move steps the agent toward its target by Speed and clamps it to the field.
// Within SnapDistance, or when a full step would pass the target, the agent
// lands exactly on the target instead.
func (a *Agent) Move(field Field) {
	if a.Target == nil {
		return
	}
	tx, ty := a.Target.Position()
	dx, dy := tx-a.X, ty-a.Y
	distance := math.Hypot(dx, dy)

	if distance <= SnapDistance || distance <= a.Speed {
		a.X, a.Y = field.Clamp(tx, ty)
		return
	}

	step := a.Speed / distance
	a.X, a.Y = field.Clamp(a.X+step*dx, a.Y+step*dy)
}

// CollidesWith reports whether the agent overlaps another collider.
func (a *Agent) CollidesWith(other Collider) bool {
	return Overlaps(a, other)
}

// Player is the mouse-controlled agent.
type Player struct {
	Agent
}

// NewPlayer creates a player at the given position chasing target.
func NewPlayer(x, y, speed float64, target Target) *Player {
	return &Player{Agent{X: x, Y: y, Speed: speed, Target: target, Diameter: PlayerDiameter}}
}

// Draw renders the player as a green disc.
func (p *Player) Draw(ctx DrawContext) {
	ctx.Canvas.FillCircle(p.X, p.Y, p.Radius(), draw.ColorGreen)
}

// Enemy is an agent that pursues the player or the decoy.
type Enemy struct {
	Agent
}

// NewEnemy creates an enemy at the given position chasing target.
func NewEnemy(x, y, speed float64, target Target) *Enemy {
	return &Enemy{Agent{X: x, Y: y, Speed: speed, Target: target, Diameter: EnemyDiameter}}
}

// Draw renders the enemy as a red disc.
func (e *Enemy) Draw(ctx DrawContext) {
	ctx.Canvas.FillCircle(e.X, e.Y, e.Radius(), draw.ColorRed)
}
