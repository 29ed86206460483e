// Package object defines the entities that live on the playing field.
package object

import (
	"github.com/tomz197/evade/internal/draw"
	"github.com/tomz197/evade/internal/physics"
)

// Spawner allows objects to spawn new objects during update.
type Spawner interface {
	Spawn(obj Object)
}

// UpdateContext provides all the information an object needs during update.
type UpdateContext struct {
	Frame   int // Simulation frame being computed
	Field   Field
	Spawner Spawner
}

// DrawContext provides drawing resources for objects.
type DrawContext struct {
	Canvas *draw.Canvas
	Frame  int
}

// Object is a drawable and updatable transient entity, such as a particle.
type Object interface {
	// Update advances the object by one frame. Returns true if the object should be removed.
	Update(ctx UpdateContext) (remove bool)

	// Draw paints the object onto ctx.Canvas.
	Draw(ctx DrawContext)
}

// Releasable is implemented by pooled objects that can be returned to a pool.
type Releasable interface {
	// Release returns the object to its pool for reuse.
	Release()
}

// ReleaseObject releases an object back to its pool if it implements Releasable.
func ReleaseObject(obj Object) {
	if r, ok := obj.(Releasable); ok {
		r.Release()
	}
}

// Target is anything an agent can pursue.
type Target interface {
	Position() (x, y float64)
}

// Collider is a circle used for overlap tests.
type Collider interface {
	Position() (x, y float64)
	Radius() float64
}

// Overlaps reports whether two colliders overlap.
func Overlaps(a, b Collider) bool {
	ax, ay := a.Position()
	bx, by := b.Position()
	return physics.CirclesOverlap(ax, ay, a.Radius(), bx, by, b.Radius())
}

// Field is the rectangular playing area [0,Width] x [0,Height].
type Field struct {
	Width  float64
	Height float64
}

// Clamp constrains a point into the field.
func (f Field) Clamp(x, y float64) (float64, float64) {
	return physics.Clamp(x, 0, f.Width), physics.Clamp(y, 0, f.Height)
}

// Contains reports whether the point lies inside the field, edges included.
func (f Field) Contains(x, y float64) bool {
	return x >= 0 && x <= f.Width && y >= 0 && y <= f.Height
}

// Marker is a fixed point target, e.g. the last known mouse position.
type Marker struct {
	X, Y float64
}

// Position implements Target.
func (m *Marker) Position() (float64, float64) {
	return m.X, m.Y
}

// Set moves the marker.
func (m *Marker) Set(x, y float64) {
	m.X = x
	m.Y = y
}
