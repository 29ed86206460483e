// Package world holds the simulation state of a single game and advances it
// one frame at a time.
package world

import (
	"github.com/tomz197/evade/internal/draw"
	"github.com/tomz197/evade/internal/loop/config"
	"github.com/tomz197/evade/internal/object"
)

// Outcome explains why a game ended.
type Outcome int

const (
	OutcomeNone           Outcome = iota // Game still running
	OutcomeHealthDepleted                // Health reached zero
	OutcomeTimeUp                        // Countdown reached zero
)

// String returns a short human-readable description of the outcome.
func (o Outcome) String() string {
	switch o {
	case OutcomeHealthDepleted:
		return "out of health"
	case OutcomeTimeUp:
		return "time up"
	default:
		return "playing"
	}
}

// Input is the player's intent for one frame.
type Input struct {
	Target     *object.Marker // New mouse target in field coordinates; nil keeps the current one
	PlaceDecoy bool
}

// Events reports what happened during a frame.
type Events struct {
	Hits             int // Enemies overlapping the player
	PowerUpShown     bool
	PowerUpCollected bool
	DecoyPlaced      bool
	DecoyExpired     bool
	GameOver         bool
}

// World is the full state of one game.
type World struct {
	Field   object.Field
	Mouse   *object.Marker
	Player  *object.Player
	Enemies []*object.Enemy
	PowerUp *object.PowerUp
	Decoy   *object.Decoy // nil when no decoy is active

	Health  int
	Time    int // Frames left on the countdown
	Frame   int // Frames simulated so far
	Over    bool
	Outcome Outcome

	effects []object.Object // Cosmetic particles
	toSpawn []object.Object // Effects to add after the current update
}

// New creates a world in its starting configuration.
func New() *World {
	w := &World{
		Field:   object.Field{Width: config.FieldWidth, Height: config.FieldHeight},
		Mouse:   &object.Marker{},
		PowerUp: object.NewPowerUp(config.PowerUpX, config.PowerUpY, config.PowerUpDiameter),
		Health:  config.InitialHealth,
		Time:    config.InitialTimerFrames,
	}
	w.Player = object.NewPlayer(config.PlayerStartX, config.PlayerStartY, config.PlayerSpeed, w.Mouse)
	for _, spawn := range config.EnemySpawns {
		w.Enemies = append(w.Enemies, object.NewEnemy(spawn.X, spawn.Y, spawn.Speed, w.Player))
	}
	return w
}

// DisplayHealth returns health clamped at zero.
func (w *World) DisplayHealth() int {
	if w.Health < 0 {
		return 0
	}
	return w.Health
}

// Effects returns the active cosmetic particles.
func (w *World) Effects() []object.Object {
	return w.effects
}

// Spawn queues an effect to be added after the current update cycle.
// Implements object.Spawner interface.
func (w *World) Spawn(obj object.Object) {
	w.toSpawn = append(w.toSpawn, obj)
}

// Step advances the simulation by one frame. It does nothing once the game
// is over.
func (w *World) Step(in Input) Events {
	var ev Events
	if w.Over {
		return ev
	}

	if in.Target != nil {
		w.Mouse.Set(w.Field.Clamp(in.Target.X, in.Target.Y))
	}
	if in.PlaceDecoy {
		w.placeDecoy()
		ev.DecoyPlaced = true
	}
	ev.DecoyExpired = w.expireDecoy()

	w.Player.Move(w.Field)
	for _, e := range w.Enemies {
		e.Move(w.Field)
	}

	ev.Hits = w.checkCollisions()
	ev.PowerUpShown, ev.PowerUpCollected = w.updatePowerUp()
	w.updateEffects()

	if w.Health <= 0 {
		w.end(OutcomeHealthDepleted)
	} else {
		if w.Time > 0 {
			w.Time--
		}
		if w.Time == 0 {
			w.end(OutcomeTimeUp)
		}
	}
	ev.GameOver = w.Over

	w.Frame++
	return ev
}

func (w *World) end(outcome Outcome) {
	w.Over = true
	w.Outcome = outcome
}

// updateEffects advances particles and drops expired ones.
func (w *World) updateEffects() {
	ctx := object.UpdateContext{Frame: w.Frame, Field: w.Field, Spawner: w}

	kept := w.effects[:0]
	for _, obj := range w.effects {
		if obj.Update(ctx) {
			object.ReleaseObject(obj)
			continue
		}
		kept = append(kept, obj)
	}
	w.effects = append(kept, w.toSpawn...)
	w.toSpawn = w.toSpawn[:0]
}

// Draw paints every entity onto the canvas, back to front.
func (w *World) Draw(canvas *draw.Canvas) {
	ctx := object.DrawContext{Canvas: canvas, Frame: w.Frame}

	w.PowerUp.Draw(ctx)
	if w.Decoy != nil {
		w.Decoy.Draw(ctx)
	}
	for _, obj := range w.effects {
		obj.Draw(ctx)
	}
	for _, e := range w.Enemies {
		e.Draw(ctx)
	}
	w.Player.Draw(ctx)
}
