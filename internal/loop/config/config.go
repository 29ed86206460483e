// Package config centralizes all tunable game parameters.
package config

import "time"

// Field dimensions in logical units.
const (
	FieldWidth  = 800
	FieldHeight = 800
)

// Health and timer, both counted per frame.
const (
	InitialHealth      = 500
	InitialTimerFrames = 5000
	DamagePerHit       = 1 // Health lost per overlapping enemy per frame
)

// Player
const (
	PlayerStartX = 20
	PlayerStartY = 20
	PlayerSpeed  = 2.5
)

// EnemySpawn describes where an enemy starts and how fast it moves.
type EnemySpawn struct {
	X, Y  float64
	Speed float64
}

// EnemySpawns lists the enemies, one per field corner except the player's.
var EnemySpawns = []EnemySpawn{
	{X: FieldWidth, Y: 0, Speed: 2},
	{X: FieldWidth, Y: FieldHeight, Speed: 1.5},
	{X: 0, Y: FieldHeight, Speed: 1.8},
}

// Power-up
const (
	PowerUpX         = 400
	PowerUpY         = 400
	PowerUpDiameter  = 50
	PowerUpBonus     = 200
	PowerUpThreshold = 100 // Shown once health drops below this
)

// Decoy
const (
	DecoyX          = 50
	DecoyY          = 50
	DecoyDiameter   = 20
	DecoyShowFrames = 300
)

// Keyboard steering moves the target by this many units per frame held.
const KeyNudge = 12

// Render area clamp, in terminal cells.
const (
	MaxTermWidth  = 160
	MaxTermHeight = 80
)

// Screens
const (
	ShutdownDisplaySeconds = 10.0 // Seconds to show shutdown message before auto-disconnect
	RestartDelaySeconds    = 1.0  // Seconds on the game over screen before a restart is accepted
)

// Client rendering
const (
	DefaultFPS = 60
)

// FrameTime returns the frame duration for the given rate.
func FrameTime(fps int) time.Duration {
	if fps <= 0 {
		fps = DefaultFPS
	}
	return time.Second / time.Duration(fps)
}
