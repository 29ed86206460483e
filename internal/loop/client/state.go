package client

import (
	"time"

	"github.com/tomz197/evade/internal/input"
)

// GameState represents the current game phase for a client.
type GameState int

const (
	GameStateStart    GameState = iota // Title screen
	GameStatePlaying                   // Active gameplay
	GameStateOver                      // Game ended, show result and restart prompt
	GameStateShutdown                  // Server is shutting down
)

// String returns the state name used in logs.
func (s GameState) String() string {
	switch s {
	case GameStateStart:
		return "start"
	case GameStatePlaying:
		return "playing"
	case GameStateOver:
		return "over"
	case GameStateShutdown:
		return "shutdown"
	default:
		return "unknown"
	}
}

// ClientState holds per-session presentation state. The simulation itself
// lives in the client's world.
type ClientState struct {
	Input         input.Input
	GameState     GameState
	Running       bool          // Client loop running
	delta         time.Duration // Frame delta time
	restartDelay  float64       // Seconds before the game over screen accepts a restart
	shutdownTimer float64       // Countdown before auto-disconnect on shutdown
	isInactive    bool          // Whether the client is in inactive warning state
	spaceHeld     bool          // Space was down last frame; decoys trigger on the press edge
	games         int           // Games started this session

	prevGameState GameState
	wasInactive   bool
}

// NewClientState creates a new initialized client state.
func NewClientState() *ClientState {
	return &ClientState{
		GameState: GameStateStart,
		Running:   true,
	}
}
