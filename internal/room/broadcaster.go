package room

import "animal-chess/internal/game"

// Broadcast actions.
const (
	ActionCreated    = "game_created"
	ActionTransition = "transition"
	ActionGameOver   = "game_over"
	ActionWeights    = "weights_updated"
)

type Broadcaster interface {
	Broadcast(gameID string, action string, data interface{})
}

// Event is the payload of every transition broadcast.
type Event struct {
	Transition game.Transition `json:"transition"`
	Rationale  string          `json:"rationale,omitempty"`
	State      Snapshot        `json:"state"`
}
