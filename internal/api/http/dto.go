package http

import (
	"encoding/json"
	"fmt"

	"animal-chess/internal/config"
	"animal-chess/internal/game"
)

// CellRef is a cell given either as an index (5) or by name ("b2", "center").
type CellRef int

func (c *CellRef) UnmarshalJSON(b []byte) error {
	var n int
	if err := json.Unmarshal(b, &n); err == nil {
		if _, ok := game.ParseCell(fmt.Sprint(n)); !ok {
			return fmt.Errorf("cell %d out of range", n)
		}
		*c = CellRef(n)
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("cell must be an index or a name")
	}
	idx, ok := game.ParseCell(s)
	if !ok {
		return fmt.Errorf("unknown cell %q", s)
	}
	*c = CellRef(idx)
	return nil
}

// CreateGameRequest represents the payload for /create-game.
type CreateGameRequest struct {
	Mode       string `json:"mode" example:"bot"`
	HumanOpens bool   `json:"human_opens"`
	Seed       int64  `json:"seed"`
	MaxPlies   int    `json:"max_plies"`

	// Weights tune the automated side of this game only.
	Weights *config.Weights `json:"weights,omitempty"`
}

// FlipRequest reveals one face-down card.
type FlipRequest struct {
	GameID string   `json:"game_id" binding:"required"`
	Cell   *CellRef `json:"cell" binding:"required"`
}

// MoveRequest steps a revealed piece to a neighboring cell.
type MoveRequest struct {
	GameID string   `json:"game_id" binding:"required"`
	From   *CellRef `json:"from" binding:"required"`
	To     *CellRef `json:"to" binding:"required"`
}

// MoveBotRequest lets the automated side act.
type MoveBotRequest struct {
	GameID string `json:"game_id" binding:"required"`
}

// UpdateGameWeightsRequest replaces the heuristic weights of one game.
type UpdateGameWeightsRequest struct {
	GameID  string          `json:"game_id" binding:"required"`
	Weights *config.Weights `json:"weights" binding:"required"`
}

// Box summarizes what the side on turn can do with one target cell.
type Box struct {
	Cell int    `json:"cell"`
	Name string `json:"name"`
	Mode string `json:"mode"` // flip, move or capture
}
