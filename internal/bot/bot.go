// Package bot holds the move suggesters that drive the automated side of a game.
package bot

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"

	"animal-chess/internal/config"
	"animal-chess/internal/game"
)

var (
	ErrNoLegalMoves = errors.New("no legal moves")
	ErrSuggestion   = errors.New("suggestion failed")
	ErrUnknownKind  = errors.New("unknown bot kind")
)

// View is the read-only snapshot a suggester decides on. Face-down pieces are masked.
type View struct {
	Board game.Board
	Color game.Color
	Legal []game.Move

	// Weights overrides the suggester's heuristic weights for this game, if set.
	Weights *config.Weights
}

type Suggestion struct {
	Move      game.Move
	Rationale string
}

// Suggester proposes one of v.Legal. Callers must still validate the result.
type Suggester interface {
	Suggest(ctx context.Context, v View) (Suggestion, error)
}

// Contains reports whether m is one of the legal moves of v.
func (v View) Contains(m game.Move) bool {
	for _, l := range v.Legal {
		if l == m {
			return true
		}
	}
	return false
}

// New builds the suggester named by cfg.BotKind.
func New(cfg config.Config, r *rand.Rand) (Suggester, error) {
	switch strings.ToLower(cfg.BotKind) {
	case "", "greedy":
		return NewGreedy(cfg), nil
	case "random":
		return NewRandom(r), nil
	case "script":
		return NewScriptFile(cfg.BotScript)
	case "process":
		fields := strings.Fields(cfg.BotCmd)
		if len(fields) == 0 {
			return nil, fmt.Errorf("%w: process bot needs BOT_CMD", ErrUnknownKind)
		}
		return NewProcess(fields[0], fields[1:]...), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownKind, cfg.BotKind)
}
