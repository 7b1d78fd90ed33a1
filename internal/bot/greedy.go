package bot

import (
	"context"
	"fmt"

	"animal-chess/internal/config"
	"animal-chess/internal/game"
)

// Greedy scores every legal move one ply deep and keeps the first best one. Per-game weights
// in the view win over the configured ones.
type Greedy struct {
	cfg config.Config
}

func NewGreedy(cfg config.Config) *Greedy {
	return &Greedy{cfg: cfg}
}

func (b *Greedy) Suggest(_ context.Context, v View) (Suggestion, error) {
	if len(v.Legal) == 0 {
		return Suggestion{}, ErrNoLegalMoves
	}

	cfg := b.cfg
	if v.Weights != nil {
		cfg.Weights = *v.Weights
	}

	best := v.Legal[0]
	bestScore := game.HeuristicScore(&v.Board, v.Color, best, cfg)
	for _, m := range v.Legal[1:] {
		if score := game.HeuristicScore(&v.Board, v.Color, m, cfg); score > bestScore {
			best = m
			bestScore = score
		}
	}

	return Suggestion{
		Move:      best,
		Rationale: fmt.Sprintf("%s scores %d, best of %d", best, bestScore, len(v.Legal)),
	}, nil
}
