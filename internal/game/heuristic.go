package game

import "animal-chess/internal/config"

// HeuristicScore rates a legal move m for color c one ply deep. Higher is better.
func HeuristicScore(b *Board, c Color, m Move, cfg config.Config) int {
	w := cfg.Weights

	// Flip: the card underneath is unknown to the mover.
	if m.Flip {
		score := w.WFlip
		// A flip next to our own exposed pieces may wake an attacker.
		for _, n := range Neighbors(m.To) {
			if cell := b[n]; cell.Revealed && !cell.Empty() && cell.Piece.Color == c {
				score -= w.WDanger / 2
			}
		}
		return score
	}

	att := b[m.From].Piece
	score := 0

	// Escaping a threat is worth as much as the piece at risk.
	if threatened(b, m.From, att) {
		score += w.WDanger * att.Rank()
	}

	after := *b
	after[m.From].Piece = Piece{}

	if def := b[m.To].Piece; !def.IsZero() {
		if Resolve(att, def) == MutualElimination {
			return score + w.WTrade*def.Rank()
		}
		score += w.WCapture * def.Rank()
	}
	after[m.To].Piece = att

	if m.To == Center {
		score += w.WCenter
	}

	// Walking into a capture.
	if threatened(&after, m.To, att) {
		score -= w.WDanger * att.Rank()
	}

	return score
}

// threatened reports whether an opposing revealed piece next to idx could take p there.
func threatened(b *Board, idx int, p Piece) bool {
	if idx == Center {
		return false
	}
	for _, n := range Neighbors(idx) {
		cell := b[n]
		if !cell.Revealed || cell.Empty() || cell.Piece.Color == p.Color {
			continue
		}
		if CanCapture(cell.Piece, p) {
			return true
		}
	}
	return false
}
