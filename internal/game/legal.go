package game

// LegalMoves generates all legal actions for color c. Cells are visited in index order and
// neighbors in Neighbors order, so the result is deterministic for a given board.
func LegalMoves(b *Board, c Color) []Move {
	var moves []Move

	for i := range b {
		cell := b[i]

		// Any face-down card may be flipped by the player on turn, whoever owns it.
		if !cell.Revealed {
			moves = append(moves, FlipMove(i))
			continue
		}

		if cell.Empty() || cell.Piece.Color != c {
			continue
		}

		for _, n := range Neighbors(i) {
			if canEnter(b, cell.Piece, n) {
				moves = append(moves, StepMove(i, n))
			}
		}
	}

	return moves
}

// canEnter checks whether p may step into (or attack) cell n.
func canEnter(b *Board, p Piece, n int) bool {
	target := b[n]

	// Face-down cells are never enterable.
	if !target.Revealed {
		return false
	}

	// The Center admits only a Rat, and only while empty.
	if n == Center && (p.Kind != Rat || !target.Empty()) {
		return false
	}

	if target.Empty() {
		return true
	}
	if target.Piece.Color == p.Color {
		return false
	}
	return CanCapture(p, target.Piece)
}

// IsLegal reports whether m is in LegalMoves(b, c).
func IsLegal(b *Board, c Color, m Move) bool {
	for _, mv := range LegalMoves(b, c) {
		if mv == m {
			return true
		}
	}
	return false
}

// Material sums the ranks of a color's pieces on the board.
func Material(b *Board, c Color) int {
	sum := 0
	for i := range b {
		if !b[i].Empty() && b[i].Piece.Color == c {
			sum += b[i].Piece.Rank()
		}
	}
	return sum
}
