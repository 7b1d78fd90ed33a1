package game

// Evaluate decides the result of a board. No result is possible while any card is face down,
// however lopsided the captures have been.
func Evaluate(b *Board) Outcome {
	if b.Unrevealed() > 0 {
		return Outcome{}
	}

	red, blue := b.PieceCount(Red), b.PieceCount(Blue)
	switch {
	case red == 0 && blue == 0:
		return Outcome{Kind: Draw}
	case red == 0:
		return Outcome{Kind: Win, Winner: Blue}
	case blue == 0:
		return Outcome{Kind: Win, Winner: Red}
	}
	return Outcome{}
}
