package game

import "math/rand"

// NewDeck returns one piece per (color, kind) pair, unshuffled.
func NewDeck() []Piece {
	deck := make([]Piece, 0, len(Colors)*len(Kinds))
	for _, c := range Colors {
		for _, k := range Kinds {
			deck = append(deck, NewPiece(c, k))
		}
	}
	return deck
}

func shuffle[T any](r *rand.Rand, a []T) {
	r.Shuffle(len(a), func(i, j int) { a[i], a[j] = a[j], a[i] })
}

// NewBoard deals a shuffled deck face down onto cells 0..15. The Center starts revealed and empty.
func NewBoard(r *rand.Rand) Board {
	deck := NewDeck()
	shuffle(r, deck)

	var b Board
	for i := range b {
		b[i].Index = i
	}
	for i, p := range deck {
		b[i].Piece = p
	}
	b[Center].Revealed = true
	return b
}
