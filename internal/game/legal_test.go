package game

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// openBoard returns a board with every cell revealed and empty.
func openBoard() Board {
	var b Board
	for i := range b {
		b[i].Index = i
		b[i].Revealed = true
	}
	return b
}

func place(b *Board, i int, c Color, k Kind) {
	b[i].Piece = NewPiece(c, k)
	b[i].Revealed = true
}

func movesFrom(moves []Move, from int) []Move {
	var out []Move
	for _, m := range moves {
		if !m.Flip && m.From == from {
			out = append(out, m)
		}
	}
	return out
}

func movesInto(moves []Move, to int) []Move {
	var out []Move
	for _, m := range moves {
		if !m.Flip && m.To == to {
			out = append(out, m)
		}
	}
	return out
}

func TestNewDeck(t *testing.T) {
	deck := NewDeck()
	require.Len(t, deck, 16)

	seen := map[string]bool{}
	for _, p := range deck {
		assert.False(t, seen[p.ID], "duplicate piece %s", p.ID)
		seen[p.ID] = true
		assert.Equal(t, int(p.Kind), p.Rank())
	}
}

func TestNewBoardShape(t *testing.T) {
	b := NewBoard(rand.New(rand.NewSource(7)))

	count := map[Piece]int{}
	for i := 0; i < Center; i++ {
		assert.False(t, b[i].Revealed, "cell %d revealed", i)
		require.False(t, b[i].Empty(), "cell %d empty", i)
		assert.Equal(t, i, b[i].Index)
		count[b[i].Piece]++
	}
	assert.Len(t, count, 16)
	for _, c := range Colors {
		for _, k := range Kinds {
			assert.Equal(t, 1, count[NewPiece(c, k)], "%s %s", c, k)
		}
	}

	assert.True(t, b[Center].Revealed)
	assert.True(t, b[Center].Empty())
	assert.Equal(t, 16, b.Unrevealed())
}

func TestNewBoardSeeded(t *testing.T) {
	a := NewBoard(rand.New(rand.NewSource(42)))
	b := NewBoard(rand.New(rand.NewSource(42)))
	assert.Equal(t, a, b)

	c := NewBoard(rand.New(rand.NewSource(43)))
	assert.NotEqual(t, a, c)
}

func TestCanCapture(t *testing.T) {
	rat, cat := NewPiece(Red, Rat), NewPiece(Red, Cat)
	tiger, lion := NewPiece(Blue, Tiger), NewPiece(Blue, Lion)
	elephant := NewPiece(Blue, Elephant)

	tests := []struct {
		name     string
		att, def Piece
		want     bool
	}{
		{"rat beats elephant", rat, elephant, true},
		{"elephant never takes rat", elephant, rat, false},
		{"higher takes lower", lion, cat, true},
		{"lower cannot take higher", cat, tiger, false},
		{"equal rank", NewPiece(Red, Tiger), tiger, true},
		{"rat takes rat", rat, NewPiece(Blue, Rat), true},
		{"cat cannot take elephant", cat, elephant, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanCapture(tt.att, tt.def))
		})
	}
}

func TestResolve(t *testing.T) {
	assert.Equal(t, MutualElimination, Resolve(NewPiece(Red, Wolf), NewPiece(Blue, Wolf)))
	assert.Equal(t, AttackerWins, Resolve(NewPiece(Red, Lion), NewPiece(Blue, Wolf)))
	assert.Equal(t, AttackerWins, Resolve(NewPiece(Red, Rat), NewPiece(Blue, Elephant)))
}

func TestLegalMovesFreshBoard(t *testing.T) {
	b := NewBoard(rand.New(rand.NewSource(1)))
	for _, c := range Colors {
		moves := LegalMoves(&b, c)
		require.Len(t, moves, 16)
		for i, m := range moves {
			assert.Equal(t, FlipMove(i), m)
		}
	}
}

func TestLegalMovesDeterministic(t *testing.T) {
	b := openBoard()
	place(&b, 5, Red, Rat)
	place(&b, 6, Blue, Cat)
	place(&b, 0, Red, Lion)
	b[15].Piece = NewPiece(Blue, Dog)
	b[15].Revealed = false

	first := LegalMoves(&b, Red)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, LegalMoves(&b, Red))
	}
}

func TestLegalMovesNeverEnterFaceDown(t *testing.T) {
	b := openBoard()
	place(&b, 0, Red, Elephant)
	b[1].Piece = NewPiece(Blue, Cat)
	b[1].Revealed = false

	moves := LegalMoves(&b, Red)
	assert.Empty(t, movesInto(moves, 1))
	assert.Contains(t, moves, FlipMove(1))
	assert.Contains(t, moves, StepMove(0, 4))
}

func TestLegalMovesSameColorBlocked(t *testing.T) {
	b := openBoard()
	place(&b, 0, Red, Elephant)
	place(&b, 1, Red, Rat)

	assert.NotContains(t, LegalMoves(&b, Red), StepMove(0, 1))
}

func TestElephantRatScenario(t *testing.T) {
	b := openBoard()
	place(&b, 0, Red, Elephant)
	place(&b, 1, Blue, Rat)

	assert.NotContains(t, LegalMoves(&b, Red), StepMove(0, 1))
	assert.Contains(t, LegalMoves(&b, Blue), StepMove(1, 0))
}

func TestCenterEntry(t *testing.T) {
	t.Run("only a rat enters the empty center", func(t *testing.T) {
		b := openBoard()
		place(&b, 5, Red, Cat)
		place(&b, 6, Red, Elephant)
		place(&b, 9, Red, Rat)

		into := movesInto(LegalMoves(&b, Red), Center)
		assert.Equal(t, []Move{StepMove(9, Center)}, into)
	})

	t.Run("occupied center is a safe zone", func(t *testing.T) {
		b := openBoard()
		place(&b, Center, Red, Rat)
		place(&b, 5, Blue, Rat)
		place(&b, 6, Blue, Elephant)
		place(&b, 9, Blue, Lion)
		place(&b, 10, Red, Cat)

		assert.Empty(t, movesInto(LegalMoves(&b, Blue), Center))
		assert.Empty(t, movesInto(LegalMoves(&b, Red), Center))
	})

	t.Run("rat leaves the center", func(t *testing.T) {
		b := openBoard()
		place(&b, Center, Red, Rat)
		place(&b, 5, Blue, Elephant)

		moves := movesFrom(LegalMoves(&b, Red), Center)
		assert.Equal(t, []Move{
			StepMove(Center, 5),
			StepMove(Center, 6),
			StepMove(Center, 9),
			StepMove(Center, 10),
		}, moves)
	})
}

func TestRatIntoCenterScenario(t *testing.T) {
	b := openBoard()
	place(&b, 5, Red, Rat)

	require.Contains(t, LegalMoves(&b, Red), StepMove(5, Center))

	g := mustGame(t, b, DefaultOptions())
	_, err := g.Apply(StepMove(5, Center))
	require.NoError(t, err)

	assert.True(t, g.Board[5].Empty())
	assert.Equal(t, NewPiece(Red, Rat), g.Board[Center].Piece)

	// Nothing may enter or attack the occupied center, a second rat included.
	after := g.Board
	place(&after, 6, Blue, Rat)
	place(&after, 9, Red, Cat)
	place(&after, 10, Blue, Elephant)
	for _, c := range Colors {
		assert.Empty(t, movesInto(LegalMoves(&after, c), Center), c.String())
	}
}

func TestMaterial(t *testing.T) {
	b := openBoard()
	place(&b, 0, Red, Rat)
	place(&b, 1, Red, Lion)
	place(&b, 2, Blue, Tiger)

	assert.Equal(t, 8, Material(&b, Red))
	assert.Equal(t, 6, Material(&b, Blue))
}
