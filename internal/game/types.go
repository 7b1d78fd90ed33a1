package game

import "fmt"

const (
	GridSize  = 4
	Center    = 16
	CellCount = 17

	// NoCell marks the missing source of a flip move.
	NoCell = -1
)

type Color int

const (
	NoColor Color = iota
	Red
	Blue
)

var Colors = [2]Color{Red, Blue}

func (c Color) Opponent() Color {
	switch c {
	case Red:
		return Blue
	case Blue:
		return Red
	}
	return NoColor
}

func (c Color) String() string {
	switch c {
	case Red:
		return "red"
	case Blue:
		return "blue"
	}
	return "none"
}

func (c Color) MarshalText() ([]byte, error) { return []byte(c.String()), nil }

func (c *Color) UnmarshalText(b []byte) error {
	switch string(b) {
	case "red":
		*c = Red
	case "blue":
		*c = Blue
	case "none", "":
		*c = NoColor
	default:
		return fmt.Errorf("unknown color %q", b)
	}
	return nil
}

// Kind is an animal. Its rank is fixed by the kind.
type Kind int

const (
	NoKind Kind = iota
	Rat
	Cat
	Dog
	Wolf
	Leopard
	Tiger
	Lion
	Elephant
)

var Kinds = [8]Kind{Rat, Cat, Dog, Wolf, Leopard, Tiger, Lion, Elephant}

var kindNames = [...]string{"none", "rat", "cat", "dog", "wolf", "leopard", "tiger", "lion", "elephant"}

// Rank returns 1 (Rat) through 8 (Elephant), 0 for NoKind.
func (k Kind) Rank() int {
	if k < NoKind || k > Elephant {
		return 0
	}
	return int(k)
}

func (k Kind) String() string {
	if k < NoKind || k > Elephant {
		return "unknown"
	}
	return kindNames[k]
}

func (k Kind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

func (k *Kind) UnmarshalText(b []byte) error {
	for i, name := range kindNames {
		if name == string(b) {
			*k = Kind(i)
			return nil
		}
	}
	return fmt.Errorf("unknown kind %q", b)
}

// Piece is created once per deal and never mutated. The zero Piece means "no piece".
type Piece struct {
	ID    string `json:"id"`
	Kind  Kind   `json:"kind"`
	Color Color  `json:"color"`
}

func NewPiece(c Color, k Kind) Piece {
	return Piece{ID: c.String() + "-" + k.String(), Kind: k, Color: c}
}

func (p Piece) Rank() int      { return p.Kind.Rank() }
func (p Piece) IsZero() bool   { return p.Kind == NoKind }
func (p Piece) String() string { return p.Color.String() + " " + p.Kind.String() }

type Cell struct {
	Index    int   `json:"index"`
	Piece    Piece `json:"piece"`
	Revealed bool  `json:"revealed"`
}

func (c Cell) Empty() bool { return c.Piece.IsZero() }

// Board is a fixed array so that assigning it copies every cell.
type Board [CellCount]Cell

// Unrevealed counts the cells still face down.
func (b *Board) Unrevealed() int {
	n := 0
	for i := range b {
		if !b[i].Revealed {
			n++
		}
	}
	return n
}

// PieceCount counts the pieces of a color still on the board, hidden or not.
func (b *Board) PieceCount(c Color) int {
	n := 0
	for i := range b {
		if !b[i].Empty() && b[i].Piece.Color == c {
			n++
		}
	}
	return n
}

type Move struct {
	From int  `json:"from"`
	To   int  `json:"to"`
	Flip bool `json:"flip"`
}

func FlipMove(idx int) Move { return Move{From: NoCell, To: idx, Flip: true} }

func StepMove(from, to int) Move { return Move{From: from, To: to} }

func (m Move) String() string {
	if m.Flip {
		return "flip " + CellName(m.To)
	}
	return CellName(m.From) + "-" + CellName(m.To)
}

type Controller int

const (
	Unassigned Controller = iota
	Human
	Automated
)

func (c Controller) String() string {
	switch c {
	case Human:
		return "human"
	case Automated:
		return "automated"
	}
	return "unassigned"
}

func (c Controller) MarshalText() ([]byte, error) { return []byte(c.String()), nil }

type OutcomeKind int

const (
	Ongoing OutcomeKind = iota
	Win
	Draw
)

// Outcome is Ongoing, Win (with Winner set) or Draw.
type Outcome struct {
	Kind   OutcomeKind `json:"-"`
	Winner Color       `json:"winner"`
}

func (o Outcome) Concluded() bool { return o.Kind != Ongoing }

func (o Outcome) String() string {
	switch o.Kind {
	case Win:
		return o.Winner.String() + " wins"
	case Draw:
		return "draw"
	}
	return "ongoing"
}

func (o Outcome) MarshalJSON() ([]byte, error) {
	switch o.Kind {
	case Win:
		return []byte(`{"result":"win","winner":"` + o.Winner.String() + `"}`), nil
	case Draw:
		return []byte(`{"result":"draw"}`), nil
	}
	return []byte(`{"result":"ongoing"}`), nil
}

type Phase int

const (
	AwaitingFirstFlip Phase = iota
	InProgress
	Concluded
)

func (p Phase) String() string {
	switch p {
	case AwaitingFirstFlip:
		return "awaiting_first_flip"
	case InProgress:
		return "in_progress"
	}
	return "concluded"
}

func (p Phase) MarshalText() ([]byte, error) { return []byte(p.String()), nil }
