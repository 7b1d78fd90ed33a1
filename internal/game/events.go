package game

import "fmt"

type EventKind int

const (
	EventFlip EventKind = iota
	EventMove
	EventCapture
	EventMutualElimination
)

func (e EventKind) String() string {
	switch e {
	case EventFlip:
		return "flip"
	case EventMove:
		return "move"
	case EventCapture:
		return "capture"
	case EventMutualElimination:
		return "mutual_elimination"
	}
	return "unknown"
}

func (e EventKind) MarshalText() ([]byte, error) { return []byte(e.String()), nil }

// Transition is what one applied action did, for presentation.
type Transition struct {
	Mover     Color       `json:"mover"`
	Move      Move        `json:"move"`
	Event     EventKind   `json:"event"`
	Piece     Piece       `json:"piece"`              // revealed or moving piece
	Captured  []Piece     `json:"captured,omitempty"` // removed pieces
	FirstFlip *FlipRecord `json:"first_flip,omitempty"`
	Outcome   Outcome     `json:"outcome"`
	Next      Color       `json:"next"`
	Lines     []string    `json:"lines"`
}

func describe(tr Transition) string {
	m := tr.Move
	switch tr.Event {
	case EventFlip:
		return fmt.Sprintf("%s flips %s: %s", tr.Mover, CellName(m.To), tr.Piece)
	case EventMove:
		return fmt.Sprintf("%s moves %s %s", tr.Mover, tr.Piece.Kind, m)
	case EventCapture:
		return fmt.Sprintf("%s %s %sx%s captures %s",
			tr.Mover, tr.Piece.Kind, CellName(m.From), CellName(m.To), tr.Captured[0])
	case EventMutualElimination:
		return fmt.Sprintf("%s %s %sx%s trades with %s; both removed",
			tr.Mover, tr.Piece.Kind, CellName(m.From), CellName(m.To), tr.Captured[0])
	}
	return m.String()
}

func announce(o Outcome) string {
	switch o.Kind {
	case Win:
		return fmt.Sprintf("%s wins: %s has no pieces left", o.Winner, o.Winner.Opponent())
	case Draw:
		return "draw: no pieces left on either side"
	}
	return ""
}
