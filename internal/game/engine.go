package game

import (
	"fmt"
	"math/rand"
	"strings"
)

// BindingPolicy decides which color the primary participant plays once the first card is flipped.
type BindingPolicy int

const (
	// BindFlipper gives the revealed color to whoever flipped it. The opening turn is relabeled
	// to that color so the other side moves next.
	BindFlipper BindingPolicy = iota
	// BindRevealed always gives the first revealed color to the primary participant, whoever
	// flipped it. Turns keep alternating from the opening color.
	BindRevealed
)

func (p BindingPolicy) String() string {
	if p == BindRevealed {
		return "revealed"
	}
	return "flipper"
}

func ParseBindingPolicy(s string) (BindingPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "flipper":
		return BindFlipper, nil
	case "revealed":
		return BindRevealed, nil
	}
	return BindFlipper, fmt.Errorf("%w: %q", ErrUnknownPolicy, s)
}

type Options struct {
	Policy BindingPolicy

	// PrimaryOpens is true when the primary participant makes the first flip.
	PrimaryOpens bool

	// MaxPlies ends the game in a draw after that many actions. Zero means no limit.
	MaxPlies int
}

func DefaultOptions() Options {
	return Options{Policy: BindFlipper, PrimaryOpens: true}
}

// FlipRecord is written once, by the first flip of the game.
type FlipRecord struct {
	Cell     int   `json:"cell"`
	Turn     Color `json:"turn"`     // color on turn when the flip happened
	Revealed Color `json:"revealed"` // color of the revealed piece
	Opener   Color `json:"opener"`   // color the flipping participant plays from now on
}

type Controllers struct {
	Red  Controller `json:"red"`
	Blue Controller `json:"blue"`
}

func (c Controllers) Of(col Color) Controller {
	switch col {
	case Red:
		return c.Red
	case Blue:
		return c.Blue
	}
	return Unassigned
}

func (c *Controllers) Set(col Color, ctl Controller) {
	switch col {
	case Red:
		c.Red = ctl
	case Blue:
		c.Blue = ctl
	}
}

// Game is the state machine for one game. It is not safe for concurrent use; hosts serialize
// access to it.
type Game struct {
	Board       Board
	Turn        Color
	Outcome     Outcome
	Controllers Controllers
	Primary     Color
	FirstFlip   *FlipRecord
	History     []string
	Plies       int

	opts Options
}

// NewGame deals a fresh board from r. Red is on turn until the first flip binds colors.
func NewGame(r *rand.Rand, opts Options) *Game {
	return newGame(NewBoard(r), opts)
}

// NewGameWithBoard starts a game from an arbitrary position. The center must be face up and
// hold nothing but a rat, and every face-down cell must hold a card.
func NewGameWithBoard(b Board, opts Options) (*Game, error) {
	if err := validate(&b); err != nil {
		return nil, err
	}
	return newGame(b, opts), nil
}

func newGame(b Board, opts Options) *Game {
	g := &Game{
		Board: b,
		Turn:  Red,
		opts:  opts,
	}
	for i := range g.Board {
		g.Board[i].Index = i
	}
	return g
}

func validate(b *Board) error {
	center := b[Center]
	if !center.Revealed {
		return fmt.Errorf("%w: center is face down", ErrInvalidBoard)
	}
	if !center.Empty() && center.Piece.Kind != Rat {
		return fmt.Errorf("%w: %s in the center", ErrInvalidBoard, center.Piece)
	}

	seen := map[string]bool{}
	for i, c := range b {
		if !c.Revealed && c.Empty() {
			return fmt.Errorf("%w: %s is face down and empty", ErrInvalidBoard, CellName(i))
		}
		if c.Empty() {
			continue
		}
		if seen[c.Piece.ID] {
			return fmt.Errorf("%w: %s appears twice", ErrInvalidBoard, c.Piece.ID)
		}
		seen[c.Piece.ID] = true
	}
	return nil
}

func (g *Game) Options() Options { return g.opts }

func (g *Game) Phase() Phase {
	switch {
	case g.Outcome.Concluded():
		return Concluded
	case g.FirstFlip == nil:
		return AwaitingFirstFlip
	}
	return InProgress
}

// LegalMoves lists the actions available to the color on turn.
func (g *Game) LegalMoves() []Move {
	if g.Outcome.Concluded() {
		return nil
	}
	return LegalMoves(&g.Board, g.Turn)
}

// Apply validates m against the legal moves of the color on turn and applies it. Either the
// whole action (reveal or relocation, captures, binding, turn advance, result) is committed, or
// nothing changes.
func (g *Game) Apply(m Move) (Transition, error) {
	if g.Outcome.Concluded() {
		return Transition{}, ErrGameConcluded
	}
	if m.Flip {
		m.From = NoCell
	}
	if !IsLegal(&g.Board, g.Turn, m) {
		return Transition{}, fmt.Errorf("%w: %s by %s", ErrInvalidMove, m, g.Turn)
	}

	next := g.Board
	tr := Transition{Mover: g.Turn, Move: m}

	if m.Flip {
		cell := &next[m.To]
		cell.Revealed = true
		tr.Event = EventFlip
		tr.Piece = cell.Piece
	} else {
		src, dst := &next[m.From], &next[m.To]
		if src.Empty() || src.Piece.Color != g.Turn {
			return Transition{}, fmt.Errorf("%w: %s holds no %s piece", ErrInvalidMove, CellName(m.From), g.Turn)
		}
		att := src.Piece
		tr.Piece = att

		switch {
		case dst.Empty():
			tr.Event = EventMove
			dst.Piece = att
		case Resolve(att, dst.Piece) == MutualElimination:
			tr.Event = EventMutualElimination
			tr.Captured = []Piece{dst.Piece, att}
			dst.Piece = Piece{}
		default:
			tr.Event = EventCapture
			tr.Captured = []Piece{dst.Piece}
			dst.Piece = att
		}
		src.Piece = Piece{}
	}

	// Commit.
	g.Board = next
	g.Plies++

	if tr.Event == EventFlip && g.FirstFlip == nil {
		g.bind(m.To, tr.Piece.Color)
		rec := *g.FirstFlip
		tr.FirstFlip = &rec
		tr.Mover = rec.Opener
	}
	tr.Lines = append(tr.Lines, describe(tr))

	g.Turn = g.Turn.Opponent()
	g.Outcome = Evaluate(&g.Board)
	tr.Lines = append(tr.Lines, g.settle()...)

	g.History = append(g.History, tr.Lines...)
	tr.Outcome = g.Outcome
	tr.Next = g.Turn
	return tr, nil
}

func (g *Game) bind(cell int, revealed Color) {
	rec := &FlipRecord{Cell: cell, Turn: g.Turn, Revealed: revealed, Opener: g.Turn}

	switch g.opts.Policy {
	case BindRevealed:
		g.Primary = revealed
	default:
		rec.Opener = revealed
		g.Turn = revealed
		if g.opts.PrimaryOpens {
			g.Primary = revealed
		} else {
			g.Primary = revealed.Opponent()
		}
	}
	g.FirstFlip = rec
}

// settle handles what happens after the turn advanced: announcing a result, the move limit,
// and a side left without any legal action once every card is face up.
func (g *Game) settle() []string {
	if g.Outcome.Concluded() {
		return []string{announce(g.Outcome)}
	}

	if g.opts.MaxPlies > 0 && g.Plies >= g.opts.MaxPlies {
		g.Outcome = Outcome{Kind: Draw}
		return []string{fmt.Sprintf("draw: move limit of %d reached", g.opts.MaxPlies)}
	}

	if len(LegalMoves(&g.Board, g.Turn)) > 0 {
		return nil
	}

	blocked := g.Turn
	if len(LegalMoves(&g.Board, blocked.Opponent())) == 0 {
		g.Outcome = Outcome{Kind: Draw}
		return []string{"draw: neither side has a legal move"}
	}
	g.Turn = blocked.Opponent()
	return []string{fmt.Sprintf("%s has no legal move; turn passes to %s", blocked, g.Turn)}
}

// Clone returns a deep copy that shares nothing mutable with g.
func (g *Game) Clone() *Game {
	cp := *g
	cp.History = append([]string(nil), g.History...)
	if g.FirstFlip != nil {
		rec := *g.FirstFlip
		cp.FirstFlip = &rec
	}
	return &cp
}

// Masked returns a copy of b with face-down pieces hidden.
func (b Board) Masked() Board {
	for i := range b {
		if !b[i].Revealed {
			b[i].Piece = Piece{}
		}
	}
	return b
}

// State is a read-only projection of a game for presentation. Face-down pieces are hidden.
type State struct {
	Board       Board       `json:"board"`
	Turn        Color       `json:"turn"`
	Phase       Phase       `json:"phase"`
	Outcome     Outcome     `json:"outcome"`
	Controllers Controllers `json:"controllers"`
	Primary     Color       `json:"primary"`
	FirstFlip   *FlipRecord `json:"first_flip,omitempty"`
	Unrevealed  int         `json:"unrevealed"`
	History     []string    `json:"history"`
}

func (g *Game) State() State {
	c := g.Clone()
	return State{
		Board:       c.Board.Masked(),
		Turn:        c.Turn,
		Phase:       c.Phase(),
		Outcome:     c.Outcome,
		Controllers: c.Controllers,
		Primary:     c.Primary,
		FirstFlip:   c.FirstFlip,
		Unrevealed:  c.Board.Unrevealed(),
		History:     c.History,
	}
}
