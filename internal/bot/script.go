package bot

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	lua "github.com/yuin/gopher-lua"
	"github.com/yuin/gopher-lua/parse"
)

// Script runs a Lua chunk that defines a global function
//
//	suggest(view) -> index [, rationale]
//
// view.color is "red" or "blue", view.board is a list of 17 cells {index, revealed, kind, color,
// rank} and view.moves a list of {from, to, flip}. view.weights holds the game's heuristic weights
// {capture, flip, danger, center, trade} when the game sets its own. The returned index is 1-based
// into view.moves.
type Script struct {
	name  string
	proto *lua.FunctionProto
}

// NewScript compiles src once. Each Suggest call runs it in a fresh Lua state.
func NewScript(name, src string) (*Script, error) {
	chunk, err := parse.Parse(strings.NewReader(src), name)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", name, err)
	}
	proto, err := lua.Compile(chunk, name)
	if err != nil {
		return nil, fmt.Errorf("compile %s: %w", name, err)
	}
	return &Script{name: name, proto: proto}, nil
}

func NewScriptFile(path string) (*Script, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return NewScript(path, string(src))
}

func (s *Script) Suggest(ctx context.Context, v View) (Suggestion, error) {
	if len(v.Legal) == 0 {
		return Suggestion{}, ErrNoLegalMoves
	}

	L := lua.NewState()
	defer L.Close()
	L.SetContext(ctx)

	L.Push(L.NewFunctionFromProto(s.proto))
	if err := L.PCall(0, lua.MultRet, nil); err != nil {
		return Suggestion{}, s.fail(ctx, err)
	}

	fn := L.GetGlobal("suggest")
	if fn.Type() != lua.LTFunction {
		return Suggestion{}, fmt.Errorf("%w: %s defines no suggest function", ErrSuggestion, s.name)
	}
	if err := L.CallByParam(lua.P{Fn: fn, NRet: 2, Protect: true}, viewTable(L, v)); err != nil {
		return Suggestion{}, s.fail(ctx, err)
	}
	ret, why := L.Get(-2), L.Get(-1)
	L.Pop(2)

	n, ok := ret.(lua.LNumber)
	if !ok {
		return Suggestion{}, fmt.Errorf("%w: %s returned %s, want a move index", ErrSuggestion, s.name, ret.Type())
	}
	i := int(n) - 1
	if i < 0 || i >= len(v.Legal) {
		return Suggestion{}, fmt.Errorf("%w: %s returned index %d of %d", ErrSuggestion, s.name, int(n), len(v.Legal))
	}

	sg := Suggestion{Move: v.Legal[i]}
	if str, ok := why.(lua.LString); ok {
		sg.Rationale = string(str)
	}
	logrus.WithFields(logrus.Fields{"script": s.name, "move": sg.Move}).Debug("script suggestion")
	return sg, nil
}

func (s *Script) fail(ctx context.Context, err error) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}
	return fmt.Errorf("%w: %s: %v", ErrSuggestion, s.name, err)
}

func viewTable(L *lua.LState, v View) *lua.LTable {
	board := L.NewTable()
	for _, c := range v.Board {
		cell := L.NewTable()
		cell.RawSetString("index", lua.LNumber(c.Index))
		cell.RawSetString("revealed", lua.LBool(c.Revealed))
		if !c.Empty() {
			cell.RawSetString("kind", lua.LString(c.Piece.Kind.String()))
			cell.RawSetString("color", lua.LString(c.Piece.Color.String()))
			cell.RawSetString("rank", lua.LNumber(c.Piece.Rank()))
		}
		board.Append(cell)
	}

	moves := L.NewTable()
	for _, m := range v.Legal {
		mv := L.NewTable()
		mv.RawSetString("from", lua.LNumber(m.From))
		mv.RawSetString("to", lua.LNumber(m.To))
		mv.RawSetString("flip", lua.LBool(m.Flip))
		moves.Append(mv)
	}

	view := L.NewTable()
	view.RawSetString("color", lua.LString(v.Color.String()))
	view.RawSetString("board", board)
	view.RawSetString("moves", moves)
	if w := v.Weights; w != nil {
		wt := L.NewTable()
		wt.RawSetString("capture", lua.LNumber(w.WCapture))
		wt.RawSetString("flip", lua.LNumber(w.WFlip))
		wt.RawSetString("danger", lua.LNumber(w.WDanger))
		wt.RawSetString("center", lua.LNumber(w.WCenter))
		wt.RawSetString("trade", lua.LNumber(w.WTrade))
		view.RawSetString("weights", wt)
	}
	return view
}
