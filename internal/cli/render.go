package cli

import (
	"fmt"
	"io"
	"strings"

	"animal-chess/internal/game"
)

// cellSymbol is "##" face down, ".." empty, otherwise the color letter and the rank ("R1" is
// the red rat).
func cellSymbol(c game.Cell) string {
	switch {
	case !c.Revealed:
		return "##"
	case c.Empty():
		return ".."
	}
	return strings.ToUpper(c.Piece.Color.String()[:1]) + fmt.Sprint(c.Piece.Rank())
}

func renderBoard(w io.Writer, b game.Board) {
	fmt.Fprintln(w, "     a   b   c   d")
	for r := 0; r < game.GridSize; r++ {
		fmt.Fprintf(w, "  %d ", r+1)
		for c := 0; c < game.GridSize; c++ {
			fmt.Fprintf(w, " %s ", cellSymbol(b[game.Index(r, c)]))
		}
		fmt.Fprintln(w)
	}
	fmt.Fprintf(w, "  center: %s\n", cellSymbol(b[game.Center]))
}

func renderMoves(w io.Writer, moves []game.Move) {
	names := make([]string, len(moves))
	for i, m := range moves {
		names[i] = m.String()
	}
	fmt.Fprintf(w, "  %s\n", strings.Join(names, ", "))
}
