package cli

import (
	"fmt"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"
)

var rulesText = heredoc.Doc(`
	Board
	  Cells a1..d4 form a 4x4 grid. The center sits between b2, c2, b3 and c3 and
	  touches only those four cells. Pieces move one step up, down, left or right.

	Setup
	  Each side owns eight animals, ranked low to high:
	    1 rat  2 cat  3 dog  4 wolf  5 leopard  6 tiger  7 lion  8 elephant
	  All sixteen are dealt face down onto the grid. The center starts empty.

	Turn
	  Flip any face-down card, whoever owns it, or step one of your revealed
	  animals to a revealed neighboring cell. Either action ends the turn.
	  Face-down cells can never be entered.

	Colors
	  Nobody owns a color until the first card is turned over. With the default
	  "flipper" policy the player who made that flip plays the revealed color.

	Capture
	  An animal takes an enemy of equal or lower rank. The rat takes the elephant,
	  and the elephant never takes the rat. Equal ranks remove both animals.

	Center
	  Only a rat may enter the center, and only while it is empty. A rat in the
	  center cannot be attacked.

	End
	  No result is decided while any card is face down. Once all are revealed, a
	  side with no animals left loses; if both sides are wiped out it is a draw.
`)

func Rules() *cobra.Command {
	return &cobra.Command{
		Use:   "rules",
		Short: "Print the rules of the game",
		Args:  cobra.NoArgs,

		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprint(cmd.OutOrStdout(), rulesText)
		},
	}
}
