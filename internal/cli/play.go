package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"strings"
	"time"

	"animal-chess/internal/bot"
	"animal-chess/internal/game"
	"animal-chess/internal/room"
	"animal-chess/internal/store"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"
)

var errQuit = errors.New("quit")

const promptHelp = `commands: flip b2 | move b2 c2 (or b2-c2) | moves | board | help | quit`

func (a *app) Play() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play a game in the terminal",
		Long: heredoc.Doc(`
			play starts a game in the terminal, against the automated side by default or
			with two players sharing the keyboard (--mode hotseat).

			Cells are named a1..d4 and "center". Type "help" at the prompt for commands.
		`),
		Args: cobra.NoArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			mode, _ := flags.GetString("mode")
			second, _ := flags.GetBool("second")
			seed, _ := flags.GetInt64("seed")

			cfg := a.cfg
			if kind, _ := flags.GetString("bot"); kind != "" {
				cfg.BotKind = kind
			}
			if policy, _ := flags.GetString("policy"); policy != "" {
				cfg.BindingPolicy = policy
			}

			sg, err := bot.New(cfg, rand.New(rand.NewSource(time.Now().UnixNano())))
			if err != nil {
				return err
			}
			defer closerFor(sg).Close()

			rm, err := room.NewManager(store.NewMemoryStore(), cfg, sg, nil)
			if err != nil {
				return err
			}
			snap, err := rm.CreateGame(room.CreateRequest{
				Mode:       room.Mode(mode),
				HumanOpens: !second,
				Seed:       seed,
			})
			if err != nil {
				return err
			}

			s := newSpinner(cmd.OutOrStdout())
			return playGame(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), rm, snap.ID, s)
		},
	}

	cmd.Flags().String("mode", string(room.ModeBot), "bot or hotseat")
	cmd.Flags().Bool("second", false, "Let the automated side make the first flip")
	cmd.Flags().Int64("seed", 0, "Deal seed, 0 for a random deal")
	cmd.Flags().String("bot", "", "Suggester: greedy, random, script or process")
	cmd.Flags().String("policy", "", "Color binding policy: flipper or revealed")
	return cmd
}

// thinker shows that the automated side is deciding.
type thinker interface {
	Start()
	Stop()
}

func newSpinner(w io.Writer) *spinner.Spinner {
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(w))
	s.Suffix = " thinking..."
	return s
}

func playGame(ctx context.Context, in io.Reader, out io.Writer, rm *room.Manager, id string, s thinker) error {
	if ctx == nil {
		ctx = context.Background()
	}
	sc := bufio.NewScanner(in)
	fmt.Fprintln(out, promptHelp)

	for {
		snap, err := rm.State(id)
		if err != nil {
			return err
		}

		if snap.Phase == game.Concluded {
			renderBoard(out, snap.Board)
			fmt.Fprintf(out, "game over: %s\n", snap.Outcome)
			return nil
		}

		if snap.Awaiting == game.Automated {
			s.Start()
			tr, sg, _, err := rm.BotMove(ctx, id)
			s.Stop()
			if err != nil {
				return err
			}
			printLines(out, tr.Lines)
			if sg.Rationale != "" {
				fmt.Fprintf(out, "  (%s)\n", sg.Rationale)
			}
			continue
		}

		renderBoard(out, snap.Board)
		fmt.Fprintf(out, "%s> ", prompt(snap))
		if !sc.Scan() {
			return sc.Err()
		}

		mv, meta, err := parseCommand(sc.Text())
		switch {
		case err != nil:
			fmt.Fprintln(out, err)
			continue
		case meta == "quit":
			return nil
		case meta == "help":
			fmt.Fprintln(out, promptHelp)
			continue
		case meta == "board":
			continue
		case meta == "moves":
			_, moves, err := rm.PossibleMoves(id)
			if err != nil {
				return err
			}
			renderMoves(out, moves)
			continue
		}

		tr, _, err := rm.Apply(id, mv)
		if err != nil {
			fmt.Fprintf(out, "not allowed: %v\n", err)
			continue
		}
		printLines(out, tr.Lines)
	}
}

func prompt(s room.Snapshot) string {
	if s.FirstFlip == nil {
		return "opening flip"
	}
	if s.Mode == room.ModeBot {
		return "you (" + s.Turn.String() + ")"
	}
	return s.Turn.String()
}

func printLines(w io.Writer, lines []string) {
	for _, l := range lines {
		fmt.Fprintf(w, "* %s\n", l)
	}
}

// parseCommand reads one prompt line. It returns either a move or a meta command.
func parseCommand(line string) (game.Move, string, error) {
	fields := strings.Fields(strings.ToLower(line))
	if len(fields) == 0 {
		return game.Move{}, "", errors.New(promptHelp)
	}

	switch fields[0] {
	case "quit", "exit", "q":
		return game.Move{}, "quit", nil
	case "help", "h", "?":
		return game.Move{}, "help", nil
	case "board", "b":
		return game.Move{}, "board", nil
	case "moves":
		return game.Move{}, "moves", nil
	case "flip", "f":
		if len(fields) != 2 {
			return game.Move{}, "", errors.New("usage: flip <cell>")
		}
		cell, ok := game.ParseCell(fields[1])
		if !ok {
			return game.Move{}, "", fmt.Errorf("unknown cell %q", fields[1])
		}
		return game.FlipMove(cell), "", nil
	case "move", "m":
		fields = fields[1:]
	}

	if len(fields) == 1 && strings.Contains(fields[0], "-") {
		fields = strings.SplitN(fields[0], "-", 2)
	}
	if len(fields) != 2 {
		return game.Move{}, "", errors.New("usage: move <from> <to>")
	}
	from, ok := game.ParseCell(fields[0])
	if !ok {
		return game.Move{}, "", fmt.Errorf("unknown cell %q", fields[0])
	}
	to, ok := game.ParseCell(fields[1])
	if !ok {
		return game.Move{}, "", fmt.Errorf("unknown cell %q", fields[1])
	}
	return game.StepMove(from, to), "", nil
}
