// Package cli holds the animal-chess command line: a terminal game, the HTTP server and the
// rules text.
package cli

import (
	"animal-chess/internal/config"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

type app struct {
	cfg config.Config
}

func Root() *cobra.Command {
	a := &app{cfg: config.Default()}

	root := &cobra.Command{
		Use:   "animal-chess",
		Short: "Hidden-information animal chess on a 4x4 board",
		Long: heredoc.Doc(`
			animal-chess plays the face-down animal chess variant: sixteen animals dealt
			face down on a 4x4 grid, plus a center cell only a rat may enter.

			Configuration is read from $XDG_CONFIG_HOME/animal-chess/config.yaml (or the file
			named by CONFIG_FILE), then from the environment and a .env file.
		`),
		Args: cobra.NoArgs,

		SilenceErrors: true,
		SilenceUsage:  true,

		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			a.cfg = cfg
			logrus.SetLevel(cfg.Level())

			// If --trace flag is provided, set logging level to Trace.
			if cmd.Flag("trace").Changed {
				logrus.SetLevel(logrus.TraceLevel)
			}
			return nil
		},
	}

	// global flags
	root.PersistentFlags().BoolP("trace", "t", false, "Show Trace Information")

	root.AddCommand(a.Play())
	root.AddCommand(a.Serve())
	root.AddCommand(Rules())

	return root
}
