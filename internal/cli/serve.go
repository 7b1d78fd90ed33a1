package cli

import (
	"io"
	"math/rand"
	"time"

	httpapi "animal-chess/internal/api/http"
	"animal-chess/internal/api/ws"
	"animal-chess/internal/bot"
	"animal-chess/internal/config"
	"animal-chess/internal/room"
	"animal-chess/internal/store"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func (a *app) Serve() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP and WebSocket server",
		Long: heredoc.Doc(`
			serve exposes games over HTTP (create-game, state, possible-moves, flip, move,
			move-bot) and streams every transition to WebSocket clients on /ws?game_id=...
		`),
		Args: cobra.NoArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
				a.cfg.HTTPAddr = addr
			}
			return Serve(a.cfg)
		},
	}

	cmd.Flags().String("addr", "", "Listen address, overrides HTTP_ADDR")
	return cmd
}

// NewServer wires the store, suggester, room manager, hub and router for cfg. The returned
// closer stops an external bot program, if any.
func NewServer(cfg config.Config) (*gin.Engine, io.Closer, error) {
	sg, err := bot.New(cfg, rand.New(rand.NewSource(time.Now().UnixNano())))
	if err != nil {
		return nil, nil, err
	}

	mem := store.NewMemoryStore()
	rm, err := room.NewManager(mem, cfg, sg, nil)
	if err != nil {
		return nil, nil, err
	}

	hub := ws.NewHub(rm)
	if d := cfg.BotTimeout(); d > 0 {
		hub.BotTimeout = 2 * d
	}
	rm.SetHub(hub)

	return httpapi.NewRouter(rm, hub, cfg), closerFor(sg), nil
}

func Serve(cfg config.Config) error {
	r, closer, err := NewServer(cfg)
	if err != nil {
		return err
	}
	defer closer.Close()

	logrus.WithFields(logrus.Fields{"addr": cfg.HTTPAddr, "bot": cfg.BotKind, "policy": cfg.BindingPolicy}).Info("listening")
	return r.Run(cfg.HTTPAddr)
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

func closerFor(sg bot.Suggester) io.Closer {
	if c, ok := sg.(io.Closer); ok {
		return c
	}
	return nopCloser{}
}
