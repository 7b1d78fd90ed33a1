package room

import (
	"errors"
	"sync"
	"time"

	"animal-chess/internal/config"
	"animal-chess/internal/game"
)

var (
	ErrGameNotFound    = errors.New("game not found")
	ErrDecisionPending = errors.New("automated decision pending")
	ErrNotAutomated    = errors.New("side on turn is not automated")
	ErrNotHuman        = errors.New("side on turn is automated")
	ErrUnknownMode     = errors.New("unknown game mode")
)

type Mode string

const (
	// ModeBot is one human against the automated side.
	ModeBot Mode = "bot"
	// ModeHotseat is two humans sharing one client.
	ModeHotseat Mode = "hotseat"
)

// Game wraps one engine game with the host bookkeeping around it. All access to the engine
// goes through the Manager, which holds mu.
type Game struct {
	ID         string
	Mode       Mode
	HumanOpens bool
	CreatedAt  time.Time

	mu      sync.Mutex
	engine  *game.Game
	pending bool
	// weights tune the automated side for this game only. Nil means the server defaults.
	weights *config.Weights
}

type Store interface {
	GetGame(id string) (*Game, bool)
	SaveGame(g *Game)
}

// Snapshot is what clients see of a game.
type Snapshot struct {
	ID        string          `json:"id"`
	Mode      Mode            `json:"mode"`
	CreatedAt time.Time       `json:"created_at"`
	Pending   bool            `json:"pending"`
	Awaiting  game.Controller `json:"awaiting"`
	Weights   *config.Weights `json:"weights,omitempty"`
	game.State
}

// awaiting tells which kind of participant acts next. Before the first flip binds colors the
// opener is on turn.
func (g *Game) awaiting() game.Controller {
	if g.engine.Outcome.Concluded() {
		return game.Unassigned
	}
	if g.engine.FirstFlip == nil {
		if g.Mode == ModeBot && !g.HumanOpens {
			return game.Automated
		}
		return game.Human
	}
	return g.engine.Controllers.Of(g.engine.Turn)
}

// assignControllers binds participants to colors once the first flip has fixed the primary
// color. The primary participant is always the human.
func (g *Game) assignControllers() {
	e := g.engine
	if e.FirstFlip == nil {
		return
	}
	if g.Mode == ModeHotseat {
		e.Controllers = game.Controllers{Red: game.Human, Blue: game.Human}
		return
	}
	e.Controllers.Set(e.Primary, game.Human)
	e.Controllers.Set(e.Primary.Opponent(), game.Automated)
}

func (g *Game) snapshot() Snapshot {
	return Snapshot{
		ID:        g.ID,
		Mode:      g.Mode,
		CreatedAt: g.CreatedAt,
		Pending:   g.pending,
		Awaiting:  g.awaiting(),
		Weights:   g.customWeights(),
		State:     g.engine.State(),
	}
}

// customWeights returns a copy of the game's own weights, or nil.
func (g *Game) customWeights() *config.Weights {
	if g.weights == nil {
		return nil
	}
	w := *g.weights
	return &w
}
