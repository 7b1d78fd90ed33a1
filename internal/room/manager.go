package room

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"animal-chess/internal/bot"
	"animal-chess/internal/config"
	"animal-chess/internal/game"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type Manager struct {
	store Store
	cfg   config.Config
	opts  game.Options
	bot   bot.Suggester
	hub   Broadcaster

	randMu   sync.Mutex
	rand     *rand.Rand
	fallback *bot.Random
}

// NewManager wires a manager. sg answers for the automated side; hub may be nil.
func NewManager(s Store, cfg config.Config, sg bot.Suggester, hub Broadcaster) (*Manager, error) {
	policy, err := game.ParseBindingPolicy(cfg.BindingPolicy)
	if err != nil {
		return nil, err
	}
	seed := time.Now().UnixNano()
	return &Manager{
		store:    s,
		cfg:      cfg,
		opts:     game.Options{Policy: policy},
		bot:      sg,
		hub:      hub,
		rand:     rand.New(rand.NewSource(seed)),
		fallback: bot.NewRandom(rand.New(rand.NewSource(seed + 1))),
	}, nil
}

func (m *Manager) SetHub(hub Broadcaster) {
	m.hub = hub
}

// CreateRequest describes a new game. A zero Seed deals from the manager's own source; nil
// Weights keep the server's heuristic weights.
type CreateRequest struct {
	Mode       Mode            `json:"mode"`
	HumanOpens bool            `json:"human_opens"`
	Seed       int64           `json:"seed"`
	MaxPlies   int             `json:"max_plies"`
	Weights    *config.Weights `json:"weights,omitempty"`
}

func (m *Manager) CreateGame(req CreateRequest) (Snapshot, error) {
	switch req.Mode {
	case "":
		req.Mode = ModeBot
	case ModeBot, ModeHotseat:
	default:
		return Snapshot{}, fmt.Errorf("%w: %q", ErrUnknownMode, req.Mode)
	}
	if req.Weights != nil {
		if err := req.Weights.Validate(); err != nil {
			return Snapshot{}, err
		}
		w := *req.Weights
		req.Weights = &w
	}

	opts := m.opts
	opts.MaxPlies = req.MaxPlies
	opts.PrimaryOpens = req.Mode == ModeHotseat || req.HumanOpens

	var eng *game.Game
	if req.Seed != 0 {
		eng = game.NewGame(rand.New(rand.NewSource(req.Seed)), opts)
	} else {
		m.randMu.Lock()
		eng = game.NewGame(m.rand, opts)
		m.randMu.Unlock()
	}

	g := &Game{
		ID:         uuid.NewString(),
		Mode:       req.Mode,
		HumanOpens: req.Mode == ModeHotseat || req.HumanOpens,
		CreatedAt:  time.Now(),
		engine:     eng,
		weights:    req.Weights,
	}
	m.store.SaveGame(g)

	snap := g.snapshot()
	logrus.WithFields(logrus.Fields{"game": g.ID, "mode": g.Mode, "policy": opts.Policy}).Info("game created")
	m.broadcast(g.ID, ActionCreated, snap)
	return snap, nil
}

func (m *Manager) get(id string) (*Game, error) {
	g, ok := m.store.GetGame(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrGameNotFound, id)
	}
	return g, nil
}

func (m *Manager) State(id string) (Snapshot, error) {
	g, err := m.get(id)
	if err != nil {
		return Snapshot{}, err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.snapshot(), nil
}

// PossibleMoves lists the legal actions of the color on turn, together with the snapshot of
// the position they were generated from.
func (m *Manager) PossibleMoves(id string) (Snapshot, []game.Move, error) {
	g, err := m.get(id)
	if err != nil {
		return Snapshot{}, nil, err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.snapshot(), g.engine.LegalMoves(), nil
}

// Weights returns the heuristic weights the automated side of game id plays with, and whether
// they were set for this game rather than taken from the server config.
func (m *Manager) Weights(id string) (config.Weights, bool, error) {
	g, err := m.get(id)
	if err != nil {
		return config.Weights{}, false, err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.weights == nil {
		return m.cfg.Weights, false, nil
	}
	return *g.weights, true, nil
}

// SetWeights replaces the heuristic weights of game id. A decision already pending keeps the
// weights it started with.
func (m *Manager) SetWeights(id string, w config.Weights) (Snapshot, error) {
	if err := w.Validate(); err != nil {
		return Snapshot{}, err
	}
	g, err := m.get(id)
	if err != nil {
		return Snapshot{}, err
	}
	g.mu.Lock()
	defer g.mu.Unlock()

	g.weights = &w
	m.store.SaveGame(g)

	snap := g.snapshot()
	logrus.WithFields(logrus.Fields{"game": id, "weights": w}).Info("weights updated")
	m.broadcast(id, ActionWeights, snap)
	return snap, nil
}

// Apply plays a human action.
func (m *Manager) Apply(id string, mv game.Move) (game.Transition, Snapshot, error) {
	g, err := m.get(id)
	if err != nil {
		return game.Transition{}, Snapshot{}, err
	}
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.pending {
		return game.Transition{}, Snapshot{}, ErrDecisionPending
	}
	if g.awaiting() == game.Automated {
		return game.Transition{}, Snapshot{}, ErrNotHuman
	}

	tr, err := g.engine.Apply(mv)
	if err != nil {
		logrus.WithFields(logrus.Fields{"game": id, "move": mv}).WithError(err).Debug("move rejected")
		return game.Transition{}, Snapshot{}, err
	}
	return tr, m.commit(g, tr, ""), nil
}

// BotMove asks the suggester for the automated side's action and applies it. Human input is
// rejected while the decision is pending. If ctx ends first nothing is applied and the turn stays
// with the automated side. A failed or illegal suggestion, or one that outlives the configured
// bot timeout, is replaced by a uniformly random legal move.
func (m *Manager) BotMove(ctx context.Context, id string) (game.Transition, bot.Suggestion, Snapshot, error) {
	g, err := m.get(id)
	if err != nil {
		return game.Transition{}, bot.Suggestion{}, Snapshot{}, err
	}

	view, err := m.beginDecision(g)
	if err != nil {
		return game.Transition{}, bot.Suggestion{}, Snapshot{}, err
	}

	sctx, cancel := ctx, context.CancelFunc(func() {})
	if d := m.cfg.BotTimeout(); d > 0 {
		sctx, cancel = context.WithTimeout(ctx, d)
	}
	sg, serr := m.bot.Suggest(sctx, view)
	cancel()

	g.mu.Lock()
	defer g.mu.Unlock()
	g.pending = false

	log := logrus.WithFields(logrus.Fields{"game": id, "color": view.Color})

	if ctx.Err() != nil {
		log.WithError(ctx.Err()).Info("automated decision cancelled")
		return game.Transition{}, bot.Suggestion{}, Snapshot{}, ctx.Err()
	}

	switch {
	case serr != nil:
		log.WithError(serr).Warn("suggestion failed, playing a random move")
	case !view.Contains(sg.Move):
		serr = fmt.Errorf("%w: %s is not legal", bot.ErrSuggestion, sg.Move)
		log.WithError(serr).Warn("illegal suggestion, playing a random move")
	}
	if serr != nil {
		sg, err = m.fallback.Suggest(ctx, view)
		if err != nil {
			return game.Transition{}, bot.Suggestion{}, Snapshot{}, err
		}
		sg.Rationale = "fallback: " + sg.Rationale
	}

	tr, err := g.engine.Apply(sg.Move)
	if err != nil {
		return game.Transition{}, bot.Suggestion{}, Snapshot{}, err
	}
	return tr, sg, m.commit(g, tr, sg.Rationale), nil
}

// beginDecision checks the automated side is on turn, sets the pending latch and returns the
// snapshot the suggester works on.
func (m *Manager) beginDecision(g *Game) (bot.View, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	switch {
	case g.engine.Outcome.Concluded():
		return bot.View{}, game.ErrGameConcluded
	case g.pending:
		return bot.View{}, ErrDecisionPending
	case g.awaiting() != game.Automated:
		return bot.View{}, ErrNotAutomated
	}

	legal := g.engine.LegalMoves()
	if len(legal) == 0 {
		return bot.View{}, bot.ErrNoLegalMoves
	}

	g.pending = true
	return bot.View{
		Board:   g.engine.Board.Masked(),
		Color:   g.engine.Turn,
		Legal:   legal,
		Weights: g.customWeights(),
	}, nil
}

// commit runs with g.mu held after a successful engine action.
func (m *Manager) commit(g *Game, tr game.Transition, rationale string) Snapshot {
	if tr.FirstFlip != nil {
		g.assignControllers()
	}
	m.store.SaveGame(g)

	snap := g.snapshot()
	log := logrus.WithFields(logrus.Fields{"game": g.ID, "color": tr.Mover, "move": tr.Move})
	for _, line := range tr.Lines {
		log.Info(line)
	}

	m.broadcast(g.ID, ActionTransition, Event{Transition: tr, Rationale: rationale, State: snap})
	if tr.Outcome.Concluded() {
		m.broadcast(g.ID, ActionGameOver, snap)
	}
	return snap
}

func (m *Manager) broadcast(id, action string, data interface{}) {
	if m.hub == nil {
		return
	}
	m.hub.Broadcast(id, action, data)
}

// IsCancelled reports whether err means the automated decision was abandoned.
func IsCancelled(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
