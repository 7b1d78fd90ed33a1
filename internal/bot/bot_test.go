package bot

import (
	"context"
	"math/rand"
	"path/filepath"
	"testing"
	"time"

	"animal-chess/internal/config"
	"animal-chess/internal/game"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// captureView has a red lion on b2 next to a blue cat on c2.
func captureView() View {
	var b game.Board
	for i := range b {
		b[i].Index = i
		b[i].Revealed = true
	}
	b[5].Piece = game.NewPiece(game.Red, game.Lion)
	b[6].Piece = game.NewPiece(game.Blue, game.Cat)
	return View{Board: b, Color: game.Red, Legal: game.LegalMoves(&b, game.Red)}
}

func freshView() View {
	b := game.NewBoard(rand.New(rand.NewSource(1)))
	return View{Board: b.Masked(), Color: game.Red, Legal: game.LegalMoves(&b, game.Red)}
}

func TestCaptureViewShape(t *testing.T) {
	v := captureView()
	assert.Equal(t, []game.Move{
		game.StepMove(5, 1),
		game.StepMove(5, 9),
		game.StepMove(5, 4),
		game.StepMove(5, 6),
	}, v.Legal)
	assert.True(t, v.Contains(game.StepMove(5, 6)))
	assert.False(t, v.Contains(game.StepMove(5, game.Center)))
}

func TestRandom(t *testing.T) {
	b := NewRandom(rand.New(rand.NewSource(4)))
	v := freshView()

	seen := map[game.Move]bool{}
	for i := 0; i < 200; i++ {
		sg, err := b.Suggest(context.Background(), v)
		require.NoError(t, err)
		require.True(t, v.Contains(sg.Move))
		seen[sg.Move] = true
	}
	assert.Greater(t, len(seen), 8)

	_, err := b.Suggest(context.Background(), View{})
	assert.ErrorIs(t, err, ErrNoLegalMoves)
}

func TestGreedyTakesCapture(t *testing.T) {
	b := NewGreedy(config.Default())

	sg, err := b.Suggest(context.Background(), captureView())
	require.NoError(t, err)
	assert.Equal(t, game.StepMove(5, 6), sg.Move)
	assert.Contains(t, sg.Rationale, "best of 4")

	_, err = b.Suggest(context.Background(), View{})
	assert.ErrorIs(t, err, ErrNoLegalMoves)
}

func TestGreedyUsesViewWeights(t *testing.T) {
	b := NewGreedy(config.Default())

	v := captureView()
	v.Weights = &config.Weights{WDanger: 8}
	sg, err := b.Suggest(context.Background(), v)
	require.NoError(t, err)
	// Without a capture bonus every lion step scores zero and the first one is kept.
	assert.Equal(t, game.StepMove(5, 1), sg.Move)
	assert.Contains(t, sg.Rationale, "scores 0")

	v.Weights = nil
	sg, err = b.Suggest(context.Background(), v)
	require.NoError(t, err)
	assert.Equal(t, game.StepMove(5, 6), sg.Move)
}

func TestGreedyOnFreshBoard(t *testing.T) {
	v := freshView()
	sg, err := NewGreedy(config.Default()).Suggest(context.Background(), v)
	require.NoError(t, err)
	assert.True(t, sg.Move.Flip)
	assert.True(t, v.Contains(sg.Move))
}

func TestNew(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	tests := []struct {
		kind    string
		cmd     string
		want    any
		wantErr error
	}{
		{kind: "", want: &Greedy{}},
		{kind: "greedy", want: &Greedy{}},
		{kind: "Random", want: &Random{}},
		{kind: "process", cmd: "engine --fast", want: &Process{}},
		{kind: "process", wantErr: ErrUnknownKind},
		{kind: "minimax", wantErr: ErrUnknownKind},
	}
	for _, tt := range tests {
		t.Run(tt.kind+tt.cmd, func(t *testing.T) {
			cfg := config.Default()
			cfg.BotKind = tt.kind
			cfg.BotCmd = tt.cmd

			s, err := New(cfg, r)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.IsType(t, tt.want, s)
		})
	}

	cfg := config.Default()
	cfg.BotKind = "script"
	cfg.BotScript = filepath.Join(t.TempDir(), "missing.lua")
	_, err := New(cfg, r)
	assert.Error(t, err)
}

func TestNewProcessSplitsCommand(t *testing.T) {
	cfg := config.Default()
	cfg.BotKind = "process"
	cfg.BotCmd = "/usr/local/bin/engine --depth 2"

	s, err := New(cfg, nil)
	require.NoError(t, err)
	p := s.(*Process)
	assert.Equal(t, "engine", p.Name)
	assert.Equal(t, "/usr/local/bin/engine", p.Path)
	assert.Equal(t, []string{"--depth", "2"}, p.Args)
}

func TestSuggestersHonorTimeout(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	for _, s := range []Suggester{NewRandom(rand.New(rand.NewSource(1))), NewGreedy(config.Default())} {
		sg, err := s.Suggest(ctx, captureView())
		require.NoError(t, err)
		assert.True(t, captureView().Contains(sg.Move))
	}
}
