package bot

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"animal-chess/internal/config"
	"animal-chess/internal/game"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const captureFirst = `
function suggest(view)
  for i, m in ipairs(view.moves) do
    local target = view.board[m.to + 1]
    if not m.flip and target.kind ~= nil and target.color ~= view.color then
      return i, "takes the " .. target.kind
    end
  end
  return #view.moves, "last move"
end
`

func TestScriptSuggest(t *testing.T) {
	s, err := NewScript("capture.lua", captureFirst)
	require.NoError(t, err)

	sg, err := s.Suggest(context.Background(), captureView())
	require.NoError(t, err)
	assert.Equal(t, game.StepMove(5, 6), sg.Move)
	assert.Equal(t, "takes the cat", sg.Rationale)

	v := freshView()
	sg, err = s.Suggest(context.Background(), v)
	require.NoError(t, err)
	assert.Equal(t, v.Legal[len(v.Legal)-1], sg.Move)
}

func TestScriptSeesGameWeights(t *testing.T) {
	s, err := NewScript("weights.lua", `
function suggest(view)
  if view.weights == nil then
    return 1, "defaults"
  end
  return 1, "capture " .. view.weights.capture
end
`)
	require.NoError(t, err)

	v := captureView()
	sg, err := s.Suggest(context.Background(), v)
	require.NoError(t, err)
	assert.Equal(t, "defaults", sg.Rationale)

	v.Weights = &config.Weights{WCapture: 7}
	sg, err = s.Suggest(context.Background(), v)
	require.NoError(t, err)
	assert.Equal(t, "capture 7", sg.Rationale)
}

func TestScriptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bot.lua")
	require.NoError(t, os.WriteFile(path, []byte(captureFirst), 0o644))

	s, err := NewScriptFile(path)
	require.NoError(t, err)
	_, err = s.Suggest(context.Background(), captureView())
	assert.NoError(t, err)
}

func TestScriptErrors(t *testing.T) {
	_, err := NewScript("broken.lua", "function suggest(")
	require.Error(t, err)

	tests := []struct {
		name string
		src  string
	}{
		{"no function", "x = 1"},
		{"out of range", "function suggest(view) return 99 end"},
		{"not a number", `function suggest(view) return "b2" end`},
		{"runtime error", "function suggest(view) error('boom') end"},
		{"chunk error", "error('load failed')"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := NewScript(tt.name, tt.src)
			require.NoError(t, err)

			_, err = s.Suggest(context.Background(), captureView())
			assert.ErrorIs(t, err, ErrSuggestion)
		})
	}
}

func TestScriptCancelled(t *testing.T) {
	s, err := NewScript("spin.lua", "function suggest(view) while true do end end")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err = s.Suggest(ctx, captureView())
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
