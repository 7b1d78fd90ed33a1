package game

import (
	"testing"

	"animal-chess/internal/config"

	"github.com/stretchr/testify/assert"
)

func TestHeuristicPrefersBiggerCapture(t *testing.T) {
	cfg := config.Default()
	b := openBoard()
	place(&b, 5, Red, Lion)
	place(&b, 4, Blue, Cat)
	place(&b, 6, Blue, Tiger)

	tiger := HeuristicScore(&b, Red, StepMove(5, 6), cfg)
	cat := HeuristicScore(&b, Red, StepMove(5, 4), cfg)
	assert.Greater(t, tiger, cat)
}

func TestHeuristicAvoidsDanger(t *testing.T) {
	cfg := config.Default()
	b := openBoard()
	place(&b, 0, Red, Dog)
	place(&b, 2, Blue, Lion)

	// 0-1 walks next to the lion, 0-4 does not.
	assert.Less(t,
		HeuristicScore(&b, Red, StepMove(0, 1), cfg),
		HeuristicScore(&b, Red, StepMove(0, 4), cfg))
}

func TestHeuristicRewardsEscape(t *testing.T) {
	cfg := config.Default()
	b := openBoard()
	place(&b, 0, Red, Wolf)
	place(&b, 1, Blue, Tiger)

	assert.Positive(t, HeuristicScore(&b, Red, StepMove(0, 4), cfg))
}

func TestHeuristicCenterIsSafe(t *testing.T) {
	cfg := config.Default()
	b := openBoard()
	place(&b, 5, Red, Rat)
	place(&b, 6, Blue, Cat)

	assert.Greater(t,
		HeuristicScore(&b, Red, StepMove(5, Center), cfg),
		HeuristicScore(&b, Red, StepMove(5, 9), cfg))
}
