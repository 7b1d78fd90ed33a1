package http

import (
	"errors"
	"net/http"

	"animal-chess/internal/bot"
	"animal-chess/internal/config"
	"animal-chess/internal/game"
	"animal-chess/internal/room"

	"github.com/gin-gonic/gin"
)

// statusFor maps domain errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, room.ErrGameNotFound):
		return http.StatusNotFound
	case errors.Is(err, game.ErrInvalidMove),
		errors.Is(err, room.ErrUnknownMode),
		errors.Is(err, config.ErrInvalidWeights):
		return http.StatusBadRequest
	case errors.Is(err, game.ErrGameConcluded),
		errors.Is(err, room.ErrDecisionPending),
		errors.Is(err, room.ErrNotHuman),
		errors.Is(err, room.ErrNotAutomated),
		errors.Is(err, bot.ErrNoLegalMoves):
		return http.StatusConflict
	case room.IsCancelled(err):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

func fail(c *gin.Context, err error) {
	c.JSON(statusFor(err), gin.H{"error": err.Error()})
}

// @Summary Create new game
// @Description Deal a new game. Mode "bot" plays a human against the automated side, "hotseat" two humans.
// @Tags Game
// @Accept json
// @Produce json
// @Param request body CreateGameRequest true "Game options"
// @Success 200 {object} map[string]interface{}
// @Router /create-game [post]
func CreateGameHandler(rm *room.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateGameRequest
		if c.Request.ContentLength != 0 {
			if err := c.ShouldBindJSON(&req); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
				return
			}
		}
		snap, err := rm.CreateGame(room.CreateRequest{
			Mode:       room.Mode(req.Mode),
			HumanOpens: req.HumanOpens,
			Seed:       req.Seed,
			MaxPlies:   req.MaxPlies,
			Weights:    req.Weights,
		})
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"game_id": snap.ID, "state": snap})
	}
}

// @Summary Get game state
// @Description Returns the board with face-down pieces hidden, the turn, controllers and history
// @Tags Game
// @Produce json
// @Param game_id query string true "Game ID"
// @Success 200 {object} map[string]interface{}
// @Router /state [get]
func StateHandler(rm *room.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		snap, err := rm.State(c.Query("game_id"))
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"state": snap})
	}
}

// @Summary Get possible moves
// @Description Returns every legal action of the side on turn, plus one box per target cell
// @Tags Game
// @Produce json
// @Param game_id query string true "Game ID"
// @Success 200 {object} map[string]interface{}
// @Router /possible-moves [get]
func PossibleMovesHandler(rm *room.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Query("game_id")
		snap, moves, err := rm.PossibleMoves(id)
		if err != nil {
			fail(c, err)
			return
		}

		seen := map[int]int{}
		boxes := []Box{}
		for _, m := range moves {
			mode := "move"
			switch {
			case m.Flip:
				mode = "flip"
			case !snap.Board[m.To].Empty():
				mode = "capture"
			}
			if i, ok := seen[m.To]; ok {
				if mode == "capture" {
					boxes[i].Mode = mode
				}
				continue
			}
			seen[m.To] = len(boxes)
			boxes = append(boxes, Box{Cell: m.To, Name: game.CellName(m.To), Mode: mode})
		}

		if moves == nil {
			moves = []game.Move{}
		}
		c.JSON(http.StatusOK, gin.H{"turn": snap.Turn, "moves": moves, "boxes": boxes})
	}
}

// @Summary Flip a card
// @Description Reveal the face-down card at the given cell. Consumes the turn.
// @Tags Game
// @Accept json
// @Produce json
// @Param request body FlipRequest true "Flip"
// @Success 200 {object} map[string]interface{}
// @Router /flip [post]
func FlipHandler(rm *room.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req FlipRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
			return
		}
		apply(c, rm, req.GameID, game.FlipMove(int(*req.Cell)))
	}
}

// @Summary Player makes a move
// @Description Step a revealed piece of the side on turn to a neighboring cell, capturing if occupied
// @Tags Game
// @Accept json
// @Produce json
// @Param request body MoveRequest true "Move"
// @Success 200 {object} map[string]interface{}
// @Router /move [post]
func MoveHandler(rm *room.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req MoveRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
			return
		}
		apply(c, rm, req.GameID, game.StepMove(int(*req.From), int(*req.To)))
	}
}

func apply(c *gin.Context, rm *room.Manager, id string, mv game.Move) {
	tr, snap, err := rm.Apply(id, mv)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"ok":         true,
		"transition": tr,
		"state":      snap,
	})
}

// @Summary Let bot make its move
// @Description The automated side picks a move through the configured suggester
// @Tags Game
// @Accept json
// @Produce json
// @Param request body MoveBotRequest true "Bot move"
// @Success 200 {object} map[string]interface{}
// @Router /move-bot [post]
func MoveBotHandler(rm *room.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req MoveBotRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
			return
		}
		tr, sg, snap, err := rm.BotMove(c.Request.Context(), req.GameID)
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"transition": tr,
			"rationale":  sg.Rationale,
			"state":      snap,
		})
	}
}
