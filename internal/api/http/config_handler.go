package http

import (
	"net/http"

	"animal-chess/internal/config"
	"animal-chess/internal/room"

	"github.com/gin-gonic/gin"
)

// @Summary Get engine configuration
// @Description Returns the binding policy, the bot kind and the heuristic weights the server runs with
// @Tags Config
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /config [get]
func GetConfigHandler(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"binding_policy": cfg.BindingPolicy,
			"bot_kind":       cfg.BotKind,
			"bot_timeout_ms": cfg.BotTimeoutMS,
			"weights":        cfg.Weights,
		})
	}
}

// @Summary Get game heuristic weights
// @Description Returns the heuristic weights the automated side of one game plays with
// @Tags Config
// @Produce json
// @Param game_id query string true "Game ID"
// @Success 200 {object} map[string]interface{}
// @Router /config/weights [get]
func GetGameWeightsHandler(rm *room.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Query("game_id")
		if id == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "game_id is required"})
			return
		}

		weights, customized, err := rm.Weights(id)
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"game_id":       id,
			"weights":       weights,
			"is_customized": customized,
		})
	}
}

// @Summary Update game heuristic weights
// @Description Replaces the heuristic weights of one game. Other games keep theirs.
// @Tags Config
// @Accept json
// @Produce json
// @Param request body UpdateGameWeightsRequest true "Weights"
// @Success 200 {object} map[string]interface{}
// @Router /config/weights [post]
func UpdateGameWeightsHandler(rm *room.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req UpdateGameWeightsRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
			return
		}

		snap, err := rm.SetWeights(req.GameID, *req.Weights)
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"game_id":       req.GameID,
			"weights":       snap.Weights,
			"is_customized": true,
		})
	}
}
