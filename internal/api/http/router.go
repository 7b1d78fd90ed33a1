package http

import (
	"animal-chess/internal/api/ws"
	"animal-chess/internal/config"
	"animal-chess/internal/room"

	"github.com/gin-gonic/gin"
)

func NewRouter(rm *room.Manager, hub *ws.Hub, cfg config.Config) *gin.Engine {
	r := gin.Default()

	// WebSocket for FE live updates
	r.GET("/ws", hub.HandleWS)

	// --- GAME ENDPOINTS ---
	r.POST("/create-game", CreateGameHandler(rm))
	r.GET("/state", StateHandler(rm))
	r.GET("/possible-moves", PossibleMovesHandler(rm))
	r.POST("/flip", FlipHandler(rm))
	r.POST("/move", MoveHandler(rm))
	r.POST("/move-bot", MoveBotHandler(rm))

	// --- CONFIG ENDPOINTS ---
	r.GET("/config", GetConfigHandler(cfg))
	r.GET("/config/weights", GetGameWeightsHandler(rm))
	r.POST("/config/weights", UpdateGameWeightsHandler(rm))

	return r
}
