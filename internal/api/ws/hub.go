package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"animal-chess/internal/game"
	"animal-chess/internal/room"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

// Hub fans game events out to the WebSocket clients watching each game, and accepts actions
// from them.
type Hub struct {
	mu          sync.Mutex
	games       map[string]map[*websocket.Conn]struct{}
	roomManager RoomManager

	// BotDelay is how long the hub waits before answering a human action with the automated
	// side's move.
	BotDelay   time.Duration
	BotTimeout time.Duration
}

func NewHub(roomManager RoomManager) *Hub {
	return &Hub{
		games:       make(map[string]map[*websocket.Conn]struct{}),
		roomManager: roomManager,
		BotTimeout:  10 * time.Second,
	}
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins
	},
}

type message struct {
	Action string          `json:"action"`
	Data   json.RawMessage `json:"data,omitempty"`
}

type actionData struct {
	Cell *int `json:"cell"`
	From *int `json:"from"`
	To   *int `json:"to"`
}

// move builds the move for a flip or move action. Missing cells are an error.
func (d actionData) move(action string) (game.Move, bool) {
	if action == "flip" {
		if d.Cell == nil {
			return game.Move{}, false
		}
		return game.FlipMove(*d.Cell), true
	}
	if d.From == nil || d.To == nil {
		return game.Move{}, false
	}
	return game.StepMove(*d.From, *d.To), true
}

func (h *Hub) HandleWS(c *gin.Context) {
	gameID := c.Query("game_id")
	if gameID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing game_id"})
		return
	}
	state, err := h.roomManager.State(gameID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logrus.WithError(err).Warn("websocket upgrade failed")
		return
	}
	log := logrus.WithField("game", gameID)
	log.Debug("websocket connected")

	h.mu.Lock()
	if _, ok := h.games[gameID]; !ok {
		h.games[gameID] = make(map[*websocket.Conn]struct{})
	}
	h.games[gameID][conn] = struct{}{}
	h.mu.Unlock()

	defer func() {
		h.mu.Lock()
		delete(h.games[gameID], conn)
		if len(h.games[gameID]) == 0 {
			delete(h.games, gameID)
		}
		h.mu.Unlock()
		_ = conn.Close()
	}()

	h.send(conn, "state", state)

	for {
		var msg message
		if err := conn.ReadJSON(&msg); err != nil {
			log.WithError(err).Debug("websocket closed")
			break
		}

		switch msg.Action {
		case "flip", "move":
			var d actionData
			if err := json.Unmarshal(msg.Data, &d); err != nil {
				h.send(conn, "error", gin.H{"error": "invalid payload"})
				continue
			}
			mv, ok := d.move(msg.Action)
			if !ok {
				h.send(conn, "error", gin.H{"error": "invalid payload"})
				continue
			}
			h.handleHumanMove(conn, gameID, mv)
		case "bot_move":
			if err := h.botMove(gameID); err != nil {
				h.send(conn, "error", gin.H{"error": err.Error()})
			}
		case "state":
			if s, err := h.roomManager.State(gameID); err == nil {
				h.send(conn, "state", s)
			}
		default:
			h.send(conn, "error", gin.H{"error": "unknown action " + msg.Action})
		}
	}
}

// Broadcast sends one event to every client watching gameID. The manager calls it after each
// committed action.
func (h *Hub) Broadcast(gameID string, action string, data interface{}) {
	if h == nil {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	clients, ok := h.games[gameID]
	if !ok {
		return
	}

	message := gin.H{
		"action": action,
		"data":   data,
	}
	for conn := range clients {
		if err := conn.WriteJSON(message); err != nil {
			logrus.WithError(err).WithField("game", gameID).Debug("dropping websocket client")
			_ = conn.Close()
			delete(clients, conn)
		}
	}
}

// Watchers counts the clients connected to gameID.
func (h *Hub) Watchers(gameID string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.games[gameID])
}

func (h *Hub) send(conn *websocket.Conn, action string, data interface{}) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if err := conn.WriteJSON(gin.H{"action": action, "data": data}); err != nil {
		logrus.WithError(err).Debug("websocket write failed")
	}
}

func (h *Hub) handleHumanMove(conn *websocket.Conn, gameID string, mv game.Move) {
	// The manager broadcasts the transition itself.
	_, snap, err := h.roomManager.Apply(gameID, mv)
	if err != nil {
		h.send(conn, "error", gin.H{"error": err.Error(), "move": mv})
		return
	}

	// If the automated side is on turn, let it answer.
	if snap.Awaiting == game.Automated {
		go func() {
			if h.BotDelay > 0 {
				time.Sleep(h.BotDelay)
			}
			if err := h.botMove(gameID); err != nil {
				logrus.WithError(err).WithField("game", gameID).Warn("automated move failed")
			}
		}()
	}
}

func (h *Hub) botMove(gameID string) error {
	ctx, cancel := context.WithTimeout(context.Background(), h.BotTimeout)
	defer cancel()
	_, _, _, err := h.roomManager.BotMove(ctx, gameID)
	return err
}

var _ room.Broadcaster = (*Hub)(nil)
