package ws

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"animal-chess/internal/bot"
	"animal-chess/internal/config"
	"animal-chess/internal/room"
	"animal-chess/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type envelope struct {
	Action string                 `json:"action"`
	Data   map[string]interface{} `json:"data"`
}

func newServer(t *testing.T) (*httptest.Server, *room.Manager, *Hub) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := config.Default()
	rm, err := room.NewManager(store.NewMemoryStore(), cfg, bot.NewGreedy(cfg), nil)
	require.NoError(t, err)
	hub := NewHub(rm)
	rm.SetHub(hub)

	r := gin.New()
	r.GET("/ws", hub.HandleWS)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv, rm, hub
}

func dial(t *testing.T, srv *httptest.Server, gameID string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws?game_id=" + gameID
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func read(t *testing.T, conn *websocket.Conn) envelope {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	var env envelope
	require.NoError(t, conn.ReadJSON(&env))
	return env
}

func TestHandleWSRequiresGame(t *testing.T) {
	srv, _, _ := newServer(t)

	resp, err := http.Get(srv.URL + "/ws")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, err = http.Get(srv.URL + "/ws?game_id=unknown")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestHotseatOverWebSocket(t *testing.T) {
	srv, rm, hub := newServer(t)
	snap, err := rm.CreateGame(room.CreateRequest{Mode: room.ModeHotseat, Seed: 1})
	require.NoError(t, err)

	conn := dial(t, srv, snap.ID)
	env := read(t, conn)
	assert.Equal(t, "state", env.Action)
	assert.Equal(t, snap.ID, env.Data["id"])
	assert.Equal(t, 1, hub.Watchers(snap.ID))

	require.NoError(t, conn.WriteJSON(map[string]interface{}{"action": "flip", "data": map[string]int{"cell": 5}}))
	env = read(t, conn)
	assert.Equal(t, "transition", env.Action)
	tr := env.Data["transition"].(map[string]interface{})
	assert.Equal(t, "flip", tr["event"])

	require.NoError(t, conn.WriteJSON(map[string]interface{}{"action": "move", "data": map[string]int{"from": 0, "to": 1}}))
	env = read(t, conn)
	assert.Equal(t, "error", env.Action)
	assert.Contains(t, env.Data["error"], "invalid move")

	require.NoError(t, conn.WriteJSON(map[string]string{"action": "dance"}))
	env = read(t, conn)
	assert.Equal(t, "error", env.Action)
}

func TestMissingCellsAreRejected(t *testing.T) {
	srv, rm, _ := newServer(t)
	snap, err := rm.CreateGame(room.CreateRequest{Mode: room.ModeHotseat, Seed: 1})
	require.NoError(t, err)

	conn := dial(t, srv, snap.ID)
	read(t, conn) // state

	for _, msg := range []map[string]interface{}{
		{"action": "flip", "data": map[string]int{}},
		{"action": "flip"},
		{"action": "move", "data": map[string]int{"from": 0}},
		{"action": "move", "data": map[string]int{"to": 1}},
	} {
		require.NoError(t, conn.WriteJSON(msg))
		env := read(t, conn)
		assert.Equal(t, "error", env.Action, msg)
		assert.Equal(t, "invalid payload", env.Data["error"], msg)
	}

	state, err := rm.State(snap.ID)
	require.NoError(t, err)
	assert.Equal(t, 16, state.Unrevealed)
	assert.Empty(t, state.History)
}

func TestBotAnswersOverWebSocket(t *testing.T) {
	srv, rm, _ := newServer(t)
	snap, err := rm.CreateGame(room.CreateRequest{Mode: room.ModeBot, HumanOpens: true, Seed: 2})
	require.NoError(t, err)

	conn := dial(t, srv, snap.ID)
	read(t, conn) // state

	require.NoError(t, conn.WriteJSON(map[string]interface{}{"action": "flip", "data": map[string]int{"cell": 0}}))

	human := read(t, conn)
	require.Equal(t, "transition", human.Action)
	automated := read(t, conn)
	require.Equal(t, "transition", automated.Action)

	state := automated.Data["state"].(map[string]interface{})
	assert.Equal(t, "human", state["awaiting"])
	assert.EqualValues(t, 14, state["unrevealed"])
}

func TestBroadcastWithoutWatchers(t *testing.T) {
	hub := NewHub(nil)
	hub.Broadcast("nobody", "transition", nil)
	assert.Zero(t, hub.Watchers("nobody"))

	var nilHub *Hub
	nilHub.Broadcast("nobody", "transition", nil)
}
