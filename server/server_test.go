package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/minaorangina/concentration/engine"
	"github.com/minaorangina/concentration/game"
	utils "github.com/minaorangina/concentration/internal"
	"github.com/minaorangina/concentration/protocol"
	"github.com/minaorangina/concentration/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const wsTestTimeout = 2 * time.Second

func newTestServer(t *testing.T) (*GameServer, *store.InMemoryGameStore, *engine.ManualClock) {
	t.Helper()

	clock := engine.NewManualClock()
	str := store.NewInMemoryGameStore()
	server := NewServer(str, ServerOpts{
		Config: game.DefaultConfig(),
		Seed:   42,
		Logger: zap.NewNop(),
		NewClock: func() engine.Clock {
			return clock
		},
	})
	t.Cleanup(server.Close)

	return server, str, clock
}

func assertStatus(t *testing.T, got, want int) {
	t.Helper()
	if got != want {
		t.Errorf("got status %d, want %d", got, want)
	}
}

func mustCreateGame(t *testing.T, server *GameServer) string {
	t.Helper()

	response := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodPost, "/new", nil)
	server.ServeHTTP(response, request)
	assertStatus(t, response.Code, http.StatusCreated)

	var got NewGameRes
	err := json.Unmarshal(response.Body.Bytes(), &got)
	utils.AssertNoError(t, err)

	return got.GameID
}

func TestNewGameID(t *testing.T) {
	for i := 0; i < 50; i++ {
		id := NewGameID()
		require.Len(t, id, 6)
		for _, r := range id {
			assert.True(t, r >= 'A' && r <= 'Z', "unexpected character %q", r)
		}
	}
}

func TestServerPOSTNewGame(t *testing.T) {
	t.Run("creates a running game", func(t *testing.T) {
		server, str, _ := newTestServer(t)

		gameID := mustCreateGame(t, server)
		assert.Len(t, gameID, 6)

		ge, err := str.FindGame(gameID)
		utils.AssertNoError(t, err)

		state, err := ge.State()
		utils.AssertNoError(t, err)
		assert.Equal(t, "idle", state.State)
	})

	t.Run("does not match on GET /new", func(t *testing.T) {
		server, _, _ := newTestServer(t)

		response := httptest.NewRecorder()
		request := httptest.NewRequest(http.MethodGet, "/new", nil)
		server.ServeHTTP(response, request)

		assertStatus(t, response.Code, http.StatusNotFound)
	})
}

func TestServerGETGame(t *testing.T) {
	t.Run("returns the state of an existing game", func(t *testing.T) {
		server, _, _ := newTestServer(t)
		gameID := mustCreateGame(t, server)

		response := httptest.NewRecorder()
		request := httptest.NewRequest(http.MethodGet, "/game/"+gameID, nil)
		server.ServeHTTP(response, request)

		assertStatus(t, response.Code, http.StatusOK)
		assert.Equal(t, "application/json", response.Header().Get("Content-Type"))

		var got protocol.GameState
		err := json.Unmarshal(response.Body.Bytes(), &got)
		utils.AssertNoError(t, err)

		assert.Equal(t, gameID, got.GameID)
		assert.Equal(t, "idle", got.State)
		assert.Equal(t, 5, got.PairCount)
		assert.Equal(t, "0:00", got.Elapsed)
		assert.Empty(t, got.Cards)
	})

	t.Run("returns 404 for an unknown game", func(t *testing.T) {
		server, _, _ := newTestServer(t)

		response := httptest.NewRecorder()
		request := httptest.NewRequest(http.MethodGet, "/game/ABCDEF", nil)
		server.ServeHTTP(response, request)

		assertStatus(t, response.Code, http.StatusNotFound)
		assert.Contains(t, response.Body.String(), "unknown game ID")
	})

	t.Run("returns 400 without a game ID", func(t *testing.T) {
		server, _, _ := newTestServer(t)

		response := httptest.NewRecorder()
		request := httptest.NewRequest(http.MethodGet, "/game/", nil)
		server.ServeHTTP(response, request)

		assertStatus(t, response.Code, http.StatusBadRequest)
	})
}

func TestServerDELETEGame(t *testing.T) {
	server, str, _ := newTestServer(t)
	gameID := mustCreateGame(t, server)
	ge, err := str.FindGame(gameID)
	utils.AssertNoError(t, err)

	response := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodDelete, "/game/"+gameID, nil)
	server.ServeHTTP(response, request)
	assertStatus(t, response.Code, http.StatusNoContent)

	utils.Within(t, wsTestTimeout, func() {
		<-ge.Done()
	})

	response = httptest.NewRecorder()
	request = httptest.NewRequest(http.MethodGet, "/game/"+gameID, nil)
	server.ServeHTTP(response, request)
	assertStatus(t, response.Code, http.StatusNotFound)

	response = httptest.NewRecorder()
	request = httptest.NewRequest(http.MethodDelete, "/game/"+gameID, nil)
	server.ServeHTTP(response, request)
	assertStatus(t, response.Code, http.StatusNotFound)
}

func TestServerWSRejectsBadGames(t *testing.T) {
	t.Run("missing game ID", func(t *testing.T) {
		server, _, _ := newTestServer(t)

		response := httptest.NewRecorder()
		request := httptest.NewRequest(http.MethodGet, "/ws", nil)
		server.ServeHTTP(response, request)

		assertStatus(t, response.Code, http.StatusBadRequest)
	})

	t.Run("unknown game ID", func(t *testing.T) {
		server, _, _ := newTestServer(t)

		response := httptest.NewRecorder()
		request := httptest.NewRequest(http.MethodGet, "/ws?game_id=NOSUCH", nil)
		server.ServeHTTP(response, request)

		assertStatus(t, response.Code, http.StatusNotFound)
	})
}

func dialGame(t *testing.T, ts *httptest.Server, gameID string) *websocket.Conn {
	t.Helper()

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws?game_id=" + gameID
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	return conn
}

// readUntil reads messages until done reports true for one of them
func readUntil(t *testing.T, conn *websocket.Conn, done func(protocol.OutboundMessage) bool) []protocol.OutboundMessage {
	t.Helper()

	conn.SetReadDeadline(time.Now().Add(wsTestTimeout))

	var msgs []protocol.OutboundMessage
	for {
		var msg protocol.OutboundMessage
		require.NoError(t, conn.ReadJSON(&msg))
		msgs = append(msgs, msg)
		if done(msg) {
			return msgs
		}
	}
}

func isState(name string) func(protocol.OutboundMessage) bool {
	return func(msg protocol.OutboundMessage) bool {
		return msg.Command == protocol.State && msg.State != nil && msg.State.State == name
	}
}

func countCommand(msgs []protocol.OutboundMessage, cmd protocol.Cmd) int {
	n := 0
	for _, m := range msgs {
		if m.Command == cmd {
			n++
		}
	}
	return n
}

func TestServerWSPlay(t *testing.T) {
	server, _, clock := newTestServer(t)
	ts := httptest.NewServer(server)
	defer ts.Close()

	gameID := mustCreateGame(t, server)

	t.Log("Given a player connected to a new game")
	conn := dialGame(t, ts, gameID)
	msgs := readUntil(t, conn, isState("idle"))
	assert.Len(t, msgs, 1)

	t.Log("When they start the game")
	require.NoError(t, conn.WriteJSON(protocol.InboundMessage{Command: protocol.Start}))

	t.Log("Then the cards are dealt face down")
	msgs = readUntil(t, conn, isState("revealing"))
	assert.Equal(t, 10, countCommand(msgs, protocol.PlaceCard))
	for _, m := range msgs {
		if m.Command == protocol.PlaceCard {
			assert.Empty(t, m.Face)
		}
	}

	t.Log("When the opening pause is over")
	clock.Tick(game.DefaultConfig().OpeningPause)

	t.Log("Then every card is revealed")
	flipped := 0
	msgs = readUntil(t, conn, func(msg protocol.OutboundMessage) bool {
		if msg.Command == protocol.FlipCard {
			flipped++
		}
		return flipped == 10
	})
	for _, m := range msgs {
		if m.Command == protocol.FlipCard {
			assert.Equal(t, "faceUp", m.Orientation)
			assert.NotEmpty(t, m.Face)
		}
	}
}

func TestServerWSClosesWithTheGame(t *testing.T) {
	server, _, _ := newTestServer(t)
	ts := httptest.NewServer(server)
	defer ts.Close()

	gameID := mustCreateGame(t, server)
	conn := dialGame(t, ts, gameID)
	readUntil(t, conn, isState("idle"))

	response := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodDelete, "/game/"+gameID, nil)
	server.ServeHTTP(response, request)
	assertStatus(t, response.Code, http.StatusNoContent)

	conn.SetReadDeadline(time.Now().Add(wsTestTimeout))
	_, _, err := conn.ReadMessage()
	assert.True(t, websocket.IsCloseError(err, websocket.CloseNormalClosure), "got %v", err)
}
