package server

import (
	"context"
	"encoding/json"
	"errors"
	"math/rand"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/websocket"
	"github.com/minaorangina/concentration/engine"
	"github.com/minaorangina/concentration/game"
	"github.com/minaorangina/concentration/store"
	"go.uber.org/zap"
)

var (
	ErrMissingGameID = errors.New("missing game ID")
	errIDExhausted   = errors.New("could not find an unused game ID")
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type NewGameRes struct {
	GameID string `json:"game_id"`
}

type errorRes struct {
	Error string `json:"error"`
}

// ServerOpts configures the games a GameServer creates
type ServerOpts struct {
	Config game.Config
	// Seed makes every new game deal the same deck. Zero deals randomly.
	Seed   int64
	Logger *zap.Logger
	// NewClock supplies each game's frame clock
	NewClock func() engine.Clock
}

// GameServer is a game server
type GameServer struct {
	store store.GameStore
	opts  ServerOpts
	log   *zap.Logger
	ctx   context.Context
	stop  context.CancelFunc
	http.Server
}

// NewServer creates a new GameServer
func NewServer(str store.GameStore, opts ServerOpts) *GameServer {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.NewClock == nil {
		opts.NewClock = func() engine.Clock {
			return engine.NewFrameClock(engine.DefaultFrameInterval)
		}
	}

	s := &GameServer{
		store: str,
		opts:  opts,
		log:   opts.Logger.Named("server"),
	}
	s.ctx, s.stop = context.WithCancel(context.Background())

	router := http.NewServeMux()
	router.Handle("/new", http.HandlerFunc(s.HandleNewGame))
	router.Handle("/game/", http.HandlerFunc(s.HandleGame))
	router.Handle("/ws", http.HandlerFunc(s.HandleWS))

	cors := handlers.CORS(
		handlers.AllowedOrigins([]string{"*"}),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodDelete}),
	)
	accessLog := zap.NewStdLog(opts.Logger.Named("http")).Writer()

	s.Handler = handlers.CombinedLoggingHandler(accessLog, cors(router))

	return s
}

// ServeHTTP serves http
func (g *GameServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	g.Handler.ServeHTTP(w, r)
}

// Close stops every game the server is running
func (g *GameServer) Close() {
	g.stop()
	for _, id := range g.store.GameIDs() {
		g.store.RemoveGame(id)
	}
}

var (
	gameIDMu   sync.Mutex
	gameIDRand = rand.New(rand.NewSource(time.Now().UnixNano()))
)

// NewGameID returns six random capital letters
func NewGameID() string {
	letters := []byte("ABCDEFGHIJKLMNOPQRSTUVWXYZ")
	code := make([]byte, 6)

	gameIDMu.Lock()
	defer gameIDMu.Unlock()

	for i := range code {
		code[i] = letters[gameIDRand.Intn(len(letters))]
	}

	return string(code)
}

// HandleNewGame creates a game and starts it running
func (g *GameServer) HandleNewGame(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	ge, err := g.newGame()
	if err != nil {
		g.log.Error("could not create game", zap.Error(err))
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	g.log.Info("game created", zap.String("game", ge.ID()))
	writeJSON(w, http.StatusCreated, NewGameRes{GameID: ge.ID()})
}

func (g *GameServer) newGame() (engine.GameEngine, error) {
	for attempt := 0; attempt < 5; attempt++ {
		var rng *rand.Rand
		if g.opts.Seed != 0 {
			rng = rand.New(rand.NewSource(g.opts.Seed))
		}

		clock := g.opts.NewClock()
		ge, err := engine.NewGameEngine(engine.GameEngineOpts{
			GameID: NewGameID(),
			Config: g.opts.Config,
			Clock:  clock,
			Logger: g.opts.Logger,
			Rand:   rng,
		})
		if err != nil {
			return nil, err
		}

		err = g.store.AddGame(ge)
		if errors.Is(err, store.ErrDuplicateGameID) {
			clock.Stop()
			continue
		}
		if err != nil {
			clock.Stop()
			return nil, err
		}

		go ge.Listen(g.ctx)
		return ge, nil
	}

	return nil, errIDExhausted
}

// HandleGame serves a game's state and removes finished games
func (g *GameServer) HandleGame(w http.ResponseWriter, r *http.Request) {
	gameID := strings.TrimPrefix(r.URL.Path, "/game/")
	if gameID == "" {
		writeError(w, http.StatusBadRequest, ErrMissingGameID)
		return
	}

	switch r.Method {
	case http.MethodGet:
		ge, err := g.store.FindGame(gameID)
		if err != nil {
			writeError(w, statusFor(err), err)
			return
		}

		state, err := ge.State()
		if err != nil {
			writeError(w, statusFor(err), err)
			return
		}

		writeJSON(w, http.StatusOK, state)

	case http.MethodDelete:
		if err := g.store.RemoveGame(gameID); err != nil {
			writeError(w, statusFor(err), err)
			return
		}

		g.log.Info("game removed", zap.String("game", gameID))
		w.WriteHeader(http.StatusNoContent)

	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

// HandleWS plays a game over a websocket
func (g *GameServer) HandleWS(w http.ResponseWriter, r *http.Request) {
	gameID := r.URL.Query().Get("game_id")
	if gameID == "" {
		writeError(w, http.StatusBadRequest, ErrMissingGameID)
		return
	}

	ge, err := g.store.FindGame(gameID)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// the upgrader has already replied
		g.log.Warn("could not upgrade to websocket", zap.Error(err))
		return
	}

	sub := newWSSubscriber(conn, ge, g.log)
	go sub.writePump()

	if err := ge.Subscribe(sub); err != nil {
		g.log.Warn("could not subscribe", zap.String("game", gameID), zap.Error(err))
		sub.close()
		return
	}

	sub.readPump()
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, ErrMissingGameID):
		return http.StatusBadRequest
	case errors.Is(err, store.ErrUnknownGameID), errors.Is(err, engine.ErrEngineStopped):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	bytes, err := json.Marshal(v)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(bytes)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, errorRes{Error: err.Error()})
}
