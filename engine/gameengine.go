package engine

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/minaorangina/concentration/deck"
	"github.com/minaorangina/concentration/effects"
	"github.com/minaorangina/concentration/game"
	"github.com/minaorangina/concentration/protocol"
	uuid "github.com/satori/go.uuid"
	"go.uber.org/zap"
)

// DefaultFrameInterval is roughly sixty frames a second
const DefaultFrameInterval = 16 * time.Millisecond

var (
	ErrEngineStopped     = errors.New("game engine has stopped")
	ErrUnexpectedCommand = errors.New("unexpected command")
)

// Subscriber receives every message a game sends
type Subscriber interface {
	ID() string
	Send(msg protocol.OutboundMessage) error
}

// GameEngine runs a game session on a single goroutine.
// Every method apart from Listen may be called from any goroutine.
type GameEngine interface {
	ID() string
	Listen(ctx context.Context)
	Receive(msg protocol.InboundMessage) error
	Subscribe(sub Subscriber) error
	Unsubscribe(id string) error
	State() (protocol.GameState, error)
	Stop()
	Done() <-chan struct{}
}

type GameEngineOpts struct {
	GameID string
	Config game.Config
	Clock  Clock
	Logger *zap.Logger
	Rand   *rand.Rand
	// Effects receives every effect alongside the subscribers
	Effects effects.Effects
}

type gameEngine struct {
	id          string
	session     *game.Session
	clock       Clock
	log         *zap.Logger
	subscribers map[string]Subscriber

	inboundCh    chan protocol.InboundMessage
	registerCh   chan Subscriber
	unregisterCh chan string
	stateCh      chan chan protocol.GameState
	quit         chan struct{}
	done         chan struct{}
	stopOnce     sync.Once
}

// NewGameEngine constructs a GameEngine. The engine does nothing until
// Listen is called.
func NewGameEngine(opts GameEngineOpts) (*gameEngine, error) {
	if opts.GameID == "" {
		opts.GameID = uuid.NewV4().String()
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Clock == nil {
		opts.Clock = NewFrameClock(DefaultFrameInterval)
	}

	ge := &gameEngine{
		id:           opts.GameID,
		clock:        opts.Clock,
		log:          opts.Logger.With(zap.String("game", opts.GameID)),
		subscribers:  map[string]Subscriber{},
		inboundCh:    make(chan protocol.InboundMessage),
		registerCh:   make(chan Subscriber),
		unregisterCh: make(chan string),
		stateCh:      make(chan chan protocol.GameState),
		quit:         make(chan struct{}),
		done:         make(chan struct{}),
	}

	fxs := []effects.Effects{broadcaster{ge}, effects.NewLogger(ge.log)}
	if opts.Effects != nil {
		fxs = append(fxs, opts.Effects)
	}

	session, err := game.NewSession(game.SessionOpts{
		Config:  opts.Config,
		Effects: effects.Multi(fxs...),
		Rand:    opts.Rand,
	})
	if err != nil {
		ge.clock.Stop()
		return nil, err
	}
	ge.session = session

	return ge, nil
}

func (ge *gameEngine) ID() string {
	return ge.id
}

// Listen runs the game until ctx is cancelled or Stop is called.
// All session state is touched from here only.
func (ge *gameEngine) Listen(ctx context.Context) {
	defer close(ge.done)
	defer ge.clock.Stop()

	ge.log.Info("game listening")

	for {
		select {
		case <-ctx.Done():
			ge.log.Info("game cancelled")
			return

		case <-ge.quit:
			ge.log.Info("game stopped")
			return

		case sub := <-ge.registerCh:
			ge.subscribers[sub.ID()] = sub
			ge.log.Info("subscriber joined", zap.String("subscriber", sub.ID()))
			ge.sendTo(sub, ge.stateMessage())

		case id := <-ge.unregisterCh:
			delete(ge.subscribers, id)
			ge.log.Info("subscriber left", zap.String("subscriber", id))

		case msg := <-ge.inboundCh:
			ge.handle(msg)

		case reply := <-ge.stateCh:
			reply <- ge.gameState()

		case dt := <-ge.clock.C():
			ge.session.Advance(dt)
		}
	}
}

// Receive queues a player's message for the game
func (ge *gameEngine) Receive(msg protocol.InboundMessage) error {
	select {
	case ge.inboundCh <- msg:
		return nil
	case <-ge.done:
		return ErrEngineStopped
	}
}

func (ge *gameEngine) Subscribe(sub Subscriber) error {
	select {
	case ge.registerCh <- sub:
		return nil
	case <-ge.done:
		return ErrEngineStopped
	}
}

func (ge *gameEngine) Unsubscribe(id string) error {
	select {
	case ge.unregisterCh <- id:
		return nil
	case <-ge.done:
		return ErrEngineStopped
	}
}

// State returns the public view of the game
func (ge *gameEngine) State() (protocol.GameState, error) {
	reply := make(chan protocol.GameState, 1)
	select {
	case ge.stateCh <- reply:
	case <-ge.done:
		return protocol.GameState{}, ErrEngineStopped
	}
	return <-reply, nil
}

func (ge *gameEngine) Stop() {
	ge.stopOnce.Do(func() {
		close(ge.quit)
	})
}

// Done is closed once Listen has returned
func (ge *gameEngine) Done() <-chan struct{} {
	return ge.done
}

func (ge *gameEngine) handle(msg protocol.InboundMessage) {
	log := ge.log.With(zap.String("player", msg.PlayerID), zap.Stringer("command", msg.Command))

	switch msg.Command {
	case protocol.Start:
		if err := ge.session.StartGame(); err != nil {
			log.Warn("could not start game", zap.Error(err))
			ge.broadcast(ge.errorMessage(err))
			return
		}
		log.Info("game started")

	case protocol.Select:
		if !ge.session.Select(msg.CardID) {
			log.Debug("selection ignored", zap.Int("card", msg.CardID))
			return
		}

	case protocol.NextScene:
		if !ge.session.LoadNextScene() {
			log.Debug("next scene ignored")
			return
		}

	default:
		err := fmt.Errorf("%w %s", ErrUnexpectedCommand, msg.Command)
		log.Warn("unexpected command")
		ge.broadcast(ge.errorMessage(err))
		return
	}

	ge.broadcast(ge.stateMessage())
}

func (ge *gameEngine) broadcast(msg protocol.OutboundMessage) {
	for _, sub := range ge.subscribers {
		ge.sendTo(sub, msg)
	}
}

func (ge *gameEngine) sendTo(sub Subscriber, msg protocol.OutboundMessage) {
	if err := sub.Send(msg); err != nil {
		ge.log.Warn("dropping subscriber", zap.String("subscriber", sub.ID()), zap.Error(err))
		delete(ge.subscribers, sub.ID())
	}
}

func (ge *gameEngine) errorMessage(err error) protocol.OutboundMessage {
	return protocol.OutboundMessage{
		GameID:  ge.id,
		Command: protocol.Error,
		Error:   err.Error(),
	}
}

func (ge *gameEngine) stateMessage() protocol.OutboundMessage {
	state := ge.gameState()
	return protocol.OutboundMessage{
		GameID:  ge.id,
		Command: protocol.State,
		State:   &state,
	}
}

func (ge *gameEngine) gameState() protocol.GameState {
	snap := ge.session.Snapshot()

	state := protocol.GameState{
		GameID:       ge.id,
		State:        snap.State.String(),
		InputEnabled: snap.InputEnabled,
		MatchedPairs: snap.MatchedPairs,
		PairCount:    snap.PairCount,
		Elapsed:      game.FormatElapsed(snap.Elapsed),
		TimerRunning: snap.TimerRunning,
		Cards:        make([]protocol.CardView, 0, len(snap.Cards)),
	}

	for _, c := range snap.Cards {
		view := protocol.CardView{
			CardID:      c.ID,
			Orientation: c.Orientation.String(),
			Removed:     c.Removed,
			Position:    c.Position,
		}
		if c.Removed || c.Orientation == deck.FaceUp {
			view.Face = c.Face
		}
		state.Cards = append(state.Cards, view)
	}

	return state
}
