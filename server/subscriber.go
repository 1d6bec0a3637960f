package server

import (
	"errors"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/minaorangina/concentration/engine"
	"github.com/minaorangina/concentration/protocol"
	uuid "github.com/satori/go.uuid"
	"go.uber.org/zap"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer.
	maxMessageSize = 512

	sendBufferSize = 256
)

var (
	ErrConnectionClosed = errors.New("connection closed")
	ErrSlowConnection   = errors.New("connection is not keeping up")
)

// wsSubscriber relays a game's messages to a websocket and the
// player's commands back to the game
type wsSubscriber struct {
	id   string
	conn *websocket.Conn
	ge   engine.GameEngine
	log  *zap.Logger

	send      chan protocol.OutboundMessage
	closed    chan struct{}
	closeOnce sync.Once
}

func newWSSubscriber(conn *websocket.Conn, ge engine.GameEngine, log *zap.Logger) *wsSubscriber {
	id := uuid.NewV4().String()
	return &wsSubscriber{
		id:     id,
		conn:   conn,
		ge:     ge,
		log:    log.With(zap.String("game", ge.ID()), zap.String("subscriber", id)),
		send:   make(chan protocol.OutboundMessage, sendBufferSize),
		closed: make(chan struct{}),
	}
}

func (s *wsSubscriber) ID() string {
	return s.id
}

// Send queues msg for the write pump. It never blocks the game.
func (s *wsSubscriber) Send(msg protocol.OutboundMessage) error {
	select {
	case <-s.closed:
		return ErrConnectionClosed
	default:
	}

	select {
	case s.send <- msg:
		return nil
	default:
		s.close()
		return ErrSlowConnection
	}
}

func (s *wsSubscriber) close() {
	s.closeOnce.Do(func() {
		close(s.closed)
	})
}

func (s *wsSubscriber) readPump() {
	defer func() {
		s.ge.Unsubscribe(s.id)
		s.close()
		s.conn.Close()
	}()

	s.conn.SetReadLimit(maxMessageSize)
	s.conn.SetReadDeadline(time.Now().Add(pongWait))
	s.conn.SetPongHandler(func(string) error {
		s.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		var msg protocol.InboundMessage
		if err := s.conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.log.Warn("websocket read failed", zap.Error(err))
			}
			return
		}

		msg.PlayerID = s.id
		if err := s.ge.Receive(msg); err != nil {
			s.log.Info("game is no longer running", zap.Error(err))
			return
		}
	}
}

func (s *wsSubscriber) writePump() {
	ticker := time.NewTicker(pingPeriod)

	defer func() {
		ticker.Stop()
		s.conn.Close()
	}()

	for {
		select {
		case msg := <-s.send:
			s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteJSON(msg); err != nil {
				s.log.Warn("websocket write failed", zap.Error(err))
				s.close()
				return
			}

		case <-ticker.C:
			s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				s.close()
				return
			}

		case <-s.ge.Done():
			s.goodbye()
			return

		case <-s.closed:
			s.goodbye()
			return
		}
	}
}

func (s *wsSubscriber) goodbye() {
	s.conn.SetWriteDeadline(time.Now().Add(writeWait))
	s.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}
