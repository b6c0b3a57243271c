package web

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
	"go.uber.org/zap"

	"github.com/aliskhannn/quiz-engine/internal/domain/entities"
	"github.com/aliskhannn/quiz-engine/internal/service"
)

const (
	playerCookieName = "quiz_player"

	sendBuffer = 64
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = pongWait * 9 / 10
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// playerID returns the player ID from the cookie, or a new one together with the
// cookie that stores it.
func playerID(r *http.Request) (string, *http.Cookie) {
	if c, err := r.Cookie(playerCookieName); err == nil {
		if _, err := uuid.Parse(c.Value); err == nil {
			return c.Value, nil
		}
	}

	id := uuid.NewString()
	return id, &http.Cookie{
		Name:     playerCookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}

type client struct {
	conn     *websocket.Conn
	send     chan any
	done     chan struct{}
	once     sync.Once
	playerID string
	logger   *zap.Logger
}

func newClient(conn *websocket.Conn, playerID string, logger *zap.Logger) *client {
	return &client{
		conn:     conn,
		send:     make(chan any, sendBuffer),
		done:     make(chan struct{}),
		playerID: playerID,
		logger:   logger,
	}
}

// enqueue queues msg for the write pump. It never blocks.
func (c *client) enqueue(msg any) {
	select {
	case <-c.done:
	case c.send <- msg:
	default:
		c.logger.Warn("client too slow, disconnecting", zap.String("player_id", c.playerID))
		c.close()
	}
}

func (c *client) close() {
	c.once.Do(func() {
		close(c.done)
		_ = c.conn.Close()
	})
}

func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.close()
	}()

	for {
		select {
		case <-c.done:
			return
		case msg := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteJSON(msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// readPump dispatches client messages until the connection fails.
func (c *client) readPump(ctx context.Context, s *Server, deck entities.Deck) {
	var current *service.Session

	defer func() {
		// A newer connection of the same player may own the session by now.
		if sess, ok := s.games.Session(c.playerID); ok && sess == current {
			s.games.End(c.playerID)
		}
		c.close()
	}()

	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		var msg clientMessage
		if err := c.conn.ReadJSON(&msg); err != nil {
			return
		}

		switch msg.Type {
		case "start":
			sess, err := s.games.Start(ctx, c.playerID, deck.Name, presenter{client: c}, s.hooks())
			if err != nil {
				s.logger.Error("failed to start game",
					zap.String("player_id", c.playerID),
					zap.String("deck", deck.Name),
					zap.Error(err),
				)
				c.enqueue(errorMessage{Type: "error", Message: "unable to start the game"})
				continue
			}
			current = sess

		case "answer":
			verdict, err := s.games.Answer(ctx, c.playerID, msg.Option)
			if errors.Is(err, service.ErrSessionNotFound) {
				c.enqueue(errorMessage{Type: "error", Message: "no game in progress"})
				continue
			}
			if err != nil {
				s.logger.Error("failed to answer", zap.String("player_id", c.playerID), zap.Error(err))
				continue
			}
			c.enqueue(verdictMessage{Type: "verdict", Verdict: string(verdict)})

		default:
			// ignore unknown types
		}
	}
}

func (s *Server) serveWS() httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		deck, ok := s.deck(w, r, ps)
		if !ok {
			return
		}

		id, cookie := playerID(r)
		var header http.Header
		if cookie != nil {
			header = http.Header{"Set-Cookie": {cookie.String()}}
		}

		conn, err := upgrader.Upgrade(w, r, header)
		if err != nil {
			s.logger.Warn("upgrade error", zap.Error(err))
			return
		}

		c := newClient(conn, id, s.logger)
		go c.writePump()

		s.logger.Debug("client connected",
			zap.String("player_id", id),
			zap.String("deck", deck.Name),
		)

		c.readPump(s.ctx, s, deck)
	}
}
