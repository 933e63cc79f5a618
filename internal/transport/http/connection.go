package http

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"live-quiz-service/internal/domain"
)

// WSConfig tunes connection keepalive and buffering.
type WSConfig struct {
	PingInterval   time.Duration
	PongWait       time.Duration
	WriteWait      time.Duration
	MaxMessageSize int64
	SendBuffer     int
}

// DefaultWSConfig returns the settings used when config leaves them unset.
func DefaultWSConfig() WSConfig {
	return WSConfig{
		PingInterval:   30 * time.Second,
		PongWait:       60 * time.Second,
		WriteWait:      10 * time.Second,
		MaxMessageSize: 64 << 10,
		SendBuffer:     64,
	}
}

func (c WSConfig) withDefaults() WSConfig {
	def := DefaultWSConfig()
	if c.PingInterval <= 0 {
		c.PingInterval = def.PingInterval
	}
	if c.PongWait <= 0 {
		c.PongWait = def.PongWait
	}
	if c.PingInterval >= c.PongWait {
		c.PingInterval = (c.PongWait * 9) / 10
	}
	if c.WriteWait <= 0 {
		c.WriteWait = def.WriteWait
	}
	if c.MaxMessageSize <= 0 {
		c.MaxMessageSize = def.MaxMessageSize
	}
	if c.SendBuffer <= 0 {
		c.SendBuffer = def.SendBuffer
	}
	return c
}

// connection is one websocket peer. It implements app.Subscriber; rooms
// hand it events without blocking and only writePump touches the socket
// for writes.
type connection struct {
	id     string
	ws     *websocket.Conn
	cfg    WSConfig
	logger zerolog.Logger

	send      chan domain.Event
	done      chan struct{}
	closeOnce sync.Once

	mu    sync.Mutex
	rooms map[string]struct{}
}

func newConnection(ws *websocket.Conn, cfg WSConfig, logger zerolog.Logger) *connection {
	id := uuid.New().String()
	return &connection{
		id:     id,
		ws:     ws,
		cfg:    cfg,
		logger: logger.With().Str("conn_id", id).Logger(),
		send:   make(chan domain.Event, cfg.SendBuffer),
		done:   make(chan struct{}),
		rooms:  make(map[string]struct{}),
	}
}

func (c *connection) ID() string { return c.id }

// Deliver queues ev for writing. A full buffer closes the connection; the
// client resynchronizes through late-join replay when it reconnects.
func (c *connection) Deliver(ev domain.Event) bool {
	select {
	case <-c.done:
		return false
	default:
	}
	select {
	case c.send <- ev:
		return true
	case <-c.done:
		return false
	default:
		c.logger.Warn().Str("type", string(ev.Type)).Msg("send buffer full, closing slow connection")
		c.close()
		return false
	}
}

func (c *connection) close() {
	c.closeOnce.Do(func() { close(c.done) })
}

func (c *connection) trackRoom(code string) {
	c.mu.Lock()
	c.rooms[code] = struct{}{}
	c.mu.Unlock()
}

func (c *connection) joinedRooms() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	codes := make([]string, 0, len(c.rooms))
	for code := range c.rooms {
		codes = append(codes, code)
	}
	return codes
}

// writePump drains the send buffer to the socket and keeps the peer alive
// with pings. It closes the socket on exit, which also unblocks the reader.
func (c *connection) writePump() {
	ticker := time.NewTicker(c.cfg.PingInterval)
	defer func() {
		ticker.Stop()
		c.close()
		_ = c.ws.Close()
	}()

	for {
		select {
		case ev := <-c.send:
			_ = c.ws.SetWriteDeadline(time.Now().Add(c.cfg.WriteWait))
			if err := c.ws.WriteJSON(ev); err != nil {
				c.logger.Debug().Err(err).Msg("ws write failed")
				return
			}
		case <-ticker.C:
			_ = c.ws.SetWriteDeadline(time.Now().Add(c.cfg.WriteWait))
			if err := c.ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				c.logger.Debug().Err(err).Msg("ws ping failed")
				return
			}
		case <-c.done:
			_ = c.ws.SetWriteDeadline(time.Now().Add(c.cfg.WriteWait))
			_ = c.ws.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return
		}
	}
}
