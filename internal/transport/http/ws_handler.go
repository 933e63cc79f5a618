package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"live-quiz-service/internal/app"
	"live-quiz-service/internal/domain"
)

type WSHandler struct {
	coordinator *app.Coordinator
	upgrader    websocket.Upgrader
	cfg         WSConfig
	logger      zerolog.Logger
}

func NewWSHandler(coordinator *app.Coordinator, cfg WSConfig, logger zerolog.Logger) *WSHandler {
	return &WSHandler{
		coordinator: coordinator,
		cfg:         cfg.withDefaults(),
		logger:      logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Origins are vetted by the upstream access layer.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// ServeWS upgrades HTTP requests to websockets and feeds every frame into
// the coordinator. Room membership comes from join/start messages, not from
// the URL, so one connection may follow several rooms.
func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	ws, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn().Err(err).Msg("ws upgrade failed")
		return
	}

	conn := newConnection(ws, h.cfg, h.logger)
	conn.logger.Debug().Str("remote", r.RemoteAddr).Msg("connection opened")

	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		conn.writePump()
	}()

	// The request context ends once the handler returns; rooms outlive it.
	ctx := context.WithoutCancel(r.Context())
	h.readLoop(ctx, conn)

	conn.close()
	<-writerDone
	for _, code := range conn.joinedRooms() {
		h.coordinator.Leave(ctx, code, conn)
	}
	conn.logger.Debug().Msg("connection closed")
}

func (h *WSHandler) readLoop(ctx context.Context, conn *connection) {
	ws := conn.ws
	ws.SetReadLimit(conn.cfg.MaxMessageSize)
	_ = ws.SetReadDeadline(time.Now().Add(conn.cfg.PongWait))
	ws.SetPongHandler(func(string) error {
		return ws.SetReadDeadline(time.Now().Add(conn.cfg.PongWait))
	})

	for {
		messageType, data, err := ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseNoStatusReceived) {
				conn.logger.Debug().Err(err).Msg("ws read failed")
			}
			return
		}
		if messageType != websocket.TextMessage {
			continue
		}

		msg, err := decodeInbound(data)
		if err != nil {
			conn.logger.Warn().Err(err).Msg("dropping inbound message")
			continue
		}
		h.dispatch(ctx, conn, msg)
	}
}

// dispatch runs one inbound message against the coordinator. A missing join
// code drops the message without touching any room or replying.
func (h *WSHandler) dispatch(ctx context.Context, conn *connection, msg inbound) {
	var err error
	switch m := msg.(type) {
	case *joinMessage:
		if _, err = h.coordinator.Join(ctx, m.Code, conn, m.Participant); err == nil {
			conn.trackRoom(m.Code)
		}
	case *startMessage:
		if _, err = h.coordinator.Start(ctx, m.Code, conn); err == nil {
			conn.trackRoom(m.Code)
		}
	case *showQuestionMessage:
		err = h.coordinator.ShowQuestion(ctx, m.Code, m.Question)
	case *answerMessage:
		err = h.coordinator.RecordAnswer(ctx, m.Code, m.answer())
	case *revealMessage:
		err = h.coordinator.Reveal(ctx, m.Code)
	case *nextMessage:
		err = h.coordinator.Next(ctx, m.Code)
	default:
		conn.logger.Error().Msgf("unhandled inbound message %T", msg)
		return
	}

	switch {
	case err == nil:
	case errors.Is(err, domain.ErrEmptyCode):
	case errors.Is(err, domain.ErrRoomNotFound):
		conn.logger.Debug().Str("room", msg.roomCode()).Msgf("%T for unknown room dropped", msg)
	default:
		conn.logger.Warn().Err(err).Str("room", msg.roomCode()).Msg("inbound message failed")
	}
}
