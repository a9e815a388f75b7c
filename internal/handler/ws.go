package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/owlconnect/matching-platform/internal/directory"
	"github.com/owlconnect/matching-platform/internal/middleware"
	"github.com/owlconnect/matching-platform/internal/model"
	"github.com/owlconnect/matching-platform/internal/negotiation"
	"github.com/owlconnect/matching-platform/internal/session"
	"github.com/owlconnect/matching-platform/internal/stream"
	"github.com/owlconnect/matching-platform/pkg/logger"
	"github.com/owlconnect/matching-platform/pkg/metrics"
)

// SocketHandler serves the negotiation WebSocket.
type SocketHandler struct {
	registry *session.Registry
	store    *directory.Store
	engine   *negotiation.Engine
	logger   *logger.Logger
	upgrader websocket.Upgrader
}

// NewSocketHandler creates a new WebSocket handler.
func NewSocketHandler(registry *session.Registry, store *directory.Store, engine *negotiation.Engine, log *logger.Logger) *SocketHandler {
	return &SocketHandler{
		registry: registry,
		store:    store,
		engine:   engine,
		logger:   log,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

// Negotiate handles GET /ws/negotiation/:session_id
//
// The client drives the session with JSON commands: {"cmd":"start"} runs
// the negotiation, {"cmd":"stop"} cancels it. Disconnecting cancels
// outstanding work the same way. A canceled run leaves no state behind:
// the unfinished session is discarded, so reconnecting with the same id
// starts over.
func (h *SocketHandler) Negotiate(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "session_id")
	if err := middleware.ValidateSessionID(sessionID); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	log := h.logger.WithSession(sessionID)
	metrics.IncrementSessions()
	defer metrics.DecrementSessions()

	// The connection owns this context. Read failure (disconnect) and the
	// stop command both cancel, which negotiation tasks observe at their
	// next turn boundary.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	starts := make(chan struct{}, 1)
	go func() {
		defer cancel()
		for {
			var cmd model.StreamCommand
			if err := conn.ReadJSON(&cmd); err != nil {
				return
			}
			switch cmd.Cmd {
			case "start":
				select {
				case starts <- struct{}{}:
				default:
				}
			case "stop":
				log.Info("stop command received")
				return
			}
		}
	}()

	select {
	case <-ctx.Done():
		return
	case <-starts:
	}

	mentee, err := h.store.NewestMentee(ctx)
	if err != nil {
		log.Warn("no mentee profile for session", zap.Error(err))
		h.send(conn, "✗ Error: no onboarded mentee profile found")
		h.send(conn, stream.SentinelDone)
		return
	}

	sess := h.registry.Obtain(sessionID, mentee)
	defer func() {
		cancel()
		if !sess.Finished() {
			h.registry.Remove(sessionID)
			log.Info("unfinished session discarded")
		}
	}()

	if sess.Begin() {
		log.Info("negotiation started", zap.String("mentee_id", mentee.ID))
		go h.engine.Run(ctx, sess)
	} else {
		log.Info("negotiation resumed")
	}

	for {
		frag, ok := sess.Mux.Next(ctx)
		if !ok {
			return
		}
		if err := h.send(conn, frag.Text); err != nil {
			log.Info("client write failed, disconnecting", zap.Error(err))
			return
		}
	}
}

func (h *SocketHandler) send(conn *websocket.Conn, text string) error {
	return conn.WriteMessage(websocket.TextMessage, []byte(text))
}
