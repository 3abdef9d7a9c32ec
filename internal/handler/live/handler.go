package live

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/zhouzirui/skillsetter/backend/internal/model/chat"
	chatservice "github.com/zhouzirui/skillsetter/backend/internal/service/chat"
)

const (
	pongWait   = 60 * time.Second
	pingPeriod = 30 * time.Second
	writeWait  = 10 * time.Second
)

// Handler WebSocket 实时对话处理器：每条 ask 帧执行一次完整的顾问问答。
type Handler struct {
	chatSvc  *chatservice.Service
	upgrader websocket.Upgrader
	log      logrus.FieldLogger

	pongWait   time.Duration
	pingPeriod time.Duration
}

// New 创建WebSocket处理器
func New(chatSvc *chatservice.Service, log logrus.FieldLogger) *Handler {
	return &Handler{
		chatSvc:    chatSvc,
		log:        log,
		pongWait:   pongWait,
		pingPeriod: pingPeriod,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// RegisterRoutes 注册WebSocket路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/sessions/{sessionID}/live", h.handleWebSocket)
}

type inboundMessage struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type outgoingMessage struct {
	Type      string         `json:"type"`
	SessionID string         `json:"sessionId,omitempty"`
	Message   *chat.Message  `json:"message,omitempty"`
	Messages  []chat.Message `json:"messages,omitempty"`
	Fallback  bool           `json:"fallback,omitempty"`
	Error     string         `json:"error,omitempty"`
	Timestamp int64          `json:"timestamp"`
}

// connection serialises writes; gorilla allows one concurrent writer.
type connection struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func (c *connection) send(msg outgoingMessage) error {
	msg.Timestamp = time.Now().UnixMilli()
	c.mu.Lock()
	defer c.mu.Unlock()
	c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return c.conn.WriteJSON(msg)
}

func (c *connection) ping() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait))
}

// handleWebSocket 处理WebSocket连接
func (h *Handler) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	messages, err := h.chatSvc.LoadTranscript(r.Context(), sessionID)
	if err != nil {
		http.Error(w, "session not found", http.StatusNotFound)
		return
	}

	ws, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.WithError(err).Warn("[live] upgrade failed")
		return
	}
	defer ws.Close()

	log := h.log.WithField("session", sessionID)
	log.Info("[live] connection opened")

	conn := &connection{conn: ws}
	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	ws.SetReadDeadline(time.Now().Add(h.pongWait))
	ws.SetPongHandler(func(string) error {
		return ws.SetReadDeadline(time.Now().Add(h.pongWait))
	})

	go h.pingLoop(ctx, conn)

	if err := conn.send(outgoingMessage{Type: "connected", SessionID: sessionID, Messages: messages}); err != nil {
		return
	}

	// Answers run beside the read loop so pongs keep the connection alive during slow advice calls.
	var pending sync.WaitGroup
	defer pending.Wait()

	for {
		var msg inboundMessage
		if err := ws.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.WithError(err).Warn("[live] read error")
			}
			return
		}
		ws.SetReadDeadline(time.Now().Add(h.pongWait))

		if msg.Type != "ask" {
			if err := conn.send(outgoingMessage{Type: "error", SessionID: sessionID, Error: "unsupported message type: " + msg.Type}); err != nil {
				log.WithError(err).Warn("[live] write failed")
				return
			}
			continue
		}

		pending.Add(1)
		go func(text string) {
			defer pending.Done()
			if err := h.answer(ctx, conn, sessionID, text); err != nil {
				log.WithError(err).Warn("[live] write failed")
			}
		}(msg.Text)
	}
}

// answer runs one exchange and sends the advisor message or an error frame.
func (h *Handler) answer(ctx context.Context, conn *connection, sessionID, text string) error {
	exchange, err := h.chatSvc.Ask(ctx, sessionID, text)
	if err != nil {
		return conn.send(outgoingMessage{Type: "error", SessionID: sessionID, Error: describe(err)})
	}

	answer := exchange.Answer
	return conn.send(outgoingMessage{
		Type:      "message",
		SessionID: sessionID,
		Message:   &answer,
		Fallback:  exchange.Fallback(),
	})
}

func (h *Handler) pingLoop(ctx context.Context, conn *connection) {
	ticker := time.NewTicker(h.pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := conn.ping(); err != nil {
				return
			}
		}
	}
}

func describe(err error) string {
	switch {
	case errors.Is(err, chatservice.ErrInvalidInput):
		return "message text must not be empty"
	case errors.Is(err, chatservice.ErrRequestInFlight):
		return "please wait for the current answer"
	case errors.Is(err, chatservice.ErrSessionNotFound):
		return "session not found"
	default:
		return err.Error()
	}
}
