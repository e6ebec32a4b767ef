package events

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/zhouzirui/employees-api/internal/logging"
	"github.com/zhouzirui/employees-api/internal/service/events"
	"github.com/zhouzirui/employees-api/pkg/utils"
)

const defaultKeepAlive = 15 * time.Second

// Handler 员工变更推送的HTTP处理器，支持SSE与WebSocket
type Handler struct {
	hub       *events.Hub
	logger    *slog.Logger
	keepAlive time.Duration
	upgrader  websocket.Upgrader
}

// New 创建变更推送处理器
func New(hub *events.Hub, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = logging.Nop()
	}
	return &Handler{
		hub:       hub,
		logger:    logger,
		keepAlive: defaultKeepAlive,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// RegisterRoutes 注册变更推送路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/events", h.handleSSE)
	r.Get("/events/ws", h.handleWebSocket)
}

// handleSSE 以Server-Sent Events推送员工变更
func (h *Handler) handleSSE(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		utils.RespondError(w, http.StatusInternalServerError, "streaming unsupported")
		return
	}

	ch, cancel := h.hub.Subscribe()
	defer cancel()

	utils.SetupSSEHeaders(w)
	w.WriteHeader(http.StatusOK)
	if err := utils.SendSSEComment(w, flusher, "connected"); err != nil {
		return
	}

	ctx := r.Context()
	h.logger.Debug("sse subscriber connected", "remote", r.RemoteAddr)
	defer h.logger.Debug("sse subscriber disconnected", "remote", r.RemoteAddr)

	ticker := time.NewTicker(h.keepAlive)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-ch:
			if !ok {
				return
			}
			if err := utils.SendSSEEvent(w, flusher, string(event.Type), event); err != nil {
				h.logger.Warn("sse write failed", "error", err)
				return
			}
		case <-ticker.C:
			if err := utils.SendSSEComment(w, flusher, "keep-alive"); err != nil {
				return
			}
		}
	}
}
