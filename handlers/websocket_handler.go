package handlers

import (
	"log/slog"
	"net/http"

	"github.com/Dosada05/participants-admin/notify"
	"github.com/gorilla/websocket"
)

type WebSocketHandler struct {
	hub      *notify.Hub
	upgrader websocket.Upgrader
	logger   *slog.Logger
}

// NewWebSocketHandler allows handshakes only from allowedOrigins; "*" allows any.
func NewWebSocketHandler(hub *notify.Hub, allowedOrigins []string, logger *slog.Logger) *WebSocketHandler {
	origins := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		origins[o] = true
	}
	return &WebSocketHandler{
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return origin == "" || origins["*"] || origins[origin]
			},
		},
		logger: logger,
	}
}

// ServeWs подключает экран администрирования к потоку уведомлений.
// Клиент подключается к /ws/notifications.
func (h *WebSocketHandler) ServeWs(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade сам отправляет HTTP ошибку клиенту.
		h.logger.Warn("failed to upgrade websocket connection", slog.Any("error", err))
		return
	}

	client := notify.NewClient(h.hub, conn, notify.AdminRoom)
	select {
	case h.hub.Register <- client:
	case <-r.Context().Done():
		conn.Close()
		return
	}

	go client.WritePump()
	go client.ReadPump()
}
