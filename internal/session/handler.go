package session

import (
	"log/slog"
	"net/http"

	"github.com/coder/websocket"
	"github.com/google/uuid"

	"github.com/sketchpad/sketchpad/internal/auth"
	"github.com/sketchpad/sketchpad/internal/editor"
)

// Handler upgrades HTTP requests into editor sessions.
type Handler struct {
	hub            *Hub
	editor         editor.Options
	originPatterns []string
}

// NewHandler creates a websocket handler. Every connection gets its own
// document built from opts.
func NewHandler(hub *Hub, opts editor.Options, originPatterns []string) *Handler {
	return &Handler{hub: hub, editor: opts, originPatterns: originPatterns}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: h.originPatterns,
	})
	if err != nil {
		slog.Error("websocket accept", "error", err)
		return
	}

	s := New(h.editor)
	client := NewClient(h.hub, conn, s, uuid.New().String())
	slog.Info("editor session opened",
		"session", s.ID,
		"client", client.ClientID,
		"token", auth.TokenIDFromContext(r.Context()),
	)
	h.hub.Register(client)

	ctx := r.Context()
	go client.WritePump(ctx)
	client.ReadPump(ctx)
}
