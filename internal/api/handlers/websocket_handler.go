package handlers

import (
	"context"

	"github.com/gofiber/websocket/v2"
	"go.uber.org/zap"

	"github.com/securecheck/backend/internal/query"
	"github.com/securecheck/backend/pkg/logger"
)

// WebSocketHandler serves live vehicle lookups as the user types.
type WebSocketHandler struct {
	queryEngine     *query.Engine
	maxLookupLength int
}

func NewWebSocketHandler(queryEngine *query.Engine, maxLookupLength int) *WebSocketHandler {
	return &WebSocketHandler{
		queryEngine:     queryEngine,
		maxLookupLength: maxLookupLength,
	}
}

func (h *WebSocketHandler) HandleConnection(c *websocket.Conn) {
	logger.Info("WebSocket connection established")

	defer func() {
		c.Close()
		logger.Info("WebSocket connection closed")
	}()

	for {
		var msg struct {
			Type    string `json:"type"`
			Content string `json:"content"`
		}

		if err := c.ReadJSON(&msg); err != nil {
			logger.Debug("WebSocket read ended", zap.Error(err))
			break
		}

		if msg.Type != "lookup" {
			h.sendError(c, "unsupported message type")
			continue
		}

		if h.maxLookupLength > 0 && len(msg.Content) > h.maxLookupLength {
			h.sendError(c, "vehicle number exceeds maximum length")
			continue
		}

		resp := h.queryEngine.Lookup(context.Background(), msg.Content)

		payload := lookupPayload(resp)
		payload["type"] = "result"
		if err := c.WriteJSON(payload); err != nil {
			logger.Error("Failed to write lookup result", zap.Error(err))
			break
		}
	}
}

type jsonWriter interface {
	WriteJSON(v interface{}) error
}

func (h *WebSocketHandler) sendError(c jsonWriter, errorMsg string) {
	msg := map[string]interface{}{
		"type":  "error",
		"error": errorMsg,
	}

	if err := c.WriteJSON(msg); err != nil {
		logger.Debug("Failed to write WebSocket error", zap.Error(err))
	}
}
