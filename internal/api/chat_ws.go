package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"

	"github.com/terra-clan/ia-booster/internal/chat"
	"github.com/terra-clan/ia-booster/internal/models"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Frame types of the chat websocket
const (
	FrameConnected = "connected"
	FrameMessage   = "message"
	FrameReply     = "reply"
	FrameError     = "error"
	FramePing      = "ping"
	FramePong      = "pong"
)

// ChatFrame is one websocket message in either direction
type ChatFrame struct {
	Type     string               `json:"type"`
	Messages []models.ChatMessage `json:"messages,omitempty"`
	Response string               `json:"response,omitempty"`
	Usage    *models.ChatUsage    `json:"usage,omitempty"`
	Error    string               `json:"error,omitempty"`
	Data     string               `json:"data,omitempty"`
}

// handleChatWS serves the chat widget over a websocket. Frames are handled
// in order, so a connection has at most one provider call in flight.
func (s *Server) handleChatWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Error("failed to upgrade to websocket", "error", err)
		return
	}
	defer conn.Close()
	conn.SetReadLimit(maxBodyBytes)
	// Server read/write timeouts do not apply to a long-lived chat
	_ = conn.SetReadDeadline(time.Time{})

	requestID := middleware.GetReqID(r.Context())
	slog.Info("chat websocket connected", "request_id", requestID)

	if err := s.sendChatFrame(conn, ChatFrame{Type: FrameConnected, Data: "Connected to IA Booster assistant"}); err != nil {
		return
	}

	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				slog.Debug("websocket read error", "error", err)
			}
			break
		}

		var frame ChatFrame
		if err := json.Unmarshal(message, &frame); err != nil {
			slog.Debug("invalid message format", "error", err)
			if err := s.sendChatError(conn, msgInvalidJSON, ""); err != nil {
				break
			}
			continue
		}

		var sendErr error
		switch frame.Type {
		case FramePing:
			sendErr = s.sendChatFrame(conn, ChatFrame{Type: FramePong})
		case FrameMessage:
			sendErr = s.answerFrame(r, conn, frame)
		default:
			sendErr = s.sendChatError(conn, "unknown frame type", "")
		}
		if sendErr != nil {
			break
		}
	}

	slog.Info("chat websocket disconnected", "request_id", requestID)
}

func (s *Server) answerFrame(r *http.Request, conn *websocket.Conn, frame ChatFrame) error {
	if len(frame.Messages) == 0 {
		return s.sendChatError(conn, msgNoMessages, "")
	}
	if s.chat == nil {
		return s.sendChatError(conn, msgChatConfig, chat.Apology)
	}

	reply, err := s.chat.ReplyToConversation(r.Context(), frame.Messages)
	if err != nil {
		if chat.IsInputError(err) {
			return s.sendChatError(conn, err.Error(), "")
		}
		return s.sendChatError(conn, msgChatFailed, reply.Text)
	}

	return s.sendChatFrame(conn, ChatFrame{
		Type:     FrameReply,
		Response: reply.Text,
		Usage:    reply.Usage,
	})
}

func (s *Server) sendChatFrame(conn *websocket.Conn, frame ChatFrame) error {
	data, err := json.Marshal(frame)
	if err != nil {
		slog.Error("failed to marshal chat frame", "error", err)
		return err
	}
	if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
		slog.Debug("failed to send chat frame", "error", err)
		return err
	}
	return nil
}

func (s *Server) sendChatError(conn *websocket.Conn, message, response string) error {
	return s.sendChatFrame(conn, ChatFrame{
		Type:     FrameError,
		Error:    message,
		Response: response,
	})
}
