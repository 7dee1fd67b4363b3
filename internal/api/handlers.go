package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/terra-clan/ia-booster/internal/chat"
	"github.com/terra-clan/ia-booster/internal/llm"
	"github.com/terra-clan/ia-booster/internal/models"
)

const (
	msgMissingAnswers = "Réponses manquantes"
	msgInvalidAnswers = "Réponses invalides"
	msgAnalysisFailed = "Erreur lors de l'analyse"
	msgNoMessages     = "Messages array is required"
	msgChatConfig     = "API configuration error"
	msgChatFailed     = "Failed to get AI response"
	msgInvalidJSON    = "invalid request body"
	msgStateFailed    = "client state unavailable"
)

// Response helpers

type errorResponse struct {
	Error    string `json:"error"`
	Response string `json:"response,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, errorResponse{Error: message})
}

// decodeJSON reads a size-limited JSON body into v
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	limitBody(w, r)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("empty request body")
		}
		return err
	}
	return nil
}

// parseAnswers decodes a raw "reponses" object and checks enumerated values
func parseAnswers(raw json.RawMessage) (models.Answers, error) {
	var answers models.Answers
	if err := json.Unmarshal(raw, &answers); err != nil {
		return models.Answers{}, err
	}
	if answers.TailleEntreprise != "" && !answers.TailleEntreprise.Valid() {
		return models.Answers{}, fmt.Errorf("unknown company size %q", answers.TailleEntreprise)
	}
	if answers.DemandeClientVolume != nil && *answers.DemandeClientVolume < 0 {
		return models.Answers{}, fmt.Errorf("negative request volume")
	}
	return answers, nil
}

func isNullOrAbsent(raw json.RawMessage) bool {
	return len(raw) == 0 || string(raw) == "null"
}

// Health handlers

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	statuses, ready := s.registry.Readiness(r.Context())

	status := http.StatusOK
	label := "ready"
	if !ready {
		status = http.StatusServiceUnavailable
		label = "not_ready"
	}

	respondJSON(w, status, map[string]any{
		"status":   label,
		"services": statuses,
	})
}

// Analysis handler

type analyzeRequest struct {
	Answers json.RawMessage `json:"reponses"`
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, msgMissingAnswers)
		return
	}

	if isNullOrAbsent(req.Answers) {
		respondError(w, http.StatusBadRequest, msgMissingAnswers)
		return
	}

	answers, err := parseAnswers(req.Answers)
	if err != nil {
		slog.Debug("invalid answers", "error", err)
		respondError(w, http.StatusBadRequest, msgInvalidAnswers)
		return
	}

	if s.advisor == nil {
		respondError(w, http.StatusInternalServerError, msgAnalysisFailed)
		return
	}

	result := s.advisor.Recommend(r.Context(), answers)
	slog.Info("analysis completed",
		"source", result.Source,
		"score", result.Score,
		"recommendations", len(result.Recommendations),
	)

	respondJSON(w, http.StatusOK, result)
}

// Chat handler

type chatRequest struct {
	Messages []models.ChatMessage `json:"messages"`
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, msgNoMessages)
		return
	}

	if len(req.Messages) == 0 {
		respondError(w, http.StatusBadRequest, msgNoMessages)
		return
	}

	if s.chat == nil {
		respondJSON(w, http.StatusInternalServerError, errorResponse{Error: msgChatConfig, Response: chat.Apology})
		return
	}

	reply, err := s.chat.ReplyToConversation(r.Context(), req.Messages)
	if err != nil {
		respondChatError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, reply)
}

// respondChatError maps a chat failure to its HTTP status. Provider failures
// still carry the apology so the widget can display it.
func respondChatError(w http.ResponseWriter, err error) {
	if chat.IsInputError(err) {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	message := msgChatFailed
	if errors.Is(err, llm.ErrNotConfigured) {
		message = msgChatConfig
	}
	respondJSON(w, http.StatusInternalServerError, errorResponse{Error: message, Response: chat.Apology})
}
