package api

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/terra-clan/ia-booster/internal/chat"
	"github.com/terra-clan/ia-booster/internal/models"
	"github.com/terra-clan/ia-booster/internal/report"
	"github.com/terra-clan/ia-booster/internal/state"
)

// Client state handlers: server-side counterpart of the browser storage

// respondStateError maps state errors to HTTP responses
func respondStateError(w http.ResponseWriter, err error, notFound string) {
	switch {
	case errors.Is(err, state.ErrNotFound):
		respondError(w, http.StatusNotFound, notFound)
	case errors.Is(err, state.ErrInvalidClientID):
		respondError(w, http.StatusBadRequest, "invalid client id")
	case errors.Is(err, state.ErrInvalidAnswer):
		respondError(w, http.StatusBadRequest, err.Error())
	default:
		slog.Error("client state operation failed", "error", err)
		respondError(w, http.StatusInternalServerError, msgStateFailed)
	}
}

func (s *Server) handleCreateClient(w http.ResponseWriter, r *http.Request) {
	if s.state == nil {
		respondError(w, http.StatusServiceUnavailable, "client state is not enabled")
		return
	}
	respondJSON(w, http.StatusCreated, map[string]string{
		"clientId": state.NewClientID(),
	})
}

func (s *Server) handleResetClient(w http.ResponseWriter, r *http.Request) {
	clientID := ClientIDFromContext(r.Context())

	deleted, err := s.state.Reset(r.Context(), clientID)
	if err != nil {
		respondStateError(w, err, "client not found")
		return
	}

	slog.Info("client state reset", "client_id", clientID, "deleted", deleted)
	respondJSON(w, http.StatusOK, map[string]int{"deleted": deleted})
}

// Answers

func (s *Server) handleGetAnswers(w http.ResponseWriter, r *http.Request) {
	answers, err := s.state.Answers(r.Context(), ClientIDFromContext(r.Context()))
	if err != nil && !errors.Is(err, state.ErrNotFound) {
		respondStateError(w, err, "")
		return
	}
	respondJSON(w, http.StatusOK, newProgress(answers))
}

func (s *Server) handlePutAnswers(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := decodeJSON(w, r, &req); err != nil || isNullOrAbsent(req.Answers) {
		respondError(w, http.StatusBadRequest, msgMissingAnswers)
		return
	}

	answers, err := parseAnswers(req.Answers)
	if err != nil {
		respondError(w, http.StatusBadRequest, msgInvalidAnswers)
		return
	}

	clientID := ClientIDFromContext(r.Context())
	if err := s.saveAnswers(r, clientID, answers); err != nil {
		respondStateError(w, err, "")
		return
	}

	respondJSON(w, http.StatusOK, newProgress(answers))
}

// saveAnswers stores answers and drops the result computed from the previous ones
func (s *Server) saveAnswers(r *http.Request, clientID string, answers models.Answers) error {
	if err := s.state.SaveAnswers(r.Context(), clientID, answers); err != nil {
		return err
	}
	return s.state.ClearResult(r.Context(), clientID)
}

type answerPatch struct {
	ID    string `json:"id"`
	Value any    `json:"value"`
}

func (s *Server) handlePatchAnswer(w http.ResponseWriter, r *http.Request) {
	var req answerPatch
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, msgInvalidJSON)
		return
	}
	if req.ID == "" || req.Value == nil {
		respondError(w, http.StatusBadRequest, "id and value are required")
		return
	}

	clientID := ClientIDFromContext(r.Context())
	answers, err := s.state.SetAnswer(r.Context(), clientID, req.ID, req.Value)
	if err != nil {
		respondStateError(w, err, "")
		return
	}
	if err := s.state.ClearResult(r.Context(), clientID); err != nil {
		respondStateError(w, err, "")
		return
	}

	respondJSON(w, http.StatusOK, newProgress(answers))
}

func (s *Server) handleDeleteAnswers(w http.ResponseWriter, r *http.Request) {
	if err := s.state.ClearAnswers(r.Context(), ClientIDFromContext(r.Context())); err != nil {
		respondStateError(w, err, "")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Results

func (s *Server) handleGetResult(w http.ResponseWriter, r *http.Request) {
	result, err := s.state.Result(r.Context(), ClientIDFromContext(r.Context()))
	if err != nil {
		respondStateError(w, err, "Aucun résultat")
		return
	}
	respondJSON(w, http.StatusOK, result)
}

func (s *Server) handleDeleteResult(w http.ResponseWriter, r *http.Request) {
	if err := s.state.ClearResult(r.Context(), ClientIDFromContext(r.Context())); err != nil {
		respondStateError(w, err, "")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleClientAnalysis returns the cached result, computing it from the
// stored answers when absent or when refresh=true
func (s *Server) handleClientAnalysis(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	clientID := ClientIDFromContext(ctx)

	if r.URL.Query().Get("refresh") != "true" {
		cached, err := s.state.Result(ctx, clientID)
		if err == nil {
			w.Header().Set("X-Cache", "hit")
			respondJSON(w, http.StatusOK, cached)
			return
		}
		if !errors.Is(err, state.ErrNotFound) {
			respondStateError(w, err, "")
			return
		}
	}

	answers, err := s.state.Answers(ctx, clientID)
	if err != nil {
		if errors.Is(err, state.ErrNotFound) {
			respondError(w, http.StatusBadRequest, msgMissingAnswers)
			return
		}
		respondStateError(w, err, "")
		return
	}

	if s.advisor == nil {
		respondError(w, http.StatusInternalServerError, msgAnalysisFailed)
		return
	}

	result := s.advisor.Recommend(ctx, answers)
	if err := s.state.SaveResult(ctx, clientID, result); err != nil {
		respondStateError(w, err, "")
		return
	}

	slog.Info("client analysis completed", "client_id", clientID, "source", result.Source, "score", result.Score)
	w.Header().Set("X-Cache", "miss")
	respondJSON(w, http.StatusOK, result)
}

func (s *Server) handleClientReportPDF(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	clientID := ClientIDFromContext(ctx)

	result, err := s.state.Result(ctx, clientID)
	if err != nil {
		respondStateError(w, err, "Aucun résultat")
		return
	}

	opts := report.Options{
		Company: r.URL.Query().Get("entreprise"),
		Sector:  r.URL.Query().Get("secteur"),
	}
	if opts.Sector == "" {
		if answers, err := s.state.Answers(ctx, clientID); err == nil {
			opts.Sector = answers.SecteurActivite
		}
	}

	writePDF(w, result, opts)
}

// Chat sessions

func (s *Server) handleGetChat(w http.ResponseWriter, r *http.Request) {
	session, err := s.state.ChatSession(r.Context(), ClientIDFromContext(r.Context()))
	if err != nil {
		respondStateError(w, err, "chat session not found")
		return
	}
	respondJSON(w, http.StatusOK, session)
}

func (s *Server) handlePutChat(w http.ResponseWriter, r *http.Request) {
	var session models.ChatSession
	if err := decodeJSON(w, r, &session); err != nil {
		respondError(w, http.StatusBadRequest, msgInvalidJSON)
		return
	}

	saved, err := s.state.SaveChatSession(r.Context(), ClientIDFromContext(r.Context()), session)
	if err != nil {
		respondStateError(w, err, "")
		return
	}
	respondJSON(w, http.StatusOK, saved)
}

func (s *Server) handleDeleteChat(w http.ResponseWriter, r *http.Request) {
	if err := s.state.ClearChatSession(r.Context(), ClientIDFromContext(r.Context())); err != nil {
		respondStateError(w, err, "")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type chatMessageRequest struct {
	Text string `json:"text"`
}

type chatMessageResponse struct {
	Response string             `json:"response"`
	Usage    *models.ChatUsage  `json:"usage,omitempty"`
	Session  models.ChatSession `json:"session"`
}

// handlePostChatMessage answers a message within the stored session and
// appends both turns to it. The apology is stored when the provider fails.
func (s *Server) handlePostChatMessage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	clientID := ClientIDFromContext(ctx)

	var req chatMessageRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, msgInvalidJSON)
		return
	}

	session, err := s.state.ChatSession(ctx, clientID)
	if err != nil && !errors.Is(err, state.ErrNotFound) {
		respondStateError(w, err, "")
		return
	}

	if s.chat == nil {
		respondJSON(w, http.StatusInternalServerError, errorResponse{Error: msgChatConfig, Response: chat.Apology})
		return
	}

	reply, replyErr := s.chat.Reply(ctx, session.Messages, req.Text)
	if replyErr != nil && chat.IsInputError(replyErr) {
		respondChatError(w, replyErr)
		return
	}

	sent := time.Now().UTC()
	session.Messages = append(session.Messages,
		models.ChatMessage{ID: uuid.NewString(), Text: req.Text, Timestamp: &sent},
	)
	answered := time.Now().UTC()
	session.Messages = append(session.Messages,
		models.ChatMessage{ID: uuid.NewString(), Text: reply.Text, IsBot: true, Timestamp: &answered},
	)

	saved, err := s.state.SaveChatSession(ctx, clientID, session)
	if err != nil {
		respondStateError(w, err, "")
		return
	}

	if replyErr != nil {
		respondChatError(w, replyErr)
		return
	}

	respondJSON(w, http.StatusOK, chatMessageResponse{
		Response: reply.Text,
		Usage:    reply.Usage,
		Session:  saved,
	})
}
