package state

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"time"

	"github.com/google/uuid"

	"github.com/terra-clan/ia-booster/internal/models"
)

var (
	// ErrInvalidClientID is returned for ids that cannot be used as a key segment
	ErrInvalidClientID = errors.New("invalid client id")
	// ErrInvalidAnswer is returned when a single answer update does not type-check
	ErrInvalidAnswer = errors.New("invalid answer")
)

var clientIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,128}$`)

// Blob names, one per client
const (
	blobAnswers = "reponses"
	blobResult  = "resultats"
	blobChat    = "chat-session"
)

// Service reads and writes the typed client blobs. Corrupted blobs are
// discarded and reported as absent.
type Service struct {
	store   Store
	chatTTL time.Duration
	now     func() time.Time
}

// NewService creates a client state service. Chat sessions inactive for
// longer than chatTTL are discarded.
func NewService(store Store, chatTTL time.Duration) *Service {
	return &Service{
		store:   store,
		chatTTL: chatTTL,
		now:     time.Now,
	}
}

// Store returns the underlying blob store
func (s *Service) Store() Store {
	return s.store
}

// NewClientID returns a fresh opaque client id
func NewClientID() string {
	return uuid.NewString()
}

// ValidClientID reports whether id can be used as a client id
func ValidClientID(id string) bool {
	return clientIDPattern.MatchString(id)
}

func blobKey(clientID, blob string) string {
	return fmt.Sprintf("client:%s:%s", clientID, blob)
}

func (s *Service) load(ctx context.Context, clientID, blob string, v any) error {
	if !ValidClientID(clientID) {
		return ErrInvalidClientID
	}

	key := blobKey(clientID, blob)
	data, err := s.store.Get(ctx, key)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(data, v); err != nil {
		slog.Warn("discarding corrupted client state",
			"client_id", clientID,
			"blob", blob,
			"error", err,
		)
		if delErr := s.store.Delete(ctx, key); delErr != nil {
			slog.Error("failed to discard corrupted client state", "error", delErr, "client_id", clientID)
		}
		return ErrNotFound
	}
	return nil
}

func (s *Service) save(ctx context.Context, clientID, blob string, v any, ttl time.Duration) error {
	if !ValidClientID(clientID) {
		return ErrInvalidClientID
	}

	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", blob, err)
	}
	return s.store.Set(ctx, blobKey(clientID, blob), data, ttl)
}

func (s *Service) clear(ctx context.Context, clientID string, blobs ...string) error {
	if !ValidClientID(clientID) {
		return ErrInvalidClientID
	}
	keys := make([]string, len(blobs))
	for i, b := range blobs {
		keys[i] = blobKey(clientID, b)
	}
	return s.store.Delete(ctx, keys...)
}

// Answers returns the stored answers or ErrNotFound
func (s *Service) Answers(ctx context.Context, clientID string) (models.Answers, error) {
	var a models.Answers
	if err := s.load(ctx, clientID, blobAnswers, &a); err != nil {
		return models.Answers{}, err
	}
	return a, nil
}

// SaveAnswers replaces the stored answers
func (s *Service) SaveAnswers(ctx context.Context, clientID string, a models.Answers) error {
	return s.save(ctx, clientID, blobAnswers, a, 0)
}

// SetAnswer updates a single answer, starting from empty answers when none are stored
func (s *Service) SetAnswer(ctx context.Context, clientID, field string, value any) (models.Answers, error) {
	a, err := s.Answers(ctx, clientID)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return models.Answers{}, err
	}

	if err := a.Set(field, value); err != nil {
		return models.Answers{}, fmt.Errorf("%w: %w", ErrInvalidAnswer, err)
	}

	if err := s.SaveAnswers(ctx, clientID, a); err != nil {
		return models.Answers{}, err
	}
	return a, nil
}

// ClearAnswers restarts the quiz: answers and the cached result are removed
func (s *Service) ClearAnswers(ctx context.Context, clientID string) error {
	return s.clear(ctx, clientID, blobAnswers, blobResult)
}

// Result returns the cached analysis result or ErrNotFound
func (s *Service) Result(ctx context.Context, clientID string) (models.AnalysisResult, error) {
	var r models.AnalysisResult
	if err := s.load(ctx, clientID, blobResult, &r); err != nil {
		return models.AnalysisResult{}, err
	}
	return r, nil
}

// SaveResult caches an analysis result
func (s *Service) SaveResult(ctx context.Context, clientID string, r models.AnalysisResult) error {
	return s.save(ctx, clientID, blobResult, r, 0)
}

// ClearResult drops the cached analysis result
func (s *Service) ClearResult(ctx context.Context, clientID string) error {
	return s.clear(ctx, clientID, blobResult)
}

// ChatSession returns the live chat session. An expired session is removed
// and reported as ErrNotFound.
func (s *Service) ChatSession(ctx context.Context, clientID string) (models.ChatSession, error) {
	var session models.ChatSession
	if err := s.load(ctx, clientID, blobChat, &session); err != nil {
		return models.ChatSession{}, err
	}

	if session.IsExpired(s.now(), s.chatTTL) {
		slog.Info("chat session expired", "client_id", clientID, "session_id", session.ID)
		if err := s.ClearChatSession(ctx, clientID); err != nil {
			return models.ChatSession{}, err
		}
		return models.ChatSession{}, ErrNotFound
	}
	return session, nil
}

// SaveChatSession stores the session, stamping its activity time. Missing
// session and user ids are filled in.
func (s *Service) SaveChatSession(ctx context.Context, clientID string, session models.ChatSession) (models.ChatSession, error) {
	if session.ID == "" {
		session.ID = uuid.NewString()
	}
	if session.UserID == "" {
		session.UserID = clientID
	}
	if session.Messages == nil {
		session.Messages = []models.ChatMessage{}
	}
	session.LastActivity = s.now().UTC()

	if err := s.save(ctx, clientID, blobChat, session, s.chatTTL); err != nil {
		return models.ChatSession{}, err
	}
	return session, nil
}

// ClearChatSession removes the chat session
func (s *Service) ClearChatSession(ctx context.Context, clientID string) error {
	return s.clear(ctx, clientID, blobChat)
}

// Reset removes every blob of the client
func (s *Service) Reset(ctx context.Context, clientID string) (int, error) {
	if !ValidClientID(clientID) {
		return 0, ErrInvalidClientID
	}
	return s.store.DeletePrefix(ctx, fmt.Sprintf("client:%s:", clientID))
}
