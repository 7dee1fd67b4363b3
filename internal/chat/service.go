// Package chat answers free-form questions of the chat widget through the LLM provider.
package chat

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/terra-clan/ia-booster/internal/llm"
	"github.com/terra-clan/ia-booster/internal/metrics"
	"github.com/terra-clan/ia-booster/internal/models"
)

// Apology is returned as reply text whenever the provider cannot answer
const Apology = "Désolé, il y a eu un problème technique. Veuillez réessayer dans un moment."

const (
	historyWindow    = 10
	chatTemperature  = 0.7
	chatTopP         = 0.9
	chatMaxTokens    = 1000
	statusOK         = "ok"
	statusError      = "error"
	statusNoProvider = "not_configured"
)

const systemPrompt = `Tu es un assistant IA expert spécialisé dans l'intégration de l'intelligence artificielle dans les workflows d'entreprise. Tu aides les utilisateurs à :

1. **Automatiser leurs processus métier** avec des outils IA
2. **Optimiser leur productivité** grâce à l'IA
3. **Choisir les bons outils IA** pour leur secteur
4. **Mesurer le ROI** de leurs investissements IA
5. **Répondre aux questions générales** sur l'IA, machine learning, etc.

**Ton expertise couvre :**
- Outils IA : ChatGPT, Claude, Notion AI, Zapier, Make.com, Midjourney, etc.
- Domaines : E-commerce, marketing, finance, service client, RH, etc.
- Technologies : Machine learning, NLP, computer vision, automation
- Stratégie : Implémentation progressive, formation équipes, mesure performance

**Ton style de communication :**
- Professionnel mais accessible
- Réponses concises et actionnables
- Exemples concrets et pratiques
- Questions de suivi pour mieux aider
- Réponds dans la langue de l'utilisateur, en français par défaut

Aide l'utilisateur à transformer son entreprise avec l'IA de manière pratique et mesurable.`

var (
	// ErrNoMessages is returned when a conversation has no message at all.
	ErrNoMessages = errors.New("messages array is required")
	// ErrLastNotUser is returned when the conversation does not end with a user message.
	ErrLastNotUser = errors.New("last message must be a user message")
	// ErrEmptyMessage is returned when the user message is blank.
	ErrEmptyMessage = errors.New("message text is empty")
)

// Reply is the assistant answer. Text is never empty.
type Reply struct {
	Text  string            `json:"response"`
	Usage *models.ChatUsage `json:"usage,omitempty"`
}

// Service produces chat replies
type Service struct {
	completer llm.Completer
	model     string
	recorder  metrics.Recorder
}

// NewService creates a chat service calling model through completer
func NewService(completer llm.Completer, model string, recorder metrics.Recorder) *Service {
	if recorder == nil {
		recorder = metrics.Nop()
	}
	return &Service{
		completer: completer,
		model:     model,
		recorder:  recorder,
	}
}

// Reply answers message given the prior history. Only the last 10 history
// turns are sent. On failure the reply carries the apology text and err
// reports the cause.
func (s *Service) Reply(ctx context.Context, history []models.ChatMessage, message string) (Reply, error) {
	if strings.TrimSpace(message) == "" {
		return Reply{Text: Apology}, ErrEmptyMessage
	}

	if len(history) > historyWindow {
		history = history[len(history)-historyWindow:]
	}

	messages := make([]llm.Message, 0, len(history)+2)
	messages = append(messages, llm.Message{Role: llm.RoleSystem, Content: systemPrompt})
	for _, m := range history {
		role := llm.RoleUser
		if m.IsBot {
			role = llm.RoleAssistant
		}
		messages = append(messages, llm.Message{Role: role, Content: m.Text})
	}
	messages = append(messages, llm.Message{Role: llm.RoleUser, Content: message})

	resp, err := s.completer.Complete(ctx, llm.Request{
		Model:       s.model,
		Messages:    messages,
		Temperature: chatTemperature,
		TopP:        chatTopP,
		MaxTokens:   chatMaxTokens,
	})
	if err != nil {
		status := statusError
		if errors.Is(err, llm.ErrNotConfigured) {
			status = statusNoProvider
		}
		s.recorder.IncChatReply(status)
		slog.Error("chat reply failed", "error", err)
		return Reply{Text: Apology}, err
	}

	if strings.TrimSpace(resp.Content) == "" {
		s.recorder.IncChatReply(statusError)
		return Reply{Text: Apology}, llm.ErrEmptyResponse
	}

	s.recorder.IncChatReply(statusOK)
	usage := resp.Usage
	return Reply{Text: resp.Content, Usage: &usage}, nil
}

// ReplyToConversation answers the last message of a full conversation.
// The conversation must be non-empty and end with a non-blank user message.
func (s *Service) ReplyToConversation(ctx context.Context, conversation []models.ChatMessage) (Reply, error) {
	history, message, err := SplitConversation(conversation)
	if err != nil {
		return Reply{Text: Apology}, err
	}
	return s.Reply(ctx, history, message)
}

// SplitConversation separates the prior history from the trailing user message
func SplitConversation(conversation []models.ChatMessage) ([]models.ChatMessage, string, error) {
	if len(conversation) == 0 {
		return nil, "", ErrNoMessages
	}
	last := conversation[len(conversation)-1]
	if last.IsBot {
		return nil, "", ErrLastNotUser
	}
	if strings.TrimSpace(last.Text) == "" {
		return nil, "", ErrEmptyMessage
	}
	return conversation[:len(conversation)-1], last.Text, nil
}

// IsInputError reports whether err comes from an invalid conversation rather than the provider
func IsInputError(err error) bool {
	return errors.Is(err, ErrNoMessages) || errors.Is(err, ErrLastNotUser) || errors.Is(err, ErrEmptyMessage)
}
