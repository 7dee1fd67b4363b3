package models

import "time"

// ChatMessage is one turn of the chat widget conversation
type ChatMessage struct {
	ID        string     `json:"id,omitempty"`
	Text      string     `json:"text"`
	IsBot     bool       `json:"isBot"`
	Timestamp *time.Time `json:"timestamp,omitempty"`
}

// ChatSession is the persisted chat widget state of one client
type ChatSession struct {
	ID           string        `json:"id"`
	Messages     []ChatMessage `json:"messages"`
	LastActivity time.Time     `json:"lastActivity"`
	UserID       string        `json:"userId"`
}

// IsExpired reports whether the session has been inactive longer than ttl
func (s *ChatSession) IsExpired(now time.Time, ttl time.Duration) bool {
	if ttl <= 0 {
		return false
	}
	return now.Sub(s.LastActivity) > ttl
}

// ChatUsage mirrors the token usage block returned by the provider
type ChatUsage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}
