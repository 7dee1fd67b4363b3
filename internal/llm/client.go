// Package llm wraps the OpenAI-compatible chat completion API used through OpenRouter.
package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/terra-clan/ia-booster/internal/config"
	"github.com/terra-clan/ia-booster/internal/metrics"
	"github.com/terra-clan/ia-booster/internal/models"
)

var (
	// ErrNotConfigured is returned when no provider credential is set.
	ErrNotConfigured = errors.New("llm provider is not configured")
	// ErrEmptyResponse is returned when the provider answers without content.
	ErrEmptyResponse = errors.New("empty response from llm provider")
)

// Role is the author of a prompt message
type Role string

const (
	RoleSystem    Role = openai.ChatMessageRoleSystem
	RoleUser      Role = openai.ChatMessageRoleUser
	RoleAssistant Role = openai.ChatMessageRoleAssistant
)

// Message is one prompt message
type Message struct {
	Role    Role
	Content string
}

// Request describes a single chat completion call
type Request struct {
	Model       string
	Messages    []Message
	Temperature float32
	TopP        float32
	MaxTokens   int
}

// Response carries the first choice content and token usage
type Response struct {
	Content string
	Model   string
	Usage   models.ChatUsage
}

// Completer issues chat completions. Implemented by *Client and by test fakes.
type Completer interface {
	Complete(ctx context.Context, req Request) (Response, error)
}

// Client calls an OpenAI-compatible provider
type Client struct {
	client     *openai.Client
	httpClient *http.Client
	configured bool
	timeout    time.Duration
	recorder   metrics.Recorder
}

// Option configures a Client
type Option func(*Client)

// WithRecorder sets the metrics recorder
func WithRecorder(r metrics.Recorder) Option {
	return func(c *Client) {
		c.recorder = r
	}
}

// WithHTTPClient replaces the transport used for provider calls.
// The OpenRouter attribution headers are still added.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// NewClient creates a provider client from configuration
func NewClient(cfg config.LLMConfig, opts ...Option) *Client {
	c := &Client{
		configured: cfg.Configured(),
		timeout:    cfg.Timeout,
		recorder:   metrics.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}

	base := http.DefaultTransport
	if c.httpClient != nil && c.httpClient.Transport != nil {
		base = c.httpClient.Transport
	}

	headers := map[string]string{}
	if cfg.SiteURL != "" {
		headers["HTTP-Referer"] = cfg.SiteURL
	}
	if cfg.SiteName != "" {
		headers["X-Title"] = cfg.SiteName
	}

	oc := openai.DefaultConfig(cfg.APIKey)
	oc.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	oc.HTTPClient = &http.Client{
		Transport: &headerTransport{base: base, headers: headers},
	}
	c.client = openai.NewClientWithConfig(oc)

	return c
}

// Configured reports whether calls can reach the provider
func (c *Client) Configured() bool {
	return c.configured
}

// Complete issues a non-streaming chat completion bounded by the configured timeout.
func (c *Client) Complete(ctx context.Context, req Request) (Response, error) {
	if !c.configured {
		return Response{}, ErrNotConfigured
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	messages := make([]openai.ChatCompletionMessage, 0, len(req.Messages))
	for _, m := range req.Messages {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    string(m.Role),
			Content: m.Content,
		})
	}

	start := time.Now()
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       req.Model,
		Messages:    messages,
		Temperature: req.Temperature,
		TopP:        req.TopP,
		MaxTokens:   req.MaxTokens,
		Stream:      false,
	})
	duration := time.Since(start)

	if err != nil {
		c.recorder.ObserveLLMRequest(req.Model, 0, 0, false, errorType(err), duration)
		return Response{}, fmt.Errorf("chat completion failed: %w", err)
	}

	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		c.recorder.ObserveLLMRequest(req.Model, resp.Usage.PromptTokens, resp.Usage.CompletionTokens, false, "empty", duration)
		return Response{}, ErrEmptyResponse
	}

	c.recorder.ObserveLLMRequest(req.Model, resp.Usage.PromptTokens, resp.Usage.CompletionTokens, true, "", duration)

	return Response{
		Content: resp.Choices[0].Message.Content,
		Model:   resp.Model,
		Usage: models.ChatUsage{
			PromptTokens:     resp.Usage.PromptTokens,
			CompletionTokens: resp.Usage.CompletionTokens,
			TotalTokens:      resp.Usage.TotalTokens,
		},
	}, nil
}

// errorType maps a provider error to a low-cardinality metrics label
func errorType(err error) string {
	var apiErr *openai.APIError
	var reqErr *openai.RequestError
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case errors.Is(err, context.Canceled):
		return "canceled"
	case errors.As(err, &apiErr):
		return fmt.Sprintf("http_%d", apiErr.HTTPStatusCode)
	case errors.As(err, &reqErr):
		return fmt.Sprintf("http_%d", reqErr.HTTPStatusCode)
	}
	return "transport"
}

// headerTransport adds fixed headers to every outgoing request
type headerTransport struct {
	base    http.RoundTripper
	headers map[string]string
}

func (t *headerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	for k, v := range t.headers {
		req.Header.Set(k, v)
	}
	return t.base.RoundTrip(req)
}
