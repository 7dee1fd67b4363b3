// Package client is a Go SDK for the ia-booster HTTP API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/terra-clan/ia-booster/internal/catalog"
	"github.com/terra-clan/ia-booster/internal/models"
)

// Client is a Go SDK for the ia-booster API
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Option configures the client
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.httpClient = client
	}
}

// WithTimeout sets the client timeout
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// NewClient creates a new ia-booster client
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// APIError is returned for every non-2xx response
type APIError struct {
	StatusCode int
	Message    string
	// Response holds the apology text sent with chat failures
	Response string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Message)
}

// ChatReply is the assistant answer to a chat conversation
type ChatReply struct {
	Response string            `json:"response"`
	Usage    *models.ChatUsage `json:"usage,omitempty"`
}

// Progress describes the stored answers of a client
type Progress struct {
	Answers  models.Answers `json:"reponses"`
	Missing  []string       `json:"missing"`
	Complete bool           `json:"complete"`
}

// ChatTurn is the reply to a message sent within a stored session
type ChatTurn struct {
	Response string             `json:"response"`
	Usage    *models.ChatUsage  `json:"usage,omitempty"`
	Session  models.ChatSession `json:"session"`
}

// ReportOptions describes the company a report is addressed to
type ReportOptions struct {
	Company string
	Sector  string
}

// Health checks if the service is healthy
func (c *Client) Health(ctx context.Context) error {
	_, err := c.doRequest(ctx, http.MethodGet, "/health", nil)
	return err
}

// Analyze submits questionnaire answers and returns the analysis
func (c *Client) Analyze(ctx context.Context, answers models.Answers) (*models.AnalysisResult, error) {
	var result models.AnalysisResult
	if err := c.doJSON(ctx, http.MethodPost, "/api/analyze", map[string]any{"reponses": answers}, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Chat sends the whole conversation and returns the reply to its last message
func (c *Client) Chat(ctx context.Context, messages []models.ChatMessage) (*ChatReply, error) {
	var reply ChatReply
	if err := c.doJSON(ctx, http.MethodPost, "/api/chat", map[string]any{"messages": messages}, &reply); err != nil {
		return nil, err
	}
	return &reply, nil
}

// Questions retrieves the questionnaire
func (c *Client) Questions(ctx context.Context) ([]models.Question, error) {
	var result struct {
		Questions []models.Question `json:"questions"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/api/v1/questions", nil, &result); err != nil {
		return nil, err
	}
	return result.Questions, nil
}

// Categories retrieves the catalog categories
func (c *Client) Categories(ctx context.Context) ([]catalog.Summary, error) {
	var result struct {
		Categories []catalog.Summary `json:"categories"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/api/v1/catalog", nil, &result); err != nil {
		return nil, err
	}
	return result.Categories, nil
}

// DomainTools samples up to limit tools for a domain. A limit of 0 uses the server default.
func (c *Client) DomainTools(ctx context.Context, domain string, limit int) ([]models.Tool, error) {
	path := "/api/v1/catalog/domains/" + url.PathEscape(domain)
	if limit > 0 {
		path += "?limit=" + strconv.Itoa(limit)
	}

	var result struct {
		Tools []models.Tool `json:"tools"`
	}
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &result); err != nil {
		return nil, err
	}
	return result.Tools, nil
}

// ReportPDF renders a result as a PDF document
func (c *Client) ReportPDF(ctx context.Context, result models.AnalysisResult, opts ReportOptions) ([]byte, error) {
	body, err := json.Marshal(map[string]any{
		"resultat":   result,
		"entreprise": opts.Company,
		"secteur":    opts.Sector,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}
	return c.doRequest(ctx, http.MethodPost, "/api/v1/report/pdf", bytes.NewReader(body))
}

// CreateClient allocates a new client id for server-side state
func (c *Client) CreateClient(ctx context.Context) (string, error) {
	var result struct {
		ClientID string `json:"clientId"`
	}
	if err := c.doJSON(ctx, http.MethodPost, "/api/v1/clients", nil, &result); err != nil {
		return "", err
	}
	return result.ClientID, nil
}

// SaveAnswers replaces the stored answers of a client
func (c *Client) SaveAnswers(ctx context.Context, clientID string, answers models.Answers) (*Progress, error) {
	var progress Progress
	if err := c.doJSON(ctx, http.MethodPut, clientPath(clientID, "/answers"), map[string]any{"reponses": answers}, &progress); err != nil {
		return nil, err
	}
	return &progress, nil
}

// SetAnswer stores a single answer of a client
func (c *Client) SetAnswer(ctx context.Context, clientID, questionID string, value any) (*Progress, error) {
	var progress Progress
	req := map[string]any{"id": questionID, "value": value}
	if err := c.doJSON(ctx, http.MethodPatch, clientPath(clientID, "/answers"), req, &progress); err != nil {
		return nil, err
	}
	return &progress, nil
}

// Answers retrieves the stored answers of a client
func (c *Client) Answers(ctx context.Context, clientID string) (*Progress, error) {
	var progress Progress
	if err := c.doJSON(ctx, http.MethodGet, clientPath(clientID, "/answers"), nil, &progress); err != nil {
		return nil, err
	}
	return &progress, nil
}

// ClientAnalysis returns the cached analysis of a client, computing it when needed
func (c *Client) ClientAnalysis(ctx context.Context, clientID string, refresh bool) (*models.AnalysisResult, error) {
	path := clientPath(clientID, "/analysis")
	if refresh {
		path += "?refresh=true"
	}

	var result models.AnalysisResult
	if err := c.doJSON(ctx, http.MethodPost, path, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// SendChatMessage answers text within the stored chat session of a client
func (c *Client) SendChatMessage(ctx context.Context, clientID, text string) (*ChatTurn, error) {
	var turn ChatTurn
	if err := c.doJSON(ctx, http.MethodPost, clientPath(clientID, "/chat/messages"), map[string]string{"text": text}, &turn); err != nil {
		return nil, err
	}
	return &turn, nil
}

// ResetClient removes all stored state of a client
func (c *Client) ResetClient(ctx context.Context, clientID string) error {
	_, err := c.doRequest(ctx, http.MethodDelete, clientPath(clientID, ""), nil)
	return err
}

func clientPath(clientID, suffix string) string {
	return "/api/v1/clients/" + url.PathEscape(clientID) + suffix
}

// doJSON sends in as JSON when non-nil and decodes the response into out
func (c *Client) doJSON(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	resp, err := c.doRequest(ctx, method, path, body)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(resp, out); err != nil {
		return fmt.Errorf("failed to unmarshal response: %w", err)
	}
	return nil
}

// doRequest performs an HTTP request
func (c *Client) doRequest(ctx context.Context, method, path string, body io.Reader) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		apiErr := &APIError{StatusCode: resp.StatusCode, Message: strings.TrimSpace(string(respBody))}
		var payload struct {
			Error    string `json:"error"`
			Response string `json:"response"`
		}
		if json.Unmarshal(respBody, &payload) == nil && payload.Error != "" {
			apiErr.Message = payload.Error
			apiErr.Response = payload.Response
		}
		return nil, apiErr
	}

	return respBody, nil
}
