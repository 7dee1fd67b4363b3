// Package metrics provides metrics recording for analyses, LLM calls and HTTP traffic.
package metrics

import "time"

// Recorder defines the interface for recording service metrics.
type Recorder interface {
	// ObserveLLMRequest records a completed provider call.
	ObserveLLMRequest(model string, promptTokens, completionTokens int, success bool, errorType string, duration time.Duration)

	// IncAnalysis counts a produced analysis by source (ai|fallback) and fallback reason.
	IncAnalysis(source, reason string)

	// IncChatReply counts a chat reply by status (ok|error).
	IncChatReply(status string)

	// ObserveHTTPRequest records a served HTTP request.
	ObserveHTTPRequest(method, route string, status int, duration time.Duration)
}

// NoopRecorder implements Recorder with no-op behavior for when metrics are disabled.
type NoopRecorder struct{}

// Nop returns a no-op metrics recorder that discards all metrics.
func Nop() Recorder {
	return &NoopRecorder{}
}

// ObserveLLMRequest does nothing in the no-op recorder.
func (n *NoopRecorder) ObserveLLMRequest(_ string, _, _ int, _ bool, _ string, _ time.Duration) {}

// IncAnalysis does nothing in the no-op recorder.
func (n *NoopRecorder) IncAnalysis(_, _ string) {}

// IncChatReply does nothing in the no-op recorder.
func (n *NoopRecorder) IncChatReply(_ string) {}

// ObserveHTTPRequest does nothing in the no-op recorder.
func (n *NoopRecorder) ObserveHTTPRequest(_, _ string, _ int, _ time.Duration) {}
