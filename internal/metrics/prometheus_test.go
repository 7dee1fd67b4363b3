package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestPrometheusRecorder(t *testing.T) {
	reg := prometheus.NewRegistry()
	rec := NewPrometheusRecorder(reg)

	rec.ObserveLLMRequest("deepseek/deepseek-r1", 120, 80, true, "", 2*time.Second)
	rec.ObserveLLMRequest("deepseek/deepseek-r1", 0, 0, false, "timeout", time.Second)
	rec.IncAnalysis("fallback", "not_configured")
	rec.IncAnalysis("ai", "")
	rec.IncChatReply("ok")
	rec.ObserveHTTPRequest("POST", "/api/analyze", 200, 10*time.Millisecond)

	assert.Equal(t, 1.0, testutil.ToFloat64(rec.llmRequestsTotal.WithLabelValues("deepseek/deepseek-r1", "success", "")))
	assert.Equal(t, 1.0, testutil.ToFloat64(rec.llmRequestsTotal.WithLabelValues("deepseek/deepseek-r1", "error", "timeout")))
	assert.Equal(t, 120.0, testutil.ToFloat64(rec.llmTokensTotal.WithLabelValues("deepseek/deepseek-r1", "prompt")))
	assert.Equal(t, 1.0, testutil.ToFloat64(rec.analysesTotal.WithLabelValues("fallback", "not_configured")))
	assert.Equal(t, 1.0, testutil.ToFloat64(rec.chatRepliesTotal.WithLabelValues("ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(rec.httpRequestsTotal.WithLabelValues("POST", "/api/analyze", "200")))
}

func TestNewPrometheusRecorderPerRegistry(t *testing.T) {
	// independent registries must not collide
	assert.NotPanics(t, func() {
		NewPrometheusRecorder(prometheus.NewRegistry())
		NewPrometheusRecorder(prometheus.NewRegistry())
	})
}

func TestNop(t *testing.T) {
	rec := Nop()
	assert.NotPanics(t, func() {
		rec.ObserveLLMRequest("m", 1, 1, true, "", time.Second)
		rec.IncAnalysis("ai", "")
		rec.IncChatReply("error")
		rec.ObserveHTTPRequest("GET", "/health", 200, time.Millisecond)
	})
}
