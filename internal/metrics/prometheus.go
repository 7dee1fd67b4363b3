package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// PrometheusRecorder implements the Recorder interface using Prometheus metrics.
type PrometheusRecorder struct {
	llmRequestsTotal   *prometheus.CounterVec
	llmTokensTotal     *prometheus.CounterVec
	llmRequestDuration *prometheus.HistogramVec
	analysesTotal      *prometheus.CounterVec
	chatRepliesTotal   *prometheus.CounterVec
	httpRequestsTotal  *prometheus.CounterVec
	httpDuration       *prometheus.HistogramVec
}

// NewPrometheusRecorder creates a recorder whose collectors are registered on reg.
// A nil reg registers on the default Prometheus registry.
func NewPrometheusRecorder(reg prometheus.Registerer) *PrometheusRecorder {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &PrometheusRecorder{
		llmRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "iabooster_llm_requests_total",
				Help: "Total number of LLM requests by model and status",
			},
			[]string{"model", "status", "error_type"},
		),
		llmTokensTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "iabooster_llm_tokens_total",
				Help: "Total number of tokens used in LLM requests",
			},
			[]string{"model", "type"},
		),
		llmRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "iabooster_llm_request_duration_seconds",
				Help:    "Duration of LLM requests in seconds",
				Buckets: []float64{0.25, 0.5, 1, 2.5, 5, 10, 20, 30, 60},
			},
			[]string{"model"},
		),
		analysesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "iabooster_analyses_total",
				Help: "Total number of analyses by source and fallback reason",
			},
			[]string{"source", "reason"},
		),
		chatRepliesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "iabooster_chat_replies_total",
				Help: "Total number of chat replies by status",
			},
			[]string{"status"},
		),
		httpRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "iabooster_http_requests_total",
				Help: "Total number of HTTP requests by method, route and status code",
			},
			[]string{"method", "route", "code"},
		),
		httpDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "iabooster_http_request_duration_seconds",
				Help:    "Duration of HTTP requests in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
	}
}

// ObserveLLMRequest records metrics for a completed LLM request.
func (p *PrometheusRecorder) ObserveLLMRequest(
	model string,
	promptTokens, completionTokens int,
	success bool,
	errorType string,
	duration time.Duration,
) {
	status := "success"
	if !success {
		status = "error"
	}
	p.llmRequestsTotal.WithLabelValues(model, status, errorType).Inc()

	if success {
		p.llmTokensTotal.WithLabelValues(model, "prompt").Add(float64(promptTokens))
		p.llmTokensTotal.WithLabelValues(model, "completion").Add(float64(completionTokens))
	}

	p.llmRequestDuration.WithLabelValues(model).Observe(duration.Seconds())
}

// IncAnalysis counts a produced analysis.
func (p *PrometheusRecorder) IncAnalysis(source, reason string) {
	p.analysesTotal.WithLabelValues(source, reason).Inc()
}

// IncChatReply counts a chat reply.
func (p *PrometheusRecorder) IncChatReply(status string) {
	p.chatRepliesTotal.WithLabelValues(status).Inc()
}

// ObserveHTTPRequest records a served HTTP request.
func (p *PrometheusRecorder) ObserveHTTPRequest(method, route string, status int, duration time.Duration) {
	p.httpRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	p.httpDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}
