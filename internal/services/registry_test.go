package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRegistryReadiness(t *testing.T) {
	r := NewRegistry()
	r.Register("state", NewFuncProvider("memory", func(context.Context) error { return nil }))
	r.RegisterOptional("llm", NewFuncProvider("openrouter", func(context.Context) error {
		return errors.New("not configured")
	}))

	report, ready := r.Readiness(context.Background())
	assert.True(t, ready)
	assert.Equal(t, "ok", report["state"].Status)
	assert.Equal(t, "degraded", report["llm"].Status)
	assert.Equal(t, "not configured", report["llm"].Error)
	assert.Equal(t, []string{"llm", "state"}, r.List())

	r.Register("redis", NewFuncProvider("redis", func(context.Context) error {
		return errors.New("connection refused")
	}))
	report, ready = r.Readiness(context.Background())
	assert.False(t, ready)
	assert.Equal(t, "unavailable", report["redis"].Status)
	assert.True(t, report["redis"].Critical)
	assert.Equal(t, []string{"llm", "redis", "state"}, r.List())
}

func TestHealthCheckAllAppliesTimeout(t *testing.T) {
	r := NewRegistry()
	r.Register("slow", NewFuncProvider("slow", func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	}))
	r.timeout = 10 * time.Millisecond

	errs := r.HealthCheckAll(context.Background())
	assert.ErrorIs(t, errs["slow"], context.DeadlineExceeded)
}
