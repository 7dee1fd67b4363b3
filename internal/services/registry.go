package services

import (
	"context"
	"sort"
	"sync"
	"time"
)

const defaultCheckTimeout = 2 * time.Second

type entry struct {
	provider Provider
	critical bool
}

// Registry tracks the dependencies reported on the readiness probe
type Registry struct {
	mu        sync.RWMutex
	providers map[string]entry
	timeout   time.Duration
}

// NewRegistry creates a new service registry
func NewRegistry() *Registry {
	return &Registry{
		providers: make(map[string]entry),
		timeout:   defaultCheckTimeout,
	}
}

// Register adds a critical provider: a failing check makes the service not ready
func (r *Registry) Register(name string, provider Provider) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.providers[name] = entry{provider: provider, critical: true}
}

// RegisterOptional adds a provider whose failure only degrades the service
func (r *Registry) RegisterOptional(name string, provider Provider) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.providers[name] = entry{provider: provider}
}

// List returns all registered provider names, sorted
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.providers))
	for name := range r.providers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// HealthCheckAll checks health of all registered providers
func (r *Registry) HealthCheckAll(ctx context.Context) map[string]error {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	results := make(map[string]error, len(r.providers))
	for name, e := range r.providers {
		results[name] = e.provider.HealthCheck(ctx)
	}
	return results
}

// Status is the readiness report of one dependency
type Status struct {
	Type     string `json:"type"`
	Status   string `json:"status"`
	Critical bool   `json:"critical"`
	Error    string `json:"error,omitempty"`
}

// Readiness checks every provider. The service is ready when no critical check fails.
func (r *Registry) Readiness(ctx context.Context) (map[string]Status, bool) {
	errs := r.HealthCheckAll(ctx)

	r.mu.RLock()
	defer r.mu.RUnlock()

	ready := true
	report := make(map[string]Status, len(errs))
	for name, err := range errs {
		e, ok := r.providers[name]
		if !ok {
			continue
		}
		st := Status{Type: e.provider.Type(), Status: "ok", Critical: e.critical}
		if err != nil {
			st.Status = "unavailable"
			st.Error = err.Error()
			if e.critical {
				ready = false
			} else {
				st.Status = "degraded"
			}
		}
		report[name] = st
	}
	return report, ready
}
