package services

import "context"

// Provider is a dependency whose availability is reported on the readiness probe
type Provider interface {
	// Type returns the dependency type name
	Type() string

	// HealthCheck checks if the dependency is available
	HealthCheck(ctx context.Context) error
}

// BaseProvider provides common functionality for providers
type BaseProvider struct {
	serviceType string
}

// Type returns the service type
func (p *BaseProvider) Type() string {
	return p.serviceType
}

// FuncProvider adapts a plain function to Provider
type FuncProvider struct {
	BaseProvider
	check func(ctx context.Context) error
}

// NewFuncProvider creates a provider backed by check
func NewFuncProvider(serviceType string, check func(ctx context.Context) error) *FuncProvider {
	return &FuncProvider{
		BaseProvider: BaseProvider{serviceType: serviceType},
		check:        check,
	}
}

// HealthCheck runs the wrapped check
func (p *FuncProvider) HealthCheck(ctx context.Context) error {
	return p.check(ctx)
}
