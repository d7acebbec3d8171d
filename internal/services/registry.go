// Package services provides LLM client implementations and supporting services for PromptSim.
package services

import (
	"fmt"
	"sort"
	"sync"

	"promptsim/pkg/simtypes"
)

// Registry manages service registration and lifecycle for PromptSim services.
type Registry struct {
	mu       sync.RWMutex
	services map[string]simtypes.Service
}

// NewRegistry creates a new service registry with an empty service map.
func NewRegistry() *Registry {
	return &Registry{
		services: make(map[string]simtypes.Service),
	}
}

// RegisterService adds a service to the registry, returning an error if already registered.
func (r *Registry) RegisterService(service simtypes.Service) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := service.Name()
	if _, exists := r.services[name]; exists {
		return fmt.Errorf("service %s already registered", name)
	}

	r.services[name] = service
	return nil
}

// GetService retrieves a service by name, returning an error if not found.
func (r *Registry) GetService(name string) (simtypes.Service, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	service, exists := r.services[name]
	if !exists {
		return nil, fmt.Errorf("service %s not found", name)
	}

	return service, nil
}

// InitializeAll initializes all registered services in name order.
func (r *Registry) InitializeAll() error {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.services))
	for name := range r.services {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if err := r.services[name].Initialize(); err != nil {
			return fmt.Errorf("failed to initialize service %s: %w", name, err)
		}
	}

	return nil
}

// Lookup returns the named service as type T.
func Lookup[T simtypes.Service](r *Registry, name string) (T, error) {
	var zero T
	service, err := r.GetService(name)
	if err != nil {
		return zero, err
	}
	typed, ok := service.(T)
	if !ok {
		return zero, fmt.Errorf("service %s has unexpected type %T", name, service)
	}
	return typed, nil
}

// NewDefaultRegistry registers every PromptSim service. Services are not yet initialized.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	for _, service := range []simtypes.Service{
		NewThemeService(),
		NewMarkdownService(),
		NewProviderCatalogService(),
		NewDebugTransportService(),
		NewClientFactoryService(),
		NewClipboardService(),
	} {
		// Names are distinct constants, so registration cannot collide.
		_ = r.RegisterService(service)
	}
	return r
}
