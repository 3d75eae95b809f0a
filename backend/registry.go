package backend

import (
	"sync"
)

// Factory creates a new renderer instance for the given target size.
type Factory func(width, height int) Renderer

// registry holds registered backends.
var (
	registryMu sync.RWMutex
	backends   = make(map[string]Factory)
	// Priority order for backend selection (first available wins).
	// wgpu > software (GPU when present, software as fallback).
	backendPriority = []string{BackendWGPU, BackendSoftware}
)

// Register registers a renderer factory with the given name.
// This is typically called from init() functions in backend packages.
// If a backend with the same name is already registered, it will be replaced.
func Register(name string, factory Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	backends[name] = factory
}

// Unregister removes a backend from the registry.
// This is useful for testing.
func Unregister(name string) {
	registryMu.Lock()
	defer registryMu.Unlock()
	delete(backends, name)
}

// Available returns a list of registered backend names.
func Available() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(backends))
	for name := range backends {
		names = append(names, name)
	}
	return names
}

// IsRegistered checks if a backend with the given name is registered.
func IsRegistered(name string) bool {
	registryMu.RLock()
	defer registryMu.RUnlock()
	_, ok := backends[name]
	return ok
}

// Get returns a renderer instance by name.
// Returns nil if the backend is not registered.
func Get(name string, width, height int) Renderer {
	registryMu.RLock()
	defer registryMu.RUnlock()

	factory, ok := backends[name]
	if !ok {
		return nil
	}
	return factory(width, height)
}

// Default returns the best available renderer based on priority.
// Priority order: wgpu > software.
// Returns nil if no backends are registered.
func Default(width, height int) Renderer {
	registryMu.RLock()
	defer registryMu.RUnlock()

	for _, name := range backendPriority {
		if factory, ok := backends[name]; ok {
			if r := factory(width, height); r != nil {
				return r
			}
		}
	}

	// Fallback: return first available
	for _, factory := range backends {
		if r := factory(width, height); r != nil {
			return r
		}
	}

	return nil
}

// InitDefault creates and initializes the default renderer. Backends
// whose Init fails (e.g. wgpu without a GPU) are skipped in priority
// order.
func InitDefault(width, height int) (Renderer, error) {
	registryMu.RLock()
	ordered := make([]Factory, 0, len(backends))
	for _, name := range backendPriority {
		if factory, ok := backends[name]; ok {
			ordered = append(ordered, factory)
		}
	}
	for name, factory := range backends {
		if !inPriority(name) {
			ordered = append(ordered, factory)
		}
	}
	registryMu.RUnlock()

	var firstErr error
	for _, factory := range ordered {
		r := factory(width, height)
		if r == nil {
			continue
		}
		if err := r.Init(); err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		return r, nil
	}
	if firstErr != nil {
		return nil, firstErr
	}
	return nil, ErrBackendNotAvailable
}

func inPriority(name string) bool {
	for _, p := range backendPriority {
		if p == name {
			return true
		}
	}
	return false
}
