package registry

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/aretw0/slidekit/pkg/domain"
)

// Callback defines the signature for author-supplied slide behavior.
// It receives the event it was invoked for; a returned error propagates to the navigation caller.
type Callback func(ctx context.Context, evt domain.CallbackEvent) error

// Registry manages the callbacks slides may reference by name.
type Registry struct {
	mu        sync.RWMutex
	callbacks map[string]Callback
}

// NewRegistry creates a new empty registry.
func NewRegistry() *Registry {
	return &Registry{
		callbacks: make(map[string]Callback),
	}
}

// Register adds a callback to the registry.
// If a callback with the same name exists, it is overwritten.
func (r *Registry) Register(name string, fn Callback) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.callbacks[name] = fn
}

// Has reports whether a callback is registered under name.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.callbacks[name]
	return ok
}

// Names returns the registered callback names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.callbacks))
	for name := range r.callbacks {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Invoke looks up a callback by name and runs it.
// Returns domain.ErrUnknownCallback if the callback is not found.
func (r *Registry) Invoke(ctx context.Context, name string, evt domain.CallbackEvent) error {
	r.mu.RLock()
	fn, ok := r.callbacks[name]
	r.mu.RUnlock()

	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrUnknownCallback, name)
	}

	evt.Name = name
	return fn(ctx, evt)
}
