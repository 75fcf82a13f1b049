package tool

import (
	"fmt"
	"sync"

	"github.com/hupe1980/agentswarm/core"
)

// Registry maps stable tool names to tools, preserving registration order.
// Agents assembled from configuration reference tools by these names.
type Registry struct {
	mu    sync.RWMutex
	tools map[string]core.Tool
	order []string
}

// NewRegistry creates a registry pre-populated with tools.
func NewRegistry(tools ...core.Tool) (*Registry, error) {
	r := &Registry{tools: map[string]core.Tool{}}
	for _, t := range tools {
		if err := r.Register(t); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Register adds a tool. Names must be unique.
func (r *Registry) Register(t core.Tool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if t == nil {
		return fmt.Errorf("nil tool")
	}
	if _, dup := r.tools[t.Name()]; dup {
		return fmt.Errorf("tool %q already registered", t.Name())
	}
	r.tools[t.Name()] = t
	r.order = append(r.order, t.Name())
	return nil
}

// MustRegister is like Register but panics on error. Intended for setup code.
func (r *Registry) MustRegister(tools ...core.Tool) *Registry {
	for _, t := range tools {
		if err := r.Register(t); err != nil {
			panic(err)
		}
	}
	return r
}

// Get returns the tool registered under name.
func (r *Registry) Get(name string) (core.Tool, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.tools[name]
	return t, ok
}

// Names returns all tool names in registration order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]string(nil), r.order...)
}

// Resolve looks up tools by name, preserving the requested order.
func (r *Registry) Resolve(names ...string) ([]core.Tool, error) {
	out := make([]core.Tool, 0, len(names))
	for _, n := range names {
		t, ok := r.Get(n)
		if !ok {
			return nil, fmt.Errorf("%w: %q", core.ErrToolNotFound, n)
		}
		out = append(out, t)
	}
	return out, nil
}
