// Package embedder abstracts face-embedding generation behind a pluggable
// Provider. The actual model is an external black box; this package only
// selects and invokes it.
package embedder

import (
	"context"
	"fmt"
)

type Provider interface {
	Name() string
	GenerateEmbedding(ctx context.Context, image []byte) ([]float64, error)
}

// Registry holds the available providers. The first registration becomes
// the default.
type Registry struct {
	providers   map[string]Provider
	defaultName string
}

func NewRegistry() *Registry {
	return &Registry{providers: make(map[string]Provider)}
}

func (r *Registry) Register(p Provider) {
	r.providers[p.Name()] = p
	if r.defaultName == "" {
		r.defaultName = p.Name()
	}
}

func (r *Registry) Get(name string) (Provider, error) {
	p, ok := r.providers[name]
	if !ok {
		return nil, fmt.Errorf("embedder %q is not registered", name)
	}
	return p, nil
}

func (r *Registry) Default() (Provider, error) {
	if r.defaultName == "" {
		return nil, fmt.Errorf("no embedder registered")
	}
	return r.providers[r.defaultName], nil
}
