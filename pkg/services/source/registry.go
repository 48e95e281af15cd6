package source

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/de-tools/warehouse-atlas/pkg/services/warehouse"
)

// Settings select and configure a warehouse source
type Settings struct {
	Kind         string
	Profile      string
	ProfilesFile string
	Catalog      string
	DBPath       string
}

// Factory builds a source from settings. Sources holding connections also implement io.Closer.
type Factory func(ctx context.Context, settings Settings) (warehouse.Source, error)

// Registry manages source factories keyed by kind
type Registry interface {
	// Register adds a new source factory
	Register(kind string, factory Factory) error
	// Create instantiates the source named by settings.Kind
	Create(ctx context.Context, settings Settings) (warehouse.Source, error)
	// ListKinds returns the registered kinds, sorted
	ListKinds() []string
}

type registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

func NewRegistry() Registry {
	return &registry{
		factories: make(map[string]Factory),
	}
}

func (r *registry) Register(kind string, factory Factory) error {
	if kind == "" {
		return fmt.Errorf("source kind cannot be empty")
	}
	if factory == nil {
		return fmt.Errorf("factory cannot be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.factories[kind]; exists {
		return fmt.Errorf("source %q is already registered", kind)
	}

	r.factories[kind] = factory
	return nil
}

func (r *registry) Create(ctx context.Context, settings Settings) (warehouse.Source, error) {
	r.mu.RLock()
	factory, exists := r.factories[settings.Kind]
	r.mu.RUnlock()

	if !exists {
		return nil, fmt.Errorf("source %q is not registered", settings.Kind)
	}

	return factory(ctx, settings)
}

func (r *registry) ListKinds() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	kinds := make([]string, 0, len(r.factories))
	for kind := range r.factories {
		kinds = append(kinds, kind)
	}
	sort.Strings(kinds)
	return kinds
}
