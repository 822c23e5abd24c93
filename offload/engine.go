package offload

import (
	"context"
	"fmt"
	"sort"

	"go.uber.org/fx"
)

// Engine serves offloaded connections.
type Engine interface {
	// Name is the name markers refer to the engine by.
	Name() string

	// Open prepares a stream for the given engine arguments. Errors
	// returned by Open are reported to the client with a status code,
	// as nothing has been written to the connection yet.
	Open(ctx context.Context, args string) (Session, error)
}

// Session is a single offloaded stream.
type Session interface {
	// Run writes events until ctx is done or the source is exhausted.
	Run(ctx context.Context, w *EventWriter) error

	// Close releases the resources of the session.
	Close() error
}

type EngineResult struct {
	fx.Out

	Engine Engine `group:"engines"`
}

func AsEngine(engine Engine) EngineResult {
	return EngineResult{Engine: engine}
}

type RegistryParams struct {
	fx.In

	Engines []Engine `group:"engines"`
}

// Registry holds the engines available to the host, by name.
type Registry struct {
	engines map[string]Engine
}

// NewRegistry creates a registry of the given engines. Engine names must
// be unique.
func NewRegistry(engines ...Engine) (*Registry, error) {
	registry := &Registry{
		engines: make(map[string]Engine, len(engines)),
	}

	for _, engine := range engines {
		name := engine.Name()
		if _, ok := registry.engines[name]; ok {
			return nil, fmt.Errorf("duplicate offload engine %q", name)
		}
		registry.engines[name] = engine
	}

	return registry, nil
}

func NewEngineRegistry(params RegistryParams) (*Registry, error) {
	return NewRegistry(params.Engines...)
}

// Lookup returns the engine with the given name.
func (r *Registry) Lookup(name string) (Engine, error) {
	if engine, ok := r.engines[name]; ok {
		return engine, nil
	}

	return nil, fmt.Errorf("%w: %q", ErrEngineNotFound, name)
}

// Names returns the sorted engine names.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.engines))
	for name := range r.engines {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}
