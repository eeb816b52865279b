package sink

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/joshuapare/lioli/internal/logger"
)

var (
	// ErrEmptyName indicates a registration without a name.
	ErrEmptyName = errors.New("sink: empty sink name")

	// ErrDuplicate indicates a second registration under the same name.
	ErrDuplicate = errors.New("sink: sink already registered")
)

// Registry maps sink names to tree sinks. The host owns one instance for
// the life of the process; there is no package-level registry.
type Registry struct {
	mu    sync.RWMutex
	sinks map[string]Trees
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{sinks: make(map[string]Trees)}
}

// Register adds s under name.
func (r *Registry) Register(name string, s Trees) error {
	if name == "" {
		return ErrEmptyName
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sinks[name]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicate, name)
	}
	r.sinks[name] = s
	return nil
}

// Lookup returns the sink registered under name.
func (r *Registry) Lookup(name string) (Trees, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sinks[name]
	return s, ok
}

// Resolve returns the sink registered under name, or Null.
func (r *Registry) Resolve(name string) Trees {
	if s, ok := r.Lookup(name); ok {
		return s
	}
	return Null
}

// Names returns the registered names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.sinks))
	for name := range r.sinks {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Close closes every registered sink that implements io.Closer and empties
// the registry.
func (r *Registry) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	var errs []error
	for name, s := range r.sinks {
		if c, ok := s.(io.Closer); ok {
			if err := c.Close(); err != nil {
				errs = append(errs, fmt.Errorf("close %q: %w", name, err))
			}
		}
	}
	clear(r.sinks)
	return errors.Join(errs...)
}

// Resolver resolves a configured sink name on first use and caches the
// result. When the name does not resolve it logs one error and settles on
// Null.
type Resolver struct {
	reg  *Registry
	mu   sync.Mutex
	name string
	sink atomic.Pointer[resolved]
}

type resolved struct{ s Trees }

// NewResolver returns a resolver for name against reg.
func NewResolver(reg *Registry, name string) *Resolver {
	return &Resolver{reg: reg, name: name}
}

// SetName changes the configured name and forgets any cached sink.
func (r *Resolver) SetName(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.name = name
	r.sink.Store(nil)
}

// Name returns the configured name.
func (r *Resolver) Name() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.name
}

// Get returns the resolved sink; never nil.
func (r *Resolver) Get() Trees {
	if p := r.sink.Load(); p != nil {
		return p.s
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if p := r.sink.Load(); p != nil {
		return p.s
	}
	s, ok := r.reg.Lookup(r.name)
	if !ok {
		logger.Error("configured sink is not registered, discarding output", "sink", r.name)
		s = Null
	}
	r.sink.Store(&resolved{s: s})
	return s
}
