package di

import (
	"context"
	"reflect"

	"github.com/sectrean/provider-kit/internal/errors"
)

// ServiceProvider resolves services.
//
// ServiceProvider is implemented by [*Provider] and [*Scope]. It is also a
// built-in service: resolving it yields the requesting scope, so a factory
// that depends on it receives the scope it is being created by.
type ServiceProvider interface {
	// Resolve returns the service registered for type t.
	// It fails with [ErrNotRegistered] if no descriptor matches.
	Resolve(t reflect.Type) (any, error)

	// ResolveOptional returns the service registered for type t,
	// or nil if no descriptor matches.
	ResolveOptional(t reflect.Type) (any, error)

	// ResolveAll returns one instance for every descriptor registered for
	// type t, in registration order.
	// It fails with [ErrNotRegistered] if no descriptor matches.
	ResolveAll(t reflect.Type) ([]any, error)

	// ResolveAllOptional is [ServiceProvider.ResolveAll] but returns an
	// empty result if no descriptor matches.
	ResolveAllOptional(t reflect.Type) ([]any, error)

	// Contains reports whether type t can be resolved.
	Contains(t reflect.Type) bool
}

// ServiceQuery answers "is this type registered" without constructing
// anything.
//
// ServiceQuery is a built-in service: resolving it yields the [Provider].
type ServiceQuery interface {
	Contains(t reflect.Type) bool
}

// ScopeFactory creates scopes.
//
// ScopeFactory is a built-in service: resolving it yields the root scope, no
// matter which scope asked.
type ScopeFactory interface {
	CreateScope() (*Scope, error)
}

// Provider holds a frozen descriptor snapshot and owns the root [Scope].
//
// A Provider is created by [Collection.BuildProvider]. It shares a single
// lifetime with its root scope: disposing either disposes both.
type Provider struct {
	services []*ServiceDescriptor
	root     *Scope
	disposed bool
}

var (
	_ ServiceProvider = (*Provider)(nil)
	_ ServiceQuery    = (*Provider)(nil)
	_ ScopeFactory    = (*Provider)(nil)
)

// Root returns the provider's root scope.
func (p *Provider) Root() *Scope {
	return p.root
}

// CreateScope creates a new non-root [Scope].
//
// Scopes are independent of each other: a scope created from another scope is
// still a sibling from the root's perspective. The caller must dispose the
// scope when done with it.
func (p *Provider) CreateScope() (*Scope, error) {
	if p.disposed {
		return nil, errors.Wrap(ErrDisposed, "di.Provider.CreateScope")
	}

	return newScope(p, false), nil
}

// Resolve returns the service registered for type t.
func (p *Provider) Resolve(t reflect.Type) (any, error) {
	if p.disposed {
		return nil, errors.Wrapf(ErrDisposed, "di.Provider.Resolve %s", t)
	}

	val, err := p.root.resolve(serviceKey{Type: t}, false)
	return val, errors.Wrapf(err, "di.Provider.Resolve %s", t)
}

// ResolveOptional returns the service registered for type t, or nil if no
// descriptor matches.
func (p *Provider) ResolveOptional(t reflect.Type) (any, error) {
	if p.disposed {
		return nil, errors.Wrapf(ErrDisposed, "di.Provider.ResolveOptional %s", t)
	}

	val, err := p.root.resolve(serviceKey{Type: t}, true)
	return val, errors.Wrapf(err, "di.Provider.ResolveOptional %s", t)
}

// ResolveAll returns one instance per matching descriptor, in registration
// order.
func (p *Provider) ResolveAll(t reflect.Type) ([]any, error) {
	if p.disposed {
		return nil, errors.Wrapf(ErrDisposed, "di.Provider.ResolveAll %s", t)
	}

	vals, err := p.root.resolveAll(serviceKey{Type: t}, false)
	return vals, errors.Wrapf(err, "di.Provider.ResolveAll %s", t)
}

// ResolveAllOptional is [Provider.ResolveAll] but returns an empty result if
// no descriptor matches.
func (p *Provider) ResolveAllOptional(t reflect.Type) ([]any, error) {
	if p.disposed {
		return nil, errors.Wrapf(ErrDisposed, "di.Provider.ResolveAllOptional %s", t)
	}

	vals, err := p.root.resolveAll(serviceKey{Type: t}, true)
	return vals, errors.Wrapf(err, "di.Provider.ResolveAllOptional %s", t)
}

// Contains reports whether type t is one of the built-in services or has a
// registered descriptor.
func (p *Provider) Contains(t reflect.Type) bool {
	if p.disposed {
		return false
	}

	switch t {
	case typeServiceProvider, typeServiceQuery, typeScopeFactory:
		return true
	}

	return p.lookup(serviceKey{Type: t}) != nil
}

// Dispose disposes the provider and its root scope synchronously.
//
// See [Scope.Dispose] for the disposal semantics. Dispose is idempotent.
func (p *Provider) Dispose() error {
	if p.disposed {
		return nil
	}

	return p.root.Dispose()
}

// DisposeAsync disposes the provider and its root scope, awaiting
// asynchronous teardown.
//
// See [Scope.DisposeAsync] for the disposal semantics. DisposeAsync is
// idempotent.
func (p *Provider) DisposeAsync(ctx context.Context) error {
	if p.disposed {
		return nil
	}

	return p.root.DisposeAsync(ctx)
}

// shutdown marks the provider disposed and drops the descriptor snapshot.
// Called exactly once, by the root scope's disposal.
func (p *Provider) shutdown() {
	p.disposed = true
	p.services = nil
}

// lookup returns the last registered descriptor matching key, or nil.
func (p *Provider) lookup(key serviceKey) *ServiceDescriptor {
	for i := len(p.services) - 1; i >= 0; i-- {
		if p.services[i].key == key {
			return p.services[i]
		}
	}

	return nil
}

// lookupAll returns every descriptor matching key, in registration order.
func (p *Provider) lookupAll(key serviceKey) []*ServiceDescriptor {
	var ds []*ServiceDescriptor
	for _, d := range p.services {
		if d.key == key {
			ds = append(ds, d)
		}
	}

	return ds
}
