package di

import (
	"context"
	"fmt"
	"reflect"

	"github.com/sectrean/provider-kit/internal/errors"
)

// Scope is a lifetime boundary with its own instance cache and disposal list.
//
// The root scope is created with the [Provider] and holds singleton
// instances. Non-root scopes are created with [Provider.CreateScope] and hold
// scoped instances. Transient instances are never cached in any scope.
//
// A Scope is not safe for concurrent use. Resolution, caching, and disposal
// assume a single logical thread of control per scope; callers that share a
// scope across goroutines must serialize access themselves, for example by
// confining each scope to one request.
type Scope struct {
	provider    *Provider
	isRoot      bool
	cache       map[*ServiceDescriptor]any
	disposables []any
	log         LogSink
	disposed    bool
}

var (
	_ ServiceProvider = (*Scope)(nil)
	_ ScopeFactory    = (*Scope)(nil)
)

func newScope(p *Provider, isRoot bool) *Scope {
	s := &Scope{
		provider: p,
		isRoot:   isRoot,
		cache:    make(map[*ServiceDescriptor]any),
	}
	if isRoot {
		p.root = s
	}

	// The diagnostic sink is optional. Resolution failures leave the scope
	// without one rather than failing scope construction.
	if val, err := s.resolve(serviceKey{Type: typeLogSink}, true); err == nil {
		if sink, ok := val.(LogSink); ok {
			s.log = sink
		}
	}
	if isRoot {
		s.debugf("root scope created")
	} else {
		s.debugf("scope created")
	}

	return s
}

// Provider returns the owning [Provider].
func (s *Scope) Provider() *Provider {
	return s.provider
}

// IsRoot reports whether this is the provider's root scope.
func (s *Scope) IsRoot() bool {
	return s.isRoot
}

// CreateScope creates a new sibling scope from the owning provider.
func (s *Scope) CreateScope() (*Scope, error) {
	if s.disposed {
		return nil, errors.Wrap(ErrDisposed, "di.Scope.CreateScope")
	}

	return s.provider.CreateScope()
}

// Resolve returns the service registered for type t.
func (s *Scope) Resolve(t reflect.Type) (any, error) {
	if s.disposed {
		return nil, errors.Wrapf(ErrDisposed, "di.Scope.Resolve %s", t)
	}

	val, err := s.resolve(serviceKey{Type: t}, false)
	return val, errors.Wrapf(err, "di.Scope.Resolve %s", t)
}

// ResolveOptional returns the service registered for type t, or nil if no
// descriptor matches.
func (s *Scope) ResolveOptional(t reflect.Type) (any, error) {
	if s.disposed {
		return nil, errors.Wrapf(ErrDisposed, "di.Scope.ResolveOptional %s", t)
	}

	val, err := s.resolve(serviceKey{Type: t}, true)
	return val, errors.Wrapf(err, "di.Scope.ResolveOptional %s", t)
}

// ResolveAll returns one instance per matching descriptor, in registration
// order.
func (s *Scope) ResolveAll(t reflect.Type) ([]any, error) {
	if s.disposed {
		return nil, errors.Wrapf(ErrDisposed, "di.Scope.ResolveAll %s", t)
	}

	vals, err := s.resolveAll(serviceKey{Type: t}, false)
	return vals, errors.Wrapf(err, "di.Scope.ResolveAll %s", t)
}

// ResolveAllOptional is [Scope.ResolveAll] but returns an empty result if no
// descriptor matches.
func (s *Scope) ResolveAllOptional(t reflect.Type) ([]any, error) {
	if s.disposed {
		return nil, errors.Wrapf(ErrDisposed, "di.Scope.ResolveAllOptional %s", t)
	}

	vals, err := s.resolveAll(serviceKey{Type: t}, true)
	return vals, errors.Wrapf(err, "di.Scope.ResolveAllOptional %s", t)
}

// Contains reports whether type t can be resolved.
func (s *Scope) Contains(t reflect.Type) bool {
	if s.disposed {
		return false
	}

	return s.provider.Contains(t)
}

// builtin checks the fixed set of self-referential bindings. These depend on
// which scope asked, so they are bound per call rather than registered as
// descriptors.
func (s *Scope) builtin(key serviceKey) (any, bool) {
	if key.Tag != nil {
		return nil, false
	}

	switch key.Type {
	case typeServiceProvider:
		return s, true
	case typeServiceQuery:
		return s.provider, true
	case typeScopeFactory:
		return s.provider.root, true
	}

	return nil, false
}

func (s *Scope) resolve(key serviceKey, optional bool) (any, error) {
	if val, ok := s.builtin(key); ok {
		return val, nil
	}

	d := s.provider.lookup(key)
	if d == nil {
		if optional {
			return nil, nil
		}
		return nil, ErrNotRegistered
	}

	return s.getOrCreate(d)
}

func (s *Scope) resolveAll(key serviceKey, optional bool) ([]any, error) {
	if val, ok := s.builtin(key); ok {
		return []any{val}, nil
	}

	ds := s.provider.lookupAll(key)
	if len(ds) == 0 {
		if optional {
			return nil, nil
		}
		return nil, ErrNotRegistered
	}

	vals := make([]any, len(ds))
	for i, d := range ds {
		val, err := s.getOrCreate(d)
		if err != nil {
			return nil, err
		}
		vals[i] = val
	}

	return vals, nil
}

// getOrCreate implements the lifetime-resolution algorithm.
func (s *Scope) getOrCreate(d *ServiceDescriptor) (any, error) {
	if s.disposed {
		return nil, ErrDisposed
	}

	if val, ok := s.cache[d]; ok {
		return val, nil
	}

	switch d.lifetime {
	case Singleton:
		if !s.isRoot {
			// Exactly one singleton instance per descriptor per provider.
			// Delegating also makes a scoped dependency reachable from a
			// singleton factory fail instead of silently capturing a scoped
			// instance inside a singleton.
			return s.provider.root.getOrCreate(d)
		}
		return s.create(d)

	case Scoped:
		if s.isRoot {
			return nil, ErrInvalidScope
		}
		return s.create(d)

	case Transient:
		val, err := d.factory(s)
		if err != nil {
			return nil, err
		}
		s.debugf("created %s", d)

		// Transient instances are never cached and never captured for
		// disposal. The caller owns the teardown.
		if err := s.applyHooks(d.key, val); err != nil {
			return nil, err
		}
		return val, nil

	default:
		return nil, errors.Errorf("unknown lifetime %s", d.lifetime)
	}
}

// create materializes a singleton or scoped descriptor in this scope: caches
// the instance, captures it for disposal if it is container-owned and
// disposable, and applies configuration hooks.
func (s *Scope) create(d *ServiceDescriptor) (any, error) {
	var val any
	if d.factory == nil {
		// Pre-built value. The caller retains ownership, so it is not
		// captured for disposal.
		val = d.value
	} else {
		created, err := d.factory(s)
		if err != nil {
			return nil, err
		}
		val = created
		if isDisposable(val) {
			s.disposables = append(s.disposables, val)
		}
		s.debugf("created %s", d)
	}

	s.cache[d] = val

	// Hooks run once, in the same call that materialized the instance. They
	// are not re-run on cache hits, and a hook failure is not rolled back.
	if err := s.applyHooks(d.key, val); err != nil {
		return nil, err
	}

	return val, nil
}

// applyHooks runs all configure hooks registered for the instance's requested
// type, then all post-configure hooks, each family in registration order.
//
// Only instances that implement [Configurable] participate. Hook descriptors
// are ordinary transient services, so their construction follows the normal
// algorithm.
func (s *Scope) applyHooks(key serviceKey, val any) error {
	if _, ok := val.(Configurable); !ok {
		return nil
	}

	for _, tag := range [...]hookTag{configureTag, postConfigureTag} {
		for _, d := range s.provider.lookupAll(serviceKey{Type: key.Type, Tag: tag}) {
			h, err := s.getOrCreate(d)
			if err != nil {
				return errors.Wrapf(err, "configure %s", key)
			}
			h.(*configureHook).fn(s, val)
		}
	}

	return nil
}

// Dispose tears down the scope synchronously.
//
// Captured instances are disposed in the exact order they were created. For
// each instance the synchronous disposal capability is invoked if present;
// otherwise the asynchronous capability is started without waiting for it to
// complete. Synchronous teardown deliberately degrades asynchronous-only
// disposables to detached, best-effort completion.
//
// Disposing the root scope also disposes the owning [Provider]. Dispose is
// idempotent: repeat calls are no-ops.
func (s *Scope) Dispose() error {
	if s.disposed {
		return nil
	}
	s.debugf("scope disposing")
	s.disposed = true

	var errs []error
	for _, val := range s.disposables {
		if dispose := syncDisposerFor(val); dispose != nil {
			if err := dispose(); err != nil {
				errs = append(errs, err)
			}
			continue
		}
		if dispose := asyncDisposerFor(val); dispose != nil {
			go func() {
				_ = dispose(context.Background())
			}()
		}
	}

	s.teardown()
	return errors.Wrap(errors.Join(errs...), "di.Scope.Dispose")
}

// DisposeAsync tears down the scope, awaiting asynchronous teardown.
//
// Captured instances are disposed in the exact order they were created,
// preferring the asynchronous disposal capability and awaiting it, falling
// back to the synchronous capability otherwise.
//
// Disposing the root scope also disposes the owning [Provider]. DisposeAsync
// is idempotent: repeat calls are no-ops.
func (s *Scope) DisposeAsync(ctx context.Context) error {
	if s.disposed {
		return nil
	}
	s.debugf("scope disposing")
	s.disposed = true

	var errs []error
	for _, val := range s.disposables {
		if dispose := asyncDisposerFor(val); dispose != nil {
			if err := dispose(ctx); err != nil {
				errs = append(errs, err)
			}
			continue
		}
		if dispose := syncDisposerFor(val); dispose != nil {
			if err := dispose(); err != nil {
				errs = append(errs, err)
			}
		}
	}

	s.teardown()
	return errors.Wrap(errors.Join(errs...), "di.Scope.DisposeAsync")
}

// teardown frees references and cascades root disposal to the provider.
func (s *Scope) teardown() {
	s.cache = nil
	s.disposables = nil
	s.debugf("scope disposed")

	if s.isRoot && !s.provider.disposed {
		s.provider.shutdown()
	}
}

func (s *Scope) debugf(format string, args ...any) {
	if s.log == nil {
		return
	}
	s.log.Debug(fmt.Sprintf(format, args...))
}
