package di

import (
	"fmt"
	"reflect"

	"github.com/sectrean/provider-kit/internal/errors"
)

// Factory creates a service instance.
//
// The [ServiceProvider] passed to a factory is the scope that is creating the
// instance: the requesting scope for transient services (so transients may
// depend on scoped services), the owning scope for scoped services, and the
// root for singletons.
type Factory func(ServiceProvider) (any, error)

// serviceKey identifies a registration in a [Collection] or [Provider].
//
// Tag is nil for ordinary services. Configuration hook descriptors carry a
// hook tag so they can share the target service's type without shadowing it.
type serviceKey struct {
	Type reflect.Type
	Tag  any
}

func (k serviceKey) String() string {
	if k.Tag == nil {
		return k.Type.String()
	}
	return fmt.Sprintf("%s (%v)", k.Type, k.Tag)
}

// ServiceDescriptor is an immutable record describing one registered service:
// the requested type, the concrete produced type, the lifetime, and either a
// pre-built value or a [Factory].
//
// Descriptors are never mutated after creation. [Collection.Decorate] and
// [Collection.Replace] substitute new descriptors rather than modifying
// existing ones, so a descriptor can safely double as a scope cache key.
type ServiceDescriptor struct {
	key      serviceKey
	produces reflect.Type
	lifetime Lifetime
	value    any
	factory  Factory
}

// NewDescriptor creates a descriptor for a service of type t produced by factory.
//
// The produces type must be assignable to t. Scoped and transient services
// always require a factory.
func NewDescriptor(t, produces reflect.Type, lifetime Lifetime, factory Factory) (*ServiceDescriptor, error) {
	if t == nil || produces == nil {
		return nil, errors.New("new descriptor: service type is nil")
	}
	if err := validateServiceType(t); err != nil {
		return nil, errors.Wrapf(err, "new descriptor %s", t)
	}
	if factory == nil {
		return nil, errors.Errorf("new descriptor %s: %s service requires a factory", t, lifetime)
	}
	if !produces.AssignableTo(t) {
		return nil, errors.Errorf("new descriptor: type %s not assignable to %s", produces, t)
	}

	return &ServiceDescriptor{
		key:      serviceKey{Type: t},
		produces: produces,
		lifetime: lifetime,
		factory:  factory,
	}, nil
}

// NewValueDescriptor creates a singleton descriptor for a pre-built value.
//
// The container does not take ownership of the value: it is never added to a
// disposal list, even if it is disposable. The caller retains ownership.
func NewValueDescriptor(t reflect.Type, value any) (*ServiceDescriptor, error) {
	if t == nil {
		return nil, errors.New("new value descriptor: service type is nil")
	}
	if err := validateServiceType(t); err != nil {
		return nil, errors.Wrapf(err, "new value descriptor %s", t)
	}
	if value == nil {
		return nil, errors.Errorf("new value descriptor %s: value is nil", t)
	}

	produces := reflect.TypeOf(value)
	if !produces.AssignableTo(t) {
		return nil, errors.Errorf("new value descriptor: type %s not assignable to %s", produces, t)
	}

	return &ServiceDescriptor{
		key:      serviceKey{Type: t},
		produces: produces,
		lifetime: Singleton,
		value:    value,
	}, nil
}

// Describe creates a descriptor for a Service produced by an Impl factory.
//
// Describe panics if Impl is not assignable to Service or fn is nil, since
// both are programmer errors at registration time.
func Describe[Service, Impl any](lifetime Lifetime, fn func(ServiceProvider) (Impl, error)) *ServiceDescriptor {
	if fn == nil {
		panic(fmt.Sprintf("di.Describe %s: fn is nil", reflect.TypeFor[Service]()))
	}

	d, err := NewDescriptor(
		reflect.TypeFor[Service](),
		reflect.TypeFor[Impl](),
		lifetime,
		func(sp ServiceProvider) (any, error) {
			return fn(sp)
		},
	)
	if err != nil {
		panic(fmt.Sprintf("di.Describe: %v", err))
	}

	return d
}

// DescribeValue creates a singleton descriptor for a pre-built value.
//
// See [NewValueDescriptor] for the ownership rules.
func DescribeValue[Service any](value Service) *ServiceDescriptor {
	d, err := NewValueDescriptor(reflect.TypeFor[Service](), value)
	if err != nil {
		panic(fmt.Sprintf("di.DescribeValue: %v", err))
	}

	return d
}

// Type returns the requested service type.
func (d *ServiceDescriptor) Type() reflect.Type {
	return d.key.Type
}

// Produces returns the concrete type the descriptor produces.
func (d *ServiceDescriptor) Produces() reflect.Type {
	return d.produces
}

// Lifetime returns the lifetime of the service.
func (d *ServiceDescriptor) Lifetime() Lifetime {
	return d.lifetime
}

// Value returns the pre-built value, or nil for factory descriptors.
func (d *ServiceDescriptor) Value() any {
	return d.value
}

func (d *ServiceDescriptor) String() string {
	return fmt.Sprintf("%s (%s)", d.key, d.lifetime)
}

func validateServiceType(t reflect.Type) error {
	switch t {
	// These types resolve to the container itself and cannot be registered.
	case typeServiceProvider,
		typeServiceQuery,
		typeScopeFactory:
		return errors.New("reserved service type")
	}

	return nil
}
