package di

import (
	"reflect"
	"slices"

	"github.com/sectrean/provider-kit/internal/errors"
)

// Collection is an ordered, mutable list of service descriptors.
//
// Registration order is significant: enumerable resolution returns instances
// in registration order, and single resolution returns the instance from the
// most recently registered matching descriptor.
//
// A Collection is frozen into a [Provider] by [Collection.BuildProvider].
// The Collection remains mutable afterwards, but further changes have no
// effect on providers that were already built.
type Collection struct {
	services []*ServiceDescriptor
}

// NewCollection creates an empty service [Collection].
func NewCollection() *Collection {
	return &Collection{}
}

// Add appends a descriptor to the collection.
func (c *Collection) Add(d *ServiceDescriptor) {
	if d == nil {
		return
	}
	c.services = append(c.services, d)
}

// TryAdd appends a descriptor only if no descriptor with the same requested
// type has been registered.
func (c *Collection) TryAdd(d *ServiceDescriptor) {
	if d == nil {
		return
	}

	for _, existing := range c.services {
		if existing.key == d.key {
			return
		}
	}
	c.services = append(c.services, d)
}

// TryAddEnumerable appends a descriptor only if no descriptor with the same
// requested type and produced type has been registered.
//
// Distinct produced types under the same requested type are additive, which
// enables registering multiple implementations for enumerable resolution.
func (c *Collection) TryAddEnumerable(d *ServiceDescriptor) {
	if d == nil {
		return
	}

	for _, existing := range c.services {
		if existing.key == d.key && existing.produces == d.produces {
			return
		}
	}
	c.services = append(c.services, d)
}

// Decorate replaces every descriptor whose requested type is t with the
// descriptor returned by decorate.
//
// The replacement must keep the same requested type; otherwise Decorate
// returns [ErrDescriptorType] and the collection is left unmodified.
// Decorate is a no-op if no descriptor matches.
func (c *Collection) Decorate(t reflect.Type, decorate func(*ServiceDescriptor) *ServiceDescriptor) error {
	if decorate == nil {
		return errors.Errorf("di.Collection.Decorate %s: decorate is nil", t)
	}

	key := serviceKey{Type: t}

	// Rebuild the sequence rather than mutating it while iterating.
	decorated := make([]*ServiceDescriptor, len(c.services))
	for i, d := range c.services {
		if d.key != key {
			decorated[i] = d
			continue
		}

		nd := decorate(d)
		if nd == nil || nd.key != key {
			return errors.Wrapf(ErrDescriptorType, "di.Collection.Decorate %s", key)
		}
		decorated[i] = nd
	}

	c.services = decorated
	return nil
}

// Replace removes the first descriptor whose requested type is t, if any, and
// appends d.
//
// Returns [ErrDescriptorType] if d's requested type differs from t.
func (c *Collection) Replace(t reflect.Type, d *ServiceDescriptor) error {
	key := serviceKey{Type: t}
	if d == nil || d.key != key {
		return errors.Wrapf(ErrDescriptorType, "di.Collection.Replace %s", key)
	}

	for i, existing := range c.services {
		if existing.key == key {
			c.services = slices.Delete(c.services, i, i+1)
			break
		}
	}

	c.services = append(c.services, d)
	return nil
}

// Len returns the number of registered descriptors, including configuration
// hook descriptors.
func (c *Collection) Len() int {
	return len(c.services)
}

// Descriptors returns a copy of the registered descriptors in order.
func (c *Collection) Descriptors() []*ServiceDescriptor {
	return slices.Clone(c.services)
}

// BuildProvider freezes the current contents of the collection into a new
// [Provider] and constructs its root scope.
//
// The provider holds an independent snapshot: mutating the collection after
// the call has no effect on the returned provider.
func (c *Collection) BuildProvider() *Provider {
	p := &Provider{
		services: slices.Clone(c.services),
	}
	newScope(p, true)

	return p
}

// A Module is a reusable group of registrations.
//
// Example:
//
//	var StorageModule = di.Module{
//		func(c *di.Collection) { di.AddSingleton(c, NewDB) },
//		func(c *di.Collection) { di.AddScoped(c, NewStore) },
//	}
type Module []func(*Collection)

// Apply runs each function of each module against the collection in order.
func (c *Collection) Apply(mods ...Module) {
	for _, m := range mods {
		for _, fn := range m {
			fn(c)
		}
	}
}
