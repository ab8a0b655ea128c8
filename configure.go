package di

import (
	"reflect"
)

// Configurable is the opt-in capability for configuration hooks.
//
// After a scope materializes an instance whose requested type has hooks
// registered with [Configure] or [PostConfigure], the hooks are applied only
// if the instance implements Configurable. The marker method is typically
// empty:
//
//	type Options struct{ Addr string }
//
//	func (*Options) Configurable() {}
type Configurable interface {
	Configurable()
}

// hookTag distinguishes hook descriptors from the service they target. Hook
// descriptors share the target's requested type but carry a tag, so they
// never shadow the target in single or enumerable resolution.
type hookTag uint8

const (
	configureTag hookTag = iota + 1
	postConfigureTag
)

func (t hookTag) String() string {
	if t == configureTag {
		return "configure"
	}
	return "post-configure"
}

// configureHook wraps a registered callback. Hook descriptors are transient
// services producing a *configureHook.
type configureHook struct {
	fn func(ServiceProvider, any)
}

var typeConfigureHook = reflect.TypeFor[*configureHook]()

// Configure registers a callback applied to every Service instance after
// construction, before any [PostConfigure] callback.
//
// Callbacks for a service run in registration order and receive the scope
// that resolved the instance. They run once per instance, in the resolution
// call that created it, never on cache hits.
func Configure[Service Configurable](c *Collection, fn func(ServiceProvider, Service)) {
	c.Add(newHookDescriptor(configureTag, fn))
}

// PostConfigure registers a callback applied to every Service instance after
// all [Configure] callbacks have run.
func PostConfigure[Service Configurable](c *Collection, fn func(ServiceProvider, Service)) {
	c.Add(newHookDescriptor(postConfigureTag, fn))
}

func newHookDescriptor[Service Configurable](tag hookTag, fn func(ServiceProvider, Service)) *ServiceDescriptor {
	if fn == nil {
		return nil
	}

	return &ServiceDescriptor{
		key: serviceKey{
			Type: reflect.TypeFor[Service](),
			Tag:  tag,
		},
		produces: typeConfigureHook,
		lifetime: Transient,
		factory: func(ServiceProvider) (any, error) {
			return &configureHook{
				fn: func(sp ServiceProvider, val any) {
					fn(sp, val.(Service))
				},
			}, nil
		},
	}
}
