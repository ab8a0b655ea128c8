package di

import (
	"reflect"
)

// Resolve returns the Service registered with the [ServiceProvider].
//
// It fails with [ErrNotRegistered] if no descriptor matches.
func Resolve[Service any](sp ServiceProvider) (Service, error) {
	var val Service

	anyVal, err := sp.Resolve(reflect.TypeFor[Service]())
	if anyVal != nil {
		val = anyVal.(Service)
	}

	return val, err
}

// MustResolve returns the Service registered with the [ServiceProvider].
//
// It panics if the service cannot be resolved.
func MustResolve[Service any](sp ServiceProvider) Service {
	val, err := Resolve[Service](sp)
	if err != nil {
		panic(err)
	}
	return val
}

// ResolveOptional returns the Service registered with the [ServiceProvider],
// or the zero value if no descriptor matches.
func ResolveOptional[Service any](sp ServiceProvider) (Service, error) {
	var val Service

	anyVal, err := sp.ResolveOptional(reflect.TypeFor[Service]())
	if anyVal != nil {
		val = anyVal.(Service)
	}

	return val, err
}

// ResolveAll returns one Service instance for every matching descriptor, in
// registration order.
//
// It fails with [ErrNotRegistered] if no descriptor matches.
func ResolveAll[Service any](sp ServiceProvider) ([]Service, error) {
	anyVals, err := sp.ResolveAll(reflect.TypeFor[Service]())
	if err != nil {
		return nil, err
	}

	return castAll[Service](anyVals), nil
}

// ResolveAllOptional is [ResolveAll] but returns an empty slice if no
// descriptor matches.
func ResolveAllOptional[Service any](sp ServiceProvider) ([]Service, error) {
	anyVals, err := sp.ResolveAllOptional(reflect.TypeFor[Service]())
	if err != nil {
		return nil, err
	}

	return castAll[Service](anyVals), nil
}

// Contains reports whether a Service can be resolved from the
// [ServiceProvider].
func Contains[Service any](sp ServiceProvider) bool {
	return sp.Contains(reflect.TypeFor[Service]())
}

func castAll[Service any](anyVals []any) []Service {
	if anyVals == nil {
		return nil
	}

	vals := make([]Service, len(anyVals))
	for i, v := range anyVals {
		if v != nil {
			vals[i] = v.(Service)
		}
	}

	return vals
}
