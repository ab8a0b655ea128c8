package dicontext

import (
	"context"
	"reflect"

	di "github.com/sectrean/provider-kit"
	"github.com/sectrean/provider-kit/internal/errors"
)

type scopeContextKey struct{}

// WithScope returns a new [context.Context] that carries the provided
// [di.ServiceProvider], typically a request scope.
func WithScope(ctx context.Context, sp di.ServiceProvider) context.Context {
	return context.WithValue(ctx, scopeContextKey{}, sp)
}

// Scope returns the [di.ServiceProvider] stored on the [context.Context], if
// present.
func Scope(ctx context.Context) di.ServiceProvider {
	if sp, ok := ctx.Value(scopeContextKey{}).(di.ServiceProvider); ok {
		return sp
	}
	return nil
}

// Resolve a Service from the [di.ServiceProvider] stored on the
// [context.Context].
func Resolve[Service any](ctx context.Context) (Service, error) {
	var val Service

	sp := Scope(ctx)
	if sp == nil {
		return val, errors.Errorf("resolve %s from context: scope not found on context", reflect.TypeFor[Service]())
	}

	return di.Resolve[Service](sp)
}

// MustResolve resolves a Service from the [di.ServiceProvider] stored on the
// [context.Context].
//
// It panics if the service cannot be resolved.
func MustResolve[Service any](ctx context.Context) Service {
	val, err := Resolve[Service](ctx)
	if err != nil {
		panic(err)
	}
	return val
}
