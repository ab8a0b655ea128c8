package di

import (
	"context"
)

// Disposable is the synchronous disposal capability.
//
// Instances created by a factory for a singleton or scoped descriptor are
// captured into the creating scope's disposal list if they implement
// Disposable or [AsyncDisposable], or one of the compatible method
// signatures:
//
//	Dispose()
//	Dispose() error
//	DisposeAsync(context.Context) error
//	DisposeAsync(context.Context)
//
// Pre-built values and transient instances are never captured; their callers
// retain ownership.
type Disposable interface {
	Dispose()
}

// AsyncDisposable is the asynchronous disposal capability.
//
// [Scope.DisposeAsync] invokes it and awaits completion. [Scope.Dispose]
// invokes it without waiting when no synchronous capability is present.
type AsyncDisposable interface {
	DisposeAsync(ctx context.Context) error
}

// syncDisposerFor returns the instance's synchronous teardown, or nil if the
// instance has no synchronous disposal capability.
func syncDisposerFor(val any) func() error {
	switch d := val.(type) {
	case interface{ Dispose() error }:
		return d.Dispose
	case Disposable:
		return func() error {
			d.Dispose()
			return nil
		}
	}

	return nil
}

// asyncDisposerFor returns the instance's asynchronous teardown, or nil if
// the instance has no asynchronous disposal capability.
func asyncDisposerFor(val any) func(context.Context) error {
	switch d := val.(type) {
	case AsyncDisposable:
		return d.DisposeAsync
	case interface{ DisposeAsync(context.Context) }:
		return func(ctx context.Context) error {
			d.DisposeAsync(ctx)
			return nil
		}
	}

	return nil
}

func isDisposable(val any) bool {
	if val == nil {
		return false
	}

	return syncDisposerFor(val) != nil || asyncDisposerFor(val) != nil
}
