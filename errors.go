package di

import (
	"errors"
)

var (
	// ErrNotRegistered is returned when a required resolution finds no matching descriptor.
	ErrNotRegistered = errors.New("service not registered")

	// ErrInvalidScope is returned when a scoped service is resolved from the root.
	ErrInvalidScope = errors.New("scoped service must be resolved from a child scope")

	// ErrDisposed is returned from any operation on a [Scope] or [Provider]
	// after it has been disposed.
	ErrDisposed = errors.New("object disposed")

	// ErrDescriptorType is returned when [Collection.Decorate] or [Collection.Replace]
	// would change a descriptor's requested service type.
	ErrDescriptorType = errors.New("descriptor requested type mismatch")
)
