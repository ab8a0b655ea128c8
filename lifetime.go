package di

import "fmt"

// Lifetime specifies how service instances are created and owned when resolved.
//
// Available lifetimes:
//   - [Singleton] specifies that a service is created once per [Provider].
//   - [Scoped] specifies that a service is created once per [Scope].
//   - [Transient] specifies that a service is created for each request.
type Lifetime uint8

const (
	// Singleton specifies that a service is created once per [Provider].
	// The instance is created by the root scope and shared by all scopes.
	Singleton Lifetime = iota

	// Scoped specifies that a service is created once per [Scope].
	// Scoped services cannot be resolved from the root.
	Scoped

	// Transient specifies that a service is created for each request.
	// Transient instances are never cached and never disposed by the container.
	Transient
)

func (l Lifetime) String() string {
	switch l {
	case Singleton:
		return "Singleton"
	case Scoped:
		return "Scoped"
	case Transient:
		return "Transient"
	default:
		return fmt.Sprintf("Unknown Lifetime %d", l)
	}
}
