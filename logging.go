package di

// LogSink receives debug traces from the container: scope construction,
// instance creation, and disposal.
//
// The sink is an optional collaborator. Each scope resolves it once at
// construction; when none is registered, tracing is disabled for that scope.
// A sink created by the container follows the normal lifetime and disposal
// rules of its descriptor.
//
// The dilog package provides adapters for zap, slog, and plain writers.
type LogSink interface {
	Debug(msg string)
}
