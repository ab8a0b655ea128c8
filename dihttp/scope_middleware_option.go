package dihttp

// ScopeMiddlewareOption is an option used to configure the scope middleware
// when calling [RequestScopeMiddleware].
type ScopeMiddlewareOption interface {
	applyScopeMiddleware(*scopeMiddleware)
}

type scopeMiddlewareOption func(*scopeMiddleware)

func (o scopeMiddlewareOption) applyScopeMiddleware(m *scopeMiddleware) {
	o(m)
}

// WithNewScopeErrorHandler sets the error handler for when there is an error
// creating a new scope.
func WithNewScopeErrorHandler(fn NewScopeErrorHandler) ScopeMiddlewareOption {
	return scopeMiddlewareOption(func(m *scopeMiddleware) {
		m.newScopeHandler = fn
	})
}

// WithScopeDisposeErrorHandler sets the error handler for when there is an
// error disposing the request scope.
func WithScopeDisposeErrorHandler(fn ScopeDisposeErrorHandler) ScopeMiddlewareOption {
	return scopeMiddlewareOption(func(m *scopeMiddleware) {
		m.disposeHandler = fn
	})
}
