package dihttp

import (
	"context"
	"log/slog"
	"net/http"

	di "github.com/sectrean/provider-kit"
	"github.com/sectrean/provider-kit/dicontext"
)

// RequestScopeMiddleware creates a new scope for each request and disposes it
// after the request has been processed.
//
// The scope is stored on the request context and can be accessed using
// [dicontext.Scope], [dicontext.Resolve], or [dicontext.MustResolve].
//
// Available options:
//   - [WithNewScopeErrorHandler] sets the error handler for when there is an error creating a new scope.
//   - [WithScopeDisposeErrorHandler] sets the error handler for when there is an error disposing the scope.
func RequestScopeMiddleware(p *di.Provider, opts ...ScopeMiddlewareOption) func(http.Handler) http.Handler {
	mw := &scopeMiddleware{
		p:               p,
		newScopeHandler: defaultNewScopeErrorHandler,
		disposeHandler:  defaultScopeDisposeErrorHandler,
	}
	for _, opt := range opts {
		opt.applyScopeMiddleware(mw)
	}

	return func(next http.Handler) http.Handler {
		mw.next = next
		return mw
	}
}

// NewScopeErrorHandler is a function that writes an error response to the
// client. It is called by the scope middleware when creating the request
// scope fails.
//
// The default handler logs the error to [slog.Default] and writes a
// 500 Internal Server Error response.
type NewScopeErrorHandler = func(w http.ResponseWriter, r *http.Request, err error)

func defaultNewScopeErrorHandler(w http.ResponseWriter, r *http.Request, err error) {
	slog.ErrorContext(r.Context(), "error creating new HTTP request scope", "error", err)
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

// ScopeDisposeErrorHandler is a function that handles errors from disposing
// the request scope after the request has completed.
//
// The default handler logs the error to [slog.Default].
type ScopeDisposeErrorHandler = func(r *http.Request, err error)

func defaultScopeDisposeErrorHandler(r *http.Request, err error) {
	slog.ErrorContext(r.Context(), "error disposing HTTP request scope", "error", err)
}

type scopeMiddleware struct {
	p               *di.Provider
	newScopeHandler NewScopeErrorHandler
	disposeHandler  ScopeDisposeErrorHandler
	next            http.Handler
}

func (m *scopeMiddleware) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	scope, err := m.p.CreateScope()
	if err != nil {
		if m.newScopeHandler != nil {
			m.newScopeHandler(w, r, err)
		}
		return
	}

	ctx := dicontext.WithScope(r.Context(), scope)
	m.next.ServeHTTP(w, r.WithContext(ctx))

	// The request context may already be canceled once the response is
	// written, but scoped services still need an orderly teardown.
	err = scope.DisposeAsync(context.WithoutCancel(ctx))
	if err != nil && m.disposeHandler != nil {
		m.disposeHandler(r, err)
	}
}
