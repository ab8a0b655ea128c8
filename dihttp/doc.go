/*
Package dihttp provides HTTP middleware that creates a [di.Scope] for each
request.

Example:

	func main() {
		c := di.NewCollection()
		di.AddSingleton(c, NewService)
		di.AddScoped(c, NewRequestService)

		p := c.BuildProvider()
		defer p.Dispose()

		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			svc := dicontext.MustResolve[*RequestService](r.Context())
			svc.Handle(w, r)
		})

		http.ListenAndServe(":8080", dihttp.RequestScopeMiddleware(p)(handler))
	}
*/
package dihttp
