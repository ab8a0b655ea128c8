package di

// AddSingleton registers a factory for a Service created once per [Provider].
//
// To register a different concrete type for the service, use [Describe] with
// [Collection.Add].
func AddSingleton[Service any](c *Collection, fn func(ServiceProvider) (Service, error)) {
	c.Add(Describe[Service, Service](Singleton, fn))
}

// AddScoped registers a factory for a Service created once per [Scope].
func AddScoped[Service any](c *Collection, fn func(ServiceProvider) (Service, error)) {
	c.Add(Describe[Service, Service](Scoped, fn))
}

// AddTransient registers a factory for a Service created on every resolution.
func AddTransient[Service any](c *Collection, fn func(ServiceProvider) (Service, error)) {
	c.Add(Describe[Service, Service](Transient, fn))
}

// AddValue registers a pre-built value as a singleton Service.
//
// The container does not take ownership of the value; it is never disposed by
// the container.
func AddValue[Service any](c *Collection, value Service) {
	c.Add(DescribeValue[Service](value))
}
