package backends

// Factory creates a backend instance with optional configuration
type Factory func(config any) (Backend, error)

// registeredBackends holds all registered backend factories
var registeredBackends = make(map[string]Factory)

// Register registers a backend factory function
func Register(name string, factory Factory) {
	registeredBackends[name] = factory
}

// Create creates a backend instance with optional configuration
func Create(name string, config any) (Backend, error) {
	factory, ok := registeredBackends[name]
	if !ok {
		return nil, ErrBackendNotFound
	}
	return factory(config)
}
