package sink

import "fmt"

// Constructor is a function that creates an ObjectStore from its config.
type Constructor func(Config) (ObjectStore, error)

var registry = map[string]Constructor{}

// Register adds a store constructor under the given scheme.
func Register(scheme string, ctor Constructor) {
	registry[scheme] = ctor
}

// Open creates an ObjectStore for the scheme named in cfg.
func Open(cfg Config) (ObjectStore, error) {
	ctor, ok := registry[cfg.Scheme]
	if !ok {
		return nil, fmt.Errorf("unknown sink scheme: %s", cfg.Scheme)
	}
	return ctor(cfg)
}

// Schemes returns the names of all registered sink schemes.
func Schemes() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	return names
}
