package source

import "fmt"

// Constructor is a function that creates a Source from its config.
type Constructor func(Config) (Source, error)

var registry = map[string]Constructor{}

// Register adds a source constructor under the given scheme.
func Register(scheme string, ctor Constructor) {
	registry[scheme] = ctor
}

// Open creates a Source for the scheme named in cfg.
func Open(cfg Config) (Source, error) {
	ctor, ok := registry[cfg.Scheme]
	if !ok {
		return nil, fmt.Errorf("unknown source scheme: %s", cfg.Scheme)
	}
	return ctor(cfg)
}

// Schemes returns the names of all registered source schemes.
func Schemes() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	return names
}
