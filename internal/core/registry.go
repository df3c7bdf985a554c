package core

import (
	"fmt"
	"sort"
	"sync"
)

var (
	registry   = make(map[string]Strategy)
	registryMu sync.RWMutex
)

// Register adds a strategy to the registry under its Name.
// Panics if a strategy with the same name is already registered.
func Register(s Strategy) {
	registryMu.Lock()
	defer registryMu.Unlock()

	name := s.Name()
	if name == "" {
		panic("strategy registered with empty name")
	}
	if _, exists := registry[name]; exists {
		panic(fmt.Sprintf("strategy already registered: %s", name))
	}

	registry[name] = s
}

// Get returns a strategy by name.
// Returns false if not found.
func Get(name string) (Strategy, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()

	s, ok := registry[name]
	return s, ok
}

// Lookup is like Get but returns ErrUnknownStrategy for unregistered names.
func Lookup(name string) (Strategy, error) {
	s, ok := Get(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q (available: %v)", ErrUnknownStrategy, name, Names())
	}
	return s, nil
}

// All returns all registered strategies sorted by name.
func All() []Strategy {
	registryMu.RLock()
	defer registryMu.RUnlock()

	result := make([]Strategy, 0, len(registry))
	for _, s := range registry {
		result = append(result, s)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Name() < result[j].Name()
	})

	return result
}

// Names returns the registered strategy names, sorted.
func Names() []string {
	all := All()
	names := make([]string, len(all))
	for i, s := range all {
		names[i] = s.Name()
	}
	return names
}

// StrategyCount returns the number of registered strategies.
func StrategyCount() int {
	registryMu.RLock()
	defer registryMu.RUnlock()
	return len(registry)
}
