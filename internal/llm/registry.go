package llm

import (
	"fmt"
	"sort"
	"sync"
)

// ProviderFactory builds a provider from its own environment configuration.
type ProviderFactory func() (Provider, error)

var (
	registryMu sync.RWMutex
	providers  = make(map[string]ProviderFactory)
)

// RegisterProvider is called from provider packages' init functions.
// Registering the same name twice is a programming error.
func RegisterProvider(name string, factory ProviderFactory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	if _, dup := providers[name]; dup {
		panic("llm: provider registered twice: " + name)
	}
	providers[name] = factory
}

func NewProvider(name string) (Provider, error) {
	registryMu.RLock()
	factory, exists := providers[name]
	registryMu.RUnlock()
	if !exists {
		return nil, fmt.Errorf("unsupported provider: %s (registered: %v)", name, Registered())
	}
	return factory()
}

// Registered lists provider names in sorted order.
func Registered() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	names := make([]string, 0, len(providers))
	for name := range providers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
