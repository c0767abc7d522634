package feed

import (
	"sort"
	"sync"

	"quoteboard/internal/application/port"

	"github.com/rs/zerolog/log"
)

// Factory builds a feed for the given websocket base URL.
type Factory func(wsURL string) port.QuoteFeed

var (
	mu       sync.RWMutex
	registry = make(map[string]Factory)
)

// Register is called from the init() of each feed package.
func Register(name string, factory Factory) {
	if factory == nil {
		log.Warn().Str("feed", name).Msg("invalid feed factory")
		return
	}
	mu.Lock()
	defer mu.Unlock()
	if _, exists := registry[name]; exists {
		log.Warn().Str("feed", name).Msg("feed factory already registered, overwriting")
	}
	registry[name] = factory
}

func Get(name string) (Factory, bool) {
	mu.RLock()
	defer mu.RUnlock()
	f, ok := registry[name]
	return f, ok
}

// Names returns the registered feed names, sorted.
func Names() []string {
	mu.RLock()
	defer mu.RUnlock()
	out := make([]string, 0, len(registry))
	for name := range registry {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
