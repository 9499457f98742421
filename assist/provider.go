package assist

import (
	"slices"
	"strings"
	"sync"

	"github.com/fwojciec/docsearch"
)

// Provider names understood by the command line.
const (
	ProviderGemini   = "gemini"
	ProviderClaude   = "claude"
	ProviderEndpoint = "endpoint"
)

// ProviderConfig selects and configures the language model behind an Answerer.
type ProviderConfig struct {
	Provider  string `toml:"provider"`
	Model     string `toml:"model"`
	APIKey    string `toml:"api_key"`
	Endpoint  string `toml:"endpoint"`
	MaxTokens int    `toml:"max_tokens"`
}

// ProviderFunc creates an Answerer from its configuration.
type ProviderFunc func(cfg ProviderConfig) (docsearch.Answerer, error)

// Registry maps provider names to constructors.
type Registry struct {
	mu        sync.RWMutex
	providers map[string]ProviderFunc
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{providers: make(map[string]ProviderFunc)}
}

// Register adds or replaces the constructor for name.
func (r *Registry) Register(name string, fn ProviderFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.providers[strings.ToLower(name)] = fn
}

// Names returns the registered provider names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.providers))
	for name := range r.providers {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// New creates the Answerer named by cfg.Provider. An unknown provider is a
// configuration error.
func (r *Registry) New(cfg ProviderConfig) (docsearch.Answerer, error) {
	r.mu.RLock()
	fn, ok := r.providers[strings.ToLower(strings.TrimSpace(cfg.Provider))]
	r.mu.RUnlock()
	if !ok {
		return nil, docsearch.Errorf(docsearch.ECONFIG, "unknown provider %q (available: %s)",
			cfg.Provider, strings.Join(r.Names(), ", "))
	}
	return fn(cfg)
}
