// Package toml loads docsearch tuning from TOML files.
package toml

import (
	"bytes"
	"errors"
	"os"

	"github.com/fwojciec/docsearch"
	"github.com/fwojciec/docsearch/assist"
	"github.com/fwojciec/docsearch/search"
	"github.com/pelletier/go-toml/v2"
)

// Config is the content of a tuning file. Sections left out keep their
// defaults.
type Config struct {
	Search   search.Config         `toml:"search"`
	Assist   assist.Config         `toml:"assist"`
	Provider assist.ProviderConfig `toml:"provider"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		Search:   search.DefaultConfig(),
		Assist:   assist.DefaultConfig(),
		Provider: assist.ProviderConfig{Provider: assist.ProviderGemini},
	}
}

// Load reads paths in order over the defaults. Later files override
// earlier ones. Empty paths are ignored.
func Load(paths ...string) (*Config, error) {
	cfg := DefaultConfig()
	for _, path := range paths {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, docsearch.Errorf(docsearch.ECONFIG, "failed to read config file %s: %v", path, err)
		}
		if err := decode(data, cfg); err != nil {
			return nil, docsearch.Errorf(docsearch.ECONFIG, "failed to parse config file %s: %v", path, err)
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func decode(data []byte, cfg *Config) error {
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	err := dec.Decode(cfg)

	var derr *toml.DecodeError
	if errors.As(err, &derr) {
		row, col := derr.Position()
		return docsearch.Errorf(docsearch.ECONFIG, "line %d column %d: %s", row, col, derr.String())
	}
	var serr *toml.StrictMissingError
	if errors.As(err, &serr) {
		return docsearch.Errorf(docsearch.ECONFIG, "unknown keys:\n%s", serr.String())
	}
	return err
}

// Validate rejects settings no engine can run with.
func (c *Config) Validate() error {
	switch {
	case c.Search.MinQueryLength < 1:
		return docsearch.Errorf(docsearch.ECONFIG, "search.min_query_length must be at least 1")
	case c.Search.MaxResults < 1:
		return docsearch.Errorf(docsearch.ECONFIG, "search.max_results must be at least 1")
	case c.Search.FuzzyThreshold < 0 || c.Search.FuzzyThreshold > 1:
		return docsearch.Errorf(docsearch.ECONFIG, "search.fuzzy_threshold must be between 0 and 1")
	case c.Assist.MaxContextChunks < 1:
		return docsearch.Errorf(docsearch.ECONFIG, "assist.max_context_chunks must be at least 1")
	case c.Assist.MaxContextTokens < 1:
		return docsearch.Errorf(docsearch.ECONFIG, "assist.max_context_tokens must be at least 1")
	}
	return nil
}

// Marshal renders cfg as TOML.
func Marshal(cfg *Config) ([]byte, error) {
	return toml.Marshal(cfg)
}
