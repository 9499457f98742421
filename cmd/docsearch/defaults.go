package main

import (
	"github.com/fwojciec/docsearch/toml"
)

// Run executes the defaults command.
func (c *DefaultsCmd) Run(deps *Dependencies) error {
	data, err := toml.Marshal(toml.DefaultConfig())
	if err != nil {
		return err
	}
	_, err = deps.Stdout.Write(data)
	return err
}
