// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package qacct

import "log/slog"

type config struct {
	logger        *slog.Logger
	explicitStack bool
}

// Option configures a call to Parse.
type Option func(c *config) error

// WithLogger sets the logger for parser debug traces.
// A nil logger (the default) disables logging.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) error {
		c.logger = logger
		return nil
	}
}

// WithExplicitStack selects the parser that keeps open spans on a heap
// allocated stack instead of the call stack. It builds the same tree as
// the recursive parser and should be used for untrusted input where
// nesting depth is not bounded.
func WithExplicitStack(flag bool) Option {
	return func(c *config) error {
		c.explicitStack = flag
		return nil
	}
}
