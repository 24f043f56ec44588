// Copyright (c) 2026 John Dewey

// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to
// deal in the Software without restriction, including without limitation the
// rights to use, copy, modify, merge, publish, distribute, sublicense, and/or
// sell copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:

// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.

// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING
// FROM, OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER
// DEALINGS IN THE SOFTWARE.

// Package command provides the command run and line event API handlers.
package command

import (
	"log/slog"
	"time"

	"github.com/retr0h/supadash/internal/api/command/gen"
	"github.com/retr0h/supadash/internal/api/events"
	"github.com/retr0h/supadash/internal/audit"
	"github.com/retr0h/supadash/internal/provider/command"
)

// ensure that we've conformed to the `StrictServerInterface` with a compile-time check
var _ gen.StrictServerInterface = (*Command)(nil)

// WithPublisher additionally forwards every line to p.
func WithPublisher(
	p ContextSink,
) Option {
	return func(c *Command) {
		c.publisher = p
	}
}

// WithAuditStore records every run, including rejected ones, in store.
func WithAuditStore(
	store audit.Store,
) Option {
	return func(c *Command) {
		c.history = store
	}
}

// WithBinary sets the executable name recorded on run spans.
func WithBinary(
	binary string,
) Option {
	return func(c *Command) {
		if binary != "" {
			c.binary = binary
		}
	}
}

// WithHeartbeat sets the SSE keep-alive interval.
func WithHeartbeat(
	d time.Duration,
) Option {
	return func(c *Command) {
		if d > 0 {
			c.heartbeat = d
		}
	}
}

// New factory to create a new instance.
func New(
	logger *slog.Logger,
	provider command.Provider,
	hub *events.Hub,
	opts ...Option,
) *Command {
	c := &Command{
		logger:    logger,
		provider:  provider,
		hub:       hub,
		binary:    command.DefaultBinary,
		heartbeat: DefaultHeartbeat,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}
