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

// Package command runs the Supabase CLI from free-form argument text.
package command

import (
	"log/slog"

	"github.com/retr0h/supadash/internal/exec"
)

// Executor implements Provider on top of an exec.Manager.
type Executor struct {
	logger      *slog.Logger
	execManager exec.Manager
	binary      string
	accessToken string
	metrics     Metrics
}

// Option configures an Executor.
type Option func(*Executor)

// WithBinary sets the executable to run. Blank values keep the default.
func WithBinary(
	binary string,
) Option {
	return func(c *Executor) {
		if binary != "" {
			c.binary = binary
		}
	}
}

// WithAccessToken exports token as SUPABASE_ACCESS_TOKEN on every run.
func WithAccessToken(
	token string,
) Option {
	return func(c *Executor) {
		c.accessToken = token
	}
}

// WithMetrics records run outcomes and streamed lines.
func WithMetrics(
	m Metrics,
) Option {
	return func(c *Executor) {
		c.metrics = m
	}
}

// New factory to create a new Executor instance.
func New(
	logger *slog.Logger,
	execManager exec.Manager,
	opts ...Option,
) *Executor {
	c := &Executor{
		logger:      logger,
		execManager: execManager,
		binary:      DefaultBinary,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Binary returns the executable this Executor runs.
func (c *Executor) Binary() string {
	return c.binary
}
