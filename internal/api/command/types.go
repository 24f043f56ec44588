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

package command

import (
	"context"
	"log/slog"
	"time"

	"github.com/retr0h/supadash/internal/api/events"
	"github.com/retr0h/supadash/internal/audit"
	"github.com/retr0h/supadash/internal/exec"
	"github.com/retr0h/supadash/internal/provider/command"
)

// DefaultHeartbeat is the interval between SSE keep-alive comments.
const DefaultHeartbeat = 15 * time.Second

// ContextSink yields a LineSink bound to the context of one run.
type ContextSink interface {
	Sink(ctx context.Context) exec.LineSink
}

// Command implementation of the command API operations.
type Command struct {
	logger    *slog.Logger
	provider  command.Provider
	hub       *events.Hub
	publisher ContextSink
	history   audit.Store
	binary    string
	heartbeat time.Duration
}

// Option configures a Command.
type Option func(*Command)
