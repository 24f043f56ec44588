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

// Package audit keeps a history of CLI runs.
package audit

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned by Get when no entry has the requested ID.
var ErrNotFound = errors.New("audit entry not found")

// Source values for Entry.Source.
const (
	SourceAPI = "api"
	SourceCLI = "cli"
)

// Entry represents one recorded CLI run.
type Entry struct {
	// ID is the unique, time-ordered identifier for this entry.
	ID string `json:"id"`
	// Timestamp is when the run finished.
	Timestamp time.Time `json:"timestamp"`
	// CommandID correlates the entry with streamed line events.
	CommandID string `json:"command_id"`
	// Source is where the run was requested from: "api" or "cli".
	Source string `json:"source"`
	// User is the authenticated subject, when there is one.
	User string `json:"user,omitempty"`
	// Roles are the roles of the authenticated subject.
	Roles []string `json:"roles,omitempty"`
	// SourceIP is the client's IP address for API runs.
	SourceIP string `json:"source_ip,omitempty"`
	// Binary is the executable that was run.
	Binary string `json:"binary"`
	// CommandLine is the raw argument text, when supplied.
	CommandLine string `json:"command_line,omitempty"`
	// Args are the pre-tokenized arguments, when supplied.
	Args []string `json:"args,omitempty"`
	// WorkingDir is the requested working directory.
	WorkingDir string `json:"working_dir,omitempty"`
	// ProjectRef is the requested project reference.
	ProjectRef string `json:"project_ref,omitempty"`
	// Outcome is succeeded, failed, rejected or spawn_failed.
	Outcome string `json:"outcome"`
	// ExitCode of the process; -1 when terminated by a signal.
	ExitCode int `json:"exit_code"`
	// DurationMs is the execution time in milliseconds.
	DurationMs int64 `json:"duration_ms"`
	// Error is the failure message for rejected or unspawned runs.
	Error string `json:"error,omitempty"`
}

type sourceIPKey struct{}

// ContextWithSourceIP returns a copy of ctx carrying the client address that
// requested a run.
func ContextWithSourceIP(
	ctx context.Context,
	ip string,
) context.Context {
	return context.WithValue(ctx, sourceIPKey{}, ip)
}

// SourceIPFromContext returns the address stored by ContextWithSourceIP, or
// an empty string.
func SourceIPFromContext(
	ctx context.Context,
) string {
	ip, _ := ctx.Value(sourceIPKey{}).(string)

	return ip
}

// Store persists and queries run history.
type Store interface {
	Write(ctx context.Context, entry Entry) error
	Get(ctx context.Context, id string) (*Entry, error)
	// List returns a page of entries, newest first, and the total count.
	List(ctx context.Context, limit int, offset int) ([]Entry, int, error)
}
