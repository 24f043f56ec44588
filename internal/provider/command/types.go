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
	"errors"

	"github.com/retr0h/supadash/internal/exec"
)

// DefaultBinary is the executable run when none is configured.
const DefaultBinary = "supabase"

// Environment variables derived from run parameters.
const (
	EnvURL         = "SUPABASE_URL"
	EnvAPIURL      = "SUPABASE_API_URL"
	EnvProjectRef  = "SUPABASE_PROJECT_REF"
	EnvAccessToken = "SUPABASE_ACCESS_TOKEN"
)

// shellOperators are the runes shellwords treats as syntax outside quotes.
const shellOperators = ";&|<>()`"

// Run outcomes reported to Metrics.
const (
	OutcomeSucceeded   = "succeeded"
	OutcomeFailed      = "failed"
	OutcomeRejected    = "rejected"
	OutcomeSpawnFailed = "spawn_failed"
)

var (
	// ErrEmptyArguments is returned when no usable arguments were supplied.
	ErrEmptyArguments = errors.New("no arguments supplied")
	// ErrArgumentParse is returned when the command line cannot be tokenized.
	ErrArgumentParse = errors.New("could not parse arguments")
)

// Provider runs the configured CLI on behalf of a caller.
type Provider interface {
	// Run validates params, executes the CLI, and streams its output to sink.
	Run(params RunParams, sink exec.LineSink) (*Result, error)
}

// Metrics records run and line counts.
type Metrics interface {
	RecordRun(outcome string, durationMs int64)
	RecordLine(stream string)
}

// RunParams contains parameters for one CLI invocation.
type RunParams struct {
	// CommandID correlates streamed lines with this run.
	CommandID string
	// CommandLine is free-form argument text, tokenized shell-style.
	// Ignored when Args is set.
	CommandLine string
	// Args are pre-tokenized arguments.
	Args []string
	// WorkingDir is the optional working directory.
	WorkingDir string
	// APIURL is exported as SUPABASE_URL and SUPABASE_API_URL.
	APIURL string
	// ProjectRef is exported as SUPABASE_PROJECT_REF.
	ProjectRef string
}

// Result contains the output of a finished run.
type Result struct {
	// CommandID is the identifier the run was started with.
	CommandID string `json:"command_id"`
	// Stdout is the standard output.
	Stdout string `json:"stdout"`
	// Stderr is the standard error output.
	Stderr string `json:"stderr"`
	// ExitCode is the process exit code, -1 when terminated by a signal.
	ExitCode int `json:"exit_code"`
	// DurationMs is the execution time in milliseconds.
	DurationMs int64 `json:"duration_ms"`
}
