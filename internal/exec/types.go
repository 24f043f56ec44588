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

// Package exec runs external commands and streams their output line by line.
package exec

import (
	"errors"
	"fmt"
	"log/slog"
)

// SignalExitCode is reported when the OS does not supply a numeric exit
// code, for example when the child was terminated by a signal.
const SignalExitCode = -1

// Stream tags identifying which pipe a line was read from.
const (
	StreamStdout = "stdout"
	StreamStderr = "stderr"
)

// ErrSpawnFailed is matched by every error returned when the child process
// could not be created.
var ErrSpawnFailed = errors.New("failed to spawn command")

// SpawnError carries the OS-level error that prevented the child from starting.
type SpawnError struct {
	Name string
	Err  error
}

func (e *SpawnError) Error() string {
	return fmt.Sprintf("%s %q: %s", ErrSpawnFailed, e.Name, e.Err)
}

// Unwrap exposes both the sentinel and the underlying OS error.
func (e *SpawnError) Unwrap() []error {
	return []error{ErrSpawnFailed, e.Err}
}

// Manager runs external commands.
type Manager interface {
	// RunCmdStream spawns inv, emits every output line to sink as it is read,
	// and returns the accumulated output once the child has exited.
	RunCmdStream(
		commandID string,
		inv Invocation,
		sink LineSink,
	) (*CmdResult, error)
}

// Exec implements Manager on top of os/exec.
type Exec struct {
	logger *slog.Logger
}

// New creates a new Exec.
func New(
	logger *slog.Logger,
) *Exec {
	if logger == nil {
		logger = slog.Default()
	}

	return &Exec{
		logger: logger,
	}
}

// Invocation describes a single run of an external command.
type Invocation struct {
	// Name is the executable name or path.
	Name string
	// Args are the already tokenized arguments.
	Args []string
	// Dir is the optional working directory.
	Dir string
	// Env holds variables set on top of the inherited environment.
	Env map[string]string
}

// LineEvent is one line of output read from a child process.
type LineEvent struct {
	// CommandID correlates the event with the invocation that produced it.
	CommandID string `json:"command_id"`
	// Stream is either StreamStdout or StreamStderr.
	Stream string `json:"stream"`
	// Chunk is the raw line including its trailing newline, if any.
	Chunk string `json:"chunk"`
}

// CmdResult contains the output of a finished command.
type CmdResult struct {
	// Stdout is the complete standard output.
	Stdout string `json:"stdout"`
	// Stderr is the complete standard error output.
	Stderr string `json:"stderr"`
	// ExitCode is the process exit code, or SignalExitCode.
	ExitCode int `json:"exit_code"`
	// DurationMs is the time between spawn and result in milliseconds.
	DurationMs int64 `json:"duration_ms"`
}
