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

package exec

import (
	"errors"
	"io"
	"log/slog"
	"maps"
	"os"
	"os/exec"
	"slices"
	"strings"
	"sync"
	"time"
)

// RunCmdStream executes inv with stdout and stderr piped into two concurrent
// pumps. Every line is forwarded to sink as it is read. The call returns once
// the child has exited and both pumps have drained their pipes.
//
// Only a failure to spawn the child is returned as an error. Anything that
// goes wrong afterwards yields a result holding whatever output was read.
func (e *Exec) RunCmdStream(
	commandID string,
	inv Invocation,
	sink LineSink,
) (*CmdResult, error) {
	if sink == nil {
		sink = NopSink{}
	}

	cmd := exec.Command(inv.Name, inv.Args...)
	if inv.Dir != "" {
		cmd.Dir = inv.Dir
	}
	cmd.Env = mergeEnv(os.Environ(), inv.Env)

	stdoutR, stdoutW, err := os.Pipe()
	if err != nil {
		return nil, &SpawnError{Name: inv.Name, Err: err}
	}

	stderrR, stderrW, err := os.Pipe()
	if err != nil {
		closeAll(stdoutR, stdoutW)
		return nil, &SpawnError{Name: inv.Name, Err: err}
	}

	cmd.Stdout = stdoutW
	cmd.Stderr = stderrW

	start := time.Now()
	if err := cmd.Start(); err != nil {
		closeAll(stdoutR, stdoutW, stderrR, stderrW)

		e.logger.Debug(
			"exec stream spawn failed",
			slog.String("command_id", commandID),
			slog.String("command", strings.Join(cmd.Args, " ")),
			slog.String("cwd", inv.Dir),
			slog.String("error", err.Error()),
		)

		return nil, &SpawnError{Name: inv.Name, Err: err}
	}

	// The child holds its own copies of the write ends. Ours have to go,
	// otherwise the pumps never see end-of-stream.
	closeAll(stdoutW, stderrW)

	var stdout, stderr accumulator
	var wg sync.WaitGroup

	wg.Add(2)
	go func() {
		defer wg.Done()
		e.pump(stdoutR, &stdout, commandID, StreamStdout, sink)
	}()
	go func() {
		defer wg.Done()
		e.pump(stderrR, &stderr, commandID, StreamStderr, sink)
	}()

	// Each pump closes its read end on return.
	waitErr := cmd.Wait()
	wg.Wait()

	result := &CmdResult{
		Stdout:     stdout.String(),
		Stderr:     stderr.String(),
		ExitCode:   exitCode(waitErr),
		DurationMs: time.Since(start).Milliseconds(),
	}

	var exitErr *exec.ExitError
	if waitErr != nil && !errors.As(waitErr, &exitErr) {
		e.logger.Warn(
			"waiting for command failed",
			slog.String("command_id", commandID),
			slog.String("error", waitErr.Error()),
		)
	}

	e.logger.Debug(
		"exec stream",
		slog.String("command_id", commandID),
		slog.String("command", strings.Join(cmd.Args, " ")),
		slog.String("cwd", inv.Dir),
		slog.Int("exit_code", result.ExitCode),
		slog.Int64("duration_ms", result.DurationMs),
	)

	return result, nil
}

// exitCode maps the error returned by Wait to a process exit code.
func exitCode(
	err error,
) int {
	if err == nil {
		return 0
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		// ExitCode is -1 when the process was terminated by a signal.
		return exitErr.ExitCode()
	}

	return SignalExitCode
}

// mergeEnv returns base with every key in overrides replaced or added.
func mergeEnv(
	base []string,
	overrides map[string]string,
) []string {
	if len(overrides) == 0 {
		return base
	}

	env := make([]string, 0, len(base)+len(overrides))
	for _, kv := range base {
		name, _, _ := strings.Cut(kv, "=")
		if _, ok := overrides[name]; ok {
			continue
		}
		env = append(env, kv)
	}

	for _, key := range slices.Sorted(maps.Keys(overrides)) {
		env = append(env, key+"="+overrides[key])
	}

	return env
}

func closeAll(
	closers ...io.Closer,
) {
	for _, c := range closers {
		_ = c.Close()
	}
}
