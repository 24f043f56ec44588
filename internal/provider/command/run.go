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
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/mattn/go-shellwords"

	"github.com/retr0h/supadash/internal/exec"
)

// Run tokenizes the requested arguments, derives the environment, and runs
// the CLI. Lines are forwarded to sink while the process runs.
func (c *Executor) Run(
	params RunParams,
	sink exec.LineSink,
) (*Result, error) {
	args := nonBlank(params.Args)
	if params.Args == nil {
		var err error
		args, err = ParseArgs(params.CommandLine)
		if err != nil {
			c.recordRun(OutcomeRejected, 0)
			return nil, err
		}
	}

	args = c.stripBinary(args)
	if len(args) == 0 {
		c.recordRun(OutcomeRejected, 0)
		return nil, fmt.Errorf(
			"%w: enter the arguments you want to pass to `%s`",
			ErrEmptyArguments,
			filepath.Base(c.binary),
		)
	}

	inv := exec.Invocation{
		Name: c.binary,
		Args: args,
		Dir:  strings.TrimSpace(params.WorkingDir),
		Env:  c.environment(params),
	}

	c.logger.Debug("running command",
		slog.String("command_id", params.CommandID),
		slog.String("binary", c.binary),
		slog.Any("args", args),
		slog.String("cwd", inv.Dir),
	)

	if c.metrics != nil {
		sink = c.countingSink(sink)
	}

	cmdResult, err := c.execManager.RunCmdStream(params.CommandID, inv, sink)
	if err != nil {
		c.recordRun(OutcomeSpawnFailed, 0)
		return nil, fmt.Errorf("command execution failed: %w", err)
	}

	outcome := OutcomeSucceeded
	if cmdResult.ExitCode != 0 {
		outcome = OutcomeFailed
	}
	c.recordRun(outcome, cmdResult.DurationMs)

	return &Result{
		CommandID:  params.CommandID,
		Stdout:     cmdResult.Stdout,
		Stderr:     cmdResult.Stderr,
		ExitCode:   cmdResult.ExitCode,
		DurationMs: cmdResult.DurationMs,
	}, nil
}

// ParseArgs splits line into arguments using shell quoting rules.
// Blank input returns ErrEmptyArguments and unbalanced quotes return
// ErrArgumentParse. The CLI is never run through a shell, so operators such
// as | and ; are ordinary word characters.
func ParseArgs(
	line string,
) ([]string, error) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return nil, fmt.Errorf(
			"%w: enter the arguments you want to pass to `%s`",
			ErrEmptyArguments,
			DefaultBinary,
		)
	}

	args, err := shellwords.Parse(escapeOperators(trimmed))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrArgumentParse, err)
	}

	return args, nil
}

// escapeOperators backslash-escapes the runes shellwords would otherwise
// stop at or treat as substitutions. Single-quoted text is left alone since
// a backslash is literal there.
func escapeOperators(
	line string,
) string {
	var (
		b            strings.Builder
		escaped      bool
		singleQuoted bool
		doubleQuoted bool
	)

	for _, r := range line {
		switch {
		case escaped:
			escaped = false
		case r == '\\':
			escaped = !singleQuoted
		case r == '\'' && !doubleQuoted:
			singleQuoted = !singleQuoted
		case r == '"' && !singleQuoted:
			doubleQuoted = !doubleQuoted
		case !singleQuoted && strings.ContainsRune(shellOperators, r):
			b.WriteRune('\\')
		}
		b.WriteRune(r)
	}

	return b.String()
}

// IsUserError reports whether err was caused by the supplied arguments
// rather than by the system.
func IsUserError(
	err error,
) bool {
	return errors.Is(err, ErrEmptyArguments) || errors.Is(err, ErrArgumentParse)
}

// nonBlank drops tokens that are empty or only whitespace.
func nonBlank(
	args []string,
) []string {
	if args == nil {
		return nil
	}

	kept := make([]string, 0, len(args))
	for _, arg := range args {
		if strings.TrimSpace(arg) != "" {
			kept = append(kept, arg)
		}
	}

	return kept
}

// stripBinary drops a leading token naming the executable itself.
func (c *Executor) stripBinary(
	args []string,
) []string {
	if len(args) > 0 && strings.EqualFold(args[0], filepath.Base(c.binary)) {
		return args[1:]
	}

	return args
}

// environment derives the variables exported to the child.
func (c *Executor) environment(
	params RunParams,
) map[string]string {
	env := make(map[string]string)

	if url := strings.TrimSpace(params.APIURL); url != "" {
		env[EnvURL] = url
		env[EnvAPIURL] = url
	}

	if ref := strings.TrimSpace(params.ProjectRef); ref != "" {
		env[EnvProjectRef] = ref
	}

	if c.accessToken != "" {
		env[EnvAccessToken] = c.accessToken
	}

	if len(env) == 0 {
		return nil
	}

	return env
}

func (c *Executor) countingSink(
	sink exec.LineSink,
) exec.LineSink {
	return exec.SinkFunc(func(event exec.LineEvent) error {
		c.metrics.RecordLine(event.Stream)
		if sink == nil {
			return nil
		}

		return sink.Emit(event)
	})
}

func (c *Executor) recordRun(
	outcome string,
	durationMs int64,
) {
	if c.metrics != nil {
		c.metrics.RecordRun(outcome, durationMs)
	}
}

// Outcome classifies a finished Run call the way it is reported to Metrics.
func Outcome(
	result *Result,
	err error,
) string {
	switch {
	case err == nil && result != nil && result.ExitCode == 0:
		return OutcomeSucceeded
	case err == nil:
		return OutcomeFailed
	case IsUserError(err):
		return OutcomeRejected
	default:
		return OutcomeSpawnFailed
	}
}
