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

package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/retr0h/supadash/internal/audit"
	"github.com/retr0h/supadash/internal/cli"
	"github.com/retr0h/supadash/internal/exec"
	"github.com/retr0h/supadash/internal/provider/command"
	"github.com/retr0h/supadash/internal/telemetry"
	"github.com/retr0h/supadash/internal/validation"
)

// exitFn is swapped in tests.
var exitFn = os.Exit

// runFlags holds the flags of the run command.
type runFlags struct {
	cwd        string
	apiURL     string
	projectRef string
	commandID  string
	line       string
}

var runOpts runFlags

// runCmd represents the run command.
var runCmd = &cobra.Command{
	Use:   "run [flags] -- <args...>",
	Short: "Run the Supabase CLI and stream its output",
	Long: `Run the Supabase CLI with the given arguments, printing each line of
stdout and stderr as it is produced. The process exits with the CLI's exit
code.

Arguments after -- are passed through unchanged. Alternatively --line takes
a single free-form string that is split using shell quoting rules.
`,
	Example: `  supadash run -- projects list
  supadash run --line 'db push --password "s3cret pass"'
  supadash run --api-url http://localhost:54321 -- status`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()

		shutdownTracer, err := telemetry.InitTracer(ctx, "supadash", appConfig.Telemetry.Tracing)
		if err != nil {
			cli.LogFatal(logger, "failed to initialize tracer", err)
		}

		params, err := buildRunParams(runOpts, args)
		if err != nil {
			cli.LogFatal(logger, "invalid arguments", err)
		}

		code := runCommand(ctx, params, cmd.OutOrStdout())
		_ = shutdownTracer(context.Background())
		exitFn(code)
	},
}

// buildRunParams converts flags and positional arguments into RunParams.
// Positional arguments take precedence over --line.
func buildRunParams(
	opts runFlags,
	args []string,
) (command.RunParams, error) {
	commandID := opts.commandID
	if commandID == "" {
		commandID = uuid.NewString()
	} else if errMsg, ok := validation.Var(commandID, "command_id"); !ok {
		return command.RunParams{}, errors.New(errMsg)
	}

	params := command.RunParams{
		CommandID:   commandID,
		CommandLine: opts.line,
		WorkingDir:  opts.cwd,
		APIURL:      opts.apiURL,
		ProjectRef:  opts.projectRef,
	}
	if len(args) > 0 {
		params.Args = args
	}

	return params, nil
}

// runCommand runs the CLI and returns the process exit status to use.
func runCommand(
	ctx context.Context,
	params command.RunParams,
	out io.Writer,
) int {
	sinks := exec.MultiSink{}
	if !jsonOutput {
		sinks = append(sinks, cli.NewLinePrinter(out, false))
	}

	var history audit.Store
	if natsWanted() {
		nc := connectNATS(logger)
		defer cli.CloseNATSConn(logger, nc)

		if appConfig.NATS.Enabled {
			sinks = append(sinks, newPublisher(logger, nc).Sink(ctx))
		}
		if auditEnabled() {
			history = openAuditStore(logger, nc)
		}
	}

	provider := newCommandProvider(logger, nil)

	ctx, span := telemetry.StartRunSpan(ctx, params.CommandID, provider.Binary())
	defer span.End()

	result, err := provider.Run(params, sinks)
	if history != nil {
		entry := audit.NewEntry(audit.SourceCLI, provider.Binary(), params, result, err)
		entry.User = os.Getenv("USER")
		if werr := history.Write(ctx, entry); werr != nil {
			logger.WarnContext(ctx, "failed to record run", slog.String("error", werr.Error()))
		}
	}
	if err != nil {
		span.RecordError(err)
		logger.ErrorContext(ctx, "command failed", slog.String("error", err.Error()))

		if command.IsUserError(err) {
			return 2
		}
		return 1
	}

	if jsonOutput {
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			logger.Error("failed to encode result", slog.String("error", err.Error()))
			return 1
		}
		_, _ = fmt.Fprintln(out, string(data))
	} else {
		cli.PrintRunSummary(out, result.CommandID, result.ExitCode, result.DurationMs)
	}

	return exitStatus(result.ExitCode)
}

// exitStatus maps a child exit code to this process's exit status.
// Signal termination has no numeric code and maps to 1.
func exitStatus(
	code int,
) int {
	if code == exec.SignalExitCode {
		return 1
	}

	return code
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVar(&runOpts.cwd, "cwd", "", "Working directory of the CLI process")
	runCmd.Flags().StringVar(&runOpts.apiURL, "api-url", "", "Exported as SUPABASE_URL and SUPABASE_API_URL")
	runCmd.Flags().StringVar(&runOpts.projectRef, "project-ref", "", "Exported as SUPABASE_PROJECT_REF")
	runCmd.Flags().StringVar(&runOpts.commandID, "id", "", "Command id for streamed lines (default: generated)")
	runCmd.Flags().StringVarP(&runOpts.line, "line", "l", "", "Free-form argument string split with shell quoting")
}
