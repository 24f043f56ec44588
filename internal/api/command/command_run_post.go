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

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/retr0h/supadash/internal/api/command/gen"
	"github.com/retr0h/supadash/internal/audit"
	"github.com/retr0h/supadash/internal/authtoken"
	"github.com/retr0h/supadash/internal/exec"
	"github.com/retr0h/supadash/internal/provider/command"
	"github.com/retr0h/supadash/internal/telemetry"
	"github.com/retr0h/supadash/internal/validation"
)

// PostCommandRun runs the CLI and responds with its final result once it
// exits. Lines are published to the event hub while it runs.
func (h *Command) PostCommandRun(
	ctx context.Context,
	request gen.PostCommandRunRequestObject,
) (gen.PostCommandRunResponseObject, error) {
	if request.Body == nil {
		errMsg := "request body is required"
		return gen.PostCommandRun400JSONResponse{Error: &errMsg}, nil
	}

	if errMsg, ok := validation.Struct(request.Body); !ok {
		return gen.PostCommandRun400JSONResponse{Error: &errMsg}, nil
	}

	params := mapRequest(request.Body)
	if params.CommandID == "" {
		params.CommandID = uuid.NewString()
	}

	ctx, span := telemetry.StartRunSpan(ctx, params.CommandID, h.binary)
	defer span.End()

	result, err := h.provider.Run(params, h.sink(ctx))
	h.record(ctx, params, result, err)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())

		errMsg := err.Error()
		if command.IsUserError(err) {
			return gen.PostCommandRun400JSONResponse{Error: &errMsg}, nil
		}

		h.logger.ErrorContext(ctx, "command run failed", slog.String("error", errMsg))

		return gen.PostCommandRun500JSONResponse{Error: &errMsg}, nil
	}

	span.SetAttributes(attribute.Int("command.exit_code", result.ExitCode))

	return gen.PostCommandRun200JSONResponse{
		CommandId:  params.CommandID,
		Stdout:     result.Stdout,
		Stderr:     result.Stderr,
		ExitCode:   result.ExitCode,
		DurationMs: result.DurationMs,
	}, nil
}

// mapRequest converts the request body into provider parameters. Args stays
// nil when absent so the command line is tokenized instead.
func mapRequest(
	body *gen.CommandRunRequest,
) command.RunParams {
	params := command.RunParams{
		CommandID:   deref(body.CommandId),
		CommandLine: deref(body.CommandLine),
		WorkingDir:  deref(body.WorkingDir),
		APIURL:      deref(body.ApiUrl),
		ProjectRef:  deref(body.ProjectRef),
	}
	if body.Args != nil {
		params.Args = *body.Args
	}

	return params
}

func deref(
	s *string,
) string {
	if s == nil {
		return ""
	}

	return *s
}

// sink returns the hub plus the publisher, when one is configured.
func (h *Command) sink(
	ctx context.Context,
) exec.LineSink {
	if h.publisher == nil {
		return h.hub
	}

	return exec.MultiSink{h.hub, h.publisher.Sink(ctx)}
}

// record writes the run to the history store. Failures are logged only.
func (h *Command) record(
	ctx context.Context,
	params command.RunParams,
	result *command.Result,
	runErr error,
) {
	if h.history == nil {
		return
	}

	entry := audit.NewEntry(audit.SourceAPI, h.binary, params, result, runErr)
	entry.SourceIP = audit.SourceIPFromContext(ctx)
	if id, ok := authtoken.IdentityFromContext(ctx); ok {
		entry.User = id.Subject
		entry.Roles = id.Roles
	}

	if err := h.history.Write(ctx, entry); err != nil {
		h.logger.WarnContext(
			ctx,
			"failed to record run",
			slog.String("command_id", params.CommandID),
			slog.String("error", err.Error()),
		)
	}
}
