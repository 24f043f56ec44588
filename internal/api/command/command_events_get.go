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
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/retr0h/supadash/internal/api/command/gen"
	"github.com/retr0h/supadash/internal/api/events"
	"github.com/retr0h/supadash/internal/exec"
	"github.com/retr0h/supadash/internal/validation"
)

// GetCommandEvents streams line events for a command id as Server-Sent
// Events until the client disconnects. Subscribe before starting the run to
// receive every line.
func (h *Command) GetCommandEvents(
	ctx context.Context,
	request gen.GetCommandEventsRequestObject,
) (gen.GetCommandEventsResponseObject, error) {
	if errMsg, ok := validation.Var(request.Id, "required,command_id"); !ok {
		return gen.GetCommandEvents400JSONResponse{Error: &errMsg}, nil
	}

	return &eventStream{
		ctx:       ctx,
		logger:    h.logger,
		commandID: request.Id,
		sub:       h.hub.Subscribe(request.Id),
		heartbeat: h.heartbeat,
	}, nil
}

// eventStream writes subscription events as SSE frames. The subscription is
// taken when the response object is built and released once it is visited.
type eventStream struct {
	ctx       context.Context
	logger    *slog.Logger
	commandID string
	sub       *events.Subscription
	heartbeat time.Duration
}

// VisitGetCommandEventsResponse streams until the request context ends or
// the subscription closes.
func (s *eventStream) VisitGetCommandEventsResponse(
	w http.ResponseWriter,
) error {
	defer s.sub.Cancel()

	flush := func() {}
	if f, ok := w.(http.Flusher); ok {
		flush = f.Flush
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)
	flush()

	ticker := time.NewTicker(s.heartbeat)
	defer ticker.Stop()

	for {
		select {
		case <-s.ctx.Done():
			return nil
		case event, ok := <-s.sub.C:
			if !ok {
				return nil
			}
			if err := writeEvent(w, "line", event); err != nil {
				s.logger.Debug(
					"sse client disconnected",
					slog.String("command_id", s.commandID),
					slog.String("error", err.Error()),
				)
				return nil
			}
			flush()
		case <-ticker.C:
			if _, err := fmt.Fprint(w, ": heartbeat\n\n"); err != nil {
				return nil
			}
			flush()
		}
	}
}

func writeEvent(
	w io.Writer,
	name string,
	event exec.LineEvent,
) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintf(w, "event: %s\ndata: %s\n\n", name, data)

	return err
}
