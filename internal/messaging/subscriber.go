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

package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/nats-io/nats.go"

	"github.com/retr0h/supadash/internal/exec"
	"github.com/retr0h/supadash/internal/telemetry"
)

// LineHandler receives decoded line events. ctx carries the publisher's
// trace context when one was sent.
type LineHandler func(ctx context.Context, event exec.LineEvent)

// Subscribe delivers line events published under namespace to handler until
// ctx is cancelled. When commandID is not empty, events for other commands
// are skipped.
func Subscribe(
	ctx context.Context,
	logger *slog.Logger,
	conn Conn,
	namespace string,
	commandID string,
	handler LineHandler,
) error {
	sub, err := conn.Subscribe(Subject(namespace), func(msg *nats.Msg) {
		if commandID != "" && msg.Header.Get(HeaderCommandID) != commandID {
			return
		}

		var event exec.LineEvent
		if err := json.Unmarshal(msg.Data, &event); err != nil {
			logger.Warn(
				"discarding malformed line event",
				slog.String("subject", msg.Subject),
				slog.String("error", err.Error()),
			)
			return
		}

		msgCtx := telemetry.ExtractTraceContextFromHeader(ctx, msg.Header)
		handler(telemetry.WithCommandID(msgCtx, event.CommandID), event)
	})
	if err != nil {
		return fmt.Errorf("subscribing to %s: %w", Subject(namespace), err)
	}

	<-ctx.Done()

	if err := sub.Unsubscribe(); err != nil {
		logger.Debug("unsubscribe failed", slog.String("error", err.Error()))
	}

	return nil
}
