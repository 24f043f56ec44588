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

	"github.com/retr0h/supadash/internal/config"
	"github.com/retr0h/supadash/internal/exec"
	"github.com/retr0h/supadash/internal/telemetry"
)

// Connect opens a NATS connection using cfg.
func Connect(
	cfg config.NATS,
	logger *slog.Logger,
) (*nats.Conn, error) {
	name := cfg.ClientName
	if name == "" {
		name = "supadash"
	}

	nc, err := nats.Connect(
		cfg.URL,
		nats.Name(name),
		nats.MaxReconnects(-1),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				logger.Warn("nats disconnected", slog.String("error", err.Error()))
			}
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.Info("nats reconnected", slog.String("url", nc.ConnectedUrl()))
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("connecting to nats at %s: %w", cfg.URL, err)
	}

	return nc, nil
}

// Publisher publishes line events as JSON on the line event subject.
// It is safe for concurrent use.
type Publisher struct {
	logger  *slog.Logger
	conn    Conn
	subject string
}

// NewPublisher creates a Publisher for the given namespace.
func NewPublisher(
	logger *slog.Logger,
	conn Conn,
	namespace string,
) *Publisher {
	return &Publisher{
		logger:  logger,
		conn:    conn,
		subject: Subject(namespace),
	}
}

// Emit publishes event. Errors are returned to the caller, which for a
// running command means the line is logged and dropped.
func (p *Publisher) Emit(
	event exec.LineEvent,
) error {
	return p.publish(context.Background(), event)
}

// Sink returns a LineSink that also propagates the trace context of ctx.
func (p *Publisher) Sink(
	ctx context.Context,
) exec.LineSink {
	return exec.SinkFunc(func(event exec.LineEvent) error {
		return p.publish(ctx, event)
	})
}

func (p *Publisher) publish(
	ctx context.Context,
	event exec.LineEvent,
) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshaling line event: %w", err)
	}

	msg := nats.NewMsg(p.subject)
	msg.Data = data
	msg.Header.Set(HeaderCommandID, event.CommandID)
	msg.Header.Set(HeaderStream, event.Stream)
	telemetry.InjectTraceContextToHeader(ctx, msg.Header)

	if err := p.conn.PublishMsg(msg); err != nil {
		return fmt.Errorf("publishing line event: %w", err)
	}

	return nil
}

// Flush waits until all published events have been processed by the server.
func (p *Publisher) Flush() error {
	return p.conn.Flush()
}
