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

package cli

import (
	"errors"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"
)

// drainTimeout bounds how long CloseNATSConn waits for pending messages.
const drainTimeout = 5 * time.Second

// CloseNATSConn drains nc so buffered line events are delivered, falling
// back to Close when draining fails or times out. A nil conn is ignored.
func CloseNATSConn(
	logger *slog.Logger,
	nc *nats.Conn,
) {
	if nc == nil || nc.IsClosed() {
		return
	}

	closed := make(chan struct{})
	nc.SetClosedHandler(func(_ *nats.Conn) {
		close(closed)
	})

	if err := nc.Drain(); err != nil {
		logger.Debug("nats drain failed", slog.String("error", err.Error()))
		nc.Close()
		return
	}

	select {
	case <-closed:
	case <-time.After(drainTimeout):
		logger.Warn("nats drain timed out")
		nc.Close()
	}
}

// NATSCheck returns a health check reporting whether nc is connected.
func NATSCheck(
	nc *nats.Conn,
) func() error {
	return func() error {
		if nc == nil {
			return errors.New("not configured")
		}
		if !nc.IsConnected() {
			return errors.New("connection " + nc.Status().String())
		}

		return nil
	}
}
