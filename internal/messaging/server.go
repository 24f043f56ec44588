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
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats-server/v2/server"

	"github.com/retr0h/supadash/internal/config"
)

// readyTimeout bounds how long Start waits for the server to accept clients.
const readyTimeout = 5 * time.Second

// EmbeddedServer runs an in-process NATS server.
type EmbeddedServer struct {
	logger *slog.Logger
	ns     *server.Server
}

// NewEmbeddedServer creates, but does not start, an embedded NATS server.
// A zero port picks a random free port. JetStream without a StoreDir uses a
// temporary directory.
func NewEmbeddedServer(
	cfg config.NATSServer,
	logger *slog.Logger,
) (*EmbeddedServer, error) {
	host := cfg.Host
	if host == "" {
		host = "127.0.0.1"
	}

	port := cfg.Port
	if port == 0 {
		port = server.RANDOM_PORT
	}

	opts := &server.Options{
		Host:   host,
		Port:   port,
		NoLog:  true,
		NoSigs: true,
	}

	if cfg.JetStream {
		opts.JetStream = true
		opts.StoreDir = cfg.StoreDir
	}

	ns, err := server.NewServer(opts)
	if err != nil {
		return nil, fmt.Errorf("creating nats server: %w", err)
	}

	return &EmbeddedServer{
		logger: logger,
		ns:     ns,
	}, nil
}

// Start runs the server and waits until it accepts connections.
func (s *EmbeddedServer) Start() {
	go s.ns.Start()

	if !s.ns.ReadyForConnections(readyTimeout) {
		s.logger.Error("nats server not ready", slog.Duration("timeout", readyTimeout))
		return
	}

	s.logger.Info("nats server started", slog.String("url", s.ns.ClientURL()))
}

// Stop shuts down the server and waits for it to exit or ctx to expire.
func (s *EmbeddedServer) Stop(
	ctx context.Context,
) {
	s.logger.Info("stopping nats server")

	done := make(chan struct{})
	go func() {
		s.ns.Shutdown()
		s.ns.WaitForShutdown()
		close(done)
	}()

	select {
	case <-done:
		s.logger.Info("nats server stopped gracefully")
	case <-ctx.Done():
		s.logger.Warn("nats server shutdown timed out")
	}
}

// ClientURL returns the URL clients use to connect.
func (s *EmbeddedServer) ClientURL() string {
	return s.ns.ClientURL()
}
