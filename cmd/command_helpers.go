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
	"log/slog"

	"github.com/nats-io/nats.go"

	"github.com/retr0h/supadash/internal/audit"
	"github.com/retr0h/supadash/internal/cli"
	"github.com/retr0h/supadash/internal/exec"
	"github.com/retr0h/supadash/internal/messaging"
	"github.com/retr0h/supadash/internal/provider/command"
)

// newCommandProvider builds the command executor from appConfig.
func newCommandProvider(
	log *slog.Logger,
	metrics command.Metrics,
) *command.Executor {
	opts := []command.Option{
		command.WithBinary(appConfig.Supabase.Binary),
		command.WithAccessToken(appConfig.Supabase.AccessToken),
	}
	if metrics != nil {
		opts = append(opts, command.WithMetrics(metrics))
	}

	return command.New(log, exec.New(log), opts...)
}

// natsWanted reports whether any configured feature needs a NATS connection.
func natsWanted() bool {
	return appConfig.NATS.Enabled || auditEnabled()
}

// auditEnabled reports whether runs are recorded in the audit bucket.
func auditEnabled() bool {
	return appConfig.NATS.Audit.Bucket != ""
}

// connectNATS connects to the configured NATS server or exits.
func connectNATS(
	log *slog.Logger,
) *nats.Conn {
	nc, err := messaging.Connect(appConfig.NATS, log)
	if err != nil {
		cli.LogFatal(log, "failed to connect to nats", err, "url", appConfig.NATS.URL)
	}

	return nc
}

// newPublisher returns a line event publisher on nc.
func newPublisher(
	log *slog.Logger,
	nc *nats.Conn,
) *messaging.Publisher {
	return messaging.NewPublisher(log, nc, appConfig.NATS.Namespace)
}

// openAuditStore binds the run history bucket on nc or exits.
func openAuditStore(
	log *slog.Logger,
	nc *nats.Conn,
) *audit.KVStore {
	js, err := nc.JetStream()
	if err != nil {
		cli.LogFatal(log, "failed to create jetstream context", err)
	}

	kv, err := audit.OpenBucket(js, appConfig.NATS.Namespace, appConfig.NATS.Audit)
	if err != nil {
		cli.LogFatal(log, "failed to open audit bucket", err, "bucket", appConfig.NATS.Audit.Bucket)
	}

	return audit.NewKVStore(log, kv)
}
