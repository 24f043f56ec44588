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
	"time"

	"github.com/labstack/echo/v4"
	"github.com/nats-io/nats.go"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel"

	"github.com/retr0h/supadash/internal/api"
	apicommand "github.com/retr0h/supadash/internal/api/command"
	"github.com/retr0h/supadash/internal/api/events"
	"github.com/retr0h/supadash/internal/api/health"
	"github.com/retr0h/supadash/internal/audit"
	"github.com/retr0h/supadash/internal/cli"
	"github.com/retr0h/supadash/internal/messaging"
	"github.com/retr0h/supadash/internal/telemetry"
)

// serveCmd represents the serve command.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Long: `Start the HTTP API that runs the Supabase CLI on request and streams
its output as Server-Sent Events. When nats.server.enabled is set an embedded
NATS server is started first, and when nats.enabled is set every line is also
published to NATS. When nats.audit.bucket is set every run is recorded and
served under /audit. Shuts down gracefully on SIGINT/SIGTERM.
`,
	Run: func(cmd *cobra.Command, _ []string) {
		ctx := cmd.Context()

		shutdownTracer, err := telemetry.InitTracer(ctx, "supadash", appConfig.Telemetry.Tracing)
		if err != nil {
			cli.LogFatal(logger, "failed to initialize tracer", err)
		}

		metricsHandler, metricsPath, shutdownMeter, err := telemetry.InitMeter(
			appConfig.Telemetry.Metrics,
		)
		if err != nil {
			cli.LogFatal(logger, "failed to initialize meter", err)
		}

		cmdMetrics, err := telemetry.NewCommandMetrics(otel.GetMeterProvider())
		if err != nil {
			cli.LogFatal(logger, "failed to create metrics", err)
		}

		var ns *messaging.EmbeddedServer
		if appConfig.NATS.Server.Enabled {
			ns, err = messaging.NewEmbeddedServer(
				appConfig.NATS.Server,
				logger.With("component", "nats"),
			)
			if err != nil {
				cli.LogFatal(logger, "failed to create nats server", err)
			}
			// Started before the API so the publisher can connect.
			ns.Start()
		}

		apiLog := logger.With("component", "api")
		cli.ValidateHost(apiLog, appConfig.Supabase.Binary)

		var (
			nc      *nats.Conn
			checker health.Checker
			opts    = []apicommand.Option{apicommand.WithBinary(appConfig.Supabase.Binary)}
		)
		var history audit.Store
		if natsWanted() {
			nc = connectNATS(apiLog)
			checker = &health.NATSChecker{NATSCheck: cli.NATSCheck(nc)}
		}
		if appConfig.NATS.Enabled {
			opts = append(opts, apicommand.WithPublisher(newPublisher(apiLog, nc)))
		}
		if auditEnabled() {
			history = openAuditStore(apiLog, nc)
			opts = append(opts, apicommand.WithAuditStore(history))
		}
		if appConfig.API.Security.SigningKey == "" {
			apiLog.Warn("api.security.signing_key is not set, API is unauthenticated")
		}

		provider := newCommandProvider(apiLog, cmdMetrics)
		hub := events.New(apiLog, events.DefaultBufferSize)

		sm := api.New(appConfig, apiLog)
		handlers := make([]func(e *echo.Echo), 0, 4)
		handlers = append(handlers, sm.GetCommandHandler(provider, hub, opts...)...)
		handlers = append(handlers, sm.GetHealthHandler(checker, time.Now(), version)...)
		handlers = append(handlers, sm.GetMetricsHandler(metricsHandler, metricsPath)...)
		if history != nil {
			handlers = append(handlers, sm.GetAuditHandler(history)...)
		}
		sm.RegisterHandlers(handlers)

		var server cli.Lifecycle = sm
		server.Start()

		// The connection is drained before the embedded server goes away.
		cli.RunServer(ctx, server, func() {
			cli.CloseNATSConn(logger, nc)
			if ns != nil {
				stopCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()
				ns.Stop(stopCtx)
			}
			_ = shutdownMeter(context.Background())
			_ = shutdownTracer(context.Background())
		})
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
