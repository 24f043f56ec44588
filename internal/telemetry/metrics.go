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

package telemetry

import (
	"context"
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"github.com/retr0h/supadash/internal/config"
)

// prometheusNewFn is the function used to create Prometheus exporters.
// It is a package-level variable so tests can replace it to simulate errors.
var prometheusNewFn = prometheus.New

// DefaultMetricsPath is the default HTTP path for the Prometheus scrape endpoint.
const DefaultMetricsPath = "/metrics"

const meterName = "github.com/retr0h/supadash"

// InitMeter initializes the OpenTelemetry meter provider with a Prometheus exporter.
// It returns the HTTP handler for the scrape endpoint, the resolved path,
// a shutdown function, and any initialization error.
func InitMeter(
	cfg config.MetricsConfig,
) (http.Handler, string, func(context.Context) error, error) {
	path := cfg.Path
	if path == "" {
		path = DefaultMetricsPath
	}

	exporter, err := prometheusNewFn()
	if err != nil {
		return nil, "", nil, fmt.Errorf("creating prometheus exporter: %w", err)
	}

	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(exporter))
	otel.SetMeterProvider(mp)

	return promhttp.Handler(), path, mp.Shutdown, nil
}

// CommandMetrics records CLI runs and streamed output lines.
type CommandMetrics struct {
	runs     metric.Int64Counter
	lines    metric.Int64Counter
	duration metric.Float64Histogram
}

// NewCommandMetrics creates the command instruments on mp.
func NewCommandMetrics(
	mp metric.MeterProvider,
) (*CommandMetrics, error) {
	meter := mp.Meter(meterName)

	runs, err := meter.Int64Counter(
		"supadash.command.runs",
		metric.WithDescription("Number of command runs by outcome."),
	)
	if err != nil {
		return nil, fmt.Errorf("creating runs counter: %w", err)
	}

	lines, err := meter.Int64Counter(
		"supadash.command.lines",
		metric.WithDescription("Number of output lines streamed by stream."),
	)
	if err != nil {
		return nil, fmt.Errorf("creating lines counter: %w", err)
	}

	duration, err := meter.Float64Histogram(
		"supadash.command.duration",
		metric.WithDescription("Command run duration."),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating duration histogram: %w", err)
	}

	return &CommandMetrics{
		runs:     runs,
		lines:    lines,
		duration: duration,
	}, nil
}

// RecordRun counts one run with the given outcome and records its duration.
func (m *CommandMetrics) RecordRun(
	outcome string,
	durationMs int64,
) {
	ctx := context.Background()
	attrs := metric.WithAttributes(attribute.String("outcome", outcome))

	m.runs.Add(ctx, 1, attrs)
	m.duration.Record(ctx, float64(durationMs), attrs)
}

// RecordLine counts one streamed line.
func (m *CommandMetrics) RecordLine(
	stream string,
) {
	m.lines.Add(
		context.Background(),
		1,
		metric.WithAttributes(attribute.String("stream", stream)),
	)
}
