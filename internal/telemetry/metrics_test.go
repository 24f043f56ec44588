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
	"errors"
	"testing"

	"github.com/stretchr/testify/suite"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/prometheus"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/retr0h/supadash/internal/config"
)

type MetricsTestSuite struct {
	suite.Suite
}

func (s *MetricsTestSuite) TestInitMeter() {
	tests := []struct {
		name     string
		cfg      config.MetricsConfig
		wantPath string
	}{
		{
			name:     "when path is empty uses default /metrics",
			cfg:      config.MetricsConfig{},
			wantPath: DefaultMetricsPath,
		},
		{
			name:     "when path is configured uses custom path",
			cfg:      config.MetricsConfig{Path: "/custom/metrics"},
			wantPath: "/custom/metrics",
		},
	}

	for _, tc := range tests {
		s.Run(tc.name, func() {
			handler, path, shutdown, err := InitMeter(tc.cfg)

			s.NoError(err)
			s.NotNil(handler)
			s.Equal(tc.wantPath, path)
			s.NotNil(shutdown)
			s.NoError(shutdown(context.Background()))
		})
	}
}

func (s *MetricsTestSuite) TestInitMeterExporterError() {
	original := prometheusNewFn
	defer func() { prometheusNewFn = original }()

	prometheusNewFn = func(
		_ ...prometheus.Option,
	) (*prometheus.Exporter, error) {
		return nil, errors.New("prometheus exporter failed")
	}

	handler, path, shutdown, err := InitMeter(config.MetricsConfig{})

	s.Error(err)
	s.Nil(handler)
	s.Empty(path)
	s.Nil(shutdown)
	s.Contains(err.Error(), "creating prometheus exporter")
}

func (s *MetricsTestSuite) TestCommandMetrics() {
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	defer func() { _ = mp.Shutdown(context.Background()) }()

	m, err := NewCommandMetrics(mp)
	s.Require().NoError(err)

	m.RecordRun("succeeded", 120)
	m.RecordRun("succeeded", 80)
	m.RecordRun("rejected", 0)
	m.RecordLine("stdout")
	m.RecordLine("stdout")
	m.RecordLine("stderr")

	var rm metricdata.ResourceMetrics
	s.Require().NoError(reader.Collect(context.Background(), &rm))

	s.Equal(map[string]int64{"succeeded": 2, "rejected": 1}, sumBy(rm, "supadash.command.runs", "outcome"))
	s.Equal(map[string]int64{"stdout": 2, "stderr": 1}, sumBy(rm, "supadash.command.lines", "stream"))

	found := false
	for _, sm := range rm.ScopeMetrics {
		for _, mtr := range sm.Metrics {
			if mtr.Name == "supadash.command.duration" {
				found = true
				s.Equal("ms", mtr.Unit)
			}
		}
	}
	s.True(found)
}

// sumBy totals an int64 counter grouped by the value of one attribute.
func sumBy(
	rm metricdata.ResourceMetrics,
	name string,
	key string,
) map[string]int64 {
	out := make(map[string]int64)
	for _, sm := range rm.ScopeMetrics {
		for _, mtr := range sm.Metrics {
			if mtr.Name != name {
				continue
			}
			sum, ok := mtr.Data.(metricdata.Sum[int64])
			if !ok {
				continue
			}
			for _, dp := range sum.DataPoints {
				v, _ := dp.Attributes.Value(attribute.Key(key))
				out[v.AsString()] += dp.Value
			}
		}
	}

	return out
}

func TestMetricsTestSuite(t *testing.T) {
	suite.Run(t, new(MetricsTestSuite))
}
