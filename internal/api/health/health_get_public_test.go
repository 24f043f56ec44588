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

package health_test

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/suite"

	"github.com/retr0h/supadash/internal/api/health"
	"github.com/retr0h/supadash/internal/api/health/gen"
)

type HealthGetPublicTestSuite struct {
	suite.Suite
}

func (s *HealthGetPublicTestSuite) newHealth(
	checker health.Checker,
) *health.Health {
	return health.New(
		slog.New(slog.DiscardHandler),
		checker,
		time.Now().Add(-time.Minute),
		"1.2.3",
	)
}

func (s *HealthGetPublicTestSuite) TestGetHealth() {
	tests := []struct {
		name         string
		checker      health.Checker
		validateFunc func(resp gen.GetHealthResponseObject)
	}{
		{
			name: "no checker",
			validateFunc: func(resp gen.GetHealthResponseObject) {
				r, ok := resp.(gen.GetHealth200JSONResponse)
				s.Require().True(ok)
				s.Equal("ok", r.Status)
				s.Equal("1.2.3", r.Version)
				s.Equal("1m0s", r.Uptime)
			},
		},
		{
			name: "nats healthy",
			checker: &health.NATSChecker{
				NATSCheck: func() error { return nil },
			},
			validateFunc: func(resp gen.GetHealthResponseObject) {
				_, ok := resp.(gen.GetHealth200JSONResponse)
				s.True(ok)
			},
		},
		{
			name: "nats down",
			checker: &health.NATSChecker{
				NATSCheck: func() error { return errors.New("connection closed") },
			},
			validateFunc: func(resp gen.GetHealthResponseObject) {
				r, ok := resp.(gen.GetHealth503JSONResponse)
				s.Require().True(ok)
				s.Equal("degraded", r.Status)
				s.Equal("1.2.3", r.Version)
				s.Contains(r.Error, "connection closed")
			},
		},
		{
			name:    "checker without nats check",
			checker: &health.NATSChecker{},
			validateFunc: func(resp gen.GetHealthResponseObject) {
				_, ok := resp.(gen.GetHealth200JSONResponse)
				s.True(ok)
			},
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			resp, err := s.newHealth(tt.checker).GetHealth(
				context.Background(),
				gen.GetHealthRequestObject{},
			)
			s.Require().NoError(err)
			tt.validateFunc(resp)
		})
	}
}

func (s *HealthGetPublicTestSuite) TestGetHealthHTTP() {
	tests := []struct {
		name       string
		checker    health.Checker
		wantCode   int
		wantStatus string
		wantError  string
	}{
		{
			name:       "when healthy",
			wantCode:   http.StatusOK,
			wantStatus: "ok",
		},
		{
			name: "when nats is down",
			checker: &health.NATSChecker{
				NATSCheck: func() error { return errors.New("connection closed") },
			},
			wantCode:   http.StatusServiceUnavailable,
			wantStatus: "degraded",
			wantError:  "connection closed",
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			e := echo.New()
			gen.RegisterHandlers(e, gen.NewStrictHandler(s.newHealth(tt.checker), nil))

			req := httptest.NewRequest(http.MethodGet, "/health", nil)
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)

			s.Equal(tt.wantCode, rec.Code)
			s.Contains(rec.Header().Get(echo.HeaderContentType), "application/json")

			var body map[string]any
			s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &body))
			s.Equal(tt.wantStatus, body["status"])
			s.Equal("1.2.3", body["version"])
			if tt.wantError != "" {
				s.Contains(body["error"], tt.wantError)
			} else {
				s.NotContains(body, "error")
			}
		})
	}
}

func TestHealthGetPublicTestSuite(t *testing.T) {
	suite.Run(t, new(HealthGetPublicTestSuite))
}
