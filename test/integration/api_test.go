//go:build integration

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

package integration_test

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

type APISmokeSuite struct {
	suite.Suite
}

func (s *APISmokeSuite) TestHealth() {
	resp, err := http.Get(apiURL("/health")) //nolint:gosec
	s.Require().NoError(err)
	defer resp.Body.Close()

	var body map[string]any
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&body))
	s.Equal(http.StatusOK, resp.StatusCode)
	s.Equal("ok", body["status"])
}

func (s *APISmokeSuite) TestCommandRun() {
	tests := []struct {
		name     string
		bearer   string
		body     string
		wantCode int
		validate func(body []byte)
	}{
		{
			name:     "without token",
			body:     `{"command_line":"status"}`,
			wantCode: http.StatusUnauthorized,
		},
		{
			name:     "runs with token",
			bearer:   token,
			body:     `{"command_id":"api-ok","args":["status"]}`,
			wantCode: http.StatusOK,
			validate: func(body []byte) {
				var result map[string]any
				s.Require().NoError(json.Unmarshal(body, &result))
				s.Equal("api-ok", result["command_id"])
				s.Equal("fake supabase status\n", result["stdout"])
			},
		},
		{
			name:     "empty arguments",
			bearer:   token,
			body:     `{"command_line":"   "}`,
			wantCode: http.StatusBadRequest,
			validate: func(body []byte) {
				s.Contains(string(body), "enter the arguments")
			},
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			resp, err := postJSON("/command/run", tt.bearer, tt.body)
			s.Require().NoError(err)
			defer resp.Body.Close()

			body, err := io.ReadAll(resp.Body)
			s.Require().NoError(err)
			s.Equal(tt.wantCode, resp.StatusCode)
			if tt.validate != nil {
				tt.validate(body)
			}
		})
	}
}

func (s *APISmokeSuite) TestCommandEvents() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodGet,
		apiURL("/command/api-sse/events?access_token="+token),
		nil,
	)
	s.Require().NoError(err)

	resp, err := http.DefaultClient.Do(req)
	s.Require().NoError(err)
	defer resp.Body.Close()
	s.Require().Equal(http.StatusOK, resp.StatusCode)

	// The subscription exists once headers are flushed.
	runResp, err := postJSON("/command/run", token, `{"command_id":"api-sse","args":["link"]}`)
	s.Require().NoError(err)
	runResp.Body.Close()

	chunks := map[string]string{}
	scanner := bufio.NewScanner(resp.Body)
	for len(chunks) < 2 && scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, "data: ") {
			continue
		}

		var event struct {
			Stream string `json:"stream"`
			Chunk  string `json:"chunk"`
		}
		s.Require().NoError(json.Unmarshal([]byte(strings.TrimPrefix(line, "data: ")), &event))
		chunks[event.Stream] += event.Chunk
	}

	s.Equal("fake supabase link\n", chunks["stdout"])
	s.Equal("notice: link\n", chunks["stderr"])
}

func (s *APISmokeSuite) TestAudit() {
	req, err := http.NewRequest(http.MethodGet, apiURL("/audit?limit=5"), nil)
	s.Require().NoError(err)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := http.DefaultClient.Do(req)
	s.Require().NoError(err)
	defer resp.Body.Close()

	s.Equal(http.StatusOK, resp.StatusCode)
}

func TestAPISmokeSuite(t *testing.T) {
	suite.Run(t, new(APISmokeSuite))
}
