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

package api_test

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/suite"

	"github.com/retr0h/supadash/internal/api"
	apicommand "github.com/retr0h/supadash/internal/api/command"
	"github.com/retr0h/supadash/internal/api/events"
	"github.com/retr0h/supadash/internal/audit"
	"github.com/retr0h/supadash/internal/authtoken"
	"github.com/retr0h/supadash/internal/config"
	"github.com/retr0h/supadash/internal/provider/command"
	"github.com/retr0h/supadash/internal/provider/command/mocks"
)

const testSigningKey = "middleware-test-signing-key"

type AuthMiddlewarePublicTestSuite struct {
	suite.Suite

	mockCtrl     *gomock.Controller
	mockProvider *mocks.MockProvider
	logger       *slog.Logger
	tokens       *authtoken.Token
}

func (s *AuthMiddlewarePublicTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockProvider = mocks.NewMockProvider(s.mockCtrl)
	s.logger = slog.New(slog.DiscardHandler)
	s.tokens = authtoken.New(s.logger)
}

func (s *AuthMiddlewarePublicTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func (s *AuthMiddlewarePublicTestSuite) newServer(
	signingKey string,
	opts ...apicommand.Option,
) *api.Server {
	server := api.New(config.Config{
		API: config.API{
			Security: config.Security{
				SigningKey: signingKey,
				Roles: map[string]config.CustomRole{
					"runner": {Permissions: []string{authtoken.PermCommandRun}},
				},
			},
		},
	}, s.logger)

	server.RegisterHandlers(server.GetCommandHandler(
		s.mockProvider,
		events.New(s.logger, 0),
		opts...,
	))

	return server
}

func (s *AuthMiddlewarePublicTestSuite) token(
	roles ...string,
) string {
	t, err := s.tokens.Generate(testSigningKey, roles, "tester", nil)
	s.Require().NoError(err)

	return t
}

func (s *AuthMiddlewarePublicTestSuite) TestScopeMiddleware() {
	tests := []struct {
		name       string
		signingKey string
		authHeader func() string
		query      func() string
		expectRun  bool
		wantCode   int
		wantBody   string
	}{
		{
			name:       "auth disabled without signing key",
			signingKey: "",
			expectRun:  true,
			wantCode:   http.StatusOK,
		},
		{
			name:       "missing token",
			signingKey: testSigningKey,
			wantCode:   http.StatusUnauthorized,
			wantBody:   `{"error":"missing bearer token"}`,
		},
		{
			name:       "invalid token",
			signingKey: testSigningKey,
			authHeader: func() string { return "Bearer not-a-jwt" },
			wantCode:   http.StatusUnauthorized,
			wantBody:   `{"error":"invalid token"}`,
		},
		{
			name:       "read role cannot run",
			signingKey: testSigningKey,
			authHeader: func() string { return "Bearer " + s.token("read") },
			wantCode:   http.StatusForbidden,
			wantBody:   `{"error":"missing permission command:run"}`,
		},
		{
			name:       "write role runs",
			signingKey: testSigningKey,
			authHeader: func() string { return "Bearer " + s.token("write") },
			expectRun:  true,
			wantCode:   http.StatusOK,
		},
		{
			name:       "custom role from config runs",
			signingKey: testSigningKey,
			authHeader: func() string { return "Bearer " + s.token("runner") },
			expectRun:  true,
			wantCode:   http.StatusOK,
		},
		{
			name:       "token in query parameter",
			signingKey: testSigningKey,
			query:      func() string { return "?access_token=" + s.token("admin") },
			expectRun:  true,
			wantCode:   http.StatusOK,
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			if tt.expectRun {
				s.mockProvider.EXPECT().
					Run(gomock.Any(), gomock.Any()).
					Return(&command.Result{CommandID: "a1"}, nil)
			}

			server := s.newServer(tt.signingKey)

			path := "/command/run"
			if tt.query != nil {
				path += tt.query()
			}
			req := httptest.NewRequest(
				http.MethodPost,
				path,
				strings.NewReader(`{"command_id":"a1","command_line":"status"}`),
			)
			req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			if tt.authHeader != nil {
				req.Header.Set(echo.HeaderAuthorization, tt.authHeader())
			}
			rec := httptest.NewRecorder()

			server.Echo.ServeHTTP(rec, req)

			s.Equal(tt.wantCode, rec.Code)
			if tt.wantBody != "" {
				s.JSONEq(tt.wantBody, rec.Body.String())
			}
		})
	}
}

type recordingStore struct {
	entries []audit.Entry
}

func (r *recordingStore) Write(
	_ context.Context,
	entry audit.Entry,
) error {
	r.entries = append(r.entries, entry)
	return nil
}

func (r *recordingStore) Get(
	_ context.Context,
	_ string,
) (*audit.Entry, error) {
	return nil, audit.ErrNotFound
}

func (r *recordingStore) List(
	_ context.Context,
	_ int,
	_ int,
) ([]audit.Entry, int, error) {
	return r.entries, len(r.entries), nil
}

func (s *AuthMiddlewarePublicTestSuite) TestIdentityReachesRunHistory() {
	tests := []struct {
		name       string
		signingKey string
		authHeader func() string
		wantUser   string
		wantRoles  []string
	}{
		{
			name:       "authenticated subject is recorded",
			signingKey: testSigningKey,
			authHeader: func() string { return "Bearer " + s.token("write") },
			wantUser:   "tester",
			wantRoles:  []string{"write"},
		},
		{
			name: "anonymous run records only the address",
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.mockProvider.EXPECT().
				Run(gomock.Any(), gomock.Any()).
				Return(&command.Result{CommandID: "a1"}, nil)

			store := &recordingStore{}
			server := s.newServer(tt.signingKey, apicommand.WithAuditStore(store))

			req := httptest.NewRequest(
				http.MethodPost,
				"/command/run",
				strings.NewReader(`{"command_id":"a1","command_line":"status"}`),
			)
			req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			if tt.authHeader != nil {
				req.Header.Set(echo.HeaderAuthorization, tt.authHeader())
			}
			rec := httptest.NewRecorder()

			server.Echo.ServeHTTP(rec, req)

			s.Equal(http.StatusOK, rec.Code)
			s.Require().Len(store.entries, 1)
			s.Equal(tt.wantUser, store.entries[0].User)
			s.Equal(tt.wantRoles, store.entries[0].Roles)
			s.Equal("192.0.2.1", store.entries[0].SourceIP)
		})
	}
}

func TestAuthMiddlewarePublicTestSuite(t *testing.T) {
	suite.Run(t, new(AuthMiddlewarePublicTestSuite))
}
