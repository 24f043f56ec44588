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

package api

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	strictecho "github.com/oapi-codegen/runtime/strictmiddleware/echo"

	"github.com/retr0h/supadash/internal/api/common/gen"
	"github.com/retr0h/supadash/internal/audit"
	"github.com/retr0h/supadash/internal/authtoken"
)

// accessTokenParam lets EventSource clients, which cannot set headers,
// authenticate the SSE stream.
const accessTokenParam = "access_token"

// authEnabled reports whether bearer tokens are required.
func (s *Server) authEnabled() bool {
	return s.appConfig.API.Security.SigningKey != ""
}

func (s *Server) customRoles() map[string][]string {
	roles := s.appConfig.API.Security.Roles
	if len(roles) == 0 {
		return nil
	}

	out := make(map[string][]string, len(roles))
	for name, role := range roles {
		out[name] = role.Permissions
	}

	return out
}

// scopeMiddleware admits only tokens resolving to one of the scopes the
// generated wrapper stored under contextKey. The subject and roles are put
// on the request context. It is a pass-through when no signing key is set.
func (s *Server) scopeMiddleware(
	handler strictecho.StrictEchoHandlerFunc,
	contextKey string,
) strictecho.StrictEchoHandlerFunc {
	return func(ctx echo.Context, request interface{}) (interface{}, error) {
		if !s.authEnabled() {
			return handler(ctx, request)
		}

		tokenString, err := authtoken.BearerToken(ctx.Request().Header.Get(echo.HeaderAuthorization))
		if err != nil {
			tokenString = ctx.QueryParam(accessTokenParam)
		}
		if tokenString == "" {
			errMsg := authtoken.ErrMissingToken.Error()
			return nil, ctx.JSON(http.StatusUnauthorized, gen.ErrorResponse{Error: &errMsg})
		}

		claims, err := s.tokens.Validate(tokenString, s.appConfig.API.Security.SigningKey)
		if err != nil {
			errMsg := "invalid token"
			return nil, ctx.JSON(http.StatusUnauthorized, gen.ErrorResponse{Error: &errMsg})
		}

		req := ctx.Request()
		ctx.SetRequest(req.WithContext(authtoken.ContextWithIdentity(
			req.Context(),
			authtoken.Identity{Subject: claims.Subject, Roles: claims.Roles},
		)))

		requiredScopes, ok := ctx.Get(contextKey).([]string)
		if !ok || len(requiredScopes) == 0 {
			return handler(ctx, request)
		}

		resolved := authtoken.ResolvePermissions(
			claims.Roles,
			claims.Permissions,
			s.customRoles(),
		)
		for _, required := range requiredScopes {
			if authtoken.HasPermission(resolved, required) {
				return handler(ctx, request)
			}
		}

		s.logger.Warn(
			"permission denied",
			slog.String("subject", claims.Subject),
			slog.String("required", strings.Join(requiredScopes, ",")),
		)
		errMsg := "missing permission " + strings.Join(requiredScopes, " or ")
		return nil, ctx.JSON(http.StatusForbidden, gen.ErrorResponse{Error: &errMsg})
	}
}

// sourceIPMiddleware records the client address on the request context for
// run history.
func sourceIPMiddleware(
	handler strictecho.StrictEchoHandlerFunc,
	_ string,
) strictecho.StrictEchoHandlerFunc {
	return func(ctx echo.Context, request interface{}) (interface{}, error) {
		req := ctx.Request()
		ctx.SetRequest(req.WithContext(audit.ContextWithSourceIP(req.Context(), ctx.RealIP())))

		return handler(ctx, request)
	}
}
