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

// Package authtoken issues and verifies the bearer tokens that guard the API.
package authtoken

import (
	"context"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// Issuer is the iss claim of every token this package signs.
const Issuer = "supadash"

// DefaultTTL is how long a generated token stays valid.
const DefaultTTL = 24 * time.Hour

// Token signs and validates JWTs.
type Token struct {
	logger *slog.Logger
	ttl    time.Duration
	now    func() time.Time
}

// CustomClaims are the claims carried by a supadash token.
type CustomClaims struct {
	// Roles granted to the subject. Expanded through the role mapping.
	Roles []string `json:"roles"                 validate:"required,min=1,dive,required"`
	// Permissions, when set, replace whatever the roles would grant.
	Permissions []string `json:"permissions,omitempty"`
	jwt.RegisteredClaims
}

// RoleHierarchy orders the built-in roles from most to least privileged.
var RoleHierarchy = map[string]int{
	"admin": 3,
	"write": 2,
	"read":  1,
}

// Identity is the authenticated caller of a request.
type Identity struct {
	Subject string
	Roles   []string
}

type identityKey struct{}

// ContextWithIdentity returns a copy of ctx carrying id.
func ContextWithIdentity(
	ctx context.Context,
	id Identity,
) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

// IdentityFromContext returns the caller stored by ContextWithIdentity.
func IdentityFromContext(
	ctx context.Context,
) (Identity, bool) {
	id, ok := ctx.Value(identityKey{}).(Identity)

	return id, ok
}
