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
	"encoding/json"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/retr0h/supadash/internal/authtoken"
	"github.com/retr0h/supadash/internal/cli"
)

var (
	tokenRoles       []string
	tokenPermissions []string
	tokenSubject     string
	tokenTTL         time.Duration
	tokenString      string
)

// tokenCmd represents the token command.
var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Manage API bearer tokens",
	Long: `Generate and inspect the bearer tokens accepted by the API when
api.security.signing_key is set.
`,
}

// tokenGenerateCmd represents the token generate command.
var tokenGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a signed token",
	Example: `  supadash token generate --subject ci --role write
  supadash token generate -u alice -r admin --ttl 1h`,
	Run: func(cmd *cobra.Command, _ []string) {
		signingKey := requireSigningKey()

		allowed := allowedRoles()
		for _, role := range tokenRoles {
			if !slices.Contains(allowed, role) {
				cli.LogFatal(
					logger,
					"unknown role",
					fmt.Errorf("%q is not one of %s", role, strings.Join(allowed, ", ")),
				)
			}
		}

		for _, perm := range tokenPermissions {
			if !slices.Contains(authtoken.AllPermissions, perm) {
				cli.LogFatal(
					logger,
					"unknown permission",
					fmt.Errorf("%q is not one of %s", perm, strings.Join(authtoken.AllPermissions, ", ")),
				)
			}
		}

		t := authtoken.New(logger, authtoken.WithTTL(tokenTTL))
		signed, err := t.Generate(signingKey, tokenRoles, tokenSubject, tokenPermissions)
		if err != nil {
			cli.LogFatal(logger, "failed to generate token", err)
		}

		out := cmd.OutOrStdout()
		if jsonOutput {
			data, _ := json.Marshal(map[string]string{"token": signed})
			_, _ = fmt.Fprintln(out, string(data))
			return
		}

		_, _ = fmt.Fprintln(out, signed)
	},
}

// tokenValidateCmd represents the token validate command.
var tokenValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a token and show its claims",
	Run: func(cmd *cobra.Command, _ []string) {
		signingKey := requireSigningKey()

		claims, err := authtoken.New(logger).Validate(tokenString, signingKey)
		if err != nil {
			cli.LogFatal(logger, "token is not valid", err)
		}

		out := cmd.OutOrStdout()
		if jsonOutput {
			data, _ := json.Marshal(claims)
			_, _ = fmt.Fprintln(out, string(data))
			return
		}

		cli.PrintKV(out,
			"Subject", claims.Subject,
			"Roles", strings.Join(claims.Roles, ","),
		)
		cli.PrintKV(out,
			"Issued", claims.IssuedAt.Format(time.RFC3339),
			"Expires", claims.ExpiresAt.Format(time.RFC3339),
		)
	},
}

func requireSigningKey() string {
	key := appConfig.API.Security.SigningKey
	if key == "" {
		cli.LogFatal(logger, "missing signing key", fmt.Errorf("api.security.signing_key is not set"))
	}

	return key
}

// allowedRoles lists the built-in roles followed by configured custom roles.
func allowedRoles() []string {
	roles := authtoken.GenerateAllowedRoles(authtoken.RoleHierarchy)

	custom := make([]string, 0, len(appConfig.API.Security.Roles))
	for name := range appConfig.API.Security.Roles {
		if !slices.Contains(roles, name) {
			custom = append(custom, name)
		}
	}
	slices.Sort(custom)

	return append(roles, custom...)
}

func init() {
	rootCmd.AddCommand(tokenCmd)
	tokenCmd.AddCommand(tokenGenerateCmd)
	tokenCmd.AddCommand(tokenValidateCmd)

	tokenGenerateCmd.Flags().StringSliceVarP(&tokenRoles, "role", "r", []string{"read"}, "Roles granted by the token")
	tokenGenerateCmd.Flags().StringSliceVarP(
		&tokenPermissions,
		"permissions",
		"p",
		nil,
		fmt.Sprintf("Direct permissions, overriding role expansion (allowed: %s)",
			strings.Join(authtoken.AllPermissions, ", ")),
	)
	tokenGenerateCmd.Flags().StringVarP(&tokenSubject, "subject", "u", "", "Subject (user or client) the token is issued to")
	tokenGenerateCmd.Flags().DurationVar(&tokenTTL, "ttl", authtoken.DefaultTTL, "How long the token stays valid")
	_ = tokenGenerateCmd.MarkFlagRequired("subject")

	tokenValidateCmd.Flags().StringVarP(&tokenString, "token", "t", "", "Token to validate")
	_ = tokenValidateCmd.MarkFlagRequired("token")
}
