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

package cli

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/shirou/gopsutil/v4/host"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type ValidateInternalTestSuite struct {
	suite.Suite
}

func TestValidateInternalTestSuite(t *testing.T) {
	suite.Run(t, new(ValidateInternalTestSuite))
}

func (suite *ValidateInternalTestSuite) TestValidateHost() {
	tests := []struct {
		name       string
		hostInfoFn func() (*host.InfoStat, error)
		lookPathFn func(string) (string, error)
		want       bool
		wantInLog  []string
	}{
		{
			name: "when binary resolves logs host and path",
			hostInfoFn: func() (*host.InfoStat, error) {
				return &host.InfoStat{
					Platform:        "ubuntu",
					PlatformVersion: "24.04",
					KernelArch:      "x86_64",
				}, nil
			},
			lookPathFn: func(string) (string, error) {
				return "/usr/local/bin/supabase", nil
			},
			want:      true,
			wantInLog: []string{"ubuntu", "24.04", "/usr/local/bin/supabase"},
		},
		{
			name: "when host info fails still resolves binary",
			hostInfoFn: func() (*host.InfoStat, error) {
				return nil, errors.New("host info failed")
			},
			lookPathFn: func(string) (string, error) {
				return "/usr/local/bin/supabase", nil
			},
			want:      true,
			wantInLog: []string{"host info failed"},
		},
		{
			name: "when binary is missing warns",
			hostInfoFn: func() (*host.InfoStat, error) {
				return &host.InfoStat{Platform: "darwin"}, nil
			},
			lookPathFn: func(string) (string, error) {
				return "", errors.New("executable file not found in $PATH")
			},
			want:      false,
			wantInLog: []string{"level=WARN", "supabase", "executable file not found"},
		},
	}

	for _, tc := range tests {
		suite.Run(tc.name, func() {
			originalHostInfo := hostInfoFn
			originalLookPath := lookPathFn
			defer func() {
				hostInfoFn = originalHostInfo
				lookPathFn = originalLookPath
			}()
			hostInfoFn = tc.hostInfoFn
			lookPathFn = tc.lookPathFn

			var buf bytes.Buffer
			logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{
				Level: slog.LevelDebug,
			}))

			got := ValidateHost(logger, "supabase")

			assert.Equal(suite.T(), tc.want, got)
			for _, want := range tc.wantInLog {
				assert.Contains(suite.T(), buf.String(), want)
			}
		})
	}
}
