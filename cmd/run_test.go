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
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/retr0h/supadash/internal/config"
	"github.com/retr0h/supadash/internal/exec"
	"github.com/retr0h/supadash/internal/provider/command"
)

type RunTestSuite struct {
	suite.Suite

	savedConfig config.Config
	savedJSON   bool
}

func TestRunTestSuite(t *testing.T) {
	suite.Run(t, new(RunTestSuite))
}

func (suite *RunTestSuite) SetupTest() {
	suite.savedConfig = appConfig
	suite.savedJSON = jsonOutput
}

func (suite *RunTestSuite) TearDownTest() {
	appConfig = suite.savedConfig
	jsonOutput = suite.savedJSON
}

func (suite *RunTestSuite) TestBuildRunParams() {
	tests := []struct {
		name     string
		opts     runFlags
		args     []string
		wantErr  bool
		validate func(p command.RunParams)
	}{
		{
			name: "when args are given they take precedence",
			opts: runFlags{commandID: "run-1", line: "ignored", cwd: "/tmp"},
			args: []string{"projects", "list"},
			validate: func(p command.RunParams) {
				suite.Equal("run-1", p.CommandID)
				suite.Equal([]string{"projects", "list"}, p.Args)
				suite.Equal("/tmp", p.WorkingDir)
			},
		},
		{
			name: "when no args uses line",
			opts: runFlags{line: "db push", apiURL: "http://localhost:54321", projectRef: "abc"},
			validate: func(p command.RunParams) {
				suite.Nil(p.Args)
				suite.Equal("db push", p.CommandLine)
				suite.Equal("http://localhost:54321", p.APIURL)
				suite.Equal("abc", p.ProjectRef)
				suite.NotEmpty(p.CommandID)
			},
		},
		{
			name:    "when command id is invalid returns error",
			opts:    runFlags{commandID: "bad id"},
			wantErr: true,
		},
	}

	for _, tc := range tests {
		suite.Run(tc.name, func() {
			p, err := buildRunParams(tc.opts, tc.args)

			if tc.wantErr {
				suite.Error(err)
				return
			}
			suite.Require().NoError(err)
			tc.validate(p)
		})
	}
}

func (suite *RunTestSuite) TestExitStatus() {
	suite.Equal(0, exitStatus(0))
	suite.Equal(7, exitStatus(7))
	suite.Equal(1, exitStatus(exec.SignalExitCode))
}

func (suite *RunTestSuite) TestRunCommand() {
	tests := []struct {
		name     string
		binary   string
		json     bool
		params   command.RunParams
		wantCode int
		validate func(out string)
	}{
		{
			name:     "when child succeeds prints lines and summary",
			binary:   "sh",
			params:   command.RunParams{CommandID: "r1", Args: []string{"-c", "echo hello; echo oops >&2"}},
			wantCode: 0,
			validate: func(out string) {
				suite.Contains(out, "hello\n")
				suite.Contains(out, "oops\n")
				suite.Contains(out, "r1")
			},
		},
		{
			name:     "when child exits non-zero returns its code",
			binary:   "sh",
			params:   command.RunParams{CommandID: "r2", Args: []string{"-c", "exit 7"}},
			wantCode: 7,
		},
		{
			name:     "when json output prints result only",
			binary:   "sh",
			json:     true,
			params:   command.RunParams{CommandID: "r3", Args: []string{"-c", "echo hi"}},
			wantCode: 0,
			validate: func(out string) {
				var got map[string]any
				suite.Require().NoError(json.Unmarshal([]byte(out), &got))
				suite.Equal("r3", got["command_id"])
				suite.Equal("hi\n", got["stdout"])
			},
		},
		{
			name:     "when arguments are empty returns 2",
			binary:   "sh",
			params:   command.RunParams{CommandID: "r4", CommandLine: "  "},
			wantCode: 2,
		},
		{
			name:     "when binary is missing returns 1",
			binary:   "supadash-test-missing-binary",
			params:   command.RunParams{CommandID: "r5", Args: []string{"status"}},
			wantCode: 1,
		},
	}

	for _, tc := range tests {
		suite.Run(tc.name, func() {
			appConfig = config.Config{Supabase: config.Supabase{Binary: tc.binary}}
			jsonOutput = tc.json

			var out bytes.Buffer
			code := runCommand(context.Background(), tc.params, &out)

			suite.Equal(tc.wantCode, code)
			if tc.validate != nil {
				tc.validate(out.String())
			}
		})
	}
}
