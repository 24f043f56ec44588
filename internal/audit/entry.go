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

package audit

import (
	"time"

	"github.com/google/uuid"

	"github.com/retr0h/supadash/internal/provider/command"
)

// newID returns a UUIDv7, whose string form sorts by creation time.
var newID = func() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}

	return id.String()
}

// NewEntry builds the history record of one Run call.
func NewEntry(
	source string,
	binary string,
	params command.RunParams,
	result *command.Result,
	runErr error,
) Entry {
	entry := Entry{
		ID:          newID(),
		Timestamp:   time.Now().UTC(),
		CommandID:   params.CommandID,
		Source:      source,
		Binary:      binary,
		CommandLine: params.CommandLine,
		Args:        params.Args,
		WorkingDir:  params.WorkingDir,
		ProjectRef:  params.ProjectRef,
		Outcome:     command.Outcome(result, runErr),
	}

	if result != nil {
		entry.ExitCode = result.ExitCode
		entry.DurationMs = result.DurationMs
	}

	if runErr != nil {
		entry.Error = runErr.Error()
	}

	return entry
}
