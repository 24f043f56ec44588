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
	"fmt"

	"github.com/google/uuid"

	"github.com/retr0h/supadash/internal/api/audit/gen"
	"github.com/retr0h/supadash/internal/audit"
)

// mapEntryToGen converts a stored entry into its API form. Empty optional
// fields are omitted.
func mapEntryToGen(
	e audit.Entry,
) (gen.AuditEntry, error) {
	id, err := uuid.Parse(e.ID)
	if err != nil {
		return gen.AuditEntry{}, fmt.Errorf("invalid audit entry id %q: %w", e.ID, err)
	}

	return gen.AuditEntry{
		Id:          id,
		Timestamp:   e.Timestamp,
		CommandId:   e.CommandID,
		Source:      e.Source,
		User:        optString(e.User),
		Roles:       optSlice(e.Roles),
		SourceIp:    optString(e.SourceIP),
		Binary:      e.Binary,
		CommandLine: optString(e.CommandLine),
		Args:        optSlice(e.Args),
		WorkingDir:  optString(e.WorkingDir),
		ProjectRef:  optString(e.ProjectRef),
		Outcome:     e.Outcome,
		ExitCode:    e.ExitCode,
		DurationMs:  e.DurationMs,
		Error:       optString(e.Error),
	}, nil
}

func optString(
	s string,
) *string {
	if s == "" {
		return nil
	}

	return &s
}

func optSlice(
	s []string,
) *[]string {
	if len(s) == 0 {
		return nil
	}

	return &s
}
