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
	"context"
	"log/slog"

	"github.com/retr0h/supadash/internal/api/audit/gen"
	"github.com/retr0h/supadash/internal/validation"
)

// GetAuditLogs returns a page of recorded runs, newest first.
func (a *Audit) GetAuditLogs(
	ctx context.Context,
	request gen.GetAuditLogsRequestObject,
) (gen.GetAuditLogsResponseObject, error) {
	if errMsg, ok := validation.Struct(request.Params); !ok {
		return gen.GetAuditLogs400JSONResponse{Error: &errMsg}, nil
	}

	limit := DefaultLimit
	if request.Params.Limit != nil && *request.Params.Limit > 0 {
		limit = *request.Params.Limit
	}

	offset := 0
	if request.Params.Offset != nil {
		offset = *request.Params.Offset
	}

	entries, total, err := a.store.List(ctx, limit, offset)
	if err != nil {
		errMsg := err.Error()
		a.logger.ErrorContext(ctx, "listing audit entries", slog.String("error", errMsg))
		return gen.GetAuditLogs500JSONResponse{Error: &errMsg}, nil
	}

	items := make([]gen.AuditEntry, 0, len(entries))
	for _, e := range entries {
		item, err := mapEntryToGen(e)
		if err != nil {
			a.logger.WarnContext(
				ctx,
				"skipping audit entry",
				slog.String("id", e.ID),
				slog.String("error", err.Error()),
			)
			continue
		}
		items = append(items, item)
	}

	return gen.GetAuditLogs200JSONResponse{
		TotalItems: total,
		Items:      items,
	}, nil
}
