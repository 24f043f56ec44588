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

package health

import (
	"context"
	"log/slog"
	"time"

	"github.com/retr0h/supadash/internal/api/health/gen"
)

// GetHealth returns liveness with version and uptime. A failing dependency
// check reports "degraded" with 503.
func (h *Health) GetHealth(
	ctx context.Context,
	_ gen.GetHealthRequestObject,
) (gen.GetHealthResponseObject, error) {
	uptime := time.Since(h.StartTime).Round(time.Second).String()

	if h.Checker != nil {
		if err := h.Checker.CheckHealth(ctx); err != nil {
			h.logger.Warn("health check failed", slog.String("error", err.Error()))

			return gen.GetHealth503JSONResponse{
				Status:  "degraded",
				Version: h.Version,
				Uptime:  uptime,
				Error:   err.Error(),
			}, nil
		}
	}

	return gen.GetHealth200JSONResponse{
		Status:  "ok",
		Version: h.Version,
		Uptime:  uptime,
	}, nil
}
