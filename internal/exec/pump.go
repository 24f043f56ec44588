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

package exec

import (
	"bufio"
	"errors"
	"io"
	"log/slog"
	"strings"
)

// pump drains r line by line into acc, emitting one LineEvent per line.
// It returns on end-of-stream or on the first read error; output read so far
// stays in acc either way. r is closed on return so a child still writing to
// an abandoned pipe gets EPIPE instead of blocking on a full buffer.
func (e *Exec) pump(
	r io.ReadCloser,
	acc *accumulator,
	commandID string,
	stream string,
	sink LineSink,
) {
	defer func() { _ = r.Close() }()
	defer func() {
		if rec := recover(); rec != nil {
			e.logger.Warn(
				"output pump stopped unexpectedly",
				slog.String("command_id", commandID),
				slog.String("stream", stream),
				slog.Any("panic", rec),
			)
		}
	}()

	reader := bufio.NewReader(r)
	for {
		line, err := reader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			// A failed read drops whatever partial line was buffered.
			e.logger.Warn(
				"stopped reading command output",
				slog.String("command_id", commandID),
				slog.String("stream", stream),
				slog.String("error", err.Error()),
			)
			return
		}

		if line != "" {
			// Events travel as JSON, so both copies carry the same
			// replacement runes for invalid bytes.
			line = strings.ToValidUTF8(line, "\uFFFD")
			acc.append(line)

			event := LineEvent{
				CommandID: commandID,
				Stream:    stream,
				Chunk:     line,
			}
			if sinkErr := sink.Emit(event); sinkErr != nil {
				e.logger.Debug(
					"line event not delivered",
					slog.String("command_id", commandID),
					slog.String("stream", stream),
					slog.String("error", sinkErr.Error()),
				)
			}
		}

		if err != nil {
			return
		}
	}
}
