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
	"errors"
)

// LineSink receives line events while a command runs. Implementations are
// called concurrently from both output streams and must be safe for that.
// A returned error is logged and otherwise ignored.
type LineSink interface {
	Emit(event LineEvent) error
}

// SinkFunc adapts a function to the LineSink interface.
type SinkFunc func(event LineEvent) error

// Emit calls f(event).
func (f SinkFunc) Emit(
	event LineEvent,
) error {
	return f(event)
}

// NopSink discards every event.
type NopSink struct{}

// Emit does nothing.
func (NopSink) Emit(LineEvent) error { return nil }

// MultiSink delivers each event to every sink, in order. Delivery continues
// past failing sinks and their errors are joined.
type MultiSink []LineSink

// Emit fans the event out to all sinks.
func (m MultiSink) Emit(
	event LineEvent,
) error {
	var errs []error
	for _, s := range m {
		if s == nil {
			continue
		}
		if err := s.Emit(event); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}
