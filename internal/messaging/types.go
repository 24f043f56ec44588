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

// Package messaging publishes and consumes line events over NATS.
package messaging

import (
	"github.com/nats-io/nats.go"
)

// LineEventSubject is the fixed subject line events are published on.
const LineEventSubject = "supadash.command.output"

// Header keys set on every published line event.
const (
	HeaderCommandID = "Command-Id"
	HeaderStream    = "Stream"
)

// Conn is the subset of *nats.Conn used by this package.
type Conn interface {
	PublishMsg(msg *nats.Msg) error
	Subscribe(subject string, cb nats.MsgHandler) (*nats.Subscription, error)
	Flush() error
}

// Ensure *nats.Conn implements Conn.
var _ Conn = (*nats.Conn)(nil)

// Subject returns the line event subject, prefixed with namespace when set.
func Subject(
	namespace string,
) string {
	if namespace == "" {
		return LineEventSubject
	}

	return namespace + "." + LineEventSubject
}
