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

// Package events fans line events out to in-process subscribers.
package events

import (
	"log/slog"
	"sync"

	"github.com/retr0h/supadash/internal/exec"
)

// DefaultBufferSize is the per-subscriber channel capacity.
const DefaultBufferSize = 256

// Hub delivers line events to subscribers of the event's command id.
// Emit never blocks: a subscriber whose buffer is full misses the event.
type Hub struct {
	logger     *slog.Logger
	bufferSize int

	mu     sync.RWMutex
	nextID uint64
	subs   map[string]map[uint64]chan exec.LineEvent
}

// Subscription is a live registration on a Hub.
type Subscription struct {
	// C receives events for the subscribed command id. It is closed by Cancel.
	C <-chan exec.LineEvent

	cancel func()
}

// Cancel removes the subscription and closes C. It is safe to call more
// than once.
func (s *Subscription) Cancel() {
	s.cancel()
}

// New creates a Hub. A non-positive bufferSize uses DefaultBufferSize.
func New(
	logger *slog.Logger,
	bufferSize int,
) *Hub {
	if bufferSize <= 0 {
		bufferSize = DefaultBufferSize
	}

	return &Hub{
		logger:     logger,
		bufferSize: bufferSize,
		subs:       make(map[string]map[uint64]chan exec.LineEvent),
	}
}

// Subscribe registers for events of commandID.
func (h *Hub) Subscribe(
	commandID string,
) *Subscription {
	ch := make(chan exec.LineEvent, h.bufferSize)

	h.mu.Lock()
	id := h.nextID
	h.nextID++
	if h.subs[commandID] == nil {
		h.subs[commandID] = make(map[uint64]chan exec.LineEvent)
	}
	h.subs[commandID][id] = ch
	h.mu.Unlock()

	var once sync.Once

	return &Subscription{
		C: ch,
		cancel: func() {
			once.Do(func() {
				h.mu.Lock()
				defer h.mu.Unlock()

				delete(h.subs[commandID], id)
				if len(h.subs[commandID]) == 0 {
					delete(h.subs, commandID)
				}
				close(ch)
			})
		},
	}
}

// Emit implements exec.LineSink.
func (h *Hub) Emit(
	event exec.LineEvent,
) error {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, ch := range h.subs[event.CommandID] {
		select {
		case ch <- event:
		default:
			h.logger.Debug(
				"subscriber buffer full, dropping line event",
				slog.String("command_id", event.CommandID),
				slog.String("stream", event.Stream),
			)
		}
	}

	return nil
}

// Subscribers returns the number of subscribers for commandID.
func (h *Hub) Subscribers(
	commandID string,
) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.subs[commandID])
}
