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

package messaging_test

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/stretchr/testify/suite"

	"github.com/retr0h/supadash/internal/config"
	"github.com/retr0h/supadash/internal/exec"
	"github.com/retr0h/supadash/internal/messaging"
)

type PublisherPublicTestSuite struct {
	suite.Suite

	ctx    context.Context
	logger *slog.Logger
	server *messaging.EmbeddedServer
	nc     *nats.Conn
}

func (suite *PublisherPublicTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.logger = slog.New(slog.DiscardHandler)

	srv, err := messaging.NewEmbeddedServer(config.NATSServer{}, suite.logger)
	suite.Require().NoError(err)
	srv.Start()
	suite.server = srv

	nc, err := messaging.Connect(config.NATS{URL: srv.ClientURL()}, suite.logger)
	suite.Require().NoError(err)
	suite.nc = nc
}

func (suite *PublisherPublicTestSuite) TearDownTest() {
	suite.nc.Close()

	ctx, cancel := context.WithTimeout(suite.ctx, 5*time.Second)
	defer cancel()
	suite.server.Stop(ctx)
}

type collector struct {
	mu     sync.Mutex
	events []exec.LineEvent
	ch     chan struct{}
}

func newCollector() *collector {
	return &collector{ch: make(chan struct{}, 64)}
}

func (c *collector) handle(
	_ context.Context,
	event exec.LineEvent,
) {
	c.mu.Lock()
	c.events = append(c.events, event)
	c.mu.Unlock()
	c.ch <- struct{}{}
}

func (c *collector) wait(n int) bool {
	for range n {
		select {
		case <-c.ch:
		case <-time.After(5 * time.Second):
			return false
		}
	}

	return true
}

func (c *collector) snapshot() []exec.LineEvent {
	c.mu.Lock()
	defer c.mu.Unlock()

	return append([]exec.LineEvent(nil), c.events...)
}

func (suite *PublisherPublicTestSuite) subscribe(
	namespace string,
	commandID string,
	c *collector,
) context.CancelFunc {
	ctx, cancel := context.WithCancel(suite.ctx)
	done := make(chan struct{})

	go func() {
		defer close(done)
		err := messaging.Subscribe(ctx, suite.logger, suite.nc, namespace, commandID, c.handle)
		suite.NoError(err)
	}()

	// Subscription registration is asynchronous; a flush round-trip orders it
	// ahead of the publishes that follow.
	time.Sleep(50 * time.Millisecond)
	suite.Require().NoError(suite.nc.Flush())

	return func() {
		cancel()
		<-done
	}
}

func (suite *PublisherPublicTestSuite) TestEmit() {
	tests := []struct {
		name      string
		namespace string
		filter    string
		events    []exec.LineEvent
		want      []exec.LineEvent
	}{
		{
			name: "delivers events in order",
			events: []exec.LineEvent{
				{CommandID: "c1", Stream: exec.StreamStdout, Chunk: "a\n"},
				{CommandID: "c1", Stream: exec.StreamStdout, Chunk: "b\n"},
			},
			want: []exec.LineEvent{
				{CommandID: "c1", Stream: exec.StreamStdout, Chunk: "a\n"},
				{CommandID: "c1", Stream: exec.StreamStdout, Chunk: "b\n"},
			},
		},
		{
			name:      "namespaced subject",
			namespace: "dev",
			events: []exec.LineEvent{
				{CommandID: "c1", Stream: exec.StreamStderr, Chunk: "oops\n"},
			},
			want: []exec.LineEvent{
				{CommandID: "c1", Stream: exec.StreamStderr, Chunk: "oops\n"},
			},
		},
		{
			name:   "filters by command id",
			filter: "c2",
			events: []exec.LineEvent{
				{CommandID: "c1", Stream: exec.StreamStdout, Chunk: "skip\n"},
				{CommandID: "c2", Stream: exec.StreamStdout, Chunk: "keep\n"},
			},
			want: []exec.LineEvent{
				{CommandID: "c2", Stream: exec.StreamStdout, Chunk: "keep\n"},
			},
		},
	}

	for _, tc := range tests {
		suite.Run(tc.name, func() {
			c := newCollector()
			stop := suite.subscribe(tc.namespace, tc.filter, c)
			defer stop()

			pub := messaging.NewPublisher(suite.logger, suite.nc, tc.namespace)
			for _, e := range tc.events {
				suite.Require().NoError(pub.Emit(e))
			}
			suite.Require().NoError(pub.Flush())

			suite.True(c.wait(len(tc.want)))
			suite.Equal(tc.want, c.snapshot())
		})
	}
}

func (suite *PublisherPublicTestSuite) TestSinkSetsHeaders() {
	sub, err := suite.nc.SubscribeSync(messaging.LineEventSubject)
	suite.Require().NoError(err)
	defer func() { _ = sub.Unsubscribe() }()
	suite.Require().NoError(suite.nc.Flush())

	pub := messaging.NewPublisher(suite.logger, suite.nc, "")
	sink := pub.Sink(suite.ctx)
	suite.Require().NoError(sink.Emit(exec.LineEvent{
		CommandID: "abc",
		Stream:    exec.StreamStderr,
		Chunk:     "x\n",
	}))

	msg, err := sub.NextMsg(5 * time.Second)
	suite.Require().NoError(err)
	suite.Equal("abc", msg.Header.Get(messaging.HeaderCommandID))
	suite.Equal(exec.StreamStderr, msg.Header.Get(messaging.HeaderStream))

	var got map[string]string
	suite.Require().NoError(json.Unmarshal(msg.Data, &got))
	suite.Equal(map[string]string{
		"command_id": "abc",
		"stream":     "stderr",
		"chunk":      "x\n",
	}, got)
}

func (suite *PublisherPublicTestSuite) TestSubscribeSkipsMalformed() {
	c := newCollector()
	stop := suite.subscribe("", "", c)
	defer stop()

	suite.Require().NoError(suite.nc.Publish(messaging.LineEventSubject, []byte("{not json")))

	pub := messaging.NewPublisher(suite.logger, suite.nc, "")
	suite.Require().NoError(pub.Emit(exec.LineEvent{CommandID: "c", Stream: "stdout", Chunk: "ok\n"}))
	suite.Require().NoError(pub.Flush())

	suite.True(c.wait(1))
	suite.Equal([]exec.LineEvent{{CommandID: "c", Stream: "stdout", Chunk: "ok\n"}}, c.snapshot())
}

func (suite *PublisherPublicTestSuite) TestEmitClosedConnection() {
	nc, err := messaging.Connect(config.NATS{URL: suite.server.ClientURL()}, suite.logger)
	suite.Require().NoError(err)
	nc.Close()

	pub := messaging.NewPublisher(suite.logger, nc, "")
	err = pub.Emit(exec.LineEvent{CommandID: "c", Stream: "stdout", Chunk: "x\n"})

	suite.Error(err)
	suite.True(errors.Is(err, nats.ErrConnectionClosed))
}

func TestPublisherPublicTestSuite(t *testing.T) {
	suite.Run(t, new(PublisherPublicTestSuite))
}
