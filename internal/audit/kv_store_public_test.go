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

package audit_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/nats-io/nats.go"
	"github.com/stretchr/testify/suite"

	"github.com/retr0h/supadash/internal/audit"
	"github.com/retr0h/supadash/internal/config"
	"github.com/retr0h/supadash/internal/messaging"
)

type KVStorePublicTestSuite struct {
	suite.Suite

	ctx    context.Context
	logger *slog.Logger
	server *messaging.EmbeddedServer
	nc     *nats.Conn
	js     nats.JetStreamContext
}

func (s *KVStorePublicTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.logger = slog.New(slog.DiscardHandler)

	srv, err := messaging.NewEmbeddedServer(config.NATSServer{
		JetStream: true,
		StoreDir:  s.T().TempDir(),
	}, s.logger)
	s.Require().NoError(err)
	srv.Start()
	s.server = srv

	nc, err := nats.Connect(srv.ClientURL())
	s.Require().NoError(err)
	s.nc = nc

	js, err := nc.JetStream()
	s.Require().NoError(err)
	s.js = js
}

func (s *KVStorePublicTestSuite) TearDownTest() {
	s.nc.Close()
	s.server.Stop(s.ctx)
}

func (s *KVStorePublicTestSuite) newStore() *audit.KVStore {
	kv, err := audit.OpenBucket(s.js, "", config.NATSAudit{
		Bucket:  "runs",
		Storage: "memory",
	})
	s.Require().NoError(err)

	return audit.NewKVStore(s.logger, kv)
}

func (s *KVStorePublicTestSuite) TestWriteAndGet() {
	store := s.newStore()

	entry := audit.Entry{
		ID:        "0001",
		CommandID: "run-1",
		Source:    audit.SourceAPI,
		Binary:    "supabase",
		Args:      []string{"status"},
		Outcome:   "succeeded",
	}
	s.Require().NoError(store.Write(s.ctx, entry))

	tests := []struct {
		name        string
		id          string
		expectError error
	}{
		{
			name: "existing entry",
			id:   "0001",
		},
		{
			name:        "missing entry",
			id:          "9999",
			expectError: audit.ErrNotFound,
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			got, err := store.Get(s.ctx, tt.id)

			if tt.expectError != nil {
				s.ErrorIs(err, tt.expectError)
				s.Nil(got)
				return
			}

			s.Require().NoError(err)
			s.Equal(entry.CommandID, got.CommandID)
			s.Equal(entry.Args, got.Args)
			s.Equal(entry.Outcome, got.Outcome)
		})
	}
}

func (s *KVStorePublicTestSuite) TestList() {
	store := s.newStore()

	for _, id := range []string{"0001", "0002", "0003"} {
		s.Require().NoError(store.Write(s.ctx, audit.Entry{ID: id, CommandID: "c-" + id}))
	}

	tests := []struct {
		name      string
		limit     int
		offset    int
		wantIDs   []string
		wantTotal int
	}{
		{
			name:      "newest first",
			limit:     10,
			wantIDs:   []string{"0003", "0002", "0001"},
			wantTotal: 3,
		},
		{
			name:      "paged",
			limit:     1,
			offset:    1,
			wantIDs:   []string{"0002"},
			wantTotal: 3,
		},
		{
			name:      "offset past end",
			limit:     10,
			offset:    5,
			wantIDs:   []string{},
			wantTotal: 3,
		},
		{
			name:      "zero limit",
			limit:     0,
			wantIDs:   []string{},
			wantTotal: 3,
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			entries, total, err := store.List(s.ctx, tt.limit, tt.offset)

			s.Require().NoError(err)
			s.Equal(tt.wantTotal, total)

			ids := make([]string, 0, len(entries))
			for _, e := range entries {
				ids = append(ids, e.ID)
			}
			s.Equal(tt.wantIDs, ids)
		})
	}
}

func (s *KVStorePublicTestSuite) TestListEmptyBucket() {
	store := s.newStore()

	entries, total, err := store.List(s.ctx, 10, 0)

	s.NoError(err)
	s.Empty(entries)
	s.Zero(total)
}

func (s *KVStorePublicTestSuite) TestOpenBucket() {
	tests := []struct {
		name        string
		namespace   string
		cfg         config.NATSAudit
		wantBucket  string
		expectError bool
	}{
		{
			name:       "creates bucket",
			cfg:        config.NATSAudit{Bucket: "history", Storage: "memory", TTL: "1h"},
			wantBucket: "history",
		},
		{
			name:       "binds existing bucket",
			cfg:        config.NATSAudit{Bucket: "history", Storage: "memory"},
			wantBucket: "history",
		},
		{
			name:       "namespaced bucket",
			namespace:  "staging",
			cfg:        config.NATSAudit{Bucket: "history", Storage: "memory"},
			wantBucket: "staging-history",
		},
		{
			name:        "invalid ttl",
			cfg:         config.NATSAudit{Bucket: "other", TTL: "forever"},
			expectError: true,
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			kv, err := audit.OpenBucket(s.js, tt.namespace, tt.cfg)

			if tt.expectError {
				s.Error(err)
				return
			}

			s.Require().NoError(err)
			s.Equal(tt.wantBucket, kv.Bucket())
		})
	}
}

func TestKVStorePublicTestSuite(t *testing.T) {
	suite.Run(t, new(KVStorePublicTestSuite))
}
