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
	"encoding/json"
	"fmt"
	"log/slog"
	"testing"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/stretchr/testify/suite"

	"github.com/retr0h/supadash/internal/config"
)

type KVStoreInternalTestSuite struct {
	suite.Suite
}

func (s *KVStoreInternalTestSuite) TearDownTest() {
	marshalJSON = json.Marshal
}

func (s *KVStoreInternalTestSuite) TestWriteMarshalError() {
	marshalJSON = func(_ interface{}) ([]byte, error) {
		return nil, fmt.Errorf("marshal failure")
	}

	store := NewKVStore(slog.New(slog.DiscardHandler), nil)
	err := store.Write(context.Background(), Entry{ID: "test-id"})

	s.Error(err)
	s.Contains(err.Error(), "marshal audit entry")
}

func (s *KVStoreInternalTestSuite) TestBucketConfig() {
	tests := []struct {
		name     string
		cfg      config.NATSAudit
		validate func(*nats.KeyValueConfig)
	}{
		{
			name: "defaults to unlimited file storage",
			cfg:  config.NATSAudit{},
			validate: func(c *nats.KeyValueConfig) {
				s.Equal(nats.FileStorage, c.Storage)
				s.Equal(int64(-1), c.MaxBytes)
				s.Zero(c.TTL)
			},
		},
		{
			name: "memory storage with ttl",
			cfg: config.NATSAudit{
				Storage:  "memory",
				TTL:      "720h",
				MaxBytes: 1024,
				Replicas: 3,
			},
			validate: func(c *nats.KeyValueConfig) {
				s.Equal(nats.MemoryStorage, c.Storage)
				s.Equal(720*time.Hour, c.TTL)
				s.Equal(int64(1024), c.MaxBytes)
				s.Equal(3, c.Replicas)
			},
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			c, err := bucketConfig("runs", tt.cfg)

			s.Require().NoError(err)
			s.Equal("runs", c.Bucket)
			tt.validate(c)
		})
	}
}

func TestKVStoreInternalTestSuite(t *testing.T) {
	suite.Run(t, new(KVStoreInternalTestSuite))
}
