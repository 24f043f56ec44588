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
	"errors"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/retr0h/supadash/internal/config"
)

// BucketName prefixes bucket with namespace when one is set.
func BucketName(
	namespace string,
	bucket string,
) string {
	if namespace == "" {
		return bucket
	}

	return namespace + "-" + bucket
}

// OpenBucket binds to the audit KV bucket, creating it when missing.
func OpenBucket(
	js nats.JetStreamContext,
	namespace string,
	cfg config.NATSAudit,
) (nats.KeyValue, error) {
	name := BucketName(namespace, cfg.Bucket)

	kv, err := js.KeyValue(name)
	if err == nil {
		return kv, nil
	}
	if !errors.Is(err, nats.ErrBucketNotFound) {
		return nil, fmt.Errorf("binding audit bucket %s: %w", name, err)
	}

	kvConfig, err := bucketConfig(name, cfg)
	if err != nil {
		return nil, err
	}

	kv, err = js.CreateKeyValue(kvConfig)
	if err != nil {
		return nil, fmt.Errorf("creating audit bucket %s: %w", name, err)
	}

	return kv, nil
}

func bucketConfig(
	name string,
	cfg config.NATSAudit,
) (*nats.KeyValueConfig, error) {
	kvConfig := &nats.KeyValueConfig{
		Bucket:      name,
		Description: "supadash run history",
		MaxBytes:    cfg.MaxBytes,
		Replicas:    cfg.Replicas,
		Storage:     nats.FileStorage,
	}

	if cfg.Storage == "memory" {
		kvConfig.Storage = nats.MemoryStorage
	}

	if cfg.TTL != "" {
		ttl, err := time.ParseDuration(cfg.TTL)
		if err != nil {
			return nil, fmt.Errorf("parsing audit ttl %q: %w", cfg.TTL, err)
		}
		kvConfig.TTL = ttl
	}

	if kvConfig.MaxBytes == 0 {
		kvConfig.MaxBytes = -1
	}

	return kvConfig, nil
}
