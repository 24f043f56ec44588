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

package config

// Config represents the root structure of the YAML configuration file.
// This struct is used to unmarshal configuration data from Viper.
type Config struct {
	Supabase  Supabase  `mapstructure:"supabase"`
	API       API       `mapstructure:"api"`
	NATS      NATS      `mapstructure:"nats"`
	Telemetry Telemetry `mapstructure:"telemetry"`
	// Debug enable or disable debug option set from CLI.
	Debug bool `mapstructure:"debug"`
}

// Supabase configuration for the wrapped CLI.
type Supabase struct {
	// Binary is the executable name or path. Defaults to "supabase".
	Binary string `mapstructure:"binary"`
	// AccessToken is exported as SUPABASE_ACCESS_TOKEN when set.
	AccessToken string `mapstructure:"access_token"`
}

// API configuration settings.
type API struct {
	// Port the server will bind to.
	Port int `mapstructure:"port" validate:"gte=0,lte=65535"`
	// CORS Cross-Origin Resource Sharing (CORS) settings for the server.
	CORS CORS `mapstructure:"cors"`
	// Security bearer token settings. Auth is off when SigningKey is empty.
	Security Security `mapstructure:"security,omitempty"`
}

// Security holds the bearer token settings for the API.
type Security struct {
	// SigningKey is the HMAC key used to sign and verify tokens.
	SigningKey string `mapstructure:"signing_key"`
	// Roles overrides or extends the built-in role to permission mapping.
	Roles map[string]CustomRole `mapstructure:"roles,omitempty"`
}

// CustomRole lists the permissions granted by a role.
type CustomRole struct {
	Permissions []string `mapstructure:"permissions"`
}

// CORS represents the CORS (Cross-Origin Resource Sharing) settings.
type CORS struct {
	// List of origins allowed to access the server (e.g., "foo").
	AllowOrigins []string `mapstructure:"allow_origins,omitempty"`
}

// NATS configuration settings.
type NATS struct {
	// Enabled publishes line events to NATS.
	Enabled bool `mapstructure:"enabled"`
	// URL of the NATS server clients connect to.
	URL string `mapstructure:"url" validate:"required_if=Enabled true"`
	// Namespace is a prefix for the line event subject.
	Namespace string `mapstructure:"namespace"`
	// ClientName the NATS client name for identification.
	ClientName string `mapstructure:"client_name"`
	// Server holds the embedded NATS server settings.
	Server NATSServer `mapstructure:"server,omitempty"`
	// Audit KV bucket holding the run history. Disabled when Bucket is empty.
	Audit NATSAudit `mapstructure:"audit,omitempty"`
}

// NATSAudit configuration for the run history KV bucket.
type NATSAudit struct {
	// Bucket name of the KV bucket.
	Bucket string `mapstructure:"bucket"`
	// TTL of each entry (e.g. "720h"). Zero keeps entries forever.
	TTL string `mapstructure:"ttl"`
	// MaxBytes caps the bucket size.
	MaxBytes int64 `mapstructure:"max_bytes" validate:"gte=0"`
	// Storage backend: "file" or "memory".
	Storage string `mapstructure:"storage" validate:"omitempty,oneof=file memory"`
	// Replicas number of stream replicas.
	Replicas int `mapstructure:"replicas" validate:"gte=0"`
}

// NATSServer configuration settings for the embedded NATS server.
type NATSServer struct {
	// Enabled starts an embedded server alongside the API.
	Enabled bool `mapstructure:"enabled"`
	// Host the server will bind to.
	Host string `mapstructure:"host"`
	// Port the server will bind to.
	Port int `mapstructure:"port" validate:"gte=0,lte=65535"`
	// JetStream enables JetStream, required by the audit bucket.
	JetStream bool `mapstructure:"jetstream"`
	// StoreDir is where JetStream keeps file storage.
	StoreDir string `mapstructure:"store_dir"`
}

// Telemetry configuration settings.
type Telemetry struct {
	Tracing TracingConfig `mapstructure:"tracing,omitempty"`
	Metrics MetricsConfig `mapstructure:"metrics,omitempty"`
}

// MetricsConfig configuration settings for Prometheus metrics.
type MetricsConfig struct {
	// Path is the HTTP path for the Prometheus scrape endpoint.
	// Defaults to "/metrics" when empty.
	Path string `mapstructure:"path"`
}

// TracingConfig configuration settings for distributed tracing.
type TracingConfig struct {
	// Enabled enables or disables tracing.
	Enabled bool `mapstructure:"enabled"`
	// Exporter selects the trace exporter: "stdout" or "otlp".
	Exporter string `mapstructure:"exporter" validate:"omitempty,oneof=none stdout otlp"`
	// OTLPEndpoint is the gRPC endpoint for the OTLP exporter (e.g., "localhost:4317").
	OTLPEndpoint string `mapstructure:"otlp_endpoint"`
}
