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

package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/lmittmann/tint"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/retr0h/supadash/internal/cli"
	"github.com/retr0h/supadash/internal/config"
	"github.com/retr0h/supadash/internal/telemetry"
)

// version is overridden at build time with -ldflags.
var version = "0.1.0"

var (
	appConfig  config.Config
	appFs      = afero.NewOsFs()
	logger     = slog.New(slog.NewTextHandler(os.Stderr, nil))
	jsonOutput bool
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "supadash",
	Short: "Run the Supabase CLI and stream its output.",
	Long: `Run the Supabase CLI as a child process, stream every line of its
output as it is produced, and report the final result.

Lines can be followed in a terminal, over Server-Sent Events from the
HTTP API, or over NATS.
`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle interrupt signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig, initLogger)

	rootCmd.PersistentFlags().BoolP("debug", "d", false, "Enable or disable debug mode")
	rootCmd.PersistentFlags().BoolVarP(&jsonOutput, "json", "j", false, "Enable JSON output")

	rootCmd.PersistentFlags().
		StringP("supadash-file", "f", "/etc/supadash/supadash.yaml", "Path to config file")

	_ = viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	_ = viper.BindPFlag("supadashFile", rootCmd.PersistentFlags().Lookup("supadash-file"))
}

// setDefaults registers every config key so environment overrides apply
// even when no config file is present.
func setDefaults(
	v *viper.Viper,
) {
	v.SetDefault("supabase.binary", "supabase")
	v.SetDefault("supabase.access_token", "")
	v.SetDefault("api.port", 8080)
	v.SetDefault("api.cors.allow_origins", []string{})
	v.SetDefault("api.security.signing_key", "")
	v.SetDefault("nats.enabled", false)
	v.SetDefault("nats.url", "nats://127.0.0.1:4222")
	v.SetDefault("nats.namespace", "")
	v.SetDefault("nats.client_name", "supadash")
	v.SetDefault("nats.server.enabled", false)
	v.SetDefault("nats.server.host", "127.0.0.1")
	v.SetDefault("nats.server.port", 4222)
	v.SetDefault("nats.server.jetstream", false)
	v.SetDefault("nats.server.store_dir", "")
	v.SetDefault("nats.audit.bucket", "")
	v.SetDefault("nats.audit.ttl", "")
	v.SetDefault("nats.audit.max_bytes", 0)
	v.SetDefault("nats.audit.storage", "file")
	v.SetDefault("nats.audit.replicas", 1)
	v.SetDefault("telemetry.tracing.enabled", false)
	v.SetDefault("telemetry.tracing.exporter", "")
	v.SetDefault("telemetry.tracing.otlp_endpoint", "")
	v.SetDefault("telemetry.metrics.path", telemetry.DefaultMetricsPath)
}

// loadConfig reads path from fs into a validated Config. A missing file
// leaves the defaults and environment in effect.
func loadConfig(
	v *viper.Viper,
	fs afero.Fs,
	path string,
) (config.Config, error) {
	var cfg config.Config

	v.SetFs(fs)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.SetConfigType("yaml")
	v.AutomaticEnv()
	v.SetEnvPrefix("supadash")
	setDefaults(v)

	exists, err := afero.Exists(fs, path)
	if err != nil {
		return cfg, fmt.Errorf("checking config file: %w", err)
	}

	if exists {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return cfg, fmt.Errorf("reading config: %w", err)
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("unmarshaling config: %w", err)
	}

	// Auto-enable tracing in debug mode so trace_id appears in log lines.
	// No exporter is set, just log correlation.
	if cfg.Debug && !cfg.Telemetry.Tracing.Enabled {
		cfg.Telemetry.Tracing.Enabled = true
	}

	if err := config.Validate(&cfg); err != nil {
		return cfg, fmt.Errorf("validation failed: %w", err)
	}

	return cfg, nil
}

func initConfig() {
	path := viper.GetString("supadashFile")

	cfg, err := loadConfig(viper.GetViper(), appFs, path)
	if err != nil {
		cli.LogFatal(logger, "failed to load config", err, "supadashFile", path)
	}

	appConfig = cfg
}

func initLogger() {
	logLevel := slog.LevelInfo
	if viper.GetBool("debug") {
		logLevel = slog.LevelDebug
	}

	var handler slog.Handler
	if jsonOutput {
		handler = slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel})
	} else {
		handler = tint.NewHandler(os.Stderr, &tint.Options{
			Level:      logLevel,
			TimeFormat: time.Kitchen,
			NoColor:    !term.IsTerminal(int(os.Stdout.Fd())),
		})
	}

	handler = telemetry.NewTraceHandler(handler)
	logger = slog.New(handler)
}
