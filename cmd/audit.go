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
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/retr0h/supadash/internal/audit"
	"github.com/retr0h/supadash/internal/audit/export"
	"github.com/retr0h/supadash/internal/cli"
)

var (
	auditLimit     int
	auditOffset    int
	auditOutput    string
	auditBatchSize int
)

// auditCmd represents the audit command.
var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Inspect the run history",
	Long: `Read the run history kept in the nats.audit.bucket KV bucket.
`,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		if !auditEnabled() {
			cli.LogFatal(logger, "audit is disabled", fmt.Errorf("nats.audit.bucket is not set"))
		}
	},
}

// auditListCmd represents the audit list command.
var auditListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recorded runs, newest first",
	Run: func(cmd *cobra.Command, _ []string) {
		ctx := cmd.Context()
		nc := connectNATS(logger)
		defer cli.CloseNATSConn(logger, nc)

		entries, total, err := openAuditStore(logger, nc).List(ctx, auditLimit, auditOffset)
		if err != nil {
			cli.LogFatal(logger, "failed to list runs", err)
		}

		out := cmd.OutOrStdout()
		if jsonOutput {
			data, _ := json.Marshal(map[string]any{"total_items": total, "items": entries})
			_, _ = fmt.Fprintln(out, string(data))
			return
		}

		printAuditEntries(cmd, entries, total)
	},
}

// auditExportCmd represents the audit export command.
var auditExportCmd = &cobra.Command{
	Use:     "export",
	Short:   "Export the run history as JSON lines",
	Example: `  supadash audit export --output /var/backups/supadash-runs.jsonl`,
	Run: func(cmd *cobra.Command, _ []string) {
		ctx := cmd.Context()
		nc := connectNATS(logger)
		defer cli.CloseNATSConn(logger, nc)

		store := openAuditStore(logger, nc)
		result, err := export.Run(
			ctx,
			logger,
			store.List,
			export.NewFileExporter(appFs, auditOutput),
			auditBatchSize,
			func(exported int, total int) {
				logger.Debug("export progress", slog.Int("exported", exported), slog.Int("total", total))
			},
		)
		if err != nil {
			cli.LogFatal(logger, "export failed", err, "path", auditOutput)
		}

		out := cmd.OutOrStdout()
		if jsonOutput {
			data, _ := json.Marshal(result)
			_, _ = fmt.Fprintln(out, string(data))
			return
		}

		cli.PrintKV(out,
			"Exported", fmt.Sprintf("%d/%d", result.ExportedEntries, result.TotalEntries),
			"File", auditOutput,
		)
	},
}

func printAuditEntries(
	cmd *cobra.Command,
	entries []audit.Entry,
	total int,
) {
	out := cmd.OutOrStdout()

	for _, e := range entries {
		args := e.CommandLine
		if len(e.Args) > 0 {
			args = strings.Join(e.Args, " ")
		}

		cli.PrintKV(out,
			"Time", e.Timestamp.Local().Format(time.DateTime),
			"Command ID", e.CommandID,
			"Outcome", e.Outcome,
		)
		cli.PrintKV(out,
			"Args", args,
			"Exit Code", fmt.Sprintf("%d", e.ExitCode),
			"Duration", cli.FormatDurationMs(e.DurationMs),
		)
	}

	_, _ = fmt.Fprintln(out, cli.DimStyle.Render(
		fmt.Sprintf("  %d of %d runs", len(entries), total),
	))
}

func init() {
	rootCmd.AddCommand(auditCmd)
	auditCmd.AddCommand(auditListCmd)
	auditCmd.AddCommand(auditExportCmd)

	auditListCmd.Flags().IntVar(&auditLimit, "limit", 20, "Maximum number of runs to show")
	auditListCmd.Flags().IntVar(&auditOffset, "offset", 0, "Number of newest runs to skip")

	auditExportCmd.Flags().StringVarP(&auditOutput, "output", "o", "supadash-runs.jsonl", "Destination file")
	auditExportCmd.Flags().IntVar(&auditBatchSize, "batch-size", export.DefaultBatchSize, "Entries fetched per page")
}
