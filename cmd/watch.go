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
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/retr0h/supadash/internal/cli"
	"github.com/retr0h/supadash/internal/exec"
	"github.com/retr0h/supadash/internal/messaging"
	"github.com/retr0h/supadash/internal/validation"
)

var watchCommandID string

// watchCmd represents the watch command.
var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Print line events published to NATS",
	Long: `Subscribe to the line event subject and print every line as it
arrives. With --id only lines of that command are shown. Runs until
interrupted.
`,
	Run: func(cmd *cobra.Command, _ []string) {
		ctx := cmd.Context()

		if watchCommandID != "" {
			if errMsg, ok := validation.Var(watchCommandID, "command_id"); !ok {
				cli.LogFatal(logger, "invalid command id", fmt.Errorf("%s", errMsg))
			}
		}

		nc, err := messaging.Connect(appConfig.NATS, logger)
		if err != nil {
			cli.LogFatal(logger, "failed to connect to nats", err, "url", appConfig.NATS.URL)
		}
		defer nc.Close()

		out := cmd.OutOrStdout()
		printer := cli.NewLinePrinter(out, watchCommandID == "")

		handler := func(_ context.Context, event exec.LineEvent) {
			if jsonOutput {
				data, err := json.Marshal(event)
				if err != nil {
					return
				}
				_, _ = fmt.Fprintln(out, string(data))
				return
			}
			_ = printer.Emit(event)
		}

		logger.Info(
			"watching line events",
			slog.String("subject", messaging.Subject(appConfig.NATS.Namespace)),
			slog.String("command_id", watchCommandID),
		)

		if err := messaging.Subscribe(
			ctx,
			logger,
			nc,
			appConfig.NATS.Namespace,
			watchCommandID,
			handler,
		); err != nil {
			cli.LogFatal(logger, "failed to subscribe", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().StringVar(&watchCommandID, "id", "", "Only show lines of this command id")
}
