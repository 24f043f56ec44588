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

package cli

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/retr0h/supadash/internal/exec"
)

// Theme colors for terminal UI rendering.
var (
	Purple = lipgloss.Color("99")
	Gray   = lipgloss.Color("245")
	White  = lipgloss.Color("15")
	Teal   = lipgloss.Color("#06ffa5")
	Coral  = lipgloss.Color("#ff6f61")
)

// Reusable inline styles for compact key-value output.
var (
	labelStyle  = lipgloss.NewStyle().Bold(true).Foreground(Purple)
	valueStyle  = lipgloss.NewStyle().Foreground(Teal)
	stdoutStyle = lipgloss.NewStyle().Foreground(White)
	stderrStyle = lipgloss.NewStyle().Foreground(Coral)

	// DimStyle is a muted style for secondary text.
	DimStyle = lipgloss.NewStyle().Foreground(Gray)
)

// KVMinColWidth is the minimum visual width for each key-value column.
// A consistent minimum ensures columns align across consecutive PrintKV calls.
const KVMinColWidth = 20

// PrintKV prints labeled key-value pairs on a single indented line.
// Pairs are padded to equal column widths for alignment.
// Arguments alternate between labels and values: label1, val1, label2, val2, ...
func PrintKV(
	w io.Writer,
	pairs ...string,
) {
	if len(pairs)%2 != 0 || len(pairs) == 0 {
		return
	}

	rendered := make([]string, 0, len(pairs)/2)
	maxWidth := KVMinColWidth
	for i := 0; i < len(pairs); i += 2 {
		pair := labelStyle.Render(pairs[i]+":") + " " + valueStyle.Render(pairs[i+1])
		rendered = append(rendered, pair)
		if w := lipgloss.Width(pair); w > maxWidth {
			maxWidth = w
		}
	}

	var line strings.Builder
	line.WriteString("  ")
	for i, pair := range rendered {
		line.WriteString(pair)
		if i < len(rendered)-1 {
			pad := maxWidth - lipgloss.Width(pair) + 4
			line.WriteString(strings.Repeat(" ", pad))
		}
	}
	_, _ = fmt.Fprintln(w, line.String())
}

// FormatDurationMs formats milliseconds as a short duration ("850ms", "1.2s").
func FormatDurationMs(
	ms int64,
) string {
	d := time.Duration(ms) * time.Millisecond
	if d < time.Second {
		return d.String()
	}

	return d.Round(100 * time.Millisecond).String()
}

// PrintRunSummary prints the outcome of a finished run.
func PrintRunSummary(
	w io.Writer,
	commandID string,
	exitCode int,
	durationMs int64,
) {
	status := "ok"
	switch {
	case exitCode == exec.SignalExitCode:
		status = "terminated by signal"
	case exitCode != 0:
		status = "failed"
	}

	_, _ = fmt.Fprintln(w)
	PrintKV(w,
		"Command ID", commandID,
		"Status", status,
	)
	PrintKV(w,
		"Exit Code", fmt.Sprintf("%d", exitCode),
		"Duration", FormatDurationMs(durationMs),
	)
}

// LinePrinter writes line events to a terminal, coloring stderr.
// It implements exec.LineSink and is safe for concurrent use.
type LinePrinter struct {
	mu            sync.Mutex
	out           io.Writer
	showCommandID bool
}

// NewLinePrinter creates a LinePrinter writing to out. When showCommandID is
// set each line is prefixed with its command id.
func NewLinePrinter(
	out io.Writer,
	showCommandID bool,
) *LinePrinter {
	return &LinePrinter{
		out:           out,
		showCommandID: showCommandID,
	}
}

// Emit implements exec.LineSink.
func (p *LinePrinter) Emit(
	event exec.LineEvent,
) error {
	style := stdoutStyle
	if event.Stream == exec.StreamStderr {
		style = stderrStyle
	}

	var line strings.Builder
	if p.showCommandID {
		line.WriteString(DimStyle.Render(event.CommandID))
		line.WriteString(" ")
	}
	line.WriteString(style.Render(strings.TrimRight(event.Chunk, "\r\n")))
	line.WriteString("\n")

	p.mu.Lock()
	defer p.mu.Unlock()

	_, err := io.WriteString(p.out, line.String())

	return err
}
