package stackwalk

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/wippyai/trapguard"
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF6B6B"))

	frameStyle = lipgloss.NewStyle().
			Bold(true)

	labelStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#E5C07B"))

	valueStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#56B6C2"))

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#E5C07B"))
)

// WriteReport writes the human-readable fault report: a header, then one
// block per frame with its locals and operand stack. A nil or empty frame
// slice means the fault could not be correlated to a known module and is
// reported distinctly. Styling is applied only when w is a terminal.
func WriteReport(w io.Writer, frames []Frame) {
	styled := isTerminal(w)
	style := func(s lipgloss.Style, text string) string {
		if !styled {
			return text
		}
		return s.Render(text)
	}

	fmt.Fprintf(w, "\n%s\n\n", style(headerStyle, "trapguard encountered an error while running your WebAssembly program."))

	if len(frames) == 0 {
		fmt.Fprintf(w, "%s\n", style(warnStyle, "Unknown fault address, cannot read stack."))
		return
	}

	fmt.Fprintf(w, "%s\n\n", style(frameStyle, "Backtrace:"))
	for i, f := range frames {
		fmt.Fprintf(w, "%s\n", style(frameStyle, fmt.Sprintf("* Frame %d @ Local function %d", i, f.FunctionID)))
		fmt.Fprintf(w, "  %s %s\n", style(labelStyle, "Locals:"), formatWords(f.Locals, styled, style))
		fmt.Fprintf(w, "  %s %s\n", style(labelStyle, "Stack:"), formatWords(f.Stack, styled, style))
		fmt.Fprintln(w)
	}
}

// FormatWords renders a value sequence as "[i] = v" entries joined by ", ",
// with "?" for unknown values and "(empty)" when there are none.
func FormatWords(vals []trapguard.Word) string {
	return formatWords(vals, false, nil)
}

func formatWords(vals []trapguard.Word, styled bool, style func(lipgloss.Style, string) string) string {
	if len(vals) == 0 {
		return "(empty)"
	}
	parts := make([]string, len(vals))
	for i, v := range vals {
		rendered := v.String()
		if styled {
			rendered = style(valueStyle, rendered)
		}
		parts[i] = fmt.Sprintf("[%d] = %s", i, rendered)
	}
	return strings.Join(parts, ", ")
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(interface{ Fd() uintptr })
	return ok && term.IsTerminal(int(f.Fd()))
}
