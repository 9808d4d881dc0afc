// Package warn renders the advisory version-drift warning.
package warn

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/embedder-rs/devshell/internal/core/domain"
	"github.com/embedder-rs/devshell/internal/ui/style"
)

var (
	headStyle  = lipgloss.NewStyle().Foreground(style.Yellow).Bold(true)
	labelStyle = lipgloss.NewStyle().Foreground(style.Slate)
	valueStyle = lipgloss.NewStyle().Foreground(style.White).Bold(true)
	hintStyle  = lipgloss.NewStyle().Foreground(style.Slate).Italic(true)
)

// Drift renders the multi-line warning for a version drift. Both the locked
// and the resolved value appear verbatim in the output. The warning is
// advisory only: callers print it and proceed.
func Drift(d *domain.Drift) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s %s\n",
		headStyle.Render(style.Warning),
		headStyle.Render("version drift detected for "+d.Entry))
	fmt.Fprintf(&b, "  %s %s\n",
		labelStyle.Render("locked reference: "),
		valueStyle.Render(d.Locked))
	fmt.Fprintf(&b, "  %s %s\n",
		labelStyle.Render("resolved version:"),
		valueStyle.Render(d.Resolved))
	fmt.Fprintf(&b, "  %s\n",
		hintStyle.Render("consider updating the pinned "+d.Entry+" input and any dependent binding code"))

	return b.String()
}

// PrintDrift writes the rendered warning to w.
func PrintDrift(w io.Writer, d *domain.Drift) {
	_, _ = io.WriteString(w, Drift(d))
}
