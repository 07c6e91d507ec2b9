package viz

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/XuanzhengZhou/fibonacci-mod-visualizer/internal/legend"
)

var (
	Header = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#00cccc"))

	Subtle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#666688"))

	Accent = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#ff88ff"))

	Selected = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ffffff"))

	WarningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ffaa00"))

	ErrorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ff4444"))

	LegendPanel = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#444466")).
			Padding(0, 1)
)

// LegendView styles the summary as a bordered side panel with a color swatch
// per entry.
func LegendView(s legend.Summary) string {
	var b strings.Builder
	b.WriteString(Header.Render(fmt.Sprintf("Modulo %d", s.Base)) + "\n")
	b.WriteString(Subtle.Render(fmt.Sprintf("%d sequences, %d selected", s.Total, s.Selected)) + "\n\n")
	for _, e := range s.Entries {
		swatch := lipgloss.NewStyle().Foreground(lipgloss.Color(e.ColorHex)).Render("■")
		b.WriteString(fmt.Sprintf("%s [%d] len=%d\n", swatch, e.Index, e.Length))
		b.WriteString(Subtle.Render("   "+e.Preview) + "\n")
	}
	if s.Overflow > 0 {
		b.WriteString(Subtle.Render(fmt.Sprintf("... %d more", s.Overflow)) + "\n")
	}
	b.WriteString("\n" + Subtle.Render(s.GeneratedAt.Format("2006-01-02 15:04:05")))
	return LegendPanel.Render(b.String())
}

// KeyHelp renders a key/action hint row in the dim style used across views.
func KeyHelp(pairs ...string) string {
	var b strings.Builder
	for i := 0; i+1 < len(pairs); i += 2 {
		if i > 0 {
			b.WriteString(Subtle.Render("  "))
		}
		b.WriteString(Accent.Render(pairs[i]))
		b.WriteString(Subtle.Render(" " + pairs[i+1]))
	}
	return b.String()
}
