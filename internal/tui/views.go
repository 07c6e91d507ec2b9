package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/XuanzhengZhou/fibonacci-mod-visualizer/internal/colorize"
	"github.com/XuanzhengZhou/fibonacci-mod-visualizer/internal/grid"
	"github.com/XuanzhengZhou/fibonacci-mod-visualizer/internal/legend"
	"github.com/XuanzhengZhou/fibonacci-mod-visualizer/internal/payload"
	"github.com/XuanzhengZhou/fibonacci-mod-visualizer/internal/viz"
)

func (m model) View() string {
	var body string
	switch m.state {
	case stateMenu:
		body = m.viewMenu()
	case stateBaseInput:
		body = m.viewInput(fmt.Sprintf("modulus (1-%d):", payload.MaxBase))
	case statePathInput:
		body = m.viewInput("dataset file path:")
	case stateExportInput:
		body = m.viewInput("export file path:")
	case stateRangeInput:
		body = m.viewInput("ranges (e.g. 3-5,6,7-21):")
	case stateBrowse:
		body = m.viewBrowse()
	case stateConfirmGrid:
		body = m.viewConfirm()
	case stateGrid:
		body = m.viewGrid()
	case stateVolume:
		body = m.viewVolume()
	case stateStats:
		body = m.viewStats()
	}

	status := m.status
	if m.computing {
		status = viz.WarningStyle.Render(status)
	} else if strings.Contains(status, "failed") || strings.Contains(status, "invalid") {
		status = viz.ErrorStyle.Render(status)
	} else {
		status = viz.Subtle.Render(status)
	}
	return body + "\n" + status + "\n"
}

func (m model) header() string {
	title := viz.Header.Render("FIBMOD")
	sub := viz.Subtle.Render("fibonacci sequence modulo period visualizer")
	line := ""
	if m.sess.HasDataset() {
		d, _ := m.sess.Dataset()
		line = viz.Subtle.Render(fmt.Sprintf("mod %d · %d sequences · %d selected",
			d.Base, len(d.Sequences), len(m.sess.Selected())))
	} else {
		line = viz.Subtle.Render("no dataset loaded")
	}
	return "\n  " + title + "  " + sub + "\n  " + line + "\n"
}

func (m model) viewMenu() string {
	var b strings.Builder
	b.WriteString(m.header() + "\n")
	for i, item := range menuItems {
		if i == m.cursor {
			b.WriteString(fmt.Sprintf("  %s %s  %s\n",
				viz.Accent.Render("▸"),
				viz.Selected.Render(fmt.Sprintf("%-10s", item.label)),
				viz.Accent.Render(item.desc)))
		} else {
			b.WriteString(fmt.Sprintf("    %s  %s\n",
				viz.Subtle.Render(fmt.Sprintf("%-10s", item.label)),
				viz.Subtle.Render(item.desc)))
		}
	}
	b.WriteString("\n  " + viz.KeyHelp("j/k", "navigate", "enter", "select", "q", "quit") + "\n")
	return b.String()
}

func (m model) viewInput(prompt string) string {
	return m.header() + "\n  " + viz.Selected.Render(prompt) + " " +
		m.input + viz.Accent.Render("_") + "\n\n  " +
		viz.KeyHelp("enter", "confirm", "esc", "cancel") + "\n"
}

func (m model) viewBrowse() string {
	var b strings.Builder
	b.WriteString(m.header() + "\n")

	d, err := m.sess.Dataset()
	if err != nil {
		return b.String()
	}
	selected := m.sess.Selected()

	rows := m.browseRows()
	end := m.browseOffset + rows
	if end > len(d.Sequences) {
		end = len(d.Sequences)
	}
	for i := m.browseOffset; i < end; i++ {
		mark := " "
		if selected.Contains(i) {
			mark = "✓"
		}
		swatch := lipgloss.NewStyle().
			Foreground(lipgloss.Color(colorize.Palette[i%len(colorize.Palette)])).
			Render("■")
		row := fmt.Sprintf("[%s] %s %3d. len=%-4d %s",
			mark, swatch, i, len(d.Sequences[i]), legend.Preview(d.Sequences[i], 8))
		if i == m.browseCursor {
			b.WriteString("  " + viz.Accent.Render("▸") + " " + viz.Selected.Render(row) + "\n")
		} else {
			b.WriteString("    " + viz.Subtle.Render(row) + "\n")
		}
	}

	b.WriteString("\n  " + viz.KeyHelp(
		"space", "toggle", "a", "all", "c", "clear", "r", "ranges", "esc", "back") + "\n")
	return b.String()
}

func (m model) viewConfirm() string {
	d, _ := m.sess.Dataset()
	est := grid.EstimateBytes(d.Base)
	warn := fmt.Sprintf("modulus %d implies a %dx%d grid (~%d MiB). proceed?",
		d.Base, d.Base, d.Base, est/(1<<20))
	return m.header() + "\n  " + viz.WarningStyle.Render(warn) + "\n\n  " +
		viz.KeyHelp("y", "render", "n", "cancel") + "\n"
}

func (m model) viewGrid() string {
	summary, err := m.sess.Summary(time.Now())
	if err != nil {
		return m.header() + "\n  " + viz.ErrorStyle.Render(err.Error()) + "\n"
	}
	panel := viz.LegendView(summary)
	content := lipgloss.JoinHorizontal(lipgloss.Top, m.gridView, "  ", panel)
	return m.header() + "\n" + content + "\n  " + viz.KeyHelp("esc", "back") + "\n"
}

func (m model) viewVolume() string {
	w := m.width - 34
	if w < 20 {
		w = 20
	}
	h := (m.height - 7) * 2
	if h < 10 {
		h = 10
	}
	canvas := viz.NewCanvas(w, h)
	d, _ := m.sess.Dataset()
	viz.RenderCells(canvas, m.cells, d.Base, m.cam)

	summary, err := m.sess.Summary(time.Now())
	if err != nil {
		return m.header() + "\n  " + viz.ErrorStyle.Render(err.Error()) + "\n"
	}
	content := lipgloss.JoinHorizontal(lipgloss.Top, canvas.Render(), "  ", viz.LegendView(summary))
	return m.header() + "\n" + content + "\n  " +
		viz.KeyHelp("h/l", "spin", "j/k", "tilt", "+/-", "zoom", "esc", "back") + "\n"
}

func (m model) viewStats() string {
	d, _ := m.sess.Dataset()
	chart := viz.LengthProfile(d, m.width-12, m.height-10)
	return m.header() + "\n" + chart + "\n\n  " + viz.KeyHelp("esc", "back") + "\n"
}
