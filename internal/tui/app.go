// Package tui is the interactive front end: compute or import a calculation,
// browse and select sequences, then view the grid, the volumetric projection,
// or export the dataset.
package tui

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/XuanzhengZhou/fibonacci-mod-visualizer/internal/colorize"
	"github.com/XuanzhengZhou/fibonacci-mod-visualizer/internal/config"
	"github.com/XuanzhengZhou/fibonacci-mod-visualizer/internal/geometry"
	"github.com/XuanzhengZhou/fibonacci-mod-visualizer/internal/legend"
	"github.com/XuanzhengZhou/fibonacci-mod-visualizer/internal/payload"
	"github.com/XuanzhengZhou/fibonacci-mod-visualizer/internal/session"
	"github.com/XuanzhengZhou/fibonacci-mod-visualizer/internal/store"
	"github.com/XuanzhengZhou/fibonacci-mod-visualizer/internal/viz"
)

const (
	stateMenu = iota
	stateBaseInput
	statePathInput
	stateExportInput
	stateBrowse
	stateRangeInput
	stateConfirmGrid
	stateGrid
	stateVolume
	stateStats
)

var menuItems = []struct{ label, desc string }{
	{"compute", "run the period solver for a new modulus"},
	{"import", "load a dataset or export file"},
	{"select", "browse sequences and build a selection"},
	{"grid", "2d occupancy grid of the selection"},
	{"volume", "3d wireframe of the selection"},
	{"profile", "sequence length chart"},
	{"export", "write dataset + selection as json"},
	{"quit", ""},
}

type model struct {
	cfg      *config.Config
	sess     *session.Session
	provider payload.Provider
	st       *store.Store

	state         int
	cursor        int
	browseCursor  int
	browseOffset  int
	input         string
	status        string
	width, height int
	computing     bool

	cam      *viz.Camera
	cells    []geometry.Cell
	gridView string
}

type computedMsg struct {
	base int
	d    *payload.Dataset
	err  error
}

type importedMsg struct {
	d   *payload.Dataset
	sel []int
	err error
}

func newModel(cfg *config.Config, provider payload.Provider, st *store.Store) model {
	sess := session.New(
		colorize.Options{Smoothing: cfg.Color.Smoothing, Alpha: cfg.Color.Alpha},
		legend.Options{PreviewLimit: cfg.Legend.PreviewLimit, DisplayLimit: cfg.Legend.DisplayLimit},
	)
	return model{
		cfg:      cfg,
		sess:     sess,
		provider: provider,
		st:       st,
		cam:      viz.NewCamera(),
		width:    80,
		height:   24,
	}
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil
	case computedMsg:
		m.computing = false
		if msg.err != nil {
			m.status = "compute failed: " + msg.err.Error()
			return m, nil
		}
		m.sess.Load(msg.d)
		if id, err := m.st.Save(msg.d, nil); err != nil {
			m.status = fmt.Sprintf("computed mod %d (%d sequences), save failed: %v", msg.base, len(msg.d.Sequences), err)
		} else {
			m.status = fmt.Sprintf("computed mod %d: %d sequences, saved as %s", msg.base, len(msg.d.Sequences), id)
		}
		return m, nil
	case importedMsg:
		if msg.err != nil {
			m.status = "import failed: " + msg.err.Error()
			return m, nil
		}
		m.sess.LoadWithSelection(msg.d, msg.sel)
		m.status = fmt.Sprintf("loaded mod %d: %d sequences, %d selected", msg.d.Base, len(msg.d.Sequences), len(msg.sel))
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.state {
	case stateMenu:
		return m.menuKey(msg)
	case stateBaseInput, statePathInput, stateExportInput, stateRangeInput:
		return m.inputKey(msg)
	case stateBrowse:
		return m.browseKey(msg)
	case stateConfirmGrid:
		return m.confirmKey(msg)
	case stateVolume:
		return m.volumeKey(msg)
	case stateGrid, stateStats:
		switch msg.String() {
		case "q", "esc":
			m.state = stateMenu
		}
		return m, nil
	}
	return m, nil
}

func (m model) menuKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(menuItems)-1 {
			m.cursor++
		}
	case "enter", " ":
		return m.runMenuItem(menuItems[m.cursor].label)
	}
	return m, nil
}

func (m model) runMenuItem(label string) (tea.Model, tea.Cmd) {
	switch label {
	case "quit":
		return m, tea.Quit
	case "compute":
		m.state, m.input = stateBaseInput, ""
		return m, nil
	case "import":
		m.state, m.input = statePathInput, ""
		return m, nil
	case "select":
		if !m.sess.HasDataset() {
			m.status = "no dataset: compute or import first"
			return m, nil
		}
		m.state, m.browseCursor, m.browseOffset = stateBrowse, 0, 0
		return m, nil
	case "grid":
		if err := m.checkRenderable(); err != nil {
			m.status = err.Error()
			return m, nil
		}
		d, _ := m.sess.Dataset()
		if d.Base > m.cfg.Render.GridWarnSize {
			m.state = stateConfirmGrid
			return m, nil
		}
		return m.showGrid()
	case "volume":
		if err := m.checkRenderable(); err != nil {
			m.status = err.Error()
			return m, nil
		}
		cells, err := m.sess.Cells()
		if err != nil {
			m.status = err.Error()
			return m, nil
		}
		m.cells = cells
		m.cam = viz.NewCamera()
		m.state = stateVolume
		return m, nil
	case "profile":
		if !m.sess.HasDataset() {
			m.status = "no dataset: compute or import first"
			return m, nil
		}
		m.state = stateStats
		return m, nil
	case "export":
		if !m.sess.HasDataset() {
			m.status = "no dataset: compute or import first"
			return m, nil
		}
		d, _ := m.sess.Dataset()
		m.state = stateExportInput
		m.input = fmt.Sprintf("fibonacci_mod_%d_data.json", d.Base)
		return m, nil
	}
	return m, nil
}

func (m *model) checkRenderable() error {
	if !m.sess.HasDataset() {
		return session.ErrNoDataset
	}
	if len(m.sess.Selected()) == 0 {
		return session.ErrEmptySelection
	}
	return nil
}

func (m model) showGrid() (tea.Model, tea.Cmd) {
	buf, err := m.sess.Grid()
	if err != nil {
		m.status = err.Error()
		m.state = stateMenu
		return m, nil
	}
	m.gridView = viz.GridView(buf, m.width-4, m.height-6)
	m.state = stateGrid
	return m, nil
}

func (m model) confirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		return m.showGrid()
	case "n", "N", "esc", "q":
		m.state = stateMenu
		m.status = "grid render skipped"
	}
	return m, nil
}

func (m model) inputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		if m.state == stateRangeInput {
			m.state = stateBrowse
		} else {
			m.state = stateMenu
		}
		m.input = ""
		return m, nil
	case "enter":
		return m.submitInput()
	case "backspace":
		if len(m.input) > 0 {
			m.input = m.input[:len(m.input)-1]
		}
		return m, nil
	default:
		if msg.Type == tea.KeyRunes {
			m.input += string(msg.Runes)
		} else if msg.Type == tea.KeySpace {
			m.input += " "
		}
		return m, nil
	}
}

func (m model) submitInput() (tea.Model, tea.Cmd) {
	in := strings.TrimSpace(m.input)
	switch m.state {
	case stateBaseInput:
		base, err := strconv.Atoi(in)
		if err != nil || base < 1 || base > payload.MaxBase {
			m.status = fmt.Sprintf("modulus must be an integer in [1, %d]", payload.MaxBase)
			return m, nil
		}
		m.state, m.input = stateMenu, ""
		m.computing = true
		m.status = fmt.Sprintf("computing periods for mod %d...", base)
		provider := m.provider
		return m, func() tea.Msg {
			d, err := provider.Compute(context.Background(), base)
			return computedMsg{base: base, d: d, err: err}
		}
	case statePathInput:
		m.state, m.input = stateMenu, ""
		return m, func() tea.Msg {
			d, sel, err := payload.LoadFile(in)
			return importedMsg{d: d, sel: sel, err: err}
		}
	case stateExportInput:
		m.state, m.input = stateMenu, ""
		f, err := os.Create(in)
		if err != nil {
			m.status = "export failed: " + err.Error()
			return m, nil
		}
		defer f.Close()
		if err := m.sess.Export(f); err != nil {
			m.status = "export failed: " + err.Error()
			return m, nil
		}
		m.status = "exported to " + in
		return m, nil
	case stateRangeInput:
		added, warnings, err := m.sess.Apply(in)
		m.state, m.input = stateBrowse, ""
		if err != nil {
			m.status = err.Error()
			return m, nil
		}
		m.status = fmt.Sprintf("selected %d sequences", added)
		for _, w := range warnings {
			m.status += "; " + w.String()
		}
		return m, nil
	}
	return m, nil
}

func (m model) browseKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	count := m.sess.SequenceCount()
	switch msg.String() {
	case "q", "esc":
		m.state = stateMenu
	case "up", "k":
		if m.browseCursor > 0 {
			m.browseCursor--
		}
	case "down", "j":
		if m.browseCursor < count-1 {
			m.browseCursor++
		}
	case " ", "enter":
		if err := m.sess.Toggle(m.browseCursor); err != nil {
			m.status = err.Error()
		}
	case "a":
		if err := m.sess.SelectAll(); err == nil {
			m.status = fmt.Sprintf("selected all %d sequences", count)
		}
	case "c":
		m.sess.ClearSelection()
		m.status = "selection cleared"
	case "r":
		m.state, m.input = stateRangeInput, ""
	}

	// Keep the cursor inside the visible window.
	visible := m.browseRows()
	if m.browseCursor < m.browseOffset {
		m.browseOffset = m.browseCursor
	}
	if m.browseCursor >= m.browseOffset+visible {
		m.browseOffset = m.browseCursor - visible + 1
	}
	return m, nil
}

func (m model) volumeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc":
		m.state = stateMenu
	case "h", "left":
		m.cam.RotateZ(-0.15)
	case "l", "right":
		m.cam.RotateZ(0.15)
	case "k", "up":
		m.cam.RotateX(-0.1)
	case "j", "down":
		m.cam.RotateX(0.1)
	case "+", "=":
		m.cam.ZoomIn()
	case "-":
		m.cam.ZoomOut()
	}
	return m, nil
}

func (m model) browseRows() int {
	rows := m.height - 8
	if rows < 3 {
		rows = 3
	}
	return rows
}

// Run starts the interactive application.
func Run(cfg *config.Config, provider payload.Provider, st *store.Store, initial *payload.Dataset, initialSel []int) error {
	m := newModel(cfg, provider, st)
	if initial != nil {
		m.sess.LoadWithSelection(initial, initialSel)
		m.status = fmt.Sprintf("loaded mod %d: %d sequences", initial.Base, len(initial.Sequences))
	}
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
