// Package session owns the mutable state of one visualization session: the
// current dataset and the current selection. The pipeline stages themselves
// stay pure; the session sequences them and guards their preconditions.
package session

import (
	"errors"
	"io"
	"time"

	"github.com/XuanzhengZhou/fibonacci-mod-visualizer/internal/colorize"
	"github.com/XuanzhengZhou/fibonacci-mod-visualizer/internal/geometry"
	"github.com/XuanzhengZhou/fibonacci-mod-visualizer/internal/grid"
	"github.com/XuanzhengZhou/fibonacci-mod-visualizer/internal/legend"
	"github.com/XuanzhengZhou/fibonacci-mod-visualizer/internal/payload"
	"github.com/XuanzhengZhou/fibonacci-mod-visualizer/internal/selection"
)

var (
	// ErrNoDataset is returned when a component runs before a calculation
	// has been loaded.
	ErrNoDataset = errors.New("no dataset loaded")
	// ErrEmptySelection is returned by rendering-stage entry points invoked
	// with nothing selected.
	ErrEmptySelection = errors.New("no sequences selected")
)

// Session holds one dataset and its selection. The dataset is immutable until
// replaced wholesale by the next Load; the selection mutates incrementally and
// resets when the dataset changes.
type Session struct {
	dataset   *payload.Dataset
	selected  selection.Set
	colorOpt  colorize.Options
	legendOpt legend.Options
}

func New(colorOpt colorize.Options, legendOpt legend.Options) *Session {
	return &Session{colorOpt: colorOpt, legendOpt: legendOpt}
}

// Load replaces the dataset and clears the selection.
func (s *Session) Load(d *payload.Dataset) {
	s.dataset = d
	s.selected = nil
}

// LoadWithSelection restores a dataset together with a previously exported
// selection (assumed validated and ascending by the payload decoder).
func (s *Session) LoadWithSelection(d *payload.Dataset, sel []int) {
	s.dataset = d
	s.selected = selection.Set(sel).Clone()
}

func (s *Session) HasDataset() bool { return s.dataset != nil }

func (s *Session) Dataset() (*payload.Dataset, error) {
	if s.dataset == nil {
		return nil, ErrNoDataset
	}
	return s.dataset, nil
}

// Selected returns a copy of the current selection.
func (s *Session) Selected() selection.Set { return s.selected.Clone() }

func (s *Session) SequenceCount() int {
	if s.dataset == nil {
		return 0
	}
	return len(s.dataset.Sequences)
}

// Apply parses a range expression and unions the result into the selection.
// On ErrInvalidFormat the selection is left untouched; skipped tokens are
// reported as warnings. Returns how many indices the expression contributed.
func (s *Session) Apply(expr string) (int, []selection.Warning, error) {
	if s.dataset == nil {
		return 0, nil, ErrNoDataset
	}
	parsed, warnings, err := selection.Parse(expr, len(s.dataset.Sequences))
	if err != nil {
		return 0, nil, err
	}
	s.selected = selection.Union(s.selected, parsed)
	return len(parsed), warnings, nil
}

func (s *Session) SelectAll() error {
	if s.dataset == nil {
		return ErrNoDataset
	}
	s.selected = selection.All(len(s.dataset.Sequences))
	return nil
}

func (s *Session) ClearSelection() { s.selected = nil }

// Toggle flips one index in or out of the selection.
func (s *Session) Toggle(idx int) error {
	if s.dataset == nil {
		return ErrNoDataset
	}
	if idx < 0 || idx >= len(s.dataset.Sequences) {
		return ErrNoDataset
	}
	if s.selected.Contains(idx) {
		s.selected = selection.Remove(s.selected, idx)
	} else {
		s.selected = selection.Union(s.selected, selection.Set{idx})
	}
	return nil
}

func (s *Session) renderable() error {
	if s.dataset == nil {
		return ErrNoDataset
	}
	if len(s.selected) == 0 {
		return ErrEmptySelection
	}
	return nil
}

// Colors assigns the selection's colors, normalized over its own length
// spread.
func (s *Session) Colors() (map[int]colorize.RGBA, error) {
	if err := s.renderable(); err != nil {
		return nil, err
	}
	return colorize.Map(s.dataset.Sequences, s.selected, s.colorOpt), nil
}

// Grid projects the selection onto the m×m buffer.
func (s *Session) Grid() (*grid.Buffer, error) {
	colors, err := s.Colors()
	if err != nil {
		return nil, err
	}
	return grid.Project(s.dataset, s.selected, colors), nil
}

// Cells extrudes the selection into volumetric cells.
func (s *Session) Cells() ([]geometry.Cell, error) {
	colors, err := s.Colors()
	if err != nil {
		return nil, err
	}
	return geometry.Extrude(s.dataset, s.selected, colors), nil
}

// Summary builds the legend block. The clock value comes from the caller.
func (s *Session) Summary(now time.Time) (legend.Summary, error) {
	colors, err := s.Colors()
	if err != nil {
		return legend.Summary{}, err
	}
	return legend.Summarize(s.dataset, s.selected, colors, now, s.legendOpt), nil
}

// Bundle is the renderer-agnostic output of one pipeline run.
type Bundle struct {
	Base    int
	Grid    *grid.Buffer
	Cells   []geometry.Cell
	Summary legend.Summary
	Palette [12]string
}

// Bundle runs the full pipeline over the current selection. Cells are only
// extruded when volumetric output was requested.
func (s *Session) Bundle(now time.Time, volumetric bool) (*Bundle, error) {
	colors, err := s.Colors()
	if err != nil {
		return nil, err
	}
	b := &Bundle{
		Base:    s.dataset.Base,
		Grid:    grid.Project(s.dataset, s.selected, colors),
		Summary: legend.Summarize(s.dataset, s.selected, colors, now, s.legendOpt),
		Palette: colorize.Palette,
	}
	if volumetric {
		b.Cells = geometry.Extrude(s.dataset, s.selected, colors)
	}
	return b, nil
}

// Export writes the dataset plus current selection in the documented exchange
// shape. An empty selection exports as an empty list, not an error.
func (s *Session) Export(w io.Writer) error {
	if s.dataset == nil {
		return ErrNoDataset
	}
	return payload.WriteExport(w, s.dataset, s.selected)
}
