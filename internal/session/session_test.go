package session

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/XuanzhengZhou/fibonacci-mod-visualizer/internal/colorize"
	"github.com/XuanzhengZhou/fibonacci-mod-visualizer/internal/legend"
	"github.com/XuanzhengZhou/fibonacci-mod-visualizer/internal/payload"
)

func testDataset() *payload.Dataset {
	return &payload.Dataset{
		Base: 5,
		Sequences: [][]int{
			{0, 1, 1, 2, 3},
			{2, 4, 1},
			{0},
			{1, 3, 4, 2},
		},
		CyclesPairs: []payload.Cycle{},
	}
}

func newSession() *Session {
	return New(colorize.Options{}, legend.Options{})
}

func TestGuards(t *testing.T) {
	s := newSession()

	if _, err := s.Dataset(); !errors.Is(err, ErrNoDataset) {
		t.Errorf("Dataset before load: %v, want ErrNoDataset", err)
	}
	if _, _, err := s.Apply("0-2"); !errors.Is(err, ErrNoDataset) {
		t.Errorf("Apply before load: %v, want ErrNoDataset", err)
	}
	if err := s.Export(&bytes.Buffer{}); !errors.Is(err, ErrNoDataset) {
		t.Errorf("Export before load: %v, want ErrNoDataset", err)
	}

	s.Load(testDataset())
	if _, err := s.Grid(); !errors.Is(err, ErrEmptySelection) {
		t.Errorf("Grid with empty selection: %v, want ErrEmptySelection", err)
	}
	if _, err := s.Cells(); !errors.Is(err, ErrEmptySelection) {
		t.Errorf("Cells with empty selection: %v, want ErrEmptySelection", err)
	}
	if _, err := s.Summary(time.Now()); !errors.Is(err, ErrEmptySelection) {
		t.Errorf("Summary with empty selection: %v, want ErrEmptySelection", err)
	}
}

func TestLoadClearsSelection(t *testing.T) {
	s := newSession()
	s.Load(testDataset())
	if err := s.SelectAll(); err != nil {
		t.Fatalf("SelectAll: %v", err)
	}

	s.Load(testDataset())
	if got := s.Selected(); len(got) != 0 {
		t.Fatalf("selection after reload = %v, want empty", got)
	}
}

func TestApply(t *testing.T) {
	s := newSession()
	s.Load(testDataset())

	n, warnings, err := s.Apply("0-1,3")
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if n != 3 || len(warnings) != 0 {
		t.Fatalf("Apply = %d indices, %d warnings, want 3/0", n, len(warnings))
	}
	if diff := cmp.Diff([]int{0, 1, 3}, []int(s.Selected())); diff != "" {
		t.Errorf("selection mismatch (-want +got):\n%s", diff)
	}

	// A later expression unions rather than replaces.
	if _, _, err := s.Apply("2"); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if diff := cmp.Diff([]int{0, 1, 2, 3}, []int(s.Selected())); diff != "" {
		t.Errorf("selection mismatch (-want +got):\n%s", diff)
	}
}

func TestApplyInvalidLeavesSelection(t *testing.T) {
	s := newSession()
	s.Load(testDataset())
	if _, _, err := s.Apply("0"); err != nil {
		t.Fatalf("Apply: %v", err)
	}

	if _, _, err := s.Apply("1,abc"); err == nil {
		t.Fatal("Apply accepted a malformed expression")
	}
	if diff := cmp.Diff([]int{0}, []int(s.Selected())); diff != "" {
		t.Errorf("selection changed on failed Apply (-want +got):\n%s", diff)
	}
}

func TestToggle(t *testing.T) {
	s := newSession()
	s.Load(testDataset())

	if err := s.Toggle(2); err != nil {
		t.Fatalf("Toggle: %v", err)
	}
	if !s.Selected().Contains(2) {
		t.Fatal("Toggle did not select index 2")
	}
	if err := s.Toggle(2); err != nil {
		t.Fatalf("Toggle: %v", err)
	}
	if s.Selected().Contains(2) {
		t.Fatal("Toggle did not deselect index 2")
	}
	if err := s.Toggle(99); err == nil {
		t.Fatal("Toggle accepted an out-of-range index")
	}
}

func TestBundle(t *testing.T) {
	s := newSession()
	s.Load(testDataset())
	if _, _, err := s.Apply("0"); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)

	b, err := s.Bundle(now, false)
	if err != nil {
		t.Fatalf("Bundle: %v", err)
	}
	if b.Base != 5 || b.Grid == nil || b.Cells != nil {
		t.Fatalf("flat bundle = %+v", b)
	}
	if b.Grid.OccupiedCount() != 5 {
		t.Errorf("occupied = %d, want 5", b.Grid.OccupiedCount())
	}
	if b.Summary.Selected != 1 || b.Summary.GeneratedAt != now {
		t.Errorf("summary = %+v", b.Summary)
	}

	b, err = s.Bundle(now, true)
	if err != nil {
		t.Fatalf("Bundle: %v", err)
	}
	if len(b.Cells) != 5 {
		t.Errorf("volumetric cells = %d, want 5", len(b.Cells))
	}
}

func TestExportReimport(t *testing.T) {
	s := newSession()
	s.Load(testDataset())
	if _, _, err := s.Apply("1,3"); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	firstGrid, err := s.Grid()
	if err != nil {
		t.Fatalf("Grid: %v", err)
	}

	var buf bytes.Buffer
	if err := s.Export(&buf); err != nil {
		t.Fatalf("Export: %v", err)
	}

	d, sel, err := payload.DecodeExport(buf.Bytes())
	if err != nil {
		t.Fatalf("DecodeExport: %v", err)
	}
	restored := newSession()
	restored.LoadWithSelection(d, sel)

	if diff := cmp.Diff([]int{1, 3}, []int(restored.Selected())); diff != "" {
		t.Errorf("selection mismatch (-want +got):\n%s", diff)
	}
	secondGrid, err := restored.Grid()
	if err != nil {
		t.Fatalf("Grid: %v", err)
	}
	for y := 0; y < 5; y++ {
		for x := 0; x < 5; x++ {
			if firstGrid.At(x, y) != secondGrid.At(x, y) {
				t.Fatalf("cell (%d,%d) differs after reimport", x, y)
			}
		}
	}
}

func TestColorsRenormalizePerSelection(t *testing.T) {
	s := newSession()
	s.Load(testDataset())

	// Alone, sequence 0 spans the whole spread and gets full intensity.
	if _, _, err := s.Apply("0"); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	alone, err := s.Colors()
	if err != nil {
		t.Fatalf("Colors: %v", err)
	}

	// Next to the shorter sequence 1 it becomes the longest of the spread
	// and is re-normalized down, so the color dims.
	if _, _, err := s.Apply("1"); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	paired, err := s.Colors()
	if err != nil {
		t.Fatalf("Colors: %v", err)
	}

	if alone[0] == paired[0] {
		t.Fatal("color for sequence 0 unchanged despite new length spread")
	}
}
