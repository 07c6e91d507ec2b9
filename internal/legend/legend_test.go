package legend

import (
	"strings"
	"testing"
	"time"

	"github.com/XuanzhengZhou/fibonacci-mod-visualizer/internal/colorize"
	"github.com/XuanzhengZhou/fibonacci-mod-visualizer/internal/payload"
)

func TestPreview(t *testing.T) {
	cases := []struct {
		seq   []int
		limit int
		want  string
	}{
		{[]int{0, 1, 1, 2, 3}, 8, "[0, 1, 1, 2, 3]"},
		{[]int{0, 1, 1, 2, 3, 5, 8, 13, 21, 34}, 8, "[0, 1, 1, 2, 3, 5, 8, 13..."},
		{[]int{7}, 8, "[7]"},
		{nil, 8, "[]"},
	}
	for _, c := range cases {
		if got := Preview(c.seq, c.limit); got != c.want {
			t.Errorf("Preview(%v, %d) = %q, want %q", c.seq, c.limit, got, c.want)
		}
	}
}

func TestSummarize(t *testing.T) {
	d := &payload.Dataset{
		Base:      10,
		Sequences: [][]int{{0, 1, 1, 2, 3, 5, 8, 3, 1, 4}, {2, 6, 8, 4}, {5, 5}},
	}
	sel := []int{0, 2}
	colors := colorize.Map(d.Sequences, sel, colorize.Options{})
	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)

	s := Summarize(d, sel, colors, now, Options{})
	if s.Base != 10 || s.Total != 3 || s.Selected != 2 {
		t.Fatalf("header = %d/%d/%d, want 10/3/2", s.Base, s.Total, s.Selected)
	}
	if len(s.Entries) != 2 || s.Overflow != 0 {
		t.Fatalf("entries = %d overflow = %d, want 2/0", len(s.Entries), s.Overflow)
	}
	if e := s.Entries[0]; e.Index != 0 || e.Length != 10 {
		t.Errorf("entry 0 = %+v", e)
	}
	if e := s.Entries[1]; e.Index != 2 || e.Length != 2 || e.Preview != "[5, 5]" {
		t.Errorf("entry 1 = %+v", e)
	}
	if s.Entries[0].ColorHex != colors[0].Hex() {
		t.Errorf("entry 0 color = %s, want %s", s.Entries[0].ColorHex, colors[0].Hex())
	}
}

func TestSummarizeOverflow(t *testing.T) {
	seqs := make([][]int, 30)
	sel := make([]int, 30)
	for i := range seqs {
		seqs[i] = []int{0, 1}
		sel[i] = i
	}
	d := &payload.Dataset{Base: 7, Sequences: seqs}
	colors := colorize.Map(seqs, sel, colorize.Options{})

	s := Summarize(d, sel, colors, time.Now(), Options{})
	if len(s.Entries) != DefaultDisplayLimit {
		t.Fatalf("entries = %d, want %d", len(s.Entries), DefaultDisplayLimit)
	}
	if s.Overflow != 10 {
		t.Fatalf("overflow = %d, want 10", s.Overflow)
	}
	if s.Selected != 30 {
		t.Fatalf("selected = %d, want 30", s.Selected)
	}
}

func TestText(t *testing.T) {
	d := &payload.Dataset{Base: 5, Sequences: [][]int{{0, 1, 1, 2, 3}}}
	sel := []int{0}
	colors := colorize.Map(d.Sequences, sel, colorize.Options{})
	now := time.Date(2026, 8, 29, 9, 30, 0, 0, time.UTC)

	got := Summarize(d, sel, colors, now, Options{}).Text()
	for _, want := range []string{
		"Modulo: 5\n",
		"Total Sequences: 1\n",
		"Selected: 1\n",
		"[0] Length=5\n    [0, 1, 1, 2, 3]\n",
		"Generation Time: 2026-08-29 09:30:00\n",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("Text() missing %q in:\n%s", want, got)
		}
	}
	if strings.Contains(got, "more sequences") {
		t.Errorf("Text() reports overflow for a non-overflowing summary:\n%s", got)
	}
}
