// Package legend builds the side-panel summary of the current selection.
package legend

import (
	"fmt"
	"strings"
	"time"

	"github.com/XuanzhengZhou/fibonacci-mod-visualizer/internal/colorize"
	"github.com/XuanzhengZhou/fibonacci-mod-visualizer/internal/payload"
)

const (
	DefaultPreviewLimit = 8
	DefaultDisplayLimit = 20
)

// Options tunes the summary. The zero value selects the defaults.
type Options struct {
	PreviewLimit int
	DisplayLimit int
}

func (o Options) withDefaults() Options {
	if o.PreviewLimit == 0 {
		o.PreviewLimit = DefaultPreviewLimit
	}
	if o.DisplayLimit == 0 {
		o.DisplayLimit = DefaultDisplayLimit
	}
	return o
}

// Entry describes one selected sequence.
type Entry struct {
	Index    int
	Length   int
	ColorHex string
	Preview  string
}

// Summary carries the dataset-level metadata plus the visible entries.
// GeneratedAt is supplied by the caller so the builder stays pure.
type Summary struct {
	Base        int
	Total       int
	Selected    int
	GeneratedAt time.Time
	Entries     []Entry
	// Overflow counts selected sequences beyond the display limit.
	Overflow int
}

// Preview renders the first limit elements as a truncated literal list, or
// the whole sequence when it fits.
func Preview(seq []int, limit int) string {
	var b strings.Builder
	b.WriteByte('[')
	n := len(seq)
	if n > limit {
		n = limit
	}
	for i := 0; i < n; i++ {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%d", seq[i])
	}
	if len(seq) > limit {
		b.WriteString("...")
	} else {
		b.WriteByte(']')
	}
	return b.String()
}

// Summarize builds the summary for the selected sequences in ascending index
// order. Entries past the display limit are dropped and counted in Overflow.
func Summarize(d *payload.Dataset, selected []int, colors map[int]colorize.RGBA, now time.Time, opt Options) Summary {
	opt = opt.withDefaults()

	s := Summary{
		Base:        d.Base,
		Total:       len(d.Sequences),
		Selected:    len(selected),
		GeneratedAt: now,
	}

	shown := selected
	if len(shown) > opt.DisplayLimit {
		s.Overflow = len(shown) - opt.DisplayLimit
		shown = shown[:opt.DisplayLimit]
	}

	s.Entries = make([]Entry, 0, len(shown))
	for _, idx := range shown {
		seq := d.Sequences[idx]
		s.Entries = append(s.Entries, Entry{
			Index:    idx,
			Length:   len(seq),
			ColorHex: colors[idx].Hex(),
			Preview:  Preview(seq, opt.PreviewLimit),
		})
	}
	return s
}

// Text renders the summary as the monospace side-panel block.
func (s Summary) Text() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Modulo: %d\n", s.Base)
	fmt.Fprintf(&b, "Total Sequences: %d\n", s.Total)
	fmt.Fprintf(&b, "Selected: %d\n\n", s.Selected)
	for _, e := range s.Entries {
		fmt.Fprintf(&b, "[%d] Length=%d\n    %s\n", e.Index, e.Length, e.Preview)
	}
	if s.Overflow > 0 {
		fmt.Fprintf(&b, "\n... %d more sequences\n", s.Overflow)
	}
	fmt.Fprintf(&b, "\nGeneration Time: %s\n", s.GeneratedAt.Format("2006-01-02 15:04:05"))
	return b.String()
}
