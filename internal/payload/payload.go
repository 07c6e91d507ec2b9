package payload

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
)

// MaxBase bounds the modulus accepted from any source. A base of m implies an
// m×m grid downstream, so this also caps the worst-case buffer dimension.
const MaxBase = 1000000

// Pair is one (a, b) residue pair, serialized as a two-element JSON array.
type Pair [2]int

// Cycle is the closed walk of residue pairs belonging to one sequence. The
// core treats cycles as pass-through data: they are validated for shape at the
// boundary and re-emitted unchanged on export.
type Cycle []Pair

// Dataset is the exchange payload produced by the upstream period solver.
// Sequence identity is positional: index i in Sequences is the stable key
// used by selection, coloring, grid cells and legend entries.
type Dataset struct {
	Base        int     `json:"base"`
	Sequences   [][]int `json:"sequences"`
	CyclesPairs []Cycle `json:"cycles_pairs"`
}

// Export is the dataset plus the selection at export time.
type Export struct {
	Base        int     `json:"base"`
	Sequences   [][]int `json:"sequences"`
	CyclesPairs []Cycle `json:"cycles_pairs"`
	Selected    []int   `json:"selected_sequences"`
}

// SchemaError reports a payload that decoded as JSON but does not describe a
// usable dataset.
type SchemaError struct {
	Field  string
	Reason string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("payload schema: %s: %s", e.Field, e.Reason)
}

// Decode parses and validates a dataset document. Unknown keys (the solver
// also emits sequence_count) are ignored.
func Decode(data []byte) (*Dataset, error) {
	var d Dataset
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("decode payload: %w", err)
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return &d, nil
}

// DecodeExport parses an exported document, returning the dataset and the
// ascending selection it carried. A document without selected_sequences is a
// valid export with an empty selection.
func DecodeExport(data []byte) (*Dataset, []int, error) {
	var e Export
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, nil, fmt.Errorf("decode payload: %w", err)
	}
	d := &Dataset{Base: e.Base, Sequences: e.Sequences, CyclesPairs: e.CyclesPairs}
	if err := d.Validate(); err != nil {
		return nil, nil, err
	}
	seen := make(map[int]bool, len(e.Selected))
	for _, idx := range e.Selected {
		if idx < 0 || idx >= len(d.Sequences) {
			return nil, nil, &SchemaError{Field: "selected_sequences", Reason: fmt.Sprintf("index %d outside [0, %d)", idx, len(d.Sequences))}
		}
		seen[idx] = true
	}
	selected := make([]int, 0, len(seen))
	for idx := range seen {
		selected = append(selected, idx)
	}
	sort.Ints(selected)
	return d, selected, nil
}

// Validate checks the dataset against the documented schema: a positive
// bounded base and residues within [0, base). Nil slices are normalized so a
// validated dataset always marshals to the documented field shapes.
func (d *Dataset) Validate() error {
	if d.Base < 1 || d.Base > MaxBase {
		return &SchemaError{Field: "base", Reason: fmt.Sprintf("must be in [1, %d], got %d", MaxBase, d.Base)}
	}
	if d.Sequences == nil {
		d.Sequences = [][]int{}
	}
	if d.CyclesPairs == nil {
		d.CyclesPairs = []Cycle{}
	}
	for i, seq := range d.Sequences {
		if len(seq) == 0 {
			return &SchemaError{Field: "sequences", Reason: fmt.Sprintf("sequence %d is empty", i)}
		}
		for j, r := range seq {
			if r < 0 || r >= d.Base {
				return &SchemaError{Field: "sequences", Reason: fmt.Sprintf("sequence %d element %d: residue %d outside [0, %d)", i, j, r, d.Base)}
			}
		}
	}
	for i, cycle := range d.CyclesPairs {
		for j, p := range cycle {
			if p[0] < 0 || p[0] >= d.Base || p[1] < 0 || p[1] >= d.Base {
				return &SchemaError{Field: "cycles_pairs", Reason: fmt.Sprintf("cycle %d pair %d: residue outside [0, %d)", i, j, d.Base)}
			}
		}
	}
	return nil
}

// WriteExport emits the dataset plus selection in the documented export shape.
// The selection must already be ascending; callers hold it that way.
func WriteExport(w io.Writer, d *Dataset, selected []int) error {
	if selected == nil {
		selected = []int{}
	}
	e := Export{Base: d.Base, Sequences: d.Sequences, CyclesPairs: d.CyclesPairs, Selected: selected}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(e)
}

// LoadFile reads an exported or plain dataset document from disk.
func LoadFile(path string) (*Dataset, []int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}
	return DecodeExport(data)
}
