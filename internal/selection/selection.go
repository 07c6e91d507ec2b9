// Package selection parses index-range expressions and maintains the set of
// sequence indices chosen for visualization.
package selection

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// ErrInvalidFormat marks an expression that is rejected as a whole: any token
// that does not parse as an index or a range invalidates the entire input and
// no partial selection is applied.
var ErrInvalidFormat = errors.New("invalid selection format")

// Warning reports a well-formed token that was skipped rather than applied.
type Warning struct {
	Token  string
	Reason string
}

func (w Warning) String() string {
	return fmt.Sprintf("skipped %q: %s", w.Token, w.Reason)
}

// Set is an ascending, duplicate-free list of sequence indices.
type Set []int

// Parse evaluates a comma-separated list of indices and inclusive ranges
// against validCount sequences, e.g. "3-5,6,7-21".
//
// Two failure modes are deliberately different:
//   - a token that is not numeric fails atomically with ErrInvalidFormat and
//     no result is returned;
//   - a numeric token whose indices fall outside [0, validCount), or a
//     reversed range (end < start), is skipped with a warning and parsing
//     continues.
//
// An empty result with warnings is valid: every token was skippable.
func Parse(expr string, validCount int) (Set, []Warning, error) {
	var warnings []Warning
	picked := make(map[int]bool)

	for _, raw := range strings.Split(expr, ",") {
		tok := strings.TrimSpace(raw)
		if idx := strings.Index(tok, "-"); idx >= 0 {
			start, err1 := strconv.Atoi(strings.TrimSpace(tok[:idx]))
			end, err2 := strconv.Atoi(strings.TrimSpace(tok[idx+1:]))
			// A negative end can only come from a second dash ("1--3").
			if err1 != nil || err2 != nil || end < 0 {
				return nil, nil, fmt.Errorf("token %q: %w", tok, ErrInvalidFormat)
			}
			if end < start {
				warnings = append(warnings, Warning{Token: tok, Reason: "reversed range"})
				continue
			}
			if start < 0 || end >= validCount {
				warnings = append(warnings, Warning{Token: tok, Reason: fmt.Sprintf("outside [0, %d)", validCount)})
				continue
			}
			for i := start; i <= end; i++ {
				picked[i] = true
			}
			continue
		}

		n, err := strconv.Atoi(tok)
		if err != nil {
			return nil, nil, fmt.Errorf("token %q: %w", tok, ErrInvalidFormat)
		}
		if n < 0 || n >= validCount {
			warnings = append(warnings, Warning{Token: tok, Reason: fmt.Sprintf("outside [0, %d)", validCount)})
			continue
		}
		picked[n] = true
	}

	out := make(Set, 0, len(picked))
	for i := range picked {
		out = append(out, i)
	}
	sort.Ints(out)
	return out, warnings, nil
}

// All returns the full selection {0 .. n-1}.
func All(n int) Set {
	s := make(Set, n)
	for i := range s {
		s[i] = i
	}
	return s
}

// Union merges two sets into a new ascending set.
func Union(a, b Set) Set {
	merged := make(map[int]bool, len(a)+len(b))
	for _, i := range a {
		merged[i] = true
	}
	for _, i := range b {
		merged[i] = true
	}
	out := make(Set, 0, len(merged))
	for i := range merged {
		out = append(out, i)
	}
	sort.Ints(out)
	return out
}

// Remove returns a without the given index.
func Remove(a Set, idx int) Set {
	out := make(Set, 0, len(a))
	for _, i := range a {
		if i != idx {
			out = append(out, i)
		}
	}
	return out
}

// Contains reports whether idx is selected. The set is ascending so a binary
// search suffices.
func (s Set) Contains(idx int) bool {
	i := sort.SearchInts(s, idx)
	return i < len(s) && s[i] == idx
}

// Clone returns an independent copy.
func (s Set) Clone() Set {
	c := make(Set, len(s))
	copy(c, s)
	return c
}
