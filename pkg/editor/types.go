package editor

import "fmt"

// Style is the set of inline attributes a range can carry.
// Color is empty or a canonical `#RRGGBB` string.
type Style struct {
	Bold   bool   `json:"bold,omitempty"`
	Italic bool   `json:"italic,omitempty"`
	Color  string `json:"color,omitempty"`
}

// IsZero reports whether s carries no attribute.
func (s Style) IsZero() bool {
	return !s.Bold && !s.Italic && s.Color == ""
}

// StyleRange annotates [Start, End) of the buffer with Style.
type StyleRange struct {
	Style Style `json:"style"`
	Start int   `json:"start"`
	End   int   `json:"end"`
}

// Len returns the number of runes covered by the range.
func (r StyleRange) Len() int {
	if r.End < r.Start {
		return 0
	}
	return r.End - r.Start
}

func (r StyleRange) String() string {
	return fmt.Sprintf("[%d,%d)%+v", r.Start, r.End, r.Style)
}

// Selection is a cursor selection into the buffer. Start == End is a caret.
type Selection struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Caret returns a collapsed selection at off.
func Caret(off int) Selection {
	return Selection{Start: off, End: off}
}

// Collapsed reports whether the selection is a bare caret.
func (s Selection) Collapsed() bool {
	return s.Start == s.End
}

// Normalize orders Start <= End.
func (s Selection) Normalize() Selection {
	if s.Start > s.End {
		return Selection{Start: s.End, End: s.Start}
	}
	return s
}

func clampInt(v, min, max int) int {
	if max < min {
		return min
	}
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

func clampSelection(s Selection, n int) Selection {
	s = s.Normalize()
	return Selection{Start: clampInt(s.Start, 0, n), End: clampInt(s.End, 0, n)}
}
