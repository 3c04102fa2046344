package core

import (
	"strings"
	"time"

	"github.com/rivo/uniseg"
)

// PreviewLength is the number of graphemes shown on a note card.
const PreviewLength = 100

// DateLayout is the day format used for display (dd.MM.yyyy).
const DateLayout = "02.01.2006"

// FormatDate formats t in local time as dd.MM.yyyy.
func FormatDate(t time.Time) string {
	return t.Local().Format(DateLayout)
}

// StartOfDay returns local midnight of the day containing t.
func StartOfDay(t time.Time) time.Time {
	t = t.Local()
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

// SameDay reports whether a and b fall on the same local calendar day.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Local().Date()
	by, bm, bd := b.Local().Date()
	return ay == by && am == bm && ad == bd
}

// Preview flattens s to a single line and cuts it to max graphemes, appending
// "..." when something was cut.
func Preview(s string, max int) string {
	s = strings.Join(strings.Fields(s), " ")
	if max <= 0 || uniseg.GraphemeClusterCount(s) <= max {
		return s
	}

	var sb strings.Builder
	g := uniseg.NewGraphemes(s)
	for i := 0; i < max && g.Next(); i++ {
		sb.WriteString(g.Str())
	}
	return sb.String() + "..."
}
