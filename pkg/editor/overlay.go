package editor

// The overlay is kept canonical: ranges are sorted, disjoint, non-empty, carry a
// non-zero style, and adjacent ranges never share the same style. Two overlays
// describing the same per-rune styling are therefore equal, which keeps the
// markup serialization stable across toggles.

// change describes old[start:oldEnd] being replaced by newLen runes.
type change struct {
	start  int
	oldEnd int
	newLen int
}

func (c change) delta() int {
	return c.newLen - (c.oldEnd - c.start)
}

func (c change) removed() int {
	return c.oldEnd - c.start
}

func (c change) noop() bool {
	return c.oldEnd == c.start && c.newLen == 0
}

// diffRunes finds the single replacement turning old into cur.
// caret is the caret position in cur after the edit; the text after the caret
// is assumed untouched, which disambiguates edits among repeated runes.
func diffRunes(old, cur []rune, caret int) change {
	caret = clampInt(caret, 0, len(cur))
	limit := min(len(old), len(cur))

	suffix := 0
	maxSuffix := min(limit, len(cur)-caret)
	for suffix < maxSuffix && old[len(old)-1-suffix] == cur[len(cur)-1-suffix] {
		suffix++
	}

	prefix := 0
	maxPrefix := limit - suffix
	for prefix < maxPrefix && old[prefix] == cur[prefix] {
		prefix++
	}

	return change{
		start:  prefix,
		oldEnd: len(old) - suffix,
		newLen: len(cur) - suffix - prefix,
	}
}

// mapStart moves a range start across c. A start inside the replaced region
// lands after the inserted text.
func (c change) mapStart(pos int) int {
	switch {
	case pos < c.start:
		return pos
	case pos >= c.oldEnd:
		return pos + c.delta()
	default:
		return c.start + c.newLen
	}
}

// mapEnd moves a range end across c. An end inside the replaced region collapses
// to the replacement start, so inserted text is never pulled into a range that
// merely touches it.
func (c change) mapEnd(pos int) int {
	switch {
	case pos <= c.start:
		return pos
	case pos >= c.oldEnd:
		return pos + c.delta()
	default:
		return c.start
	}
}

// shiftRanges applies c to every range and drops the ones that vanished.
func shiftRanges(ranges []StyleRange, c change) []StyleRange {
	if c.noop() {
		return ranges
	}
	out := ranges[:0:0]
	for _, r := range ranges {
		start, end := c.mapStart(r.Start), c.mapEnd(r.End)
		if end <= start {
			continue
		}
		out = append(out, StyleRange{Style: r.Style, Start: start, End: end})
	}
	return out
}

// expand renders ranges into one style per rune. Bold and italic accumulate;
// the last range with a color wins.
func expand(ranges []StyleRange, n int) []Style {
	styles := make([]Style, n)
	for _, r := range ranges {
		start, end := clampInt(r.Start, 0, n), clampInt(r.End, 0, n)
		for i := start; i < end; i++ {
			styles[i].Bold = styles[i].Bold || r.Style.Bold
			styles[i].Italic = styles[i].Italic || r.Style.Italic
			if r.Style.Color != "" {
				styles[i].Color = r.Style.Color
			}
		}
	}
	return styles
}

// compact turns per-rune styles back into canonical ranges.
func compact(styles []Style) []StyleRange {
	var out []StyleRange
	for i := 0; i < len(styles); {
		j := i + 1
		for j < len(styles) && styles[j] == styles[i] {
			j++
		}
		if !styles[i].IsZero() {
			out = append(out, StyleRange{Style: styles[i], Start: i, End: j})
		}
		i = j
	}
	return out
}

func normalizeRanges(ranges []StyleRange, n int) []StyleRange {
	return compact(expand(ranges, n))
}

// attr selects one attribute of a Style.
type attr int

const (
	attrBold attr = iota
	attrItalic
)

func (a attr) String() string {
	if a == attrBold {
		return "bold"
	}
	return "italic"
}

func (a attr) get(s Style) bool {
	if a == attrBold {
		return s.Bold
	}
	return s.Italic
}

func (a attr) set(s Style, v bool) Style {
	if a == attrBold {
		s.Bold = v
	} else {
		s.Italic = v
	}
	return s
}
