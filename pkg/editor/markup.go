package editor

import (
	"regexp"
	"sort"
	"strings"

	"github.com/aretw0/jotter/pkg/palette"
)

// Markup tags understood by ParseMarkup and produced by RenderMarkup.
const (
	BoldOpen    = "<b>"
	BoldClose   = "</b>"
	ItalicOpen  = "<i>"
	ItalicClose = "</i>"
	FontClose   = "</font>"
)

var fontOpenRe = regexp.MustCompile(`^<font color=['"](#[0-9A-Fa-f]{6})['"]>`)

// FontOpen returns the opening color tag for a `#RRGGBB` color.
func FontOpen(hex string) string {
	return "<font color='" + hex + "'>"
}

type tagKind int

const (
	tagNone tagKind = iota
	tagBold
	tagItalic
	tagFont
)

type token struct {
	text  string // literal text, or the raw tag
	kind  tagKind
	close bool
	color string
	pair  int // index of the matching token, -1 when unmatched
}

// matchTag returns the tag token s starts with, or nil.
func matchTag(s string) *token {
	switch {
	case strings.HasPrefix(s, BoldOpen):
		return &token{text: BoldOpen, kind: tagBold}
	case strings.HasPrefix(s, BoldClose):
		return &token{text: BoldClose, kind: tagBold, close: true}
	case strings.HasPrefix(s, ItalicOpen):
		return &token{text: ItalicOpen, kind: tagItalic}
	case strings.HasPrefix(s, ItalicClose):
		return &token{text: ItalicClose, kind: tagItalic, close: true}
	case strings.HasPrefix(s, FontClose):
		return &token{text: FontClose, kind: tagFont, close: true}
	}
	if m := fontOpenRe.FindStringSubmatch(s); m != nil {
		return &token{text: m[0], kind: tagFont, color: strings.ToUpper(m[1])}
	}
	return nil
}

func tokenize(s string) []token {
	var toks []token
	var lit strings.Builder
	flush := func() {
		if lit.Len() > 0 {
			toks = append(toks, token{text: lit.String(), pair: -1})
			lit.Reset()
		}
	}

	for i := 0; i < len(s); {
		if s[i] != '<' {
			lit.WriteByte(s[i])
			i++
			continue
		}
		tok := matchTag(s[i:])
		if tok == nil {
			lit.WriteByte('<')
			i++
			continue
		}
		flush()
		tok.pair = -1
		toks = append(toks, *tok)
		i += len(tok.text)
	}
	flush()
	return toks
}

// pairTags matches every closing tag with the nearest open tag of its kind.
func pairTags(toks []token) {
	stacks := map[tagKind][]int{}
	for i := range toks {
		t := &toks[i]
		if t.kind == tagNone {
			continue
		}
		if !t.close {
			stacks[t.kind] = append(stacks[t.kind], i)
			continue
		}
		st := stacks[t.kind]
		if len(st) == 0 {
			continue
		}
		open := st[len(st)-1]
		stacks[t.kind] = st[:len(st)-1]
		toks[open].pair = i
		t.pair = open
	}
}

// ParseMarkup splits markup into clean text and style ranges. Tags that are not
// properly paired are kept as literal text. The returned ranges are canonical.
func ParseMarkup(markup string) (string, []StyleRange) {
	toks := tokenize(markup)
	pairTags(toks)

	type span struct {
		order int
		rng   StyleRange
	}
	var text strings.Builder
	var spans []span
	off := 0
	open := map[int]int{} // open token index -> rune offset
	for i, t := range toks {
		if t.kind == tagNone || t.pair < 0 {
			text.WriteString(t.text)
			off += len([]rune(t.text))
			continue
		}
		if !t.close {
			open[i] = off
			continue
		}
		start := open[t.pair]
		var st Style
		switch t.kind {
		case tagBold:
			st.Bold = true
		case tagItalic:
			st.Italic = true
		case tagFont:
			st.Color = toks[t.pair].color
		}
		spans = append(spans, span{order: t.pair, rng: StyleRange{Style: st, Start: start, End: off}})
	}

	// Outer tags open first; inner colors must be applied after them to win.
	sort.SliceStable(spans, func(a, b int) bool { return spans[a].order < spans[b].order })
	ranges := make([]StyleRange, 0, len(spans))
	for _, s := range spans {
		ranges = append(ranges, s.rng)
	}

	clean := text.String()
	return clean, normalizeRanges(ranges, len([]rune(clean)))
}

// RenderMarkup serializes clean text and ranges into the inline markup dialect.
// Each styled run is wrapped independently, color outermost, then bold, then italic.
func RenderMarkup(text string, ranges []StyleRange) string {
	runes := []rune(text)
	styles := expand(ranges, len(runes))

	var sb strings.Builder
	for i := 0; i < len(runes); {
		j := i + 1
		for j < len(runes) && styles[j] == styles[i] {
			j++
		}
		st := styles[i]
		if st.Color != "" {
			hex := st.Color
			if norm, err := palette.NormalizeHex(hex); err == nil {
				hex = norm
			}
			sb.WriteString(FontOpen(hex))
		}
		if st.Bold {
			sb.WriteString(BoldOpen)
		}
		if st.Italic {
			sb.WriteString(ItalicOpen)
		}
		writeLiteral(&sb, string(runes[i:j]))
		if st.Italic {
			sb.WriteString(ItalicClose)
		}
		if st.Bold {
			sb.WriteString(BoldClose)
		}
		if st.Color != "" {
			sb.WriteString(FontClose)
		}
		i = j
	}
	return sb.String()
}

// writeLiteral writes text so that ParseMarkup reads it back verbatim. A '<'
// that would open a tag is followed by an empty bold pair, which parses to no
// text and no range.
func writeLiteral(sb *strings.Builder, text string) {
	for i := 0; i < len(text); i++ {
		sb.WriteByte(text[i])
		if text[i] == '<' && matchTag(text[i:]) != nil {
			sb.WriteString(BoldOpen + BoldClose)
		}
	}
}

// StripMarkup returns the clean text of markup.
func StripMarkup(markup string) string {
	text, _ := ParseMarkup(markup)
	return text
}
