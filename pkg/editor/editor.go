package editor

import (
	"log/slog"
	"slices"

	"github.com/aretw0/jotter/pkg/palette"
)

// Editor is the formatting state machine of a single open note.
// It is not safe for concurrent use; the host drives it from one event loop.
type Editor struct {
	text       []rune
	sel        Selection
	ranges     []StyleRange
	bullets    []int
	bulletMode bool
	sticky     Style

	// gen counts buffer changes; memo is only valid for the gen it was taken at.
	gen  int
	memo *toggleMemo

	logger      *slog.Logger
	onValue     func(string)
	onFormatted func(string)
	onTextColor func(string)
}

// toggleMemo remembers what a selection toggle overwrote, so toggling the same
// attribute again over the same selection and buffer restores it.
type toggleMemo struct {
	attr attr
	sel  Selection
	gen  int
	prev []bool
}

// Option configures an Editor.
type Option func(*Editor)

// WithLogger sets the logger used for transition tracing.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Editor) {
		e.logger = logger
	}
}

// WithValueSink registers the callback receiving the clean text after each change.
func WithValueSink(fn func(string)) Option {
	return func(e *Editor) {
		e.onValue = fn
	}
}

// WithFormattedSink registers the callback receiving the markup serialization
// after each change.
func WithFormattedSink(fn func(string)) Option {
	return func(e *Editor) {
		e.onFormatted = fn
	}
}

// WithTextColorSink registers the callback receiving the default text color
// when it is changed without a selection.
func WithTextColorSink(fn func(string)) Option {
	return func(e *Editor) {
		e.onTextColor = fn
	}
}

// New creates an empty editor.
func New(opts ...Option) *Editor {
	e := &Editor{}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// LoadContent replaces the buffer with externally supplied markup, e.g. when a
// stored note is opened. Style ranges come from the markup; bullet mode is on
// when the content already has bulleted lines. Sinks are not notified.
func (e *Editor) LoadContent(markup string) {
	text, ranges := ParseMarkup(markup)
	e.text = []rune(text)
	e.ranges = ranges
	e.sel = Caret(len(e.text))
	e.sticky = Style{}
	e.gen++
	e.rebase()
	e.bulletMode = len(e.bullets) > 0

	if e.logger != nil {
		e.logger.Debug("content loaded", "runes", len(e.text), "ranges", len(e.ranges), "bullets", len(e.bullets))
	}
}

// ApplyTextEdit takes the buffer and selection as they are after the input
// widget applied a keystroke, and reconciles them with the formatting state.
//
// Enter inside a bulleted line continues the list while bullet mode is on; Enter
// on a line holding only the marker ends the list. Deleting into a marker (or the
// newline right before a bulleted line) removes the whole marker instead.
// Anything else passes through.
func (e *Editor) ApplyTextEdit(text string, sel Selection) {
	old := e.text
	next := []rune(text)
	sel = clampSelection(sel, len(next))
	c := diffRunes(old, next, sel.End)

	if c.noop() {
		e.sel = sel
		return
	}

	switch {
	case e.bulletMode && c.removed() == 0 && c.newLen == 1 && next[c.start] == '\n':
		if out, caret, ok := e.continueList(old, c.start); ok {
			e.commit(out, Caret(caret), false)
			e.emit()
			return
		}
	case c.removed() == 1 && c.newLen == 0:
		if out, caret, ok := e.dropMarker(old, c.start); ok {
			e.commit(out, Caret(caret), false)
			e.emit()
			return
		}
	}

	e.commit(next, sel, true)
	e.emit()
}

// continueList handles a newline typed at offset at of old.
func (e *Editor) continueList(old []rune, at int) ([]rune, int, bool) {
	ls := lineStart(old, at)
	le := lineEnd(old, at)
	m, ok := marker(old, ls)
	if !ok || at < m+bulletLen {
		return nil, 0, false
	}

	if le == m+bulletLen {
		// Marker-only line: the second Enter terminates the list.
		e.bulletMode = false
		if e.logger != nil {
			e.logger.Debug("bullet list terminated", "line", lineIndex(old, ls))
		}
		return splice(old, ls, le, nil), ls, true
	}

	insert := append([]rune{'\n'}, old[ls:m]...)
	insert = append(insert, []rune(BulletPrefix)...)
	return splice(old, at, at, insert), at + len(insert), true
}

// dropMarker handles the deletion of the single rune old[at].
func (e *Editor) dropMarker(old []rune, at int) ([]rune, int, bool) {
	if at < 0 || at >= len(old) {
		return nil, 0, false
	}

	var ls int
	if old[at] == '\n' {
		ls = at + 1
	} else {
		ls = lineStart(old, at)
	}
	m, ok := marker(old, ls)
	if !ok {
		return nil, 0, false
	}
	if old[at] != '\n' && at != m && at != m+1 {
		return nil, 0, false
	}

	if e.logger != nil {
		e.logger.Debug("bullet marker removed", "line", lineIndex(old, ls))
	}
	return splice(old, m, m+bulletLen, nil), ls, true
}

// ToggleBold toggles bold over the selection, or the sticky bold flag when the
// selection is collapsed.
func (e *Editor) ToggleBold() {
	e.toggle(attrBold)
}

// ToggleItalic toggles italic over the selection, or the sticky italic flag when
// the selection is collapsed.
func (e *Editor) ToggleItalic() {
	e.toggle(attrItalic)
}

func (e *Editor) toggle(a attr) {
	sel := clampSelection(e.sel, len(e.text))
	if sel.Collapsed() {
		e.sticky = a.set(e.sticky, !a.get(e.sticky))
		if e.logger != nil {
			e.logger.Debug("sticky style toggled", "attr", a.String(), "on", a.get(e.sticky))
		}
		return
	}

	styles := expand(e.ranges, len(e.text))
	if m := e.memo; m != nil && m.attr == a && m.sel == sel && m.gen == e.gen {
		for i, v := range m.prev {
			styles[sel.Start+i] = a.set(styles[sel.Start+i], v)
		}
		e.memo = nil
		e.ranges = compact(styles)
		if e.logger != nil {
			e.logger.Debug("selection style restored", "attr", a.String(), "start", sel.Start, "end", sel.End)
		}
		e.emit()
		return
	}

	mask := markerMask(e.text)
	on := !coveredOutside(styles, mask, sel.Start, sel.End, a)
	e.memo = nil
	if on {
		prev := make([]bool, sel.End-sel.Start)
		for i := range prev {
			prev[i] = a.get(styles[sel.Start+i])
		}
		e.memo = &toggleMemo{attr: a, sel: sel, gen: e.gen, prev: prev}
	}
	for i := sel.Start; i < sel.End; i++ {
		if !mask[i] {
			styles[i] = a.set(styles[i], on)
		}
	}
	e.ranges = compact(styles)

	if e.logger != nil {
		e.logger.Debug("selection style toggled", "attr", a.String(), "on", on, "start", sel.Start, "end", sel.End)
	}
	e.emit()
}

// ToggleBulletList adds or strips the marker of the line holding the caret.
// Bullet mode is not simply flipped: it is set to whether the caret line is
// bulleted after the toggle.
func (e *Editor) ToggleBulletList() {
	caret := clampInt(e.sel.Normalize().Start, 0, len(e.text))
	ls := lineStart(e.text, caret)
	m, ok := marker(e.text, ls)

	var next []rune
	if ok {
		next = splice(e.text, m, m+bulletLen, nil)
		switch {
		case caret >= m+bulletLen:
			caret -= bulletLen
		case caret > m:
			caret = m
		}
	} else {
		next = splice(e.text, m, m, []rune(BulletPrefix))
		if caret >= m {
			caret += bulletLen
		}
	}
	e.bulletMode = !ok

	e.commit(next, Caret(caret), false)
	if e.logger != nil {
		e.logger.Debug("bullet toggled", "line", lineIndex(e.text, caret), "bulleted", !ok)
	}
	e.emit()
}

// SetTextColor colors the selection, or sets the sticky default text color when
// the selection is collapsed. An empty hex clears the color. Invalid colors are
// ignored.
func (e *Editor) SetTextColor(hex string) {
	if hex != "" {
		norm, err := palette.NormalizeHex(hex)
		if err != nil {
			if e.logger != nil {
				e.logger.Warn("ignoring invalid text color", "color", hex, "error", err)
			}
			return
		}
		hex = norm
	}

	sel := clampSelection(e.sel, len(e.text))
	if sel.Collapsed() {
		e.sticky.Color = hex
		if e.onTextColor != nil {
			e.onTextColor(hex)
		}
		return
	}

	styles := expand(e.ranges, len(e.text))
	mask := markerMask(e.text)
	for i := sel.Start; i < sel.End; i++ {
		if !mask[i] {
			styles[i].Color = hex
		}
	}
	e.ranges = compact(styles)
	e.emit()
}

// SetSelection moves the caret or selection without editing.
func (e *Editor) SetSelection(sel Selection) {
	e.sel = clampSelection(sel, len(e.text))
}

// commit installs next as the buffer, shifting the overlay across the change.
func (e *Editor) commit(next []rune, sel Selection, applySticky bool) {
	sel = clampSelection(sel, len(next))
	c := diffRunes(e.text, next, sel.End)
	e.ranges = shiftRanges(e.ranges, c)

	if applySticky && c.newLen > 0 && !e.sticky.IsZero() {
		styles := expand(e.ranges, len(next))
		for i := c.start; i < c.start+c.newLen; i++ {
			styles[i].Bold = styles[i].Bold || e.sticky.Bold
			styles[i].Italic = styles[i].Italic || e.sticky.Italic
			if e.sticky.Color != "" {
				styles[i].Color = e.sticky.Color
			}
		}
		e.ranges = compact(styles)
	}

	e.text = next
	e.sel = sel
	e.gen++
	e.rebase()
}

// rebase re-derives the bullet set from the buffer and keeps markers unstyled.
func (e *Editor) rebase() {
	styles := expand(e.ranges, len(e.text))
	for i, m := range markerMask(e.text) {
		if m {
			styles[i] = Style{}
		}
	}
	e.ranges = compact(styles)
	e.bullets = bulletLines(e.text)
}

func (e *Editor) emit() {
	if e.onValue != nil {
		e.onValue(e.Text())
	}
	if e.onFormatted != nil {
		e.onFormatted(e.Markup())
	}
}

// markerMask flags the runes that belong to a bullet marker.
func markerMask(text []rune) []bool {
	mask := make([]bool, len(text))
	start := 0
	for {
		if m, ok := marker(text, start); ok {
			mask[m] = true
			mask[m+1] = true
		}
		end := lineEnd(text, start)
		if end >= len(text) {
			return mask
		}
		start = end + 1
	}
}

// coveredOutside reports whether every unmasked rune of [start, end) carries a.
// A range made only of masked runes is never covered.
func coveredOutside(styles []Style, mask []bool, start, end int, a attr) bool {
	seen := false
	for i := start; i < end; i++ {
		if mask[i] {
			continue
		}
		seen = true
		if !a.get(styles[i]) {
			return false
		}
	}
	return seen
}

// Text returns the clean buffer.
func (e *Editor) Text() string {
	return string(e.text)
}

// Markup returns the buffer serialized with inline markup.
func (e *Editor) Markup() string {
	return RenderMarkup(string(e.text), e.ranges)
}

// Selection returns the current selection.
func (e *Editor) Selection() Selection {
	return e.sel
}

// Ranges returns a copy of the canonical style overlay.
func (e *Editor) Ranges() []StyleRange {
	return slices.Clone(e.ranges)
}

// BulletLines returns the 0-based indices of bulleted lines.
func (e *Editor) BulletLines() []int {
	return slices.Clone(e.bullets)
}

// BulletMode reports whether Enter continues bulleted lists.
func (e *Editor) BulletMode() bool {
	return e.bulletMode
}

// StickyStyle returns the style applied to newly typed text.
func (e *Editor) StickyStyle() Style {
	return e.sticky
}

// StyleAt returns the effective style of the rune at off.
func (e *Editor) StyleAt(off int) Style {
	if off < 0 || off >= len(e.text) {
		return Style{}
	}
	for _, r := range e.ranges {
		if off >= r.Start && off < r.End {
			return r.Style
		}
	}
	return Style{}
}
