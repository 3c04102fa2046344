// Package editor implements the formatting state machine behind the note editor.
//
// The editor owns a clean text buffer plus an overlay of style ranges (bold,
// italic, color) and keeps both consistent as raw text edits and toolbar
// commands arrive. Bulleted lines are plain text: a line whose content (after
// leading indentation) starts with "• " is bulleted.
//
// Offsets are 0-based rune offsets into the clean buffer. Ranges are half-open:
// [Start, End).
//
// Markup such as `<b>…</b>` is only produced when serializing (Markup) and only
// consumed when loading (LoadContent); it never lives inside the buffer.
//
// All operations are synchronous and never fail: out-of-range offsets are clamped.
package editor
