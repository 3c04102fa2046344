package editor

// BulletPrefix marks a bulleted line (U+2022 followed by a space).
const BulletPrefix = "• "

const (
	bulletGlyph = '•'
	bulletLen   = 2
)

// lineStart returns the offset of the first rune of the line containing off.
func lineStart(text []rune, off int) int {
	off = clampInt(off, 0, len(text))
	for i := off - 1; i >= 0; i-- {
		if text[i] == '\n' {
			return i + 1
		}
	}
	return 0
}

// lineEnd returns the offset of the newline ending the line containing off,
// or len(text) for the last line.
func lineEnd(text []rune, off int) int {
	off = clampInt(off, 0, len(text))
	for i := off; i < len(text); i++ {
		if text[i] == '\n' {
			return i
		}
	}
	return len(text)
}

// lineIndex returns the 0-based line number containing off.
func lineIndex(text []rune, off int) int {
	off = clampInt(off, 0, len(text))
	n := 0
	for i := 0; i < off; i++ {
		if text[i] == '\n' {
			n++
		}
	}
	return n
}

// indentLen counts the spaces and tabs opening the line that starts at start.
func indentLen(text []rune, start int) int {
	n := 0
	for i := start; i < len(text) && (text[i] == ' ' || text[i] == '\t'); i++ {
		n++
	}
	return n
}

// marker locates the bullet marker of the line starting at start.
// It returns the marker offset and whether the line is bulleted.
func marker(text []rune, start int) (int, bool) {
	pos := start + indentLen(text, start)
	if pos+1 < len(text) && text[pos] == bulletGlyph && text[pos+1] == ' ' {
		return pos, true
	}
	return pos, false
}

// bulletLines scans every line and returns the indices of bulleted ones.
func bulletLines(text []rune) []int {
	var out []int
	line := 0
	start := 0
	for {
		if _, ok := marker(text, start); ok {
			out = append(out, line)
		}
		end := lineEnd(text, start)
		if end >= len(text) {
			return out
		}
		start = end + 1
		line++
	}
}

func splice(text []rune, start, end int, insert []rune) []rune {
	out := make([]rune, 0, len(text)-(end-start)+len(insert))
	out = append(out, text[:start]...)
	out = append(out, insert...)
	out = append(out, text[end:]...)
	return out
}
