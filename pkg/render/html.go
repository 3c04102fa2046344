// Package render turns note content into HTML.
package render

import (
	"bytes"
	"fmt"
	"html"
	"regexp"
	"strings"
	"unicode"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	gmhtml "github.com/yuin/goldmark/renderer/html"

	"github.com/aretw0/jotter/pkg/editor"
)

var markdown = goldmark.New(
	goldmark.WithExtensions(extension.Linkify, extension.Strikethrough),
	goldmark.WithRendererOptions(gmhtml.WithHardWraps()),
)

// Markup tags travel through goldmark as private use runes and are swapped
// back after rendering. A font tag is fontMark, six hex digits, fontEnd.
const (
	boldMark        = '\uE000'
	boldCloseMark   = '\uE001'
	italicMark      = '\uE002'
	italicCloseMark = '\uE003'
	fontMark        = '\uE004'
	fontEnd         = '\uE005'
	fontCloseMark   = '\uE006'
)

var (
	toMarks = strings.NewReplacer(
		editor.BoldOpen, string(boldMark),
		editor.BoldClose, string(boldCloseMark),
		editor.ItalicOpen, string(italicMark),
		editor.ItalicClose, string(italicCloseMark),
		editor.FontClose, string(fontCloseMark),
	)
	fromMarks = strings.NewReplacer(
		string(boldMark), editor.BoldOpen,
		string(boldCloseMark), editor.BoldClose,
		string(italicMark), editor.ItalicOpen,
		string(italicCloseMark), editor.ItalicClose,
		string(fontCloseMark), editor.FontClose,
	)
	fontOpenRe = regexp.MustCompile(`<font color='#([0-9A-F]{6})'>`)
	fontMarkRe = regexp.MustCompile(string(fontMark) + `([0-9A-F]{6})` + string(fontEnd))
)

// HTML renders note content as an HTML fragment. The content is Markdown with
// the editor's inline markup; bulleted lines become a list. Any other HTML in
// the content is escaped, so only the markup tags reach the output raw.
// Dangerous link and image destinations are dropped.
func HTML(content string) (string, error) {
	text, ranges := editor.ParseMarkup(content)
	escaped, ranges := escape(text, ranges)

	source := editor.RenderMarkup(escaped, ranges)
	source = fontOpenRe.ReplaceAllString(source, string(fontMark)+"$1"+string(fontEnd))
	source = toMarks.Replace(source)

	var buf bytes.Buffer
	if err := markdown.Convert([]byte(source), &buf); err != nil {
		return "", fmt.Errorf("failed to render markdown: %w", err)
	}
	out := fontMarkRe.ReplaceAllString(buf.String(), editor.FontOpen("#$1"))
	return fromMarks.Replace(out), nil
}

// escape HTML-escapes text, rewrites bullet markers as Markdown list markers
// and moves ranges to the escaped offsets.
func escape(text string, ranges []editor.StyleRange) (string, []editor.StyleRange) {
	runes := []rune(text)
	offsets := make([]int, len(runes)+1)

	var sb strings.Builder
	n := 0
	lineStart, indent := true, true
	for i, r := range runes {
		offsets[i] = n
		if lineStart {
			indent = true
		}
		var s string
		switch {
		case indent && r == '•' && i+1 < len(runes) && runes[i+1] == ' ':
			s = "-"
		case r >= boldMark && r <= fontCloseMark:
			s = string(unicode.ReplacementChar)
		default:
			s = html.EscapeString(string(r))
		}
		if r != ' ' && r != '\t' {
			indent = false
		}
		lineStart = r == '\n'
		sb.WriteString(s)
		n += len([]rune(s))
	}
	offsets[len(runes)] = n

	moved := make([]editor.StyleRange, len(ranges))
	for i, rg := range ranges {
		moved[i] = editor.StyleRange{Style: rg.Style, Start: offsets[rg.Start], End: offsets[rg.End]}
	}
	return sb.String(), moved
}
