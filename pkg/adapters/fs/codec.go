package fs

import (
	"bytes"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/aretw0/jotter/pkg/core"
	"github.com/aretw0/jotter/pkg/palette"
)

const fmDelimiter = "---"

// frontmatter is the YAML header of a note file.
type frontmatter struct {
	Title           string         `yaml:"title"`
	TextColor       *palette.Color `yaml:"text_color,omitempty"`
	BackgroundColor *palette.Color `yaml:"background_color,omitempty"`
	CreatedAt       time.Time      `yaml:"created_at"`
	UpdatedAt       time.Time      `yaml:"updated_at"`
	ScheduledDate   *time.Time     `yaml:"scheduled_date,omitempty"`

	// Color is the single card color of early note files. It is read as the
	// background and never written back.
	Color *palette.Color `yaml:"color,omitempty"`
}

// encodeNote renders a note as YAML frontmatter followed by its markup body.
func encodeNote(n core.Note) ([]byte, error) {
	fm := frontmatter{
		Title:           n.Title,
		TextColor:       &n.TextColor,
		BackgroundColor: &n.BackgroundColor,
		CreatedAt:       n.CreatedAt,
		UpdatedAt:       n.UpdatedAt,
		ScheduledDate:   n.ScheduledDate,
	}

	header, err := yaml.Marshal(fm)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal frontmatter: %w", err)
	}

	var buf bytes.Buffer
	buf.WriteString(fmDelimiter + "\n")
	buf.Write(header)
	buf.WriteString(fmDelimiter + "\n")
	buf.WriteString(n.Content)
	return buf.Bytes(), nil
}

// decodeNote parses a note file. Files without frontmatter are read as bare
// content stamped with modTime. The returned note has no ID.
func decodeNote(data []byte, modTime time.Time) (core.Note, error) {
	header, body, ok := splitFrontmatter(data)
	if !ok {
		return core.Note{
			Content:         string(data),
			TextColor:       palette.DefaultText,
			BackgroundColor: palette.DefaultBackground,
			CreatedAt:       modTime,
			UpdatedAt:       modTime,
		}, nil
	}

	var fm frontmatter
	if err := yaml.Unmarshal(header, &fm); err != nil {
		return core.Note{}, fmt.Errorf("failed to parse frontmatter: %w", err)
	}

	n := core.Note{
		Title:           fm.Title,
		Content:         string(body),
		TextColor:       palette.DefaultText,
		BackgroundColor: palette.DefaultBackground,
		CreatedAt:       fm.CreatedAt,
		UpdatedAt:       fm.UpdatedAt,
		ScheduledDate:   fm.ScheduledDate,
	}
	if fm.TextColor != nil {
		n.TextColor = *fm.TextColor
	}
	switch {
	case fm.BackgroundColor != nil:
		n.BackgroundColor = *fm.BackgroundColor
	case fm.Color != nil:
		n.BackgroundColor = *fm.Color
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = modTime
	}
	if n.UpdatedAt.IsZero() {
		n.UpdatedAt = n.CreatedAt
	}
	return n, nil
}

// splitFrontmatter separates "---\n<yaml>---\n<body>".
func splitFrontmatter(data []byte) (header, body []byte, ok bool) {
	data = bytes.ReplaceAll(data, []byte("\r\n"), []byte("\n"))
	open := []byte(fmDelimiter + "\n")
	if !bytes.HasPrefix(data, open) {
		return nil, nil, false
	}
	rest := data[len(open):]

	if bytes.HasPrefix(rest, open) {
		return nil, rest[len(open):], true
	}
	closing := []byte("\n" + fmDelimiter + "\n")
	if i := bytes.Index(rest, closing); i >= 0 {
		return rest[:i+1], rest[i+len(closing):], true
	}
	if bytes.HasSuffix(rest, []byte("\n"+fmDelimiter)) {
		return rest[:len(rest)-len(fmDelimiter)], nil, true
	}
	return nil, nil, false
}
