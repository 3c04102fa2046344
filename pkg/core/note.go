package core

import (
	"time"

	"github.com/aretw0/jotter/pkg/editor"
	"github.com/aretw0/jotter/pkg/palette"
)

// Note is the central entity of the domain.
// Content holds the editor markup; PlainText strips it.
type Note struct {
	ID              int64         `json:"id"`
	Title           string        `json:"title"`
	Content         string        `json:"content"`
	TextColor       palette.Color `json:"text_color"`
	BackgroundColor palette.Color `json:"background_color"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
	ScheduledDate   *time.Time    `json:"scheduled_date,omitempty"`
}

// PlainText returns the content without markup.
func (n Note) PlainText() string {
	return editor.StripMarkup(n.Content)
}

// FormattedTime returns the local creation time as HH:mm.
func (n Note) FormattedTime() string {
	return n.CreatedAt.Local().Format("15:04")
}

// FormattedDate returns the scheduled date, or the creation date, as dd.MM.yyyy.
func (n Note) FormattedDate() string {
	return FormatDate(n.Day())
}

// Day returns the date the note belongs to on the calendar.
func (n Note) Day() time.Time {
	if n.ScheduledDate != nil {
		return *n.ScheduledDate
	}
	return n.CreatedAt
}

// Preview returns at most max graphemes of the plain text.
func (n Note) Preview(max int) string {
	return Preview(n.PlainText(), max)
}
