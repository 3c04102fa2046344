package fs

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/jotter/pkg/core"
	"github.com/aretw0/jotter/pkg/palette"
)

func TestNoteCodec(t *testing.T) {
	created := time.Date(2024, 3, 10, 9, 30, 0, 0, time.UTC)
	scheduled := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	t.Run("Round Trips Every Field", func(t *testing.T) {
		in := core.Note{
			Title:           "groceries: week 10",
			Content:         "• <b>milk</b>\n• eggs\n",
			TextColor:       palette.Red,
			BackgroundColor: palette.Gray,
			CreatedAt:       created,
			UpdatedAt:       created.Add(time.Hour),
			ScheduledDate:   &scheduled,
		}

		data, err := encodeNote(in)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(string(data), "---\n"))
		assert.Contains(t, string(data), "background_color: '#888888'")

		out, err := decodeNote(data, time.Time{})
		require.NoError(t, err)
		assert.Equal(t, in.Title, out.Title)
		assert.Equal(t, in.Content, out.Content)
		assert.Equal(t, in.TextColor, out.TextColor)
		assert.Equal(t, in.BackgroundColor, out.BackgroundColor)
		assert.True(t, in.CreatedAt.Equal(out.CreatedAt))
		assert.True(t, in.UpdatedAt.Equal(out.UpdatedAt))
		require.NotNil(t, out.ScheduledDate)
		assert.True(t, scheduled.Equal(*out.ScheduledDate))
	})

	t.Run("Empty Content", func(t *testing.T) {
		data, err := encodeNote(core.Note{Title: "t", CreatedAt: created})
		require.NoError(t, err)

		out, err := decodeNote(data, time.Time{})
		require.NoError(t, err)
		assert.Equal(t, "", out.Content)
		assert.Nil(t, out.ScheduledDate)
	})

	t.Run("Legacy Color Becomes Background", func(t *testing.T) {
		data := []byte("---\ntitle: old\ncolor: '#00FF00'\ncreated_at: 2020-01-01T00:00:00Z\n---\nbody")

		out, err := decodeNote(data, time.Time{})
		require.NoError(t, err)
		assert.Equal(t, palette.Green, out.BackgroundColor)
		assert.Equal(t, palette.DefaultText, out.TextColor)
		assert.Equal(t, "body", out.Content)
		assert.True(t, out.UpdatedAt.Equal(out.CreatedAt))
	})

	t.Run("Bare Markdown Uses Modification Time", func(t *testing.T) {
		mod := time.Date(2023, 7, 7, 7, 7, 0, 0, time.UTC)

		out, err := decodeNote([]byte("just text"), mod)
		require.NoError(t, err)
		assert.Equal(t, "just text", out.Content)
		assert.True(t, mod.Equal(out.CreatedAt))
		assert.Equal(t, palette.DefaultBackground, out.BackgroundColor)
	})

	t.Run("Rejects Broken Frontmatter", func(t *testing.T) {
		_, err := decodeNote([]byte("---\ntitle: [unclosed\n---\n"), time.Time{})
		assert.Error(t, err)
	})
}

func TestSplitFrontmatter(t *testing.T) {
	cases := []struct {
		name   string
		in     string
		header string
		body   string
		ok     bool
	}{
		{"regular", "---\na: 1\n---\nbody", "a: 1\n", "body", true},
		{"empty header", "---\n---\nbody", "", "body", true},
		{"no trailing newline", "---\na: 1\n---", "a: 1\n", "", true},
		{"windows newlines", "---\r\na: 1\r\n---\r\nx", "a: 1\n", "x", true},
		{"no frontmatter", "hello", "", "", false},
		{"unterminated", "---\na: 1\n", "", "", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			header, body, ok := splitFrontmatter([]byte(tc.in))
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.header, string(header))
			assert.Equal(t, tc.body, string(body))
		})
	}
}
