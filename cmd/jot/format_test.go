package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/jotter/pkg/editor"
)

func TestParseRange(t *testing.T) {
	sel, err := parseRange("2:6")
	require.NoError(t, err)
	assert.Equal(t, editor.Selection{Start: 2, End: 6}, sel)

	for _, bad := range []string{"2", "a:3", "3:b", "5:2", "-1:2"} {
		_, err := parseRange(bad)
		assert.Error(t, err, bad)
	}
}

func TestLineOffset(t *testing.T) {
	text := "first\n\nthird"

	tests := []struct {
		line int
		want int
		ok   bool
	}{
		{0, 0, true},
		{1, 6, true},
		{2, 7, true},
		{3, 0, false},
		{-1, 0, false},
	}
	for _, tt := range tests {
		got, ok := lineOffset(text, tt.line)
		assert.Equal(t, tt.ok, ok, "line %d", tt.line)
		if tt.ok {
			assert.Equal(t, tt.want, got, "line %d", tt.line)
		}
	}

	off, ok := lineOffset("", 0)
	assert.True(t, ok)
	assert.Equal(t, 0, off)
}

func TestApplyFormat(t *testing.T) {
	t.Run("Styles ranges then toggles bullets", func(t *testing.T) {
		ed := editor.New()
		ed.LoadContent("milk\neggs")

		err := applyFormat(ed, formatRequest{
			Bold:    []string{"0:4"},
			Color:   []string{"#ff0000@5:9"},
			Bullets: []int{0, 1},
		})
		require.NoError(t, err)

		assert.Equal(t, "• milk\n• eggs", ed.Text())
		assert.Equal(t, "• <b>milk</b>\n• <font color='#FF0000'>eggs</font>", ed.Markup())
		assert.Equal(t, []int{0, 1}, ed.BulletLines())
	})

	t.Run("Rejects malformed requests", func(t *testing.T) {
		ed := editor.New()
		ed.LoadContent("text")

		assert.Error(t, applyFormat(ed, formatRequest{Italic: []string{"x"}}))
		assert.Error(t, applyFormat(ed, formatRequest{Color: []string{"#ff0000"}}))
		assert.Error(t, applyFormat(ed, formatRequest{Bullets: []int{4}}))
	})
}
