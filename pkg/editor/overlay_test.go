package editor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDiffRunes(t *testing.T) {
	cases := []struct {
		name  string
		old   string
		cur   string
		caret int
		want  change
	}{
		{"append", "ab", "abc", 3, change{start: 2, oldEnd: 2, newLen: 1}},
		{"insert among repeats", "aaa", "aaaa", 2, change{start: 1, oldEnd: 1, newLen: 1}},
		{"delete middle", "abc", "ac", 1, change{start: 1, oldEnd: 2, newLen: 0}},
		{"replace selection", "hello", "hXo", 2, change{start: 1, oldEnd: 4, newLen: 1}},
		{"unchanged", "abc", "abc", 1, change{start: 1, oldEnd: 1, newLen: 0}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := diffRunes([]rune(tc.old), []rune(tc.cur), tc.caret)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestShiftRanges(t *testing.T) {
	bold := Style{Bold: true}
	ranges := []StyleRange{{Style: bold, Start: 2, End: 5}}

	t.Run("Insertion Before Moves The Range", func(t *testing.T) {
		got := shiftRanges(ranges, change{start: 0, oldEnd: 0, newLen: 2})
		assert.Equal(t, []StyleRange{{Style: bold, Start: 4, End: 7}}, got)
	})

	t.Run("Insertion Inside Grows The Range", func(t *testing.T) {
		got := shiftRanges(ranges, change{start: 3, oldEnd: 3, newLen: 1})
		assert.Equal(t, []StyleRange{{Style: bold, Start: 2, End: 6}}, got)
	})

	t.Run("Insertion At The End Stays Outside", func(t *testing.T) {
		got := shiftRanges(ranges, change{start: 5, oldEnd: 5, newLen: 1})
		assert.Equal(t, []StyleRange{{Style: bold, Start: 2, End: 5}}, got)
	})

	t.Run("Deletion Spanning The Range Drops It", func(t *testing.T) {
		got := shiftRanges(ranges, change{start: 1, oldEnd: 6, newLen: 0})
		assert.Empty(t, got)
	})

	t.Run("Partial Deletion Trims The Range", func(t *testing.T) {
		got := shiftRanges(ranges, change{start: 4, oldEnd: 7, newLen: 0})
		assert.Equal(t, []StyleRange{{Style: bold, Start: 2, End: 4}}, got)
	})
}

func TestNormalizeRanges(t *testing.T) {
	got := normalizeRanges([]StyleRange{
		{Style: Style{Color: "#FF0000"}, Start: 0, End: 4},
		{Style: Style{Color: "#0000FF"}, Start: 2, End: 3},
		{Style: Style{Bold: true}, Start: 0, End: 2},
	}, 4)

	assert.Equal(t, []StyleRange{
		{Style: Style{Bold: true, Color: "#FF0000"}, Start: 0, End: 2},
		{Style: Style{Color: "#0000FF"}, Start: 2, End: 3},
		{Style: Style{Color: "#FF0000"}, Start: 3, End: 4},
	}, got)
}

func TestLines(t *testing.T) {
	text := []rune("a\n  • b\n• \nc")

	assert.Equal(t, []int{1, 2}, bulletLines(text))
	assert.Equal(t, 2, lineStart(text, 4))
	assert.Equal(t, 7, lineEnd(text, 4))
	assert.Equal(t, 3, lineIndex(text, 11))

	pos, ok := marker(text, 2)
	assert.True(t, ok)
	assert.Equal(t, 4, pos)
}
