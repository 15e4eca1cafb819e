package weneda

import (
	"strings"
	"testing"
	"time"
	"unicode"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWordForm(t *testing.T) {
	tests := []struct {
		n    int
		want string
	}{
		{1, "груша"},
		{2, "груші"},
		{4, "груші"},
		{5, "груш"},
		{10, "груш"},
		{11, "груш"},
		{12, "груш"},
		{14, "груш"},
		{21, "груша"},
		{22, "груші"},
		{25, "груш"},
		{100, "груш"},
		{101, "груша"},
		{111, "груш"},
		{0, "груш"},
		{-3, "груші"},
	}

	for _, tt := range tests {
		got := WordForm(tt.n, "груша", "груші", "груш")
		assert.Equal(t, tt.want, got, "n=%d", tt.n)
	}
}

func TestFormatDuration(t *testing.T) {
	got := FormatDuration(4125*time.Second, []DurationPart{
		{Unit: UnitDays, Format: "{} дн.", Always: true},
		{Unit: UnitHours, Format: "{} год."},
		{Unit: UnitMinutes, Forms: [3]string{"{} хвилина", "{} хвилини", "{} хвилин"}, HasForms: true},
	}, " ")

	assert.Equal(t, "0 дн. 1 год. 8 хвилин", got)
}

func TestFormatDuration_OmitsZeroParts(t *testing.T) {
	got := FormatDuration(90*time.Second, []DurationPart{
		{Unit: UnitHours, Format: "{}h"},
		{Unit: UnitMinutes, Format: "{}m"},
		{Unit: UnitSeconds, Format: "{}s"},
	}, " ")

	assert.Equal(t, "1m 30s", got)
}

func TestFormatDuration_OnlyRequestedUnitsConsume(t *testing.T) {
	// Without an hours part, minutes absorb the whole duration.
	got := FormatDuration(2*time.Hour, []DurationPart{
		{Unit: UnitMinutes, Format: "{}m"},
	}, " ")

	assert.Equal(t, "120m", got)
}

func TestFormatDuration_Millis(t *testing.T) {
	got := FormatDuration(1500*time.Millisecond, []DurationPart{
		{Unit: UnitSeconds, Format: "{}s"},
		{Unit: UnitMillis, Format: "{}ms"},
	}, "+")

	assert.Equal(t, "1s+500ms", got)
}

func TestSpaceBetween(t *testing.T) {
	// Three one-rune items at 64 units each, container 1280 units:
	// 1088 units of room split into 2 gaps of 544, 8 spaces of 64 each.
	got := SpaceBetween([]string{"a", "b", "c"}, 1280, " ", nil)
	assert.Equal(t, "a        b        c", got)
}

func TestSpaceBetween_Degenerate(t *testing.T) {
	assert.Equal(t, "", SpaceBetween(nil, 100, " ", nil))
	assert.Equal(t, "solo", SpaceBetween([]string{"solo"}, 100, " ", nil))

	// Items wider than the container join with no spacing.
	got := SpaceBetween([]string{"wide", "row"}, 64, " ", nil)
	assert.Equal(t, "widerow", got)
}

func TestSpaceBetween_CustomMeasure(t *testing.T) {
	byLen := func(s string) int { return len(s) }

	got := SpaceBetween([]string{"ab", "cd"}, 10, " ", byLen)
	assert.Equal(t, "ab      cd", got)
}

func TestCrop(t *testing.T) {
	byRunes := func(s string) int { return len([]rune(s)) }

	// Fits untouched.
	assert.Equal(t, "short", Crop("short", 10, "...", byRunes))

	// Truncated to budget including the ellipsis.
	got := Crop("abcdefghij", 7, "...", byRunes)
	assert.Equal(t, "abcd...", got)
	assert.LessOrEqual(t, byRunes(got), 7)
}

func TestCrop_TinyBudget(t *testing.T) {
	byRunes := func(s string) int { return len([]rune(s)) }

	got := Crop("abcdef", 2, "...", byRunes)
	assert.Equal(t, "...", got)
}

func TestReplaceNoGlyph(t *testing.T) {
	asciiOnly := func(r rune) bool { return r <= unicode.MaxASCII }

	assert.Equal(t, "hello ?????", ReplaceNoGlyph("hello світе", asciiOnly, '?'))
	assert.Equal(t, "plain", ReplaceNoGlyph("plain", asciiOnly, '?'))
	assert.Equal(t, "as-is", ReplaceNoGlyph("as-is", nil, '?'))
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Hello World", "hello-world"},
		{"Multiple   Spaces", "multiple-spaces"},
		{"Tabs\tand\nnewlines", "tabs-and-newlines"},
		{"already-slugged", "already-slugged"},
		{"MiXeD CaSe", "mixed-case"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Slugify(tt.input), "input %q", tt.input)
	}
}

func TestFormatSimple(t *testing.T) {
	lookup := func(name string) (string, bool) {
		values := map[string]string{"name": "Alex", "day": "monday"}
		v, ok := values[name]
		return v, ok
	}

	out, err := FormatSimple("Hello, {name}! Today is {day}!", "{", "}", lookup)
	require.NoError(t, err)
	assert.Equal(t, "Hello, Alex! Today is monday!", out)
}

func TestFormatSimple_UnknownStaysLiteral(t *testing.T) {
	lookup := func(name string) (string, bool) { return "", false }

	out, err := FormatSimple("keep {this}", "{", "}", lookup)
	require.NoError(t, err)
	assert.Equal(t, "keep {this}", out)
}

func TestFormatSimple_NoNesting(t *testing.T) {
	// Bodies with non-word characters are not placeholders here.
	calls := 0
	lookup := func(name string) (string, bool) {
		calls++
		return strings.ToUpper(name), true
	}

	out, err := FormatSimple("{a:{b}}", "{", "}", lookup)
	require.NoError(t, err)
	assert.Equal(t, "{a:B}", out)
	assert.Equal(t, 1, calls)
}

func TestMonospaceWidth(t *testing.T) {
	assert.Equal(t, 0, MonospaceWidth(""))
	assert.Equal(t, 3*MonospaceCharWidth, MonospaceWidth("abc"))
	// Rune count, not byte count.
	assert.Equal(t, 5*MonospaceCharWidth, MonospaceWidth("груші"))
}
