package weneda

import (
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
)

// WidthFunc measures the display width of a string in layout units.
type WidthFunc func(s string) int

// GlyphFunc reports whether a rune can be rendered.
type GlyphFunc func(r rune) bool

// MonospaceCharWidth is the layout width of one character under the default
// monospace measurement. A full-screen console line is 170 characters wide,
// i.e. 10880 units.
const MonospaceCharWidth = 64

// ValueSlot is the substring replaced by the numeric value in duration
// display patterns, e.g. "{} min".
const ValueSlot = "{}"

// MonospaceWidth measures strings assuming every rune has the same width.
// It is the default WidthFunc where none is given.
func MonospaceWidth(s string) int {
	return MonospaceCharWidth * utf8.RuneCountInString(s)
}

// WordForm selects a word form based on a count, following the three-form
// pluralization used by Slavic languages: one form for 1 (and 21, 31, ...),
// one for 2-4, one for everything else. Teens (11-14) always take the last
// form. The sign of n is ignored.
//
//	WordForm(4, "груша", "груші", "груш")  // "груші"
func WordForm(n int, single, few, many string) string {
	if n < 0 {
		n = -n
	}

	if n%100 >= 11 && n%100 <= 14 {
		return many
	}
	switch n % 10 {
	case 1:
		return single
	case 2, 3, 4:
		return few
	default:
		return many
	}
}

// DurationUnit identifies a unit used by FormatDuration.
type DurationUnit string

// Duration unit constants, largest first.
const (
	UnitYears   DurationUnit = "y"
	UnitMonths  DurationUnit = "mo"
	UnitWeeks   DurationUnit = "w"
	UnitDays    DurationUnit = "d"
	UnitHours   DurationUnit = "h"
	UnitMinutes DurationUnit = "m"
	UnitSeconds DurationUnit = "s"
	UnitMillis  DurationUnit = "ms"
)

// unitSpans lists unit lengths in decomposition order, largest first.
// Years and months use the mean Gregorian lengths.
var unitSpans = []struct {
	unit DurationUnit
	span time.Duration
}{
	{UnitYears, 31556952 * time.Second},
	{UnitMonths, 2629746 * time.Second},
	{UnitWeeks, 7 * 24 * time.Hour},
	{UnitDays, 24 * time.Hour},
	{UnitHours, time.Hour},
	{UnitMinutes, time.Minute},
	{UnitSeconds, time.Second},
	{UnitMillis, time.Millisecond},
}

// DurationPart describes how one unit of a duration is displayed.
type DurationPart struct {
	// Unit is the duration unit this part displays.
	Unit DurationUnit

	// Format is the display pattern; the value slot "{}" is replaced by
	// the unit's amount. Ignored when Forms is set.
	Format string

	// Forms optionally holds three plural display patterns (1 form,
	// 2-4 form, 5+ form), each with a value slot. When set, the form is
	// chosen with WordForm.
	Forms [3]string

	// HasForms marks Forms as populated.
	HasForms bool

	// Always displays the part even when its amount is zero.
	Always bool
}

// FormatDuration renders a duration as a string, decomposing it into exactly
// the units named by parts (largest first) and joining their displays with
// joiner. Parts whose amount is zero are omitted unless marked Always.
//
//	FormatDuration(4125*time.Second,
//	    []DurationPart{
//	        {Unit: UnitDays, Format: "{} дн.", Always: true},
//	        {Unit: UnitHours, Format: "{} год."},
//	        {Unit: UnitMinutes, Forms: [3]string{"{} хвилина", "{} хвилини", "{} хвилин"}, HasForms: true},
//	    }, " ")
//	// "0 дн. 1 год. 8 хвилин"
func FormatDuration(d time.Duration, parts []DurationPart, joiner string) string {
	wanted := make(map[DurationUnit]bool, len(parts))
	for _, p := range parts {
		wanted[p.Unit] = true
	}

	amounts := make(map[DurationUnit]int64, len(parts))
	remaining := d
	for _, u := range unitSpans {
		if !wanted[u.unit] {
			continue
		}
		if remaining >= u.span {
			amounts[u.unit] = int64(remaining / u.span)
			remaining %= u.span
		}
	}

	displays := make([]string, 0, len(parts))
	for _, p := range parts {
		amount := amounts[p.Unit]
		if amount == 0 && !p.Always {
			continue
		}

		pattern := p.Format
		if p.HasForms {
			pattern = WordForm(int(amount), p.Forms[0], p.Forms[1], p.Forms[2])
		}
		displays = append(displays, strings.ReplaceAll(pattern, ValueSlot, strconv.FormatInt(amount, 10)))
	}

	return strings.Join(displays, joiner)
}

// SpaceBetween distributes spacing tokens between items so they fill a
// container of the given layout width, like CSS justify-content:
// space-between. measure may be nil for monospace measurement.
func SpaceBetween(items []string, width int, space string, measure WidthFunc) string {
	if len(items) == 0 {
		return ""
	}
	if len(items) == 1 {
		return items[0]
	}
	if measure == nil {
		measure = MonospaceWidth
	}

	itemWidth := measure(strings.Join(items, ""))
	spaceWidth := measure(space)
	if spaceWidth <= 0 {
		return strings.Join(items, "")
	}

	count := (width - itemWidth) / (len(items) - 1) / spaceWidth
	if count < 0 {
		count = 0
	}
	return strings.Join(items, strings.Repeat(space, count))
}

// Crop truncates text so that it fits within maxWidth layout units,
// appending ellipsis when truncation occurs. The cut point is found by
// binary search over rune prefixes. measure may be nil for monospace
// measurement.
func Crop(text string, maxWidth int, ellipsis string, measure WidthFunc) string {
	if measure == nil {
		measure = MonospaceWidth
	}
	if measure(text) <= maxWidth {
		return text
	}

	runes := []rune(text)
	ellipsisWidth := measure(ellipsis)

	left := 0
	right := len(runes)
	for left < right {
		mid := (left + right) / 2
		if measure(string(runes[:mid]))+ellipsisWidth <= maxWidth {
			left = mid + 1
		} else {
			right = mid
		}
	}

	// left is the first prefix length that no longer fits.
	cropPoint := left
	if cropPoint > 0 {
		cropPoint--
	}
	return string(runes[:cropPoint]) + ellipsis
}

// ReplaceNoGlyph substitutes every rune the glyph predicate rejects with
// the placeholder rune.
func ReplaceNoGlyph(text string, ok GlyphFunc, placeholder rune) string {
	if ok == nil {
		return text
	}
	return strings.Map(func(r rune) rune {
		if ok(r) {
			return r
		}
		return placeholder
	}, text)
}

// whitespaceRuns matches one or more consecutive whitespace characters.
var whitespaceRuns = regexp.MustCompile(`\s+`)

// Slugify lowercases text and collapses whitespace runs into hyphens.
func Slugify(text string) string {
	return whitespaceRuns.ReplaceAllString(strings.ToLower(text), "-")
}

// wordBody matches simple single-level placeholder bodies for FormatSimple.
const wordBody = `(\w+)`

// FormatSimple replaces single-level placeholders of the form
// opener + word + closer using a plain lookup function, without nesting,
// escaping, or memoization. Bodies the lookup declines are left verbatim.
// It returns an error only if the delimiters do not form a valid pattern.
func FormatSimple(text, opener, closer string, lookup func(name string) (string, bool)) (string, error) {
	pattern, err := regexp.Compile(regexp.QuoteMeta(opener) + wordBody + regexp.QuoteMeta(closer))
	if err != nil {
		return "", NewConfigurationError(err.Error())
	}

	return pattern.ReplaceAllStringFunc(text, func(match string) string {
		name := strings.TrimSuffix(strings.TrimPrefix(match, opener), closer)
		if value, ok := lookup(name); ok {
			return value
		}
		return match
	}), nil
}
