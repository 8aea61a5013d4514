package display

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// pairSide pads both outer edges of a two-value line.
const pairSide = " "

// Center pads text to width with floor((W-L)/2) spaces on the left and
// ceil((W-L)/2) on the right. Text longer than width is cut.
func Center(text string, width int) string {
	text = truncate(text, width)
	gap := width - utf8.RuneCountInString(text)
	if gap <= 0 {
		return text
	}
	left := gap / 2
	return strings.Repeat(" ", left) + text + strings.Repeat(" ", gap-left)
}

// Pair lays out lhs at the left edge and rhs at the right edge of width,
// with at least one space between them.
func Pair(lhs, rhs string, width int) string {
	used := 2*utf8.RuneCountInString(pairSide) + utf8.RuneCountInString(lhs) + utf8.RuneCountInString(rhs)
	gap := max(width-used, 1)
	return pairSide + lhs + strings.Repeat(" ", gap) + rhs + pairSide
}

// threeWide right-justifies v in three columns, the width of a tricode.
func threeWide(v any) string {
	return fmt.Sprintf("%3v", v)
}

func truncate(text string, width int) string {
	if width <= 0 {
		return ""
	}
	if utf8.RuneCountInString(text) <= width {
		return text
	}
	runes := []rune(text)
	return string(runes[:width])
}
