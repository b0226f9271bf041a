package source

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// DisplayWidth returns how many terminal cells text occupies when it is printed
// starting at column startCol. Tabs advance to the next multiple of tabWidth,
// wide runes take two cells and combining marks take none.
func DisplayWidth(text string, startCol, tabWidth int) int {
	col := startCol
	for _, r := range text {
		col = advance(col, r, tabWidth)
	}
	return col - startCol
}

// ExpandTabs replaces every tab with the spaces needed to reach the next tab stop,
// so that the result lines up with columns computed by DisplayWidth.
func ExpandTabs(text string, tabWidth int) string {
	if !strings.ContainsRune(text, '\t') {
		return text
	}
	var sb strings.Builder
	sb.Grow(len(text))
	col := 0
	for _, r := range text {
		next := advance(col, r, tabWidth)
		if r == '\t' {
			sb.WriteString(strings.Repeat(" ", next-col))
		} else {
			sb.WriteRune(r)
		}
		col = next
	}
	return sb.String()
}

func advance(col int, r rune, tabWidth int) int {
	if r == '\t' {
		if tabWidth < 1 {
			tabWidth = 1
		}
		return col + tabWidth - col%tabWidth
	}
	return col + runewidth.RuneWidth(r)
}
