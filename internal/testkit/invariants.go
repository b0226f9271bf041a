// Package testkit holds invariant checks shared by tests and fuzz harnesses
// that exercise the renderer.
package testkit

import (
	"fmt"
	"strconv"
	"strings"

	"fortio.org/safecast"

	"spanlight/internal/diagfmt"
	"spanlight/internal/source"
)

// CheckOutput verifies properties every rendered Output has:
// 1) no line contains '\n' or ends with a space
// 2) style spans are non-empty, ordered, non-overlapping and inside the line
func CheckOutput(out diagfmt.Output) error {
	for i, l := range out.Lines {
		if strings.Contains(l.Text, "\n") {
			return fmt.Errorf("line %d contains a newline: %q", i, l.Text)
		}
		if strings.HasSuffix(l.Text, " ") {
			return fmt.Errorf("line %d has trailing spaces: %q", i, l.Text)
		}
		prev := 0
		for _, s := range l.Styles {
			if s.Start < prev || s.Start >= s.End || s.End > len(l.Text) {
				return fmt.Errorf("line %d: bad style span [%d,%d) after %d in %q", i, s.Start, s.End, prev, l.Text)
			}
			prev = s.End
		}
	}
	return nil
}

// CheckSourceRows verifies the numbered rows of a snippet rendered against the
// single file f: numbers are consecutive and every row ends with the
// tab-expanded text of that line.
func CheckSourceRows(out diagfmt.Output, f *source.File, cfg diagfmt.Config) error {
	border := cfg.Chars.SourceBorder
	if border == "" {
		border = diagfmt.BoxChars().SourceBorder
	}
	tabWidth := max(cfg.TabWidth, 1)
	sep := " " + border

	last := -1
	for i, l := range out.Lines {
		numStr, rest, ok := strings.Cut(strings.TrimLeft(l.Text, " "), sep)
		if !ok {
			continue
		}
		n, err := strconv.Atoi(numStr)
		if err != nil {
			continue
		}
		if last >= 0 && n != last+1 {
			return fmt.Errorf("line %d: row %d follows row %d", i, n, last)
		}
		last = n

		line, err := safecast.Conv[uint32](n - 1)
		if err != nil {
			return fmt.Errorf("line %d: row number %d: %w", i, n, err)
		}
		text, err := f.LineText(line)
		if err != nil {
			return fmt.Errorf("line %d: row %d: %w", i, n, err)
		}
		want := strings.TrimRight(source.ExpandTabs(text, tabWidth), " ")
		if !strings.HasSuffix(rest, want) {
			return fmt.Errorf("row %d is %q, want it to end with %q", n, l.Text, want)
		}
	}
	return nil
}
