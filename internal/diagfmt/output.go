package diagfmt

import (
	"strings"

	"spanlight/internal/diag"
)

// StyleKind is an abstract style tag. Concrete colors are chosen by a Theme.
type StyleKind uint8

const (
	StylePlain StyleKind = iota
	// StyleHeader covers "severity[code]" and carries the severity.
	StyleHeader
	StyleHeaderMessage
	StyleLineNumber
	StyleBorder
	// StylePrimary is used for primary carets, margins and label messages; it carries the severity.
	StylePrimary
	StyleSecondary
	StyleNoteBullet
)

func (k StyleKind) String() string {
	switch k {
	case StylePlain:
		return "plain"
	case StyleHeader:
		return "header"
	case StyleHeaderMessage:
		return "header-message"
	case StyleLineNumber:
		return "line-number"
	case StyleBorder:
		return "border"
	case StylePrimary:
		return "primary"
	case StyleSecondary:
		return "secondary"
	case StyleNoteBullet:
		return "note-bullet"
	}
	return "unknown"
}

// Style is a tag attached to a byte range of a rendered line.
// Severity is meaningful for StyleHeader and StylePrimary only.
type Style struct {
	Kind     StyleKind
	Severity diag.Severity
}

// StyleSpan annotates Text[Start:End] of a StyledLine.
type StyleSpan struct {
	Start int
	End   int
	Style Style
}

// StyledLine is one line of output without the trailing newline.
type StyledLine struct {
	Text   string
	Styles []StyleSpan
}

// Output is a sequence of styled lines. It holds no references into the FileSet.
type Output struct {
	Lines []StyledLine
}

// String joins the plain text of all lines, each terminated by '\n'.
func (o Output) String() string {
	var sb strings.Builder
	for _, l := range o.Lines {
		sb.WriteString(l.Text)
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Append adds the lines of other to o.
func (o *Output) Append(other Output) {
	o.Lines = append(o.Lines, other.Lines...)
}

// lineBuilder accumulates styled segments of a single line.
type lineBuilder struct {
	sb     strings.Builder
	styles []StyleSpan
}

func (b *lineBuilder) plain(s string) *lineBuilder {
	b.sb.WriteString(s)
	return b
}

func (b *lineBuilder) styled(s string, st Style) *lineBuilder {
	if s == "" {
		return b
	}
	start := b.sb.Len()
	b.sb.WriteString(s)
	if st.Kind == StylePlain {
		return b
	}
	// соседние сегменты одного стиля склеиваем
	if n := len(b.styles); n > 0 && b.styles[n-1].End == start && b.styles[n-1].Style == st {
		b.styles[n-1].End = b.sb.Len()
		return b
	}
	b.styles = append(b.styles, StyleSpan{Start: start, End: b.sb.Len(), Style: st})
	return b
}

// line trims trailing spaces and clips the styles to the remaining text.
func (b *lineBuilder) line() StyledLine {
	text := strings.TrimRight(b.sb.String(), " ")
	styles := make([]StyleSpan, 0, len(b.styles))
	for _, s := range b.styles {
		if s.Start >= len(text) {
			continue
		}
		s.End = min(s.End, len(text))
		styles = append(styles, s)
	}
	if len(styles) == 0 {
		styles = nil
	}
	return StyledLine{Text: text, Styles: styles}
}
