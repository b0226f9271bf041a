package diagfmt

import (
	"bufio"
	"io"

	"github.com/fatih/color"

	"spanlight/internal/diag"
)

// Theme maps style tags to terminal colors. A nil color prints the text as is.
type Theme struct {
	Header        map[diag.Severity]*color.Color
	Primary       map[diag.Severity]*color.Color
	HeaderMessage *color.Color
	LineNumber    *color.Color
	Border        *color.Color
	Secondary     *color.Color
	NoteBullet    *color.Color
}

// DefaultTheme returns the standard palette. Colors are forced on; whether to
// use ANSI output at all is the caller's decision.
func DefaultTheme() Theme {
	sev := func(attrs ...color.Attribute) map[diag.Severity]*color.Color {
		return map[diag.Severity]*color.Color{
			diag.SevBug:     on(color.New(color.FgRed).Add(attrs...)),
			diag.SevError:   on(color.New(color.FgRed).Add(attrs...)),
			diag.SevWarning: on(color.New(color.FgYellow).Add(attrs...)),
			diag.SevNote:    on(color.New(color.FgGreen).Add(attrs...)),
			diag.SevHelp:    on(color.New(color.FgCyan).Add(attrs...)),
		}
	}
	return Theme{
		Header:        sev(color.Bold),
		Primary:       sev(),
		HeaderMessage: on(color.New(color.Bold, color.FgHiWhite)),
		LineNumber:    on(color.New(color.FgBlue)),
		Border:        on(color.New(color.FgBlue)),
		Secondary:     on(color.New(color.FgBlue)),
		NoteBullet:    on(color.New(color.FgBlue)),
	}
}

func on(c *color.Color) *color.Color {
	c.EnableColor()
	return c
}

func (t Theme) color(st Style) *color.Color {
	switch st.Kind {
	case StyleHeader:
		return t.Header[st.Severity]
	case StyleHeaderMessage:
		return t.HeaderMessage
	case StyleLineNumber:
		return t.LineNumber
	case StyleBorder:
		return t.Border
	case StylePrimary:
		return t.Primary[st.Severity]
	case StyleSecondary:
		return t.Secondary
	case StyleNoteBullet:
		return t.NoteBullet
	}
	return nil
}

// WritePlain writes the text of every line without styling.
func WritePlain(w io.Writer, out Output) error {
	bw := bufio.NewWriter(w)
	for _, l := range out.Lines {
		bw.WriteString(l.Text)
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

// WriteANSI writes every line with its style spans colored by theme.
func WriteANSI(w io.Writer, out Output, theme Theme) error {
	bw := bufio.NewWriter(w)
	for _, l := range out.Lines {
		pos := 0
		for _, s := range l.Styles {
			bw.WriteString(l.Text[pos:s.Start])
			seg := l.Text[s.Start:s.End]
			if c := theme.color(s.Style); c != nil {
				bw.WriteString(c.Sprint(seg))
			} else {
				bw.WriteString(seg)
			}
			pos = s.End
		}
		bw.WriteString(l.Text[pos:])
		bw.WriteByte('\n')
	}
	return bw.Flush()
}
