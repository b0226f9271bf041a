package diagfmt

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"spanlight/internal/diag"
	"spanlight/internal/source"
)

var (
	borderStyle     = Style{Kind: StyleBorder}
	lineNumberStyle = Style{Kind: StyleLineNumber}
)

// RenderDiagnostic lays out a single diagnostic as an annotated snippet:
//
//	error[E0308]: mismatched types
//	  ┌─ main.sg:2:9
//	  │
//	2 │ let x = "text"
//	  │         ^^^^^^ expected `int`
//	  │
//	  = note: declared here
//
// Labels that do not resolve against fs produce an *UnresolvableLabelError and
// no output.
func RenderDiagnostic(d diag.Diagnostic, fs *source.FileSet, cfg Config) (Output, error) {
	if cfg.Chars == (Chars{}) {
		cfg.Chars = BoxChars()
	}
	if cfg.TabWidth < 1 {
		cfg.TabWidth = DefaultConfig().TabWidth
	}
	groups, err := layout(d, fs, cfg)
	if err != nil {
		return Output{}, err
	}

	r := &snippetRenderer{
		cfg:    cfg,
		chars:  cfg.Chars,
		gutter: gutterWidth(groups),
	}
	r.header(d)
	for _, g := range groups {
		r.group(g)
	}
	for _, note := range d.Notes {
		r.note(note)
	}
	return Output{Lines: r.lines}, nil
}

type snippetRenderer struct {
	cfg    Config
	chars  Chars
	gutter int
	lines  []StyledLine
}

func (r *snippetRenderer) emit(b *lineBuilder) {
	r.lines = append(r.lines, b.line())
}

func (r *snippetRenderer) header(d diag.Diagnostic) {
	head := d.Severity.String()
	if d.Code != "" {
		head += "[" + d.Code + "]"
	}
	b := &lineBuilder{}
	b.styled(head, Style{Kind: StyleHeader, Severity: d.Severity})
	b.styled(": "+d.Message, Style{Kind: StyleHeaderMessage})
	r.emit(b)
}

// blankGutter starts a row with an empty line-number column.
func (r *snippetRenderer) blankGutter() *lineBuilder {
	b := &lineBuilder{}
	b.plain(strings.Repeat(" ", r.gutter+1))
	b.styled(r.chars.SourceBorder, borderStyle)
	return b.plain(" ")
}

func (r *snippetRenderer) numberGutter(line uint32) *lineBuilder {
	b := &lineBuilder{}
	b.styled(fmt.Sprintf("%*d", r.gutter, line+1), lineNumberStyle)
	b.plain(" ")
	b.styled(r.chars.SourceBorder, borderStyle)
	return b.plain(" ")
}

func (r *snippetRenderer) group(g *fileGroup) {
	b := &lineBuilder{}
	b.plain(strings.Repeat(" ", r.gutter+1))
	b.styled(r.chars.SnippetStart, borderStyle)
	b.plain(" " + g.name + ":" + g.locus.String())
	r.emit(b)
	r.emit(r.blankGutter())

	open := make([]*layoutLabel, g.columns)
	for line := g.first; line <= g.last; line++ {
		r.sourceLine(g, line, open)
	}
	r.emit(r.blankGutter())
}

// cell draws the margin column of an open multi-line label, or blank space.
func (r *snippetRenderer) cell(b *lineBuilder, l *layoutLabel) {
	if l == nil {
		b.plain("  ")
		return
	}
	b.styled(r.chars.MultiLeft, l.style).plain(" ")
}

// sourceLine emits the source row of line followed by its annotation rows:
// multi-line tops, single-line underlines, then multi-line bottoms.
func (r *snippetRenderer) sourceLine(g *fileGroup, line uint32, open []*layoutLabel) {
	var tops, singles, bottoms []*layoutLabel
	blankTops := make([]*layoutLabel, g.columns)
	for _, l := range g.labels {
		switch {
		case !l.multi && l.startLine == line:
			singles = append(singles, l)
		case l.multi && l.startLine == line && l.blankPrefix:
			blankTops[l.column] = l
		case l.multi && l.startLine == line:
			tops = append(tops, l)
		case l.multi && l.endLine == line:
			bottoms = append(bottoms, l)
		}
	}

	text, _ := g.file.LineText(line) // line is inside the window
	b := r.numberGutter(line)
	for k := range open {
		if top := blankTops[k]; top != nil {
			b.styled(r.chars.MultiTopLeft, top.style).plain(" ")
			open[k] = top
			continue
		}
		r.cell(b, open[k])
	}
	b.plain(source.ExpandTabs(text, r.cfg.TabWidth))
	r.emit(b)

	slices.SortFunc(tops, func(a, b *layoutLabel) int { return cmp.Compare(a.column, b.column) })
	for _, l := range tops {
		r.topRow(l, open)
		open[l.column] = l
	}

	slices.SortFunc(singles, func(a, b *layoutLabel) int {
		if c := cmp.Compare(a.startCol, b.startCol); c != 0 {
			return c
		}
		if c := cmp.Compare(a.label.Style, b.label.Style); c != 0 {
			return c
		}
		return cmp.Compare(a.index, b.index)
	})
	for _, l := range singles {
		r.singleRow(l, open)
	}

	slices.SortFunc(bottoms, func(a, b *layoutLabel) int { return cmp.Compare(b.column, a.column) })
	for _, l := range bottoms {
		r.bottomRow(l, open)
		open[l.column] = nil
	}
}

func (r *snippetRenderer) caret(l *layoutLabel, end bool) string {
	primary := l.label.Style == diag.LabelPrimary
	switch {
	case !l.multi && primary:
		return r.chars.SinglePrimaryCaret
	case !l.multi:
		return r.chars.SingleSecondaryCaret
	case primary && end:
		return r.chars.MultiPrimaryCaretEnd
	case primary:
		return r.chars.MultiPrimaryCaretStart
	case end:
		return r.chars.MultiSecondaryCaretEnd
	default:
		return r.chars.MultiSecondaryCaretStart
	}
}

func (r *snippetRenderer) message(b *lineBuilder, l *layoutLabel) {
	if l.label.Message != "" {
		b.styled(" "+l.label.Message, l.style)
	}
}

//	  │ ╭────^
func (r *snippetRenderer) topRow(l *layoutLabel, open []*layoutLabel) {
	b := r.blankGutter()
	for k := range open {
		switch {
		case k < l.column:
			r.cell(b, open[k])
		case k == l.column:
			b.styled(r.chars.MultiTopLeft+r.chars.MultiTop, l.style)
		case open[k] != nil:
			// горизонталь пересекает ещё открытую метку справа
			b.styled(r.chars.MultiLeft, open[k].style).styled(r.chars.MultiTop, l.style)
		default:
			b.styled(r.chars.MultiTop+r.chars.MultiTop, l.style)
		}
	}
	b.styled(strings.Repeat(r.chars.MultiTop, l.startCol)+r.caret(l, false), l.style)
	r.emit(b)
}

//	  │ │    ^^^^ message
func (r *snippetRenderer) singleRow(l *layoutLabel, open []*layoutLabel) {
	b := r.blankGutter()
	for k := range open {
		r.cell(b, open[k])
	}
	b.plain(strings.Repeat(" ", l.startCol))
	b.styled(strings.Repeat(r.caret(l, false), l.width()), l.style)
	r.message(b, l)
	r.emit(b)
}

//	  │ ╰─│──^ message
func (r *snippetRenderer) bottomRow(l *layoutLabel, open []*layoutLabel) {
	b := r.blankGutter()
	for k := range open {
		switch {
		case k < l.column:
			r.cell(b, open[k])
		case k == l.column:
			b.styled(r.chars.MultiBottomLeft+r.chars.MultiBottom, l.style)
		case open[k] != nil:
			// горизонталь пересекает ещё открытую метку справа
			b.styled(r.chars.MultiLeft, open[k].style).styled(r.chars.MultiBottom, l.style)
		default:
			b.styled(r.chars.MultiBottom+r.chars.MultiBottom, l.style)
		}
	}
	b.styled(strings.Repeat(r.chars.MultiBottom, l.endCol)+r.caret(l, true), l.style)
	r.message(b, l)
	r.emit(b)
}

//	  = first line
//	    continuation
func (r *snippetRenderer) note(note string) {
	pad := strings.Repeat(" ", r.gutter+1)
	indent := strings.Repeat(" ", source.DisplayWidth(r.chars.NoteBullet, 0, 1)+1)
	for i, line := range strings.Split(note, "\n") {
		b := &lineBuilder{}
		b.plain(pad)
		if i == 0 {
			b.styled(r.chars.NoteBullet, Style{Kind: StyleNoteBullet}).plain(" ")
		} else {
			b.plain(indent)
		}
		b.plain(line)
		r.emit(b)
	}
}
