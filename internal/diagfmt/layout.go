package diagfmt

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
	"unicode/utf8"

	"fortio.org/safecast"

	"spanlight/internal/diag"
	"spanlight/internal/source"
)

// layoutLabel is a label resolved against its file, in display columns.
type layoutLabel struct {
	index int
	label diag.Label
	style Style

	startLine uint32
	endLine   uint32
	// startCol is the display column of the first covered cell.
	startCol int
	// endCol is the column after the last covered cell for single-line labels
	// and the column of the end caret for multi-line ones.
	endCol int

	multi       bool
	blankPrefix bool
	column      int // margin column, multi-line labels only
}

func (l *layoutLabel) width() int {
	return max(1, l.endCol-l.startCol)
}

// fileGroup collects the labels of one file and the window of lines to print.
type fileGroup struct {
	file    *source.File
	name    string
	locus   source.Location
	labels  []*layoutLabel
	first   uint32
	last    uint32
	columns int
}

func labelStyle(l diag.Label, sev diag.Severity) Style {
	if l.Style == diag.LabelPrimary {
		return Style{Kind: StylePrimary, Severity: sev}
	}
	return Style{Kind: StyleSecondary}
}

// resolveLabel turns a label into line and display-column coordinates.
func resolveLabel(fs *source.FileSet, idx int, l diag.Label, sev diag.Severity, tabWidth int) (*source.File, *layoutLabel, error) {
	fail := func(err error) (*source.File, *layoutLabel, error) {
		return nil, nil, &UnresolvableLabelError{Index: idx, Label: l, Err: err}
	}

	sp := l.Span
	f, err := fs.Get(sp.File)
	if err != nil {
		return fail(err)
	}
	if sp.Start > sp.End {
		return fail(fmt.Errorf("%s: start after end: %w", sp, source.ErrOutOfBounds))
	}
	start, err := f.Location(sp.Start)
	if err != nil {
		return fail(err)
	}
	end, err := f.Location(sp.End)
	if err != nil {
		return fail(err)
	}

	ll := &layoutLabel{
		index:     idx,
		label:     l,
		style:     labelStyle(l, sev),
		startLine: start.Line,
		endLine:   end.Line,
	}

	startLineOff := f.LineStarts[start.Line]
	prefix := f.Content[startLineOff:sp.Start]
	ll.startCol = source.DisplayWidth(string(prefix), 0, tabWidth)
	ll.blankPrefix = strings.TrimSpace(string(prefix)) == ""

	// конец в колонке 0 следующей строки: последний покрытый байт это перевод строки
	atNewline := end.Line > start.Line && end.Column == 0
	if atNewline {
		ll.endLine--
	}
	ll.multi = ll.endLine > ll.startLine

	endLineOff := f.LineStarts[ll.endLine]
	switch {
	case atNewline:
		text, err := f.LineText(ll.endLine)
		if err != nil {
			return fail(err)
		}
		// перевод строки занимает одну ячейку сразу после текста
		ll.endCol = source.DisplayWidth(text, 0, tabWidth)
		if !ll.multi {
			ll.endCol++
		}
	case ll.multi:
		covered := f.Content[endLineOff:sp.End]
		_, size := utf8.DecodeLastRune(covered)
		ll.endCol = source.DisplayWidth(string(covered[:len(covered)-size]), 0, tabWidth)
	default:
		ll.endCol = source.DisplayWidth(string(f.Content[endLineOff:sp.End]), 0, tabWidth)
	}
	return f, ll, nil
}

// layout resolves every label of d and splits them into per-file groups in
// order of first appearance.
func layout(d diag.Diagnostic, fs *source.FileSet, cfg Config) ([]*fileGroup, error) {
	var groups []*fileGroup
	byFile := make(map[source.FileID]*fileGroup)

	for i, l := range d.Labels {
		f, ll, err := resolveLabel(fs, i, l, d.Severity, cfg.TabWidth)
		if err != nil {
			return nil, err
		}
		g, ok := byFile[f.ID]
		if !ok {
			g = &fileGroup{file: f, name: formatPath(f, fs, cfg.PathMode)}
			byFile[f.ID] = g
			groups = append(groups, g)
		}
		g.labels = append(g.labels, ll)
	}

	for _, g := range groups {
		g.finish(cfg)
	}
	return groups, nil
}

func (g *fileGroup) finish(cfg Config) {
	lowest := g.labels[0]
	g.first, g.last = lowest.startLine, lowest.endLine
	for _, l := range g.labels[1:] {
		if l.label.Span.Start < lowest.label.Span.Start {
			lowest = l
		}
		g.first = min(g.first, l.startLine)
		g.last = max(g.last, l.endLine)
	}
	// уже проверено в resolveLabel
	g.locus, _ = g.file.Location(lowest.label.Span.Start)

	first := max(0, int(g.first)-max(0, cfg.StartContextLines))
	last := min(int(g.file.LineCount())-1, int(g.last)+max(0, cfg.EndContextLines))
	// оба значения в [0, LineCount), так что Conv не падает
	g.first, _ = safecast.Conv[uint32](first)
	g.last, _ = safecast.Conv[uint32](last)

	g.assignColumns()
}

// assignColumns gives each multi-line label a margin column. Labels are taken
// by start offset (longer span first on ties) and placed right of every
// column whose label is still open on the start line.
func (g *fileGroup) assignColumns() {
	var multi []*layoutLabel
	for _, l := range g.labels {
		if l.multi {
			multi = append(multi, l)
		}
	}
	slices.SortStableFunc(multi, func(a, b *layoutLabel) int {
		if c := cmp.Compare(a.label.Span.Start, b.label.Span.Start); c != 0 {
			return c
		}
		if c := cmp.Compare(b.label.Span.End, a.label.Span.End); c != 0 {
			return c
		}
		return cmp.Compare(a.index, b.index)
	})
	for i, x := range multi {
		col := 0
		for _, y := range multi[:i] {
			if y.endLine >= x.startLine {
				col = max(col, y.column+1)
			}
		}
		x.column = col
		g.columns = max(g.columns, col+1)
	}
}

func gutterWidth(groups []*fileGroup) int {
	width := 1
	for _, g := range groups {
		width = max(width, len(fmt.Sprint(g.last+1)))
	}
	return width
}
