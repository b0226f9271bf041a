package diagfmt

import (
	"spanlight/internal/diag"
	"spanlight/internal/source"
)

// RenderShort renders one line per primary label:
//
//	main.sg:2:9: error[E0308]: mismatched types
//
// A diagnostic without primary labels produces a single header line. Secondary
// labels are not printed but must still resolve.
func RenderShort(d diag.Diagnostic, fs *source.FileSet, cfg Config) (Output, error) {
	head := d.Severity.String()
	if d.Code != "" {
		head += "[" + d.Code + "]"
	}
	line := func(locus string) StyledLine {
		b := &lineBuilder{}
		if locus != "" {
			b.plain(locus + ": ")
		}
		b.styled(head, Style{Kind: StyleHeader, Severity: d.Severity})
		b.styled(": "+d.Message, Style{Kind: StyleHeaderMessage})
		return b.line()
	}

	// каждая метка должна резолвиться, даже если строку для неё не печатаем
	var out Output
	for i, l := range d.Labels {
		start, _, err := fs.Resolve(l.Span)
		if err != nil {
			return Output{}, &UnresolvableLabelError{Index: i, Label: l, Err: err}
		}
		if l.Style != diag.LabelPrimary {
			continue
		}
		f, err := fs.Get(l.Span.File)
		if err != nil {
			return Output{}, &UnresolvableLabelError{Index: i, Label: l, Err: err}
		}
		out.Lines = append(out.Lines, line(formatPath(f, fs, cfg.PathMode)+":"+start.String()))
	}
	if len(out.Lines) == 0 {
		out.Lines = append(out.Lines, line(""))
	}
	return out, nil
}
