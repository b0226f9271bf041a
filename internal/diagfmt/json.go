package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"

	"spanlight/internal/diag"
	"spanlight/internal/source"
)

// LocationJSON представляет местоположение в файле для JSON
type LocationJSON struct {
	File      string `json:"file"`
	StartByte uint32 `json:"start_byte"`
	EndByte   uint32 `json:"end_byte"`
	StartLine uint32 `json:"start_line,omitempty"`
	StartCol  uint32 `json:"start_col,omitempty"`
	EndLine   uint32 `json:"end_line,omitempty"`
	EndCol    uint32 `json:"end_col,omitempty"`
}

// LabelJSON представляет метку диагностики для JSON
type LabelJSON struct {
	Style    string       `json:"style"`
	Message  string       `json:"message,omitempty"`
	Location LocationJSON `json:"location"`
}

// DiagnosticJSON представляет диагностику в JSON формате
type DiagnosticJSON struct {
	Severity string      `json:"severity"`
	Code     string      `json:"code,omitempty"`
	Message  string      `json:"message"`
	Labels   []LabelJSON `json:"labels"`
	Notes    []string    `json:"notes,omitempty"`
}

// DiagnosticsOutput представляет корневую структуру JSON вывода
type DiagnosticsOutput struct {
	Diagnostics []DiagnosticJSON `json:"diagnostics"`
	Count       int              `json:"count"`
}

// makeLocation создаёт LocationJSON из Span; line/col 1-based
func makeLocation(span source.Span, fs *source.FileSet, opts JSONOpts) (LocationJSON, error) {
	f, err := fs.Get(span.File)
	if err != nil {
		return LocationJSON{}, err
	}

	loc := LocationJSON{
		File:      formatPath(f, fs, opts.PathMode),
		StartByte: span.Start,
		EndByte:   span.End,
	}

	// спан проверяется всегда, позиции пишутся только по запросу
	startPos, endPos, err := fs.Resolve(span)
	if err != nil {
		return LocationJSON{}, err
	}
	if opts.IncludePositions {
		loc.StartLine = startPos.Line + 1
		loc.StartCol = startPos.Column + 1
		loc.EndLine = endPos.Line + 1
		loc.EndCol = endPos.Column + 1
	}

	return loc, nil
}

// BuildDiagnosticsOutput формирует структуру JSON-вывода без сериализации.
// Метка, которая не резолвится, возвращает *UnresolvableLabelError.
func BuildDiagnosticsOutput(diags []diag.Diagnostic, fs *source.FileSet, opts JSONOpts) (DiagnosticsOutput, error) {
	maxItems := len(diags)
	if opts.Max > 0 && opts.Max < maxItems {
		maxItems = opts.Max
	}
	diagnostics := make([]DiagnosticJSON, 0, maxItems)

	for i := range maxItems {
		d := diags[i]

		diagJSON := DiagnosticJSON{
			Severity: d.Severity.String(),
			Code:     d.Code,
			Message:  d.Message,
			Labels:   make([]LabelJSON, 0, len(d.Labels)),
		}
		for j, l := range d.Labels {
			loc, err := makeLocation(l.Span, fs, opts)
			if err != nil {
				return DiagnosticsOutput{}, fmt.Errorf("diagnostic %d: %w", i, &UnresolvableLabelError{Index: j, Label: l, Err: err})
			}
			diagJSON.Labels = append(diagJSON.Labels, LabelJSON{
				Style:    l.Style.String(),
				Message:  l.Message,
				Location: loc,
			})
		}
		if opts.IncludeNotes && len(d.Notes) > 0 {
			diagJSON.Notes = append([]string(nil), d.Notes...)
		}

		diagnostics = append(diagnostics, diagJSON)
	}

	return DiagnosticsOutput{
		Diagnostics: diagnostics,
		Count:       len(diagnostics),
	}, nil
}

// JSON форматирует диагностики в JSON формат.
func JSON(w io.Writer, diags []diag.Diagnostic, fs *source.FileSet, opts JSONOpts) error {
	output, err := BuildDiagnosticsOutput(diags, fs, opts)
	if err != nil {
		return err
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}
