package diagfmt

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"spanlight/internal/diag"
	"spanlight/internal/source"
)

type goldenDiagnostic struct {
	Severity string
	Code     string
	Path     string
	Line     uint32
	Column   uint32
	Message  string
}

// FormatGoldenDiagnostics renders diagnostics into a stable, single-line-per-entry
// representation suitable for golden files. Every primary label yields an entry;
// with includeSecondary, secondary labels are listed as "label" entries. Labels
// that do not resolve are skipped. Entries are sorted deterministically and
// joined with newlines (empty string when nothing remains).
func FormatGoldenDiagnostics(diags []diag.Diagnostic, fs *source.FileSet, includeSecondary bool) string {
	if fs == nil || len(diags) == 0 {
		return ""
	}

	rendered := make([]goldenDiagnostic, 0, len(diags))
	for _, d := range diags {
		rendered = appendDiagnostic(rendered, d, fs, includeSecondary)
	}

	sort.SliceStable(rendered, func(i, j int) bool {
		di, dj := rendered[i], rendered[j]
		if di.Path != dj.Path {
			return di.Path < dj.Path
		}
		if di.Line != dj.Line {
			return di.Line < dj.Line
		}
		if di.Column != dj.Column {
			return di.Column < dj.Column
		}
		if di.Severity != dj.Severity {
			return di.Severity < dj.Severity
		}
		if di.Code != dj.Code {
			return di.Code < dj.Code
		}
		return di.Message < dj.Message
	})

	var b strings.Builder
	for i, d := range rendered {
		fmt.Fprintf(&b, "%s %s %s:%d:%d %s", d.Severity, d.Code, d.Path, d.Line, d.Column, d.Message)
		if i < len(rendered)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func appendDiagnostic(out []goldenDiagnostic, d diag.Diagnostic, fs *source.FileSet, includeSecondary bool) []goldenDiagnostic {
	code := d.Code
	if code == "" {
		code = "-"
	}
	for _, l := range d.Labels {
		if l.Style != diag.LabelPrimary && !includeSecondary {
			continue
		}
		loc, ok := resolveGolden(fs, l.Span)
		if !ok {
			continue
		}
		entry := goldenDiagnostic{
			Severity: d.Severity.String(),
			Code:     code,
			Path:     loc.Path,
			Line:     loc.Line,
			Column:   loc.Column,
			Message:  sanitizeMessage(d.Message),
		}
		if l.Style != diag.LabelPrimary {
			entry.Severity = "label"
			entry.Message = sanitizeMessage(l.Message)
		}
		out = append(out, entry)
	}
	return out
}

type resolvedSpan struct {
	Path   string
	Line   uint32
	Column uint32
}

func resolveGolden(fs *source.FileSet, span source.Span) (resolvedSpan, bool) {
	file, err := fs.Get(span.File)
	if err != nil {
		return resolvedSpan{}, false
	}
	// Resolve проверяет и начало, и конец, и их порядок
	start, _, err := fs.Resolve(span)
	if err != nil {
		return resolvedSpan{}, false
	}
	return resolvedSpan{
		Path:   normalizePath(file.FormatPath("relative", fs.BaseDir())),
		Line:   start.Line + 1,
		Column: start.Column + 1,
	}, true
}

func normalizePath(path string) string {
	p := filepath.ToSlash(path)
	for strings.HasPrefix(p, "./") {
		p = strings.TrimPrefix(p, "./")
	}
	return p
}

func sanitizeMessage(msg string) string {
	msg = strings.ReplaceAll(msg, "\r\n", "\n")
	msg = strings.ReplaceAll(msg, "\r", "\n")
	msg = strings.ReplaceAll(msg, "\n", " ")
	return strings.TrimSpace(msg)
}
