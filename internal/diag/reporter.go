package diag

import "spanlight/internal/source"

// Reporter — минимальный контракт получения диагностик.
// Реализации: BagReporter (кладёт в Bag), DedupReporter.
type Reporter interface {
	Report(d Diagnostic)
}

// ReportBuilder accumulates diagnostic details before emitting to Reporter.
type ReportBuilder struct {
	reporter Reporter
	diag     Diagnostic
	emitted  bool
}

// NewReportBuilder constructs a builder bound to Reporter. A zero-length
// primary span is still recorded; pass no span by using New directly.
func NewReportBuilder(r Reporter, sev Severity, primary source.Span, msg string) *ReportBuilder {
	return &ReportBuilder{
		reporter: r,
		diag:     New(sev, msg).WithLabel(PrimaryLabel(primary, "")),
	}
}

// ReportError is a shortcut for SevError diagnostics.
func ReportError(r Reporter, primary source.Span, msg string) *ReportBuilder {
	return NewReportBuilder(r, SevError, primary, msg)
}

// ReportWarning is a shortcut for SevWarning diagnostics.
func ReportWarning(r Reporter, primary source.Span, msg string) *ReportBuilder {
	return NewReportBuilder(r, SevWarning, primary, msg)
}

// ReportNote is a shortcut for SevNote diagnostics.
func ReportNote(r Reporter, primary source.Span, msg string) *ReportBuilder {
	return NewReportBuilder(r, SevNote, primary, msg)
}

// WithCode sets the diagnostic code.
func (b *ReportBuilder) WithCode(code string) *ReportBuilder {
	if b == nil {
		return nil
	}
	b.diag.Code = code
	return b
}

// WithMessage sets the message of the primary label.
func (b *ReportBuilder) WithMessage(msg string) *ReportBuilder {
	if b == nil {
		return nil
	}
	b.diag.Labels[0].Message = msg
	return b
}

// WithLabel appends a primary label.
func (b *ReportBuilder) WithLabel(sp source.Span, msg string) *ReportBuilder {
	if b == nil {
		return nil
	}
	b.diag = b.diag.WithLabel(PrimaryLabel(sp, msg))
	return b
}

// WithSecondary appends a secondary label.
func (b *ReportBuilder) WithSecondary(sp source.Span, msg string) *ReportBuilder {
	if b == nil {
		return nil
	}
	b.diag = b.diag.WithLabel(SecondaryLabel(sp, msg))
	return b
}

// WithNote appends a free-text note.
func (b *ReportBuilder) WithNote(msg string) *ReportBuilder {
	if b == nil {
		return nil
	}
	b.diag = b.diag.WithNote(msg)
	return b
}

// Emit sends diagnostic to underlying reporter exactly once.
func (b *ReportBuilder) Emit() {
	if b == nil || b.emitted {
		return
	}
	if b.reporter != nil {
		b.reporter.Report(b.diag)
	}
	b.emitted = true
}

// Diagnostic returns accumulated diagnostic without emitting.
func (b *ReportBuilder) Diagnostic() Diagnostic {
	if b == nil {
		return Diagnostic{}
	}
	return b.diag
}

// BagReporter — адаптер, который пишет в *Bag.
type BagReporter struct{ Bag *Bag }

func (r BagReporter) Report(d Diagnostic) {
	if r.Bag == nil {
		return
	}
	r.Bag.Add(d)
}
