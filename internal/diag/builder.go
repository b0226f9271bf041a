package diag

import "spanlight/internal/source"

func New(sev Severity, msg string) Diagnostic {
	return Diagnostic{
		Severity: sev,
		Message:  msg,
		Labels:   nil,
		Notes:    nil,
	}
}

func NewBug(msg string) Diagnostic     { return New(SevBug, msg) }
func NewError(msg string) Diagnostic   { return New(SevError, msg) }
func NewWarning(msg string) Diagnostic { return New(SevWarning, msg) }
func NewNote(msg string) Diagnostic    { return New(SevNote, msg) }
func NewHelp(msg string) Diagnostic    { return New(SevHelp, msg) }

// PrimaryLabel creates a primary label.
func PrimaryLabel(sp source.Span, msg string) Label {
	return Label{Style: LabelPrimary, Span: sp, Message: msg}
}

// SecondaryLabel creates a secondary label.
func SecondaryLabel(sp source.Span, msg string) Label {
	return Label{Style: LabelSecondary, Span: sp, Message: msg}
}

func (l Label) WithMessage(msg string) Label {
	l.Message = msg
	return l
}

func (d Diagnostic) WithCode(code string) Diagnostic {
	d.Code = code
	return d
}

// WithLabel returns a copy of d with the label appended. The labels slice is
// copied so diagnostics built from a common base do not share storage.
func (d Diagnostic) WithLabel(l Label) Diagnostic {
	return d.WithLabels(l)
}

func (d Diagnostic) WithLabels(labels ...Label) Diagnostic {
	out := make([]Label, 0, len(d.Labels)+len(labels))
	out = append(out, d.Labels...)
	d.Labels = append(out, labels...)
	return d
}

func (d Diagnostic) WithNote(note string) Diagnostic {
	return d.WithNotes(note)
}

func (d Diagnostic) WithNotes(notes ...string) Diagnostic {
	out := make([]string, 0, len(d.Notes)+len(notes))
	out = append(out, d.Notes...)
	d.Notes = append(out, notes...)
	return d
}
