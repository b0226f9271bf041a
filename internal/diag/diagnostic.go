package diag

import (
	"fmt"
	"strings"

	"spanlight/internal/source"
)

// LabelStyle tells whether a label marks the span the diagnostic is about or
// related context.
type LabelStyle uint8

const (
	LabelPrimary LabelStyle = iota
	LabelSecondary
)

func (s LabelStyle) String() string {
	switch s {
	case LabelPrimary:
		return "primary"
	case LabelSecondary:
		return "secondary"
	}
	return "unknown"
}

// ParseLabelStyle converts "primary"/"secondary" into a LabelStyle.
func ParseLabelStyle(s string) (LabelStyle, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "primary":
		return LabelPrimary, nil
	case "secondary":
		return LabelSecondary, nil
	default:
		return LabelPrimary, fmt.Errorf("invalid label style: %q (expected: primary|secondary)", s)
	}
}

// Label highlights a span with an optional short message.
type Label struct {
	Style   LabelStyle
	Span    source.Span
	Message string
}

type Diagnostic struct {
	Severity Severity
	Code     string // optional, e.g. "E0308"
	Message  string
	// Labels keep their insertion order; it breaks ties when rendering.
	Labels []Label
	Notes  []string
}

// PrimaryLabels returns the primary labels in insertion order.
func (d Diagnostic) PrimaryLabels() []Label {
	var out []Label
	for _, l := range d.Labels {
		if l.Style == LabelPrimary {
			out = append(out, l)
		}
	}
	return out
}

// FirstPrimary returns the first primary label, if any.
func (d Diagnostic) FirstPrimary() (Label, bool) {
	for _, l := range d.Labels {
		if l.Style == LabelPrimary {
			return l, true
		}
	}
	return Label{}, false
}
