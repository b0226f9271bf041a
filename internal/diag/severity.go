package diag

import (
	"fmt"
	"strings"
)

// Severity defines the importance of a diagnostic.
// The order is total: SevHelp < SevNote < SevWarning < SevError < SevBug.
type Severity uint8

const (
	// SevHelp is for suggestions on how to fix a problem.
	SevHelp Severity = iota
	// SevNote is for informational diagnostics.
	SevNote
	SevWarning
	SevError
	// SevBug marks an internal error of the tool itself.
	SevBug
)

func (s Severity) String() string {
	switch s {
	case SevHelp:
		return "help"
	case SevNote:
		return "note"
	case SevWarning:
		return "warning"
	case SevError:
		return "error"
	case SevBug:
		return "bug"
	}
	return "unknown"
}

// ParseSeverity converts a keyword back into a Severity.
func ParseSeverity(s string) (Severity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "help":
		return SevHelp, nil
	case "note", "info":
		return SevNote, nil
	case "warning", "warn":
		return SevWarning, nil
	case "error":
		return SevError, nil
	case "bug":
		return SevBug, nil
	default:
		return SevHelp, fmt.Errorf("invalid severity: %q (expected: bug|error|warning|note|help)", s)
	}
}
