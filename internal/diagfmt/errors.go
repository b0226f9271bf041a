package diagfmt

import (
	"errors"
	"fmt"

	"spanlight/internal/diag"
)

// ErrUnresolvableLabel matches every *UnresolvableLabelError.
var ErrUnresolvableLabel = errors.New("unresolvable label")

// UnresolvableLabelError reports a label whose span does not resolve against the FileSet.
type UnresolvableLabelError struct {
	Index int // position in Diagnostic.Labels
	Label diag.Label
	Err   error
}

func (e *UnresolvableLabelError) Error() string {
	return fmt.Sprintf("unresolvable label %d at %s: %v", e.Index, e.Label.Span, e.Err)
}

func (e *UnresolvableLabelError) Unwrap() []error {
	return []error{ErrUnresolvableLabel, e.Err}
}
