package diag

import "spanlight/internal/source"

type dedupKey struct {
	code    string
	sev     Severity
	file    source.FileID
	start   uint32
	end     uint32
	located bool
	msg     string
}

func dedupKeyOf(d Diagnostic) dedupKey {
	key := dedupKey{code: d.Code, sev: d.Severity, msg: d.Message}
	if p, ok := d.FirstPrimary(); ok {
		key.file, key.start, key.end, key.located = p.Span.File, p.Span.Start, p.Span.End, true
	}
	return key
}

// DedupReporter wraps another Reporter and suppresses duplicate diagnostics
// with the same code, severity, primary span and message.
type DedupReporter struct {
	next Reporter
	seen map[dedupKey]struct{}
}

// NewDedupReporter returns a Reporter that filters out duplicates while
// forwarding unique diagnostics to the provided reporter.
func NewDedupReporter(next Reporter) *DedupReporter {
	return &DedupReporter{
		next: next,
		seen: make(map[dedupKey]struct{}),
	}
}

func (r *DedupReporter) Report(d Diagnostic) {
	if r == nil {
		return
	}
	key := dedupKeyOf(d)
	if _, ok := r.seen[key]; ok {
		return
	}
	r.seen[key] = struct{}{}
	if r.next != nil {
		r.next.Report(d)
	}
}
