package trace

import "time"

// Kind says what an Event marks.
type Kind uint8

const (
	KindSpanBegin Kind = iota + 1
	KindSpanEnd
	KindPoint
	KindHeartbeat
)

var kindNames = [...]string{KindSpanBegin: "begin", KindSpanEnd: "end", KindPoint: "point", KindHeartbeat: "heartbeat"}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "unknown"
}

// Scope is the granularity of an event; smaller values are coarser.
type Scope uint8

const (
	ScopeCommand    Scope = iota + 1 // one CLI invocation
	ScopePhase                       // load, build, render, write
	ScopeDiagnostic                  // rendering one diagnostic
	ScopeLabel                       // resolving one label
)

var scopeNames = [...]string{ScopeCommand: "command", ScopePhase: "phase", ScopeDiagnostic: "diagnostic", ScopeLabel: "label"}

func (s Scope) String() string {
	if int(s) < len(scopeNames) && scopeNames[s] != "" {
		return scopeNames[s]
	}
	return "unknown"
}

// Event is one trace record. Begin and end events of a span share SpanID.
type Event struct {
	Time     time.Time
	Seq      uint64 // global emission order, assigned by the tracer
	Kind     Kind
	Scope    Scope
	SpanID   uint64
	ParentID uint64 // 0 for root spans
	GID      uint64 // goroutine that opened the span
	Name     string // "render", "render:3", "resolve"
	Detail   string
	Extra    map[string]string
}
