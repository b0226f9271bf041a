package trace

import (
	"fmt"
	"strings"
)

// Level is how much of the pipeline gets traced. Each level includes the
// scopes of the levels below it.
type Level uint8

const (
	LevelOff    Level = iota
	LevelError        // nothing is streamed; the ring is still dumped on panic
	LevelPhase        // commands and phases
	LevelDetail       // plus one span per rendered diagnostic
	LevelDebug        // plus label resolution
)

var levelNames = [...]string{"off", "error", "phase", "detail", "debug"}

// deepest is the finest scope each level lets through; 0 lets nothing through.
var deepest = [...]Scope{
	LevelOff:    0,
	LevelError:  0,
	LevelPhase:  ScopePhase,
	LevelDetail: ScopeDiagnostic,
	LevelDebug:  ScopeLabel,
}

func (l Level) String() string {
	if int(l) < len(levelNames) {
		return levelNames[l]
	}
	return "unknown"
}

// ParseLevel is case-insensitive.
func ParseLevel(s string) (Level, error) {
	want := strings.ToLower(s)
	for l, name := range levelNames {
		if name == want {
			return Level(l), nil
		}
	}
	return LevelOff, fmt.Errorf("invalid trace level: %q (expected: %s)", s, strings.Join(levelNames[:], "|"))
}

// ShouldEmit reports whether events of scope are recorded at level l.
func (l Level) ShouldEmit(scope Scope) bool {
	if int(l) >= len(deepest) {
		return false
	}
	return scope != 0 && scope <= deepest[l]
}

// accepts is ShouldEmit plus heartbeats, which pass whenever tracing is on.
func (l Level) accepts(ev *Event) bool {
	return l.ShouldEmit(ev.Scope) || ev.Kind == KindHeartbeat
}
