package trace

import (
	"io"
	"sync"
)

// StreamTracer writes each event to w as soon as it is emitted. Write errors
// are dropped: a broken trace sink must not fail a render.
type StreamTracer struct {
	level  Level
	format Format

	mu  sync.Mutex
	w   io.Writer
	sep string // written before the next Chrome event
}

// NewStreamTracer writes the opening of the Chrome array right away when
// format is FormatChrome; Close writes the closing bracket.
func NewStreamTracer(w io.Writer, level Level, format Format) *StreamTracer {
	t := &StreamTracer{level: level, format: format, w: w}
	if format == FormatChrome {
		_, _ = io.WriteString(w, "{\"traceEvents\":[\n")
	}
	return t
}

func (t *StreamTracer) Emit(ev *Event) {
	if !t.level.accepts(ev) {
		return
	}
	out := *ev
	out.Seq = NextSeq()
	data := FormatEvent(&out, t.format)

	t.mu.Lock()
	defer t.mu.Unlock()
	if t.format == FormatChrome {
		_, _ = io.WriteString(t.w, t.sep)
		t.sep = ",\n"
	}
	_, _ = t.w.Write(data)
}

// Flush forwards to w when it buffers (bufio.Writer and friends).
func (t *StreamTracer) Flush() error {
	if f, ok := t.w.(interface{ Flush() error }); ok {
		return f.Flush()
	}
	return nil
}

// Close terminates a Chrome array, flushes and closes w if it is a Closer.
func (t *StreamTracer) Close() error {
	t.mu.Lock()
	if t.format == FormatChrome {
		_, _ = io.WriteString(t.w, "\n]}\n")
	}
	t.mu.Unlock()

	if err := t.Flush(); err != nil {
		return err
	}
	if c, ok := t.w.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

func (t *StreamTracer) Level() Level  { return t.level }
func (t *StreamTracer) Enabled() bool { return t.level > LevelOff }
