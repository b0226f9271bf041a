package source

import (
	"cmp"
	"fmt"
)

// Span is a half-open byte range [Start, End) inside one file.
// Bounds are checked only when the span is resolved against a FileSet.
type Span struct {
	File  FileID
	Start uint32 // в байтах включительно
	End   uint32 // в байтах не включительно
}

func (s Span) Empty() bool {
	return s.Start == s.End
}

func (s Span) Len() uint32 {
	return s.End - s.Start
}

func (s Span) String() string {
	return fmt.Sprintf("%d:%d-%d", s.File, s.Start, s.End)
}

// Cover returns the smallest span containing both s and other.
// Spans from different files are not merged.
func (s Span) Cover(other Span) Span {
	if s.File != other.File {
		return s
	}
	if other.Start < s.Start {
		s.Start = other.Start
	}
	if other.End > s.End {
		s.End = other.End
	}
	return s
}

// ShiftLeft moves the span n bytes towards the start of the file.
// A shift past offset 0 leaves the span unchanged.
func (s Span) ShiftLeft(n uint32) Span {
	if n > s.Start {
		return s
	}
	return Span{
		File:  s.File,
		Start: s.Start - n,
		End:   s.End - n,
	}
}

func (s Span) ShiftRight(n uint32) Span {
	return Span{
		File:  s.File,
		Start: s.Start + n,
		End:   s.End + n,
	}
}

// Contains reports whether off lies inside [Start, End).
func (s Span) Contains(off uint32) bool {
	return s.Start <= off && off < s.End
}

// ContainsSpan reports whether other lies entirely inside s.
func (s Span) ContainsSpan(other Span) bool {
	return s.File == other.File && s.Start <= other.Start && other.End <= s.End
}

// Intersects reports whether the spans share at least one byte.
// Spans that only touch at a boundary do not intersect, and an empty span
// intersects nothing.
func (s Span) Intersects(other Span) bool {
	if s.Empty() || other.Empty() {
		return false
	}
	return s.File == other.File && s.Start < other.End && other.Start < s.End
}

// Compare orders spans by file, then start, then end.
func (s Span) Compare(other Span) int {
	if c := cmp.Compare(s.File, other.File); c != 0 {
		return c
	}
	if c := cmp.Compare(s.Start, other.Start); c != 0 {
		return c
	}
	return cmp.Compare(s.End, other.End)
}
