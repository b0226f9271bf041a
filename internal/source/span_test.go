package source

import (
	"testing"
)

func TestSpan_ShiftLeft(t *testing.T) {
	tests := []struct {
		name     string
		span     Span
		shift    uint32
		expected Span
	}{
		{
			name:     "shift normal span left by 5",
			span:     Span{File: 1, Start: 10, End: 20},
			shift:    5,
			expected: Span{File: 1, Start: 5, End: 15},
		},
		{
			name:     "shift span left by 0",
			span:     Span{File: 1, Start: 10, End: 20},
			shift:    0,
			expected: Span{File: 1, Start: 10, End: 20},
		},
		{
			name:     "shift equals start - boundary case",
			span:     Span{File: 1, Start: 10, End: 20},
			shift:    10,
			expected: Span{File: 1, Start: 0, End: 10},
		},
		{
			name:     "shift larger than start - returns original",
			span:     Span{File: 1, Start: 10, End: 20},
			shift:    15,
			expected: Span{File: 1, Start: 10, End: 20},
		},
		{
			name:     "shift zero-length span",
			span:     Span{File: 1, Start: 10, End: 10},
			shift:    3,
			expected: Span{File: 1, Start: 7, End: 7},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.span.ShiftLeft(tt.shift)
			if result != tt.expected {
				t.Errorf("ShiftLeft() = %+v, want %+v", result, tt.expected)
			}
		})
	}
}

func TestSpan_ShiftRight(t *testing.T) {
	span := Span{File: 2, Start: 100, End: 150}
	if got, want := span.ShiftRight(1), (Span{File: 2, Start: 101, End: 151}); got != want {
		t.Errorf("ShiftRight(1) = %+v, want %+v", got, want)
	}
	if got := span.ShiftRight(0); got != span {
		t.Errorf("ShiftRight(0) = %+v, want %+v", got, span)
	}
}

func TestSpan_Cover(t *testing.T) {
	a := Span{File: 1, Start: 4, End: 8}
	b := Span{File: 1, Start: 2, End: 6}
	if got, want := a.Cover(b), (Span{File: 1, Start: 2, End: 8}); got != want {
		t.Errorf("Cover() = %+v, want %+v", got, want)
	}
	other := Span{File: 2, Start: 0, End: 100}
	if got := a.Cover(other); got != a {
		t.Errorf("Cover() across files = %+v, want %+v unchanged", got, a)
	}
}

func TestSpan_ContainsAndIntersects(t *testing.T) {
	s := Span{File: 0, Start: 3, End: 7}

	for _, off := range []uint32{3, 4, 6} {
		if !s.Contains(off) {
			t.Errorf("Contains(%d) = false, want true", off)
		}
	}
	for _, off := range []uint32{0, 2, 7, 8} {
		if s.Contains(off) {
			t.Errorf("Contains(%d) = true, want false", off)
		}
	}

	tests := []struct {
		name       string
		other      Span
		contains   bool
		intersects bool
	}{
		{"same", Span{File: 0, Start: 3, End: 7}, true, true},
		{"inner", Span{File: 0, Start: 4, End: 5}, true, true},
		{"empty inside", Span{File: 0, Start: 5, End: 5}, true, false},
		{"overlap left", Span{File: 0, Start: 1, End: 4}, false, true},
		{"touch right", Span{File: 0, Start: 7, End: 9}, false, false},
		{"touch left", Span{File: 0, Start: 0, End: 3}, false, false},
		{"other file", Span{File: 1, Start: 3, End: 7}, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := s.ContainsSpan(tt.other); got != tt.contains {
				t.Errorf("ContainsSpan(%v) = %v, want %v", tt.other, got, tt.contains)
			}
			if got := s.Intersects(tt.other); got != tt.intersects {
				t.Errorf("Intersects(%v) = %v, want %v", tt.other, got, tt.intersects)
			}
		})
	}
}

func TestSpan_Compare(t *testing.T) {
	tests := []struct {
		a, b Span
		want int
	}{
		{Span{File: 0, Start: 1, End: 2}, Span{File: 1, Start: 0, End: 0}, -1},
		{Span{File: 1, Start: 5, End: 6}, Span{File: 1, Start: 2, End: 9}, 1},
		{Span{File: 1, Start: 2, End: 3}, Span{File: 1, Start: 2, End: 9}, -1},
		{Span{File: 1, Start: 2, End: 9}, Span{File: 1, Start: 2, End: 9}, 0},
	}
	for _, tt := range tests {
		if got := tt.a.Compare(tt.b); got != tt.want {
			t.Errorf("%v.Compare(%v) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestSpan_EmptyAndLen(t *testing.T) {
	if !(Span{Start: 4, End: 4}).Empty() {
		t.Error("expected zero-length span to be empty")
	}
	if got := (Span{Start: 4, End: 9}).Len(); got != 5 {
		t.Errorf("Len() = %d, want 5", got)
	}
	if got := (Span{File: 3, Start: 1, End: 2}).String(); got != "3:1-2" {
		t.Errorf("String() = %q, want %q", got, "3:1-2")
	}
}

func TestSpan_EmptyNeverIntersects(t *testing.T) {
	wide := Span{File: 0, Start: 3, End: 7}
	for _, empty := range []Span{{File: 0, Start: 3, End: 3}, {File: 0, Start: 5, End: 5}, {File: 0, Start: 7, End: 7}} {
		if wide.Intersects(empty) || empty.Intersects(wide) {
			t.Errorf("%v and %v should not intersect", wide, empty)
		}
		if empty.Intersects(empty) {
			t.Errorf("%v should not intersect itself", empty)
		}
	}
}
