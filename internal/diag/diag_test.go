package diag

import (
	"slices"
	"testing"

	"spanlight/internal/source"
)

func TestParseSeverity(t *testing.T) {
	tests := []struct {
		in      string
		want    Severity
		wantErr bool
	}{
		{"error", SevError, false},
		{"  Warning ", SevWarning, false},
		{"warn", SevWarning, false},
		{"info", SevNote, false},
		{"help", SevHelp, false},
		{"bug", SevBug, false},
		{"fatal", SevHelp, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseSeverity(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseSeverity(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseSeverity(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestSeverityOrder(t *testing.T) {
	order := []Severity{SevHelp, SevNote, SevWarning, SevError, SevBug}
	for i := 1; i < len(order); i++ {
		if order[i-1] >= order[i] {
			t.Errorf("%v should be less than %v", order[i-1], order[i])
		}
	}
}

func TestParseLabelStyle(t *testing.T) {
	if s, err := ParseLabelStyle(""); err != nil || s != LabelPrimary {
		t.Errorf("empty style = %v, %v; want primary", s, err)
	}
	if s, err := ParseLabelStyle("Secondary"); err != nil || s != LabelSecondary {
		t.Errorf("Secondary = %v, %v; want secondary", s, err)
	}
	if _, err := ParseLabelStyle("tertiary"); err == nil {
		t.Error("expected error for unknown style")
	}
}

func TestBuildersCopySlices(t *testing.T) {
	sp := source.Span{File: 1, Start: 0, End: 3}
	base := NewError("base").WithLabel(PrimaryLabel(sp, "a"))
	d1 := base.WithLabel(SecondaryLabel(sp, "b"))
	d2 := base.WithLabel(SecondaryLabel(sp, "c"))

	if len(base.Labels) != 1 {
		t.Fatalf("base was modified: %d labels", len(base.Labels))
	}
	if d1.Labels[1].Message != "b" || d2.Labels[1].Message != "c" {
		t.Errorf("derived diagnostics share storage: %q %q", d1.Labels[1].Message, d2.Labels[1].Message)
	}

	n := base.WithNotes("x", "y").WithNote("z")
	if !slices.Equal(n.Notes, []string{"x", "y", "z"}) {
		t.Errorf("notes = %v", n.Notes)
	}
	if base.Notes != nil {
		t.Errorf("base notes modified: %v", base.Notes)
	}
}

func TestPrimaryLabels(t *testing.T) {
	d := NewWarning("w").WithLabels(
		SecondaryLabel(source.Span{File: 1, Start: 0, End: 1}, "s"),
		PrimaryLabel(source.Span{File: 1, Start: 4, End: 5}, "p1"),
		PrimaryLabel(source.Span{File: 2, Start: 0, End: 1}, "p2"),
	)
	prim := d.PrimaryLabels()
	if len(prim) != 2 || prim[0].Message != "p1" || prim[1].Message != "p2" {
		t.Fatalf("PrimaryLabels = %+v", prim)
	}
	first, ok := d.FirstPrimary()
	if !ok || first.Message != "p1" {
		t.Errorf("FirstPrimary = %+v, %v", first, ok)
	}
	if _, ok := NewNote("n").FirstPrimary(); ok {
		t.Error("unlabelled diagnostic reported a primary label")
	}
}

func TestCompare(t *testing.T) {
	at := func(d Diagnostic, file source.FileID, start uint32) Diagnostic {
		return d.WithLabel(PrimaryLabel(source.Span{File: file, Start: start, End: start + 1}, ""))
	}
	diags := []Diagnostic{
		NewWarning("w"),
		at(NewError("b"), 1, 10),
		NewError("unlocated"),
		at(NewError("a"), 1, 2),
		at(NewBug("bug"), 2, 0),
		at(NewError("other file"), 0, 50),
	}
	slices.SortStableFunc(diags, Compare)

	want := []string{"bug", "other file", "a", "b", "unlocated", "w"}
	var got []string
	for _, d := range diags {
		got = append(got, d.Message)
	}
	if !slices.Equal(got, want) {
		t.Errorf("order = %v, want %v", got, want)
	}
}

func TestBagLimitAndQueries(t *testing.T) {
	b := NewBag(2)
	if !b.Add(NewNote("n")) || b.HasWarnings() || b.HasErrors() {
		t.Fatal("unexpected state after adding a note")
	}
	if !b.Add(NewWarning("w")) || !b.HasWarnings() || b.HasErrors() {
		t.Fatal("unexpected state after adding a warning")
	}
	if b.Add(NewError("e")) {
		t.Fatal("Add should fail once the limit is reached")
	}
	if b.Len() != 2 || b.Cap() != 2 {
		t.Errorf("Len=%d Cap=%d", b.Len(), b.Cap())
	}

	other := NewBag(0)
	other.Add(NewBug("b"))
	b.Merge(other)
	if b.Len() != 3 || !b.HasErrors() {
		t.Errorf("after merge Len=%d HasErrors=%v", b.Len(), b.HasErrors())
	}
}

func TestBagSortDedupFilter(t *testing.T) {
	sp := source.Span{File: 1, Start: 3, End: 4}
	b := NewBag(0)
	b.Add(NewNote("n"))
	b.Add(NewError("e").WithCode("E1").WithLabel(PrimaryLabel(sp, "x")))
	b.Add(NewError("e").WithCode("E1").WithLabel(PrimaryLabel(sp, "y")))
	b.Add(NewError("e").WithCode("E2").WithLabel(PrimaryLabel(sp, "")))

	b.Dedup()
	if b.Len() != 3 {
		t.Fatalf("Dedup left %d items, want 3", b.Len())
	}
	b.Sort()
	if got := b.Items()[0]; got.Code != "E1" || got.Labels[0].Message != "x" {
		t.Errorf("first after sort = %+v", got)
	}
	b.Filter(func(d Diagnostic) bool { return d.Severity >= SevError })
	if b.Len() != 2 {
		t.Errorf("Filter left %d items, want 2", b.Len())
	}
}

func TestBagDedupKeepsSeparatorLookalikes(t *testing.T) {
	at := source.Span{File: 0, Start: 0, End: 0}
	b := NewBag(0)
	// склеенные через ':' поля совпали бы у первых двух
	b.Add(NewError("m").WithCode("X:0:0:0").WithLabel(PrimaryLabel(at, "")))
	b.Add(NewError("0:0:0:m").WithCode("X").WithLabel(PrimaryLabel(at, "")))
	// located и unlocated с нулевым спаном тоже различаются
	b.Add(NewError("m").WithCode("X"))
	b.Add(NewError("m").WithCode("X").WithLabel(PrimaryLabel(at, "")))
	b.Add(NewError("m").WithCode("X").WithLabel(PrimaryLabel(at, "again")))

	b.Dedup()
	if b.Len() != 4 {
		t.Fatalf("Dedup left %d items, want 4: %+v", b.Len(), b.Items())
	}
}

func TestReportBuilder(t *testing.T) {
	bag := NewBag(0)
	rep := NewDedupReporter(BagReporter{Bag: bag})
	sp := source.Span{File: 1, Start: 0, End: 2}

	b := ReportError(rep, sp, "mismatched types").
		WithCode("E0308").
		WithMessage("expected here").
		WithSecondary(source.Span{File: 1, Start: 5, End: 6}, "found here").
		WithNote("expected `int`")
	b.Emit()
	b.Emit()
	ReportError(rep, sp, "mismatched types").WithCode("E0308").Emit()

	if bag.Len() != 1 {
		t.Fatalf("bag has %d diagnostics, want 1", bag.Len())
	}
	d := bag.Items()[0]
	if d.Severity != SevError || d.Code != "E0308" || len(d.Labels) != 2 || len(d.Notes) != 1 {
		t.Errorf("unexpected diagnostic %+v", d)
	}
	if d.Labels[0].Message != "expected here" || d.Labels[1].Style != LabelSecondary {
		t.Errorf("labels = %+v", d.Labels)
	}
}
