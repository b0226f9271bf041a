package fuzztests

import (
	"errors"
	"testing"

	"spanlight/internal/diag"
	"spanlight/internal/diagfmt"
	"spanlight/internal/source"
	"spanlight/internal/testkit"
)

// snap moves off back to the nearest offset that resolves to a Location.
func snap(f *source.File, off uint32) uint32 {
	off = min(off, f.Len())
	for off > 0 {
		if _, err := f.Location(off); err == nil {
			return off
		}
		off--
	}
	return 0
}

func FuzzFileSetLocation(f *testing.F) {
	addSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte, off, _ uint32, _ uint32, _ bool) {
		if len(input) > maxFuzzInput {
			input = input[:maxFuzzInput]
		}
		fs := source.NewFileSet()
		id := fs.AddVirtual("fuzz.sg", append([]byte(nil), input...))

		loc, err := fs.Location(id, off)
		if off > uint32(len(input)) {
			if !errors.Is(err, source.ErrOutOfBounds) {
				t.Fatalf("Location(%d) past end: err = %v", off, err)
			}
			return
		}
		if err != nil {
			if !errors.Is(err, source.ErrInvalidOffset) {
				t.Fatalf("Location(%d): unexpected error %v", off, err)
			}
			return
		}
		back, err := fs.Offset(id, loc)
		if err != nil || back != off {
			t.Fatalf("Offset(Location(%d) = %v) = %d, %v", off, loc, back, err)
		}
		if off > 0 {
			prev, err := fs.LineIndex(id, off-1)
			cur, err2 := fs.LineIndex(id, off)
			if err == nil && err2 == nil && prev > cur {
				t.Fatalf("LineIndex not monotone at %d: %d > %d", off, prev, cur)
			}
		}
	})
}

func FuzzRenderDiagnostic(f *testing.F) {
	addSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte, start, end, other uint32, ascii bool) {
		if len(input) > maxFuzzInput {
			input = input[:maxFuzzInput]
		}
		fs := source.NewFileSet()
		id := fs.AddVirtual("fuzz.sg", append([]byte(nil), input...))
		file, err := fs.Get(id)
		if err != nil {
			t.Fatal(err)
		}

		start, end = snap(file, start), snap(file, end)
		if start > end {
			start, end = end, start
		}
		other = snap(file, other)
		d := diag.NewError("fuzz").WithCode("F0").WithLabels(
			diag.PrimaryLabel(source.Span{File: id, Start: start, End: end}, "primary"),
			diag.SecondaryLabel(source.Span{File: id, Start: other, End: other}, "secondary"),
		).WithNote("note\nsecond line")

		cfg := diagfmt.DefaultConfig()
		cfg.EndContextLines = 1
		if ascii {
			cfg.Chars = diagfmt.ASCIIChars()
		}
		out, err := diagfmt.RenderDiagnostic(d, fs, cfg)
		if err != nil {
			t.Fatalf("RenderDiagnostic(%d..%d, %d): %v", start, end, other, err)
		}
		if err := testkit.CheckOutput(out); err != nil {
			t.Fatalf("%v\n%s", err, out)
		}
		if err := testkit.CheckSourceRows(out, file, cfg); err != nil {
			t.Fatalf("%v\n%s", err, out)
		}
		again, err := diagfmt.RenderDiagnostic(d, fs, cfg)
		if err != nil || again.String() != out.String() {
			t.Fatalf("rendering is not repeatable")
		}

		// метка за концом файла должна давать ошибку, а не панику
		bad := d.WithLabel(diag.SecondaryLabel(source.Span{File: id, Start: 0, End: file.Len() + 1}, ""))
		if _, err := diagfmt.RenderDiagnostic(bad, fs, cfg); !errors.Is(err, diagfmt.ErrUnresolvableLabel) {
			t.Fatalf("out-of-range label: err = %v", err)
		}
	})
}
