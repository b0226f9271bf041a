package diagfmt

import (
	"context"
	"fmt"
	"runtime"
	"strconv"

	"golang.org/x/sync/errgroup"

	"spanlight/internal/diag"
	"spanlight/internal/source"
	"spanlight/internal/trace"
)

// Render renders diagnostics in the given order, separated by blank lines.
// The first failure aborts the whole report.
func Render(diags []diag.Diagnostic, fs *source.FileSet, cfg Config) (Output, error) {
	var out Output
	for i, d := range diags {
		block, err := RenderDiagnostic(d, fs, cfg)
		if err != nil {
			return Output{}, fmt.Errorf("diagnostic %d: %w", i, err)
		}
		if i > 0 {
			out.Lines = append(out.Lines, StyledLine{})
		}
		out.Append(block)
	}
	return out, nil
}

// Result is the outcome of rendering one diagnostic independently.
type Result struct {
	Index  int
	Output Output
	Err    error
}

// RenderEach renders every diagnostic on its own, up to jobs at a time
// (jobs <= 0 means GOMAXPROCS). A failing diagnostic does not affect the
// others; results come back in input order. The FileSet must not be modified
// while RenderEach runs.
func RenderEach(ctx context.Context, diags []diag.Diagnostic, fs *source.FileSet, cfg Config, jobs int) ([]Result, error) {
	tracer := trace.FromContext(ctx)
	parent := trace.CurrentSpan(ctx).SpanID
	span := trace.Begin(tracer, trace.ScopePhase, "render", parent).
		WithExtra("diagnostics", strconv.Itoa(len(diags)))

	results := make([]Result, len(diags))
	if len(diags) == 0 {
		span.End("")
		return results, nil
	}
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// индексы уникальны для каждой горутины, мьютекс не нужен
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(diags)))
	for i := range diags {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			ds := trace.Begin(tracer, trace.ScopeDiagnostic, "render:"+strconv.Itoa(i), span.ID())
			out, err := RenderDiagnostic(diags[i], fs, cfg)
			results[i] = Result{Index: i, Output: out, Err: err}
			if err != nil {
				ds.End(err.Error())
			} else {
				ds.End("")
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		span.End(err.Error())
		return nil, err
	}

	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
		}
	}
	span.WithExtra("failed", strconv.Itoa(failed)).End("")
	return results, nil
}

// Join concatenates the successful results in order, separated by blank lines,
// and returns the failures.
func Join(results []Result) (Output, []error) {
	var (
		out  Output
		errs []error
	)
	for _, r := range results {
		if r.Err != nil {
			errs = append(errs, fmt.Errorf("diagnostic %d: %w", r.Index, r.Err))
			continue
		}
		if len(out.Lines) > 0 {
			out.Lines = append(out.Lines, StyledLine{})
		}
		out.Append(r.Output)
	}
	return out, errs
}
