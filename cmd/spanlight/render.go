package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"spanlight/internal/config"
	"spanlight/internal/diag"
	"spanlight/internal/diagfmt"
	"spanlight/internal/source"
)

func newRenderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render [flags] <bundle>",
		Short: "Render the diagnostics of a bundle",
		Long: `Render every diagnostic of a bundle (TOML, YAML, JSON or msgpack; "-" reads stdin).
Exits with status 1 when a diagnostic is an error or bug, or when a diagnostic cannot be rendered.`,
		Args: cobra.ExactArgs(1),
		RunE: runRender,
	}
	cmd.Flags().String("format", "pretty", "output format (pretty|short|json)")
	cmd.Flags().Int("tab-width", 4, "distance between tab stops")
	cmd.Flags().Int("context", 0, "extra source lines shown above and below labelled lines")
	cmd.Flags().Bool("ascii", false, "draw snippets with ASCII characters only")
	cmd.Flags().String("path-mode", "auto", "how file names are shown (auto|absolute|relative|basename)")
	cmd.Flags().Int("jobs", 0, "max parallel render workers (0=auto)")
	cmd.Flags().Bool("sort", false, "sort diagnostics by severity, then file and position")
	cmd.Flags().Bool("dedup", false, "drop diagnostics repeated with the same location and message")
	cmd.Flags().String("min-severity", "help", "hide diagnostics below this severity (help|note|warning|error|bug)")
	return cmd
}

type renderOptions struct {
	format      string
	layout      diagfmt.Config
	jobs        int
	sort        bool
	dedup       bool
	minSeverity diag.Severity
}

// readRenderOptions applies changed flags over the [render] and [output] tables.
func readRenderOptions(cmd *cobra.Command, cfg config.Config) (renderOptions, error) {
	flags := cmd.Flags()
	if flags.Changed("format") {
		cfg.Output.Format, _ = flags.GetString("format")
	}
	if flags.Changed("tab-width") {
		cfg.Render.TabWidth, _ = flags.GetInt("tab-width")
	}
	if flags.Changed("context") {
		n, _ := flags.GetInt("context")
		cfg.Render.StartContextLines = n
		cfg.Render.EndContextLines = n
	}
	if ascii, _ := flags.GetBool("ascii"); ascii {
		cfg.Render.Chars = "ascii"
	}
	if flags.Changed("path-mode") {
		cfg.Render.PathMode, _ = flags.GetString("path-mode")
	}
	if flags.Changed("jobs") {
		cfg.Output.Jobs, _ = flags.GetInt("jobs")
	}

	switch cfg.Output.Format {
	case "pretty", "short", "json":
	default:
		return renderOptions{}, fmt.Errorf("unknown format %q (expected pretty|short|json)", cfg.Output.Format)
	}
	if cfg.Render.TabWidth < 1 {
		return renderOptions{}, fmt.Errorf("--tab-width must be positive")
	}
	if cfg.Render.StartContextLines < 0 || cfg.Render.EndContextLines < 0 {
		return renderOptions{}, fmt.Errorf("--context must not be negative")
	}
	layout, err := cfg.DiagfmtConfig()
	if err != nil {
		return renderOptions{}, err
	}

	minSev, _ := flags.GetString("min-severity")
	sev, err := diag.ParseSeverity(minSev)
	if err != nil {
		return renderOptions{}, err
	}
	sortDiags, _ := flags.GetBool("sort")
	dedup, _ := flags.GetBool("dedup")

	return renderOptions{
		format:      cfg.Output.Format,
		layout:      layout,
		jobs:        cfg.Output.Jobs,
		sort:        sortDiags,
		dedup:       dedup,
		minSeverity: sev,
	}, nil
}

func runRender(cmd *cobra.Command, args []string) error {
	return runCommand(cmd, func(rc *runContext) error {
		opts, err := readRenderOptions(cmd, rc.set.cfg)
		if err != nil {
			return err
		}

		var (
			fs    *source.FileSet
			diags []diag.Diagnostic
		)
		err = rc.phase("load", func() error {
			b, err := readBundle(args[0], cmd.InOrStdin())
			if err != nil {
				return err
			}
			fs, diags, err = buildBundle(b)
			return err
		})
		if err != nil {
			return err
		}

		bag := diag.NewBag(rc.set.max)
		dropped := 0
		for _, d := range diags {
			if d.Severity < opts.minSeverity {
				continue
			}
			if !bag.Add(d) {
				dropped++
			}
		}
		if opts.dedup {
			bag.Dedup()
		}
		if opts.sort {
			bag.Sort()
		}
		items := bag.Items()

		stdout := cmd.OutOrStdout()
		stderr := cmd.ErrOrStderr()

		renderFailed := false
		if opts.format == "json" {
			err := rc.phase("render", func() error {
				return diagfmt.JSON(stdout, items, fs, diagfmt.JSONOpts{
					IncludePositions: true,
					PathMode:         opts.layout.PathMode,
					IncludeNotes:     true,
				})
			})
			if err != nil {
				return err
			}
		} else {
			var (
				out      diagfmt.Output
				failures []error
			)
			_ = rc.phase("render", func() error {
				if opts.format == "short" {
					out, failures = renderShort(items, fs, opts.layout)
					return nil
				}
				results, err := diagfmt.RenderEach(cmd.Context(), items, fs, opts.layout, opts.jobs)
				if err != nil {
					failures = append(failures, err)
					return err
				}
				out, failures = diagfmt.Join(results)
				return nil
			})

			err := rc.phase("write", func() error {
				if shouldColor(rc.set.color, stdout) {
					return diagfmt.WriteANSI(stdout, out, diagfmt.DefaultTheme())
				}
				return diagfmt.WritePlain(stdout, out)
			})
			if err != nil {
				return err
			}
			for _, f := range failures {
				fmt.Fprintf(stderr, "spanlight: %v\n", f)
			}
			renderFailed = len(failures) > 0
		}

		if dropped > 0 {
			fmt.Fprintf(stderr, "spanlight: %d more diagnostics not shown (--max-diagnostics %d)\n", dropped, rc.set.max)
		}
		if renderFailed || bag.HasErrors() {
			return errFailed
		}
		return nil
	})
}

func renderShort(diags []diag.Diagnostic, fs *source.FileSet, cfg diagfmt.Config) (diagfmt.Output, []error) {
	var (
		out  diagfmt.Output
		errs []error
	)
	for i, d := range diags {
		block, err := diagfmt.RenderShort(d, fs, cfg)
		if err != nil {
			errs = append(errs, fmt.Errorf("diagnostic %d: %w", i, err))
			continue
		}
		out.Append(block)
	}
	return out, errs
}
