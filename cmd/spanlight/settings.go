package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"spanlight/internal/config"
	"spanlight/internal/observ"
	"spanlight/internal/trace"
)

// settings are the persistent flags merged over spanlight.toml.
type settings struct {
	cfg     config.Config
	color   colorMode
	timings bool
	max     int
}

func loadSettings(cmd *cobra.Command) (settings, error) {
	flags := cmd.Root().PersistentFlags()

	path, err := flags.GetString("config")
	if err != nil {
		return settings{}, fmt.Errorf("failed to get config flag: %w", err)
	}
	var cfg config.Config
	if path != "" {
		cfg, err = config.Load(path)
	} else {
		cfg, _, err = config.Discover(".")
	}
	if err != nil {
		return settings{}, err
	}

	colorValue := cfg.Output.Color
	if flags.Changed("color") {
		if colorValue, err = flags.GetString("color"); err != nil {
			return settings{}, fmt.Errorf("failed to get color flag: %w", err)
		}
	}
	mode, err := readColorMode(colorValue)
	if err != nil {
		return settings{}, err
	}

	timings, err := flags.GetBool("timings")
	if err != nil {
		return settings{}, fmt.Errorf("failed to get timings flag: %w", err)
	}
	maxDiagnostics, err := flags.GetInt("max-diagnostics")
	if err != nil {
		return settings{}, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	if maxDiagnostics < 0 {
		return settings{}, fmt.Errorf("--max-diagnostics must not be negative")
	}

	return settings{cfg: cfg, color: mode, timings: timings, max: maxDiagnostics}, nil
}

// runContext carries what every subcommand needs once flags are resolved.
type runContext struct {
	cmd    *cobra.Command
	set    settings
	timer  *observ.Timer
	tracer trace.Tracer
	span   *trace.Span
}

// phase runs fn as a named phase: timed for --timings and traced as a span.
func (rc *runContext) phase(name string, fn func() error) error {
	ps := trace.Begin(rc.tracer, trace.ScopePhase, name, rc.span.ID())
	err := rc.timer.Measure(name, fn)
	if err != nil {
		ps.End(err.Error())
	} else {
		ps.End("")
	}
	return err
}

// runCommand resolves settings, starts tracing and a command span, then calls fn.
func runCommand(cmd *cobra.Command, fn func(rc *runContext) error) (err error) {
	set, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	stopProfiling, err := setupProfiling(cmd)
	if err != nil {
		return err
	}
	defer stopProfiling()
	cleanup, err := setupTracing(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	tracer := trace.FromContext(cmd.Context())
	defer dumpTraceOnPanic(tracer, cmd.ErrOrStderr())

	rc := &runContext{
		cmd:    cmd,
		set:    set,
		timer:  observ.NewTimer(),
		tracer: tracer,
	}
	rc.span = trace.Begin(tracer, trace.ScopeCommand, cmd.Name(), 0)
	cmd.SetContext(trace.WithSpanContext(cmd.Context(), trace.SpanContext{SpanID: rc.span.ID()}))
	defer func() {
		if err != nil {
			rc.span.End(err.Error())
		} else {
			rc.span.End("")
		}
		if set.timings {
			printTimings(cmd.ErrOrStderr(), rc.timer)
		}
	}()

	return fn(rc)
}
