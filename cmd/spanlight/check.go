package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"spanlight/internal/diag"
	"spanlight/internal/source"
	"spanlight/internal/trace"
)

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check [flags] <bundle>",
		Short: "Verify that every label of a bundle resolves",
		Long:  `Load a bundle and resolve every label against its source without rendering; exits with status 1 on any problem`,
		Args:  cobra.ExactArgs(1),
		RunE:  runCheck,
	}
}

// labelProblem is a label that cannot be placed in its source.
type labelProblem struct {
	diagnostic int
	label      int
	err        error
}

func runCheck(cmd *cobra.Command, args []string) error {
	return runCommand(cmd, func(rc *runContext) error {
		var (
			fs    *source.FileSet
			diags []diag.Diagnostic
		)
		err := rc.phase("load", func() error {
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

		var (
			problems []labelProblem
			labels   int
		)
		_ = rc.phase("check", func() error {
			for i, d := range diags {
				for j, l := range d.Labels {
					labels++
					ls := trace.Begin(rc.tracer, trace.ScopeLabel, "resolve", rc.span.ID()).
						WithExtra("diagnostic", strconv.Itoa(i)).
						WithExtra("label", strconv.Itoa(j))
					if _, _, err := fs.Resolve(l.Span); err != nil {
						problems = append(problems, labelProblem{diagnostic: i, label: j, err: err})
						ls.End(err.Error())
						continue
					}
					ls.End("")
				}
			}
			return nil
		})

		out := cmd.OutOrStdout()
		for _, p := range problems {
			d := diags[p.diagnostic]
			fmt.Fprintf(out, "diagnostic %d (%s: %s) label %d %s: %v\n",
				p.diagnostic, d.Severity, d.Message, p.label, d.Labels[p.label].Span, p.err)
		}
		fmt.Fprintf(out, "%d diagnostics, %d labels, %d problems\n", len(diags), labels, len(problems))
		if len(problems) > 0 {
			return errFailed
		}
		return nil
	})
}
