package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"spanlight/internal/bundle"
)

func newPackCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pack <bundle> <out.msgpack>",
		Short: "Re-encode a bundle as self-contained msgpack",
		Long:  `Read a bundle, inline every referenced source file and write the result as msgpack ("-" writes stdout)`,
		Args:  cobra.ExactArgs(2),
		RunE:  runPack,
	}
}

func runPack(cmd *cobra.Command, args []string) error {
	return runCommand(cmd, func(rc *runContext) error {
		var b *bundle.Bundle
		err := rc.phase("load", func() error {
			var err error
			if b, err = readBundle(args[0], cmd.InOrStdin()); err != nil {
				return err
			}
			if err := b.Inline(nil); err != nil {
				return err
			}
			// проверяем, что бандл собирается, до записи
			_, _, err = buildBundle(b)
			return err
		})
		if err != nil {
			return err
		}

		var buf bytes.Buffer
		if err := bundle.Encode(&buf, b); err != nil {
			return fmt.Errorf("encode: %w", err)
		}
		return rc.phase("write", func() error {
			if args[1] == "-" {
				_, err := cmd.OutOrStdout().Write(buf.Bytes())
				return err
			}
			if err := os.WriteFile(args[1], buf.Bytes(), 0o600); err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "packed %d files and %d diagnostics into %s\n", len(b.Files), len(b.Diagnostics), args[1])
			return nil
		})
	})
}
