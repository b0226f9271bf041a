package main

import (
	"fmt"
	"io"

	"spanlight/internal/bundle"
	"spanlight/internal/diag"
	"spanlight/internal/source"
)

// readBundle loads a bundle from path, or from stdin when path is "-".
func readBundle(path string, stdin io.Reader) (*bundle.Bundle, error) {
	if path != "-" {
		return bundle.Load(path)
	}
	data, err := io.ReadAll(stdin)
	if err != nil {
		return nil, fmt.Errorf("read stdin: %w", err)
	}
	b, err := bundle.Decode(data, bundle.FormatAuto)
	if err != nil {
		return nil, fmt.Errorf("<stdin>: %w", err)
	}
	b.Dir = "."
	return b, nil
}

// buildBundle registers the bundle's sources in a fresh FileSet.
func buildBundle(b *bundle.Bundle) (*source.FileSet, []diag.Diagnostic, error) {
	fs := source.NewFileSet()
	diags, err := b.Build(fs, nil)
	if err != nil {
		return nil, nil, err
	}
	return fs, diags, nil
}
