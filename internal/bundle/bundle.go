// Package bundle reads and writes diagnostic bundles: a list of named sources
// plus the diagnostics to render against them.
package bundle

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"spanlight/internal/diag"
	"spanlight/internal/source"
)

// SchemaVersion is written into encoded bundles; bump it when fields change meaning.
const SchemaVersion uint16 = 1

var (
	ErrUnknownFile   = errors.New("unknown file")
	ErrDuplicateFile = errors.New("duplicate file")
	ErrNewerSchema   = errors.New("bundle schema is newer than supported")
)

// Bundle is the decoded document.
type Bundle struct {
	Schema      uint16       `toml:"schema" json:"schema,omitempty" yaml:"schema,omitempty" msgpack:"schema"`
	Files       []File       `toml:"files" json:"files" yaml:"files" msgpack:"files"`
	Diagnostics []Diagnostic `toml:"diagnostics" json:"diagnostics" yaml:"diagnostics" msgpack:"diagnostics"`

	// Dir is the directory relative File.Path values are resolved against.
	Dir string `toml:"-" json:"-" yaml:"-" msgpack:"-"`
}

// File is a source either inlined as Text or read from Path.
type File struct {
	Name string `toml:"name" json:"name" yaml:"name" msgpack:"name"`
	Path string `toml:"path,omitempty" json:"path,omitempty" yaml:"path,omitempty" msgpack:"path,omitempty"`
	Text string `toml:"text,omitempty" json:"text,omitempty" yaml:"text,omitempty" msgpack:"text,omitempty"`
}

type Diagnostic struct {
	Severity string   `toml:"severity" json:"severity" yaml:"severity" msgpack:"severity"`
	Code     string   `toml:"code,omitempty" json:"code,omitempty" yaml:"code,omitempty" msgpack:"code,omitempty"`
	Message  string   `toml:"message" json:"message" yaml:"message" msgpack:"message"`
	Notes    []string `toml:"notes,omitempty" json:"notes,omitempty" yaml:"notes,omitempty" msgpack:"notes,omitempty"`
	Labels   []Label  `toml:"labels,omitempty" json:"labels,omitempty" yaml:"labels,omitempty" msgpack:"labels,omitempty"`
}

// Label refers to a file by its bundle name; Start and End are byte offsets.
type Label struct {
	File    string `toml:"file" json:"file" yaml:"file" msgpack:"file"`
	Start   uint32 `toml:"start" json:"start" yaml:"start" msgpack:"start"`
	End     uint32 `toml:"end" json:"end" yaml:"end" msgpack:"end"`
	Style   string `toml:"style,omitempty" json:"style,omitempty" yaml:"style,omitempty" msgpack:"style,omitempty"`
	Message string `toml:"message,omitempty" json:"message,omitempty" yaml:"message,omitempty" msgpack:"message,omitempty"`
}

// ReadFileFunc reads the content of a file referenced by path.
type ReadFileFunc func(path string) ([]byte, error)

// Build registers every file of the bundle in fs and converts the diagnostics.
// Files with a Path are read through readFile (os.ReadFile when nil); relative
// paths are resolved against b.Dir. Spans are not checked here: that happens
// when the diagnostics are rendered.
func (b *Bundle) Build(fs *source.FileSet, readFile ReadFileFunc) ([]diag.Diagnostic, error) {
	if b.Schema > SchemaVersion {
		return nil, fmt.Errorf("schema %d: %w", b.Schema, ErrNewerSchema)
	}
	if readFile == nil {
		readFile = os.ReadFile
	}

	ids := make(map[string]source.FileID, len(b.Files))
	for i, f := range b.Files {
		if f.Name == "" {
			return nil, fmt.Errorf("file %d: missing name", i)
		}
		if _, dup := ids[f.Name]; dup {
			return nil, fmt.Errorf("file %d: %q: %w", i, f.Name, ErrDuplicateFile)
		}
		if f.Path == "" {
			ids[f.Name] = fs.AddVirtual(f.Name, []byte(f.Text))
			continue
		}
		data, err := readFile(b.resolve(f.Path))
		if err != nil {
			return nil, fmt.Errorf("file %q: %w", f.Name, err)
		}
		ids[f.Name] = fs.Add(f.Name, data, 0)
	}

	diags := make([]diag.Diagnostic, 0, len(b.Diagnostics))
	for i, bd := range b.Diagnostics {
		sev, err := diag.ParseSeverity(bd.Severity)
		if err != nil {
			return nil, fmt.Errorf("diagnostic %d: %w", i, err)
		}
		d := diag.New(sev, bd.Message).WithCode(bd.Code).WithNotes(bd.Notes...)
		for j, bl := range bd.Labels {
			id, ok := ids[bl.File]
			if !ok {
				return nil, fmt.Errorf("diagnostic %d label %d: %q: %w", i, j, bl.File, ErrUnknownFile)
			}
			style, err := diag.ParseLabelStyle(bl.Style)
			if err != nil {
				return nil, fmt.Errorf("diagnostic %d label %d: %w", i, j, err)
			}
			d = d.WithLabel(diag.Label{
				Style:   style,
				Span:    source.Span{File: id, Start: bl.Start, End: bl.End},
				Message: bl.Message,
			})
		}
		diags = append(diags, d)
	}
	return diags, nil
}

// Inline replaces every Path reference with the file's content so the bundle
// no longer depends on the filesystem.
func (b *Bundle) Inline(readFile ReadFileFunc) error {
	if readFile == nil {
		readFile = os.ReadFile
	}
	for i := range b.Files {
		f := &b.Files[i]
		if f.Path == "" {
			continue
		}
		data, err := readFile(b.resolve(f.Path))
		if err != nil {
			return fmt.Errorf("file %q: %w", f.Name, err)
		}
		f.Text = string(data)
		f.Path = ""
	}
	return nil
}

func (b *Bundle) resolve(p string) string {
	if filepath.IsAbs(p) || b.Dir == "" {
		return p
	}
	return filepath.Join(b.Dir, p)
}
