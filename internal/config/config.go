// Package config loads spanlight.toml, the optional per-project settings file
// for the spanlight command. Command-line flags override what it sets.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"spanlight/internal/diagfmt"
)

// FileName is the settings file looked up from the working directory upwards.
const FileName = "spanlight.toml"

type Config struct {
	Render RenderConfig `toml:"render"`
	Output OutputConfig `toml:"output"`

	// Path is the file the settings were read from; empty for defaults.
	Path string `toml:"-"`
}

type RenderConfig struct {
	TabWidth          int    `toml:"tab_width"`
	StartContextLines int    `toml:"start_context_lines"`
	EndContextLines   int    `toml:"end_context_lines"`
	Chars             string `toml:"chars"`
	PathMode          string `toml:"path_mode"`
}

type OutputConfig struct {
	Format string `toml:"format"`
	Color  string `toml:"color"`
	Jobs   int    `toml:"jobs"`
}

var (
	formats = []string{"pretty", "short", "json"}
	colors  = []string{"auto", "on", "off"}
)

// Default mirrors diagfmt.DefaultConfig plus the CLI output defaults.
func Default() Config {
	def := diagfmt.DefaultConfig()
	return Config{
		Render: RenderConfig{
			TabWidth:          def.TabWidth,
			StartContextLines: def.StartContextLines,
			EndContextLines:   def.EndContextLines,
			Chars:             "unicode",
			PathMode:          "auto",
		},
		Output: OutputConfig{
			Format: "pretty",
			Color:  "auto",
			Jobs:   0,
		},
	}
}

// Find walks from startDir up to the filesystem root looking for spanlight.toml.
func Find(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Discover finds and loads spanlight.toml starting at startDir.
// Without a file it returns Default() and false.
func Discover(startDir string) (Config, bool, error) {
	path, ok, err := Find(startDir)
	if err != nil || !ok {
		return Default(), false, err
	}
	cfg, err := Load(path)
	if err != nil {
		return Default(), true, err
	}
	return cfg, true, nil
}

// Load reads path on top of the defaults. Keys that are absent keep their
// default value; unknown keys are rejected.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	cfg, err := Parse(string(data))
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	cfg.Path = path
	return cfg, nil
}

// Parse decodes TOML text on top of the defaults.
func Parse(text string) (Config, error) {
	var file Config
	meta, err := toml.Decode(text, &file)
	if err != nil {
		return Config{}, fmt.Errorf("failed to parse TOML: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("unknown key %q", undecoded[0].String())
	}

	cfg := Default()
	if meta.IsDefined("render", "tab_width") {
		if file.Render.TabWidth < 1 {
			return Config{}, fmt.Errorf("[render].tab_width must be positive, got %d", file.Render.TabWidth)
		}
		cfg.Render.TabWidth = file.Render.TabWidth
	}
	if meta.IsDefined("render", "start_context_lines") {
		if file.Render.StartContextLines < 0 {
			return Config{}, fmt.Errorf("[render].start_context_lines must not be negative")
		}
		cfg.Render.StartContextLines = file.Render.StartContextLines
	}
	if meta.IsDefined("render", "end_context_lines") {
		if file.Render.EndContextLines < 0 {
			return Config{}, fmt.Errorf("[render].end_context_lines must not be negative")
		}
		cfg.Render.EndContextLines = file.Render.EndContextLines
	}
	if meta.IsDefined("render", "chars") {
		name := strings.TrimSpace(file.Render.Chars)
		if _, ok := diagfmt.CharsByName(name); !ok {
			return Config{}, fmt.Errorf("[render].chars: unknown character set %q", name)
		}
		cfg.Render.Chars = name
	}
	if meta.IsDefined("render", "path_mode") {
		name := strings.TrimSpace(file.Render.PathMode)
		if _, ok := diagfmt.ParsePathMode(name); !ok {
			return Config{}, fmt.Errorf("[render].path_mode: unknown mode %q", name)
		}
		cfg.Render.PathMode = name
	}
	if meta.IsDefined("output", "format") {
		if err := oneOf("[output].format", file.Output.Format, formats); err != nil {
			return Config{}, err
		}
		cfg.Output.Format = file.Output.Format
	}
	if meta.IsDefined("output", "color") {
		if err := oneOf("[output].color", file.Output.Color, colors); err != nil {
			return Config{}, err
		}
		cfg.Output.Color = file.Output.Color
	}
	if meta.IsDefined("output", "jobs") {
		if file.Output.Jobs < 0 {
			return Config{}, fmt.Errorf("[output].jobs must not be negative")
		}
		cfg.Output.Jobs = file.Output.Jobs
	}
	return cfg, nil
}

func oneOf(key, value string, allowed []string) error {
	for _, a := range allowed {
		if value == a {
			return nil
		}
	}
	return fmt.Errorf("%s: %q is not one of %s", key, value, strings.Join(allowed, ", "))
}

// DiagfmtConfig converts the [render] table into a renderer configuration.
func (c Config) DiagfmtConfig() (diagfmt.Config, error) {
	out := diagfmt.DefaultConfig()
	out.TabWidth = c.Render.TabWidth
	out.StartContextLines = c.Render.StartContextLines
	out.EndContextLines = c.Render.EndContextLines
	chars, ok := diagfmt.CharsByName(c.Render.Chars)
	if !ok {
		return diagfmt.Config{}, fmt.Errorf("unknown character set %q", c.Render.Chars)
	}
	out.Chars = chars
	mode, ok := diagfmt.ParsePathMode(c.Render.PathMode)
	if !ok {
		return diagfmt.Config{}, fmt.Errorf("unknown path mode %q", c.Render.PathMode)
	}
	out.PathMode = mode
	return out, nil
}
