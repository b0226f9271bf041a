package bundle

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"
)

// Format identifies a bundle encoding.
type Format uint8

const (
	FormatAuto Format = iota
	FormatTOML
	FormatYAML
	FormatJSON
	FormatMsgpack
)

func (f Format) String() string {
	switch f {
	case FormatAuto:
		return "auto"
	case FormatTOML:
		return "toml"
	case FormatYAML:
		return "yaml"
	case FormatJSON:
		return "json"
	case FormatMsgpack:
		return "msgpack"
	}
	return "unknown"
}

// FormatFromPath picks the format by file extension; unknown extensions give FormatAuto.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML
	case ".yaml", ".yml":
		return FormatYAML
	case ".json":
		return FormatJSON
	case ".msgpack", ".mp":
		return FormatMsgpack
	}
	return FormatAuto
}

//go:embed schema.json
var schemaJSON []byte

const schemaURL = "spanlight://bundle.schema.json"

var compiledSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(schemaURL, bytes.NewReader(schemaJSON)); err != nil {
		return nil, fmt.Errorf("add schema resource: %w", err)
	}
	return compiler.Compile(schemaURL)
})

// ValidateJSON checks a JSON document against the bundle schema.
func ValidateJSON(data []byte) error {
	schema, err := compiledSchema()
	if err != nil {
		return err
	}
	var instance any
	if err := json.Unmarshal(data, &instance); err != nil {
		return fmt.Errorf("decode JSON: %w", err)
	}
	if err := schema.Validate(instance); err != nil {
		return fmt.Errorf("schema validation: %w", err)
	}
	return nil
}

// Decode parses data in the given format. FormatAuto tries TOML, JSON, YAML
// and msgpack in that order.
func Decode(data []byte, format Format) (*Bundle, error) {
	b := &Bundle{}
	switch format {
	case FormatTOML:
		md, err := toml.Decode(string(data), b)
		if err != nil {
			return nil, fmt.Errorf("decode TOML: %w", err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, fmt.Errorf("decode TOML: unknown key %q", undecoded[0].String())
		}
	case FormatJSON:
		if err := ValidateJSON(data); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(data, b); err != nil {
			return nil, fmt.Errorf("decode JSON: %w", err)
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, b); err != nil {
			return nil, fmt.Errorf("decode YAML: %w", err)
		}
	case FormatMsgpack:
		if err := msgpack.Unmarshal(data, b); err != nil {
			return nil, fmt.Errorf("decode msgpack: %w", err)
		}
	default:
		return autoDetect(data)
	}
	return b, nil
}

func autoDetect(data []byte) (*Bundle, error) {
	for _, f := range []Format{FormatTOML, FormatJSON, FormatYAML, FormatMsgpack} {
		if b, err := Decode(data, f); err == nil {
			return b, nil
		}
	}
	return nil, fmt.Errorf("unable to parse bundle (tried TOML, JSON, YAML, msgpack)")
}

// Load reads a bundle from disk, choosing the format by extension.
// Relative source paths inside it are resolved against its directory.
func Load(path string) (*Bundle, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read bundle: %w", err)
	}
	b, err := Decode(data, FormatFromPath(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	b.Dir = filepath.Dir(path)
	return b, nil
}

// Encode writes b as msgpack, stamping the current schema version.
func Encode(w io.Writer, b *Bundle) error {
	out := *b
	out.Schema = SchemaVersion
	enc := msgpack.NewEncoder(w)
	return enc.Encode(&out)
}
