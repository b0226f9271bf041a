package diagfmt

import "spanlight/internal/source"

// PathMode specifies how file paths are displayed.
type PathMode uint8

const (
	// PathModeAuto chooses relative or absolute path automatically.
	PathModeAuto PathMode = iota
	// PathModeAbsolute always uses absolute paths.
	PathModeAbsolute
	PathModeRelative
	PathModeBasename
)

// ParsePathMode converts "auto", "absolute", "relative" or "basename" into a PathMode.
func ParsePathMode(s string) (PathMode, bool) {
	switch s {
	case "", "auto":
		return PathModeAuto, true
	case "absolute":
		return PathModeAbsolute, true
	case "relative":
		return PathModeRelative, true
	case "basename":
		return PathModeBasename, true
	}
	return PathModeAuto, false
}

func formatPath(f *source.File, fs *source.FileSet, mode PathMode) string {
	switch mode {
	case PathModeAbsolute:
		return f.FormatPath("absolute", "")
	case PathModeRelative:
		return f.FormatPath("relative", fs.BaseDir())
	case PathModeBasename:
		return f.FormatPath("basename", "")
	default:
		return f.FormatPath("auto", "")
	}
}

// Config controls the layout of rendered snippets.
type Config struct {
	// TabWidth is the distance between tab stops; values below 1 mean 4.
	TabWidth int
	// StartContextLines extra lines shown above the first labelled line.
	StartContextLines int
	// EndContextLines extra lines shown below the last labelled line.
	EndContextLines int
	PathMode        PathMode
	Chars           Chars
}

// DefaultConfig returns tab width 4, no context lines and box-drawing characters.
func DefaultConfig() Config {
	return Config{
		TabWidth: 4,
		Chars:    BoxChars(),
	}
}

// Chars is the set of glyphs used to draw borders, carets and margins.
type Chars struct {
	SnippetStart string // before the locus, e.g. "┌─"
	SourceBorder string // between gutter and source, e.g. "│"
	NoteBullet   string

	SinglePrimaryCaret   string
	SingleSecondaryCaret string

	MultiPrimaryCaretStart   string
	MultiPrimaryCaretEnd     string
	MultiSecondaryCaretStart string
	MultiSecondaryCaretEnd   string
	MultiTopLeft             string
	MultiTop                 string
	MultiBottomLeft          string
	MultiBottom              string
	MultiLeft                string
}

// BoxChars uses Unicode box-drawing characters.
func BoxChars() Chars {
	return Chars{
		SnippetStart: "┌─",
		SourceBorder: "│",
		NoteBullet:   "=",

		SinglePrimaryCaret:   "^",
		SingleSecondaryCaret: "-",

		MultiPrimaryCaretStart:   "^",
		MultiPrimaryCaretEnd:     "^",
		MultiSecondaryCaretStart: "'",
		MultiSecondaryCaretEnd:   "'",
		MultiTopLeft:             "╭",
		MultiTop:                 "─",
		MultiBottomLeft:          "╰",
		MultiBottom:              "─",
		MultiLeft:                "│",
	}
}

// ASCIIChars only uses printable ASCII, for terminals without box drawing.
func ASCIIChars() Chars {
	return Chars{
		SnippetStart: "-->",
		SourceBorder: "|",
		NoteBullet:   "=",

		SinglePrimaryCaret:   "^",
		SingleSecondaryCaret: "-",

		MultiPrimaryCaretStart:   "^",
		MultiPrimaryCaretEnd:     "^",
		MultiSecondaryCaretStart: "'",
		MultiSecondaryCaretEnd:   "'",
		MultiTopLeft:             "/",
		MultiTop:                 "-",
		MultiBottomLeft:          "\\",
		MultiBottom:              "-",
		MultiLeft:                "|",
	}
}

// CharsByName returns "unicode"/"box" or "ascii" character sets.
func CharsByName(name string) (Chars, bool) {
	switch name {
	case "", "unicode", "box":
		return BoxChars(), true
	case "ascii":
		return ASCIIChars(), true
	}
	return Chars{}, false
}

// JSONOpts configures JSON output of diagnostics.
type JSONOpts struct {
	IncludePositions bool // добавить line/col
	PathMode         PathMode
	Max              int // обрезка вывода, не Bag
	IncludeNotes     bool
}
