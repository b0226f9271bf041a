package source

import (
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"unicode/utf8"

	"fortio.org/safecast"
)

// FileSet manages a collection of source files and answers offset <-> line/column queries.
//
// Registration (Add, Remove) takes the write lock, lookups take the read lock, so a
// FileSet can be populated by one goroutine while others resolve spans in files that
// are already registered.
type FileSet struct {
	mu      sync.RWMutex
	files   []*File           // nil slot = removed file, id is never reused
	index   map[string]FileID // path -> id
	baseDir string            // базовая директория для относительных путей
}

// NewFileSet creates a new empty FileSet.
func NewFileSet() *FileSet {
	return &FileSet{
		files:   make([]*File, 0),
		index:   make(map[string]FileID),
		baseDir: "", // будет установлен явно или возьмём cwd
	}
}

// NewFileSetWithBase создаёт FileSet с заданной базовой директорией.
func NewFileSetWithBase(baseDir string) *FileSet {
	fs := NewFileSet()
	fs.baseDir = baseDir
	return fs
}

// SetBaseDir устанавливает базовую директорию для относительных путей.
func (fileSet *FileSet) SetBaseDir(dir string) {
	fileSet.mu.Lock()
	defer fileSet.mu.Unlock()
	fileSet.baseDir = dir
}

// BaseDir возвращает текущую базовую директорию.
func (fileSet *FileSet) BaseDir() string {
	fileSet.mu.RLock()
	defer fileSet.mu.RUnlock()
	if fileSet.baseDir == "" {
		// Если не установлена, используем текущую рабочую директорию
		if wd, err := os.Getwd(); err == nil {
			return wd
		}
	}
	return fileSet.baseDir
}

// Add stores a file, computes its line-start table and hash, and returns a new FileID.
// It always creates a new FileID even if a file with the same path already exists.
// The content must not be modified by the caller afterwards.
func (fileSet *FileSet) Add(path string, content []byte, flags FileFlags) FileID {
	if _, err := safecast.Conv[uint32](len(content)); err != nil {
		panic(fmt.Errorf("file %s is too large: %w", path, err))
	}
	hash := sha256.Sum256(content)
	lineStarts := buildLineStarts(content)
	normalizedPath := normalizePath(path)

	fileSet.mu.Lock()
	defer fileSet.mu.Unlock()

	lenFiles, err := safecast.Conv[uint32](len(fileSet.files))
	if err != nil {
		panic(fmt.Errorf("len files overflow: %w", err))
	}
	id := FileID(lenFiles)
	fileSet.files = append(fileSet.files, &File{
		ID:         id,
		Path:       normalizedPath,
		Content:    content,
		LineStarts: lineStarts,
		Hash:       hash,
		Flags:      flags,
	})
	// Всегда обновляем индекс на последнюю версию файла
	fileSet.index[normalizedPath] = id
	return id
}

// Load reads a file from disk, strips a UTF-8 BOM, and calls Add.
// Line endings are kept as-is: "\r\n" is handled by the line table.
func (fileSet *FileSet) Load(path string) (FileID, error) {
	// #nosec G304 -- path is provided by the caller
	content, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}

	content, hadBOM := removeBOM(content)

	flags := FileFlags(0)
	if hadBOM {
		flags |= FileHadBOM
	}
	return fileSet.Add(path, content, flags), nil
}

// AddVirtual adds a virtual file (stdin, test, or generated) with the FileVirtual flag.
func (fileSet *FileSet) AddVirtual(name string, content []byte) FileID {
	return fileSet.Add(name, content, FileVirtual)
}

// Remove unregisters a file. Its FileID is never handed out again, so spans that
// still point at it fail with ErrUnknownFile.
func (fileSet *FileSet) Remove(id FileID) error {
	fileSet.mu.Lock()
	defer fileSet.mu.Unlock()

	f, err := fileSet.lookup(id)
	if err != nil {
		return err
	}
	fileSet.files[id] = nil
	if latest, ok := fileSet.index[f.Path]; ok && latest == id {
		delete(fileSet.index, f.Path)
	}
	return nil
}

// Len returns the number of ids handed out so far, removed files included.
func (fileSet *FileSet) Len() int {
	fileSet.mu.RLock()
	defer fileSet.mu.RUnlock()
	return len(fileSet.files)
}

// Get returns the file for the given ID.
func (fileSet *FileSet) Get(id FileID) (*File, error) {
	fileSet.mu.RLock()
	defer fileSet.mu.RUnlock()
	return fileSet.lookup(id)
}

// lookup expects the caller to hold the lock.
func (fileSet *FileSet) lookup(id FileID) (*File, error) {
	if int(id) >= len(fileSet.files) || fileSet.files[id] == nil {
		return nil, fmt.Errorf("file %d: %w", id, ErrUnknownFile)
	}
	return fileSet.files[id], nil
}

// GetLatest returns the latest file ID for the given path, if it exists.
func (fileSet *FileSet) GetLatest(path string) (FileID, bool) {
	fileSet.mu.RLock()
	defer fileSet.mu.RUnlock()
	id, ok := fileSet.index[normalizePath(path)]
	return id, ok
}

// GetByPath возвращает *File по пути, если был загружен в этот FileSet.
func (fileSet *FileSet) GetByPath(path string) (*File, bool) {
	fileSet.mu.RLock()
	defer fileSet.mu.RUnlock()
	if id, ok := fileSet.index[normalizePath(path)]; ok {
		return fileSet.files[id], true
	}
	return nil, false
}

// LineCount returns the number of lines in a file. A trailing newline starts an
// additional empty line, an empty file has one line.
func (fileSet *FileSet) LineCount(id FileID) (uint32, error) {
	f, err := fileSet.Get(id)
	if err != nil {
		return 0, err
	}
	return f.LineCount(), nil
}

// LineIndex returns the 0-based line containing the byte offset.
// off == len(content) is valid and belongs to the last line.
func (fileSet *FileSet) LineIndex(id FileID, off uint32) (uint32, error) {
	f, err := fileSet.Get(id)
	if err != nil {
		return 0, err
	}
	return f.LineIndex(off)
}

// Location resolves a byte offset to a 0-based line and code point column.
func (fileSet *FileSet) Location(id FileID, off uint32) (Location, error) {
	f, err := fileSet.Get(id)
	if err != nil {
		return Location{}, err
	}
	return f.Location(off)
}

// Offset converts a Location back to a byte offset.
func (fileSet *FileSet) Offset(id FileID, loc Location) (uint32, error) {
	f, err := fileSet.Get(id)
	if err != nil {
		return 0, err
	}
	return f.Offset(loc)
}

// LineSpan returns the byte range of a line without its terminator.
func (fileSet *FileSet) LineSpan(id FileID, line uint32) (Span, error) {
	f, err := fileSet.Get(id)
	if err != nil {
		return Span{}, err
	}
	return f.LineSpan(line)
}

// Slice returns the text covered by span.
func (fileSet *FileSet) Slice(span Span) (string, error) {
	f, err := fileSet.Get(span.File)
	if err != nil {
		return "", err
	}
	return f.Slice(span)
}

// Resolve converts a span into start and end locations.
func (fileSet *FileSet) Resolve(span Span) (start, end Location, err error) {
	f, err := fileSet.Get(span.File)
	if err != nil {
		return Location{}, Location{}, err
	}
	if span.Start > span.End {
		return Location{}, Location{}, fmt.Errorf("span %s: start after end: %w", span, ErrOutOfBounds)
	}
	if start, err = f.Location(span.Start); err != nil {
		return Location{}, Location{}, err
	}
	if end, err = f.Location(span.End); err != nil {
		return Location{}, Location{}, err
	}
	return start, end, nil
}

// Len returns the content length in bytes.
func (f *File) Len() uint32 {
	return uint32(len(f.Content)) // checked in Add
}

// LineCount returns the number of lines in the file.
func (f *File) LineCount() uint32 {
	return uint32(len(f.LineStarts)) // <= Len()+1
}

func (f *File) checkOffset(off uint32) error {
	if off > f.Len() {
		return fmt.Errorf("%s: offset %d exceeds length %d: %w", f.Path, off, f.Len(), ErrOutOfBounds)
	}
	return nil
}

// LineIndex returns the 0-based line containing the byte offset.
func (f *File) LineIndex(off uint32) (uint32, error) {
	if err := f.checkOffset(off); err != nil {
		return 0, err
	}
	return searchLine(f.LineStarts, off), nil
}

// LineStart returns the offset of the first byte of a line.
func (f *File) LineStart(line uint32) (uint32, error) {
	if line >= f.LineCount() {
		return 0, fmt.Errorf("%s: line %d of %d: %w", f.Path, line, f.LineCount(), ErrLineOutOfBounds)
	}
	return f.LineStarts[line], nil
}

// LineSpan returns the byte range of a line, terminator excluded.
func (f *File) LineSpan(line uint32) (Span, error) {
	start, err := f.LineStart(line)
	if err != nil {
		return Span{}, err
	}
	return Span{File: f.ID, Start: start, End: f.lineEnd(line)}, nil
}

// LineText returns the text of a line without its terminator.
func (f *File) LineText(line uint32) (string, error) {
	sp, err := f.LineSpan(line)
	if err != nil {
		return "", err
	}
	return string(f.Content[sp.Start:sp.End]), nil
}

// lineEnd strips "\n" or "\r\n" from the end of the line.
func (f *File) lineEnd(line uint32) uint32 {
	start := f.LineStarts[line]
	end := f.Len()
	if line+1 < f.LineCount() {
		end = f.LineStarts[line+1]
		if end > start && f.Content[end-1] == '\n' {
			end--
			if end > start && f.Content[end-1] == '\r' {
				end--
			}
		}
	}
	return end
}

// Location resolves a byte offset to a 0-based line and code point column.
func (f *File) Location(off uint32) (Location, error) {
	line, err := f.LineIndex(off)
	if err != nil {
		return Location{}, err
	}
	start := f.LineStarts[line]

	// идём по рунам от начала строки, пока не дойдём до off
	var col uint32
	i := start
	for i < off {
		_, size := utf8.DecodeRune(f.Content[i:])
		i += uint32(size) // size in [1, 4]
		col++
	}
	if i != off {
		return Location{}, fmt.Errorf("%s: offset %d: %w", f.Path, off, ErrInvalidOffset)
	}
	return Location{Line: line, Column: col}, nil
}

// Offset converts a Location back into a byte offset. The column may point at
// the line terminator but not past it.
func (f *File) Offset(loc Location) (uint32, error) {
	start, err := f.LineStart(loc.Line)
	if err != nil {
		return 0, err
	}
	limit := f.Len()
	if loc.Line+1 < f.LineCount() {
		limit = f.LineStarts[loc.Line+1] - 1 // position of '\n'
	}

	i := start
	for c := uint32(0); c < loc.Column; c++ {
		if i >= limit {
			return 0, fmt.Errorf("%s: column %d past end of line %d: %w", f.Path, loc.Column, loc.Line, ErrOutOfBounds)
		}
		_, size := utf8.DecodeRune(f.Content[i:limit])
		i += uint32(size)
	}
	return i, nil
}

// Slice returns the raw text covered by span.
func (f *File) Slice(span Span) (string, error) {
	if span.File != f.ID {
		return "", fmt.Errorf("span %s does not belong to %s: %w", span, f.Path, ErrUnknownFile)
	}
	if span.Start > span.End {
		return "", fmt.Errorf("%s: span %s: start after end: %w", f.Path, span, ErrOutOfBounds)
	}
	if err := f.checkOffset(span.End); err != nil {
		return "", err
	}
	return string(f.Content[span.Start:span.End]), nil
}

// DisplayColumn returns the terminal column of off within its line, with tabs
// expanded to tabWidth stops and wide characters counted as two cells.
func (f *File) DisplayColumn(off uint32, tabWidth int) (int, error) {
	loc, err := f.Location(off)
	if err != nil {
		return 0, err
	}
	start := f.LineStarts[loc.Line]
	return DisplayWidth(string(f.Content[start:off]), 0, tabWidth), nil
}

// FormatPath форматирует путь к файлу в зависимости от режима.
// mode: "absolute", "relative", "basename", "auto"
// baseDir: базовая директория для относительных путей (игнорируется для других режимов)
func (f *File) FormatPath(mode, baseDir string) string {
	switch mode {
	case "absolute":
		if f.Flags&FileVirtual != 0 {
			return f.Path
		}
		if abs, err := AbsolutePath(f.Path); err == nil {
			return abs
		}
		return f.Path

	case "relative":
		if baseDir == "" {
			// Если базовая директория не указана, используем текущую
			if wd, err := os.Getwd(); err == nil {
				baseDir = wd
			}
		}
		if rel, err := RelativePath(f.Path, baseDir); err == nil {
			return rel
		}
		return f.Path

	case "basename":
		return BaseName(f.Path)

	case "auto":
		// Auto: если путь короткий или относительный - как есть, иначе basename
		if len(f.Path) < 40 || !filepath.IsAbs(f.Path) {
			return f.Path
		}
		return BaseName(f.Path)

	default:
		return f.Path
	}
}
