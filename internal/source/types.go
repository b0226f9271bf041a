package source

import "fmt"

type (
	// FileID uniquely identifies a source file within a FileSet.
	FileID uint32 // просто ID источника, не переиспользуется
	// FileFlags encodes metadata about a source file.
	FileFlags uint8 // метаданные
)

const (
	// FileVirtual indicates the file was added from memory (test, stdin, etc.).
	FileVirtual FileFlags = 1 << iota // добавлен не с диска (тест, stdin)
	FileHadBOM
)

// File captures metadata and content for a single source file.
// A File is immutable once it has been added to a FileSet.
type File struct {
	ID   FileID
	Path string
	// Content is never modified after registration.
	Content []byte
	// LineStarts[0] is always 0; LineStarts[i] is the byte right after the i-th '\n'.
	LineStarts []uint32
	Hash       [32]byte
	Flags      FileFlags
}

// Location is a resolved position in a file. Both fields are 0-based;
// Column counts code points from the start of the line.
type Location struct {
	Line   uint32
	Column uint32
}

// String formats the location 1-based, the way compilers print it.
func (l Location) String() string {
	return fmt.Sprintf("%d:%d", l.Line+1, l.Column+1)
}
