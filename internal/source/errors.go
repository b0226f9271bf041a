package source

import (
	"errors"
	"fmt"
)

var (
	// ErrOutOfBounds reports an offset or span past the end of a file.
	ErrOutOfBounds = errors.New("out of bounds")
	// ErrLineOutOfBounds reports a line index >= the file's line count.
	// It matches ErrOutOfBounds as well.
	ErrLineOutOfBounds = fmt.Errorf("line %w", ErrOutOfBounds)
	// ErrInvalidOffset reports an offset inside a multi-byte UTF-8 sequence.
	ErrInvalidOffset = errors.New("offset is not on a character boundary")
	// ErrUnknownFile reports a FileID that was never registered or was removed.
	ErrUnknownFile = errors.New("unknown file")
)
