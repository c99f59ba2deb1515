// Package errs defines the sentinel errors and typed error values returned by bjson packages.
//
// Callers discriminate error kinds with errors.Is against the sentinels and extract
// structured detail with errors.As against the typed errors:
//
//	if errors.Is(err, errs.ErrCorruptEncoding) {
//	    // malformed input
//	}
//
//	var perr *errs.PathSyntaxError
//	if errors.As(err, &perr) {
//	    fmt.Println(perr.Pos)
//	}
package errs

import (
	"errors"
	"fmt"
)

var (
	// ErrTypeMismatch is returned when an operation is applied to the wrong value kind,
	// e.g. indexing a string or reading an integer out of an object.
	ErrTypeMismatch = errors.New("type mismatch")

	// ErrCorruptEncoding is returned for any structural violation of the wire format:
	// unknown type tag, out-of-bounds offset, truncated buffer or inconsistent length.
	ErrCorruptEncoding = errors.New("corrupt encoding")

	// ErrUnsupportedVersion is returned when the version marker carries the bjson magic
	// but a format version this decoder does not understand.
	ErrUnsupportedVersion = errors.New("unsupported format version")

	// ErrDuplicateKey is returned by the encoder when an object contains the same key
	// twice and the encoder is configured to reject duplicates.
	ErrDuplicateKey = errors.New("duplicate object key")

	// ErrInvalidPathSyntax is returned when a path expression cannot be parsed.
	ErrInvalidPathSyntax = errors.New("invalid path syntax")

	// ErrValueTooLarge is returned when a value cannot be represented with 32-bit lengths.
	ErrValueTooLarge = errors.New("value too large")

	// ErrInvalidUTF8 is returned in strict mode when a string or key is not valid UTF-8.
	ErrInvalidUTF8 = errors.New("invalid UTF-8")

	// ErrUnsupportedValue is returned when a value has no representation in the target
	// format, e.g. NaN in JSON text.
	ErrUnsupportedValue = errors.New("unsupported value")

	// ErrInvalidJSON is returned when JSON text cannot be parsed.
	ErrInvalidJSON = errors.New("invalid JSON")
)

// Storage frame errors
var (
	ErrInvalidFrame            = errors.New("invalid frame")
	ErrInvalidFrameHeaderSize  = errors.New("invalid frame header size")
	ErrInvalidMagicNumber      = errors.New("invalid magic number")
	ErrChecksumMismatch        = errors.New("checksum mismatch")
	ErrUnsupportedCompression  = errors.New("unsupported compression type")
	ErrDecompressedSizeInvalid = errors.New("decompressed size mismatch")
)

// CorruptError describes where a corrupt encoding was detected.
type CorruptError struct {
	// Offset is the absolute byte offset in the buffer where the violation was found.
	Offset int
	// Reason is a short human-readable description.
	Reason string
}

// Corrupt creates a *CorruptError for the given offset.
func Corrupt(offset int, format string, args ...any) *CorruptError {
	return &CorruptError{Offset: offset, Reason: fmt.Sprintf(format, args...)}
}

func (e *CorruptError) Error() string {
	return fmt.Sprintf("%s at offset %d: %s", ErrCorruptEncoding, e.Offset, e.Reason)
}

func (e *CorruptError) Unwrap() error {
	return ErrCorruptEncoding
}

// PathSyntaxError describes a path expression grammar violation.
type PathSyntaxError struct {
	Path   string
	Pos    int
	Reason string
}

func (e *PathSyntaxError) Error() string {
	return fmt.Sprintf("%s: %s at position %d in %q", ErrInvalidPathSyntax, e.Reason, e.Pos, e.Path)
}

func (e *PathSyntaxError) Unwrap() error {
	return ErrInvalidPathSyntax
}

// TypeMismatchError describes an operation applied to the wrong kind of value.
//
// Expected and Actual hold type names rather than format.Type values so that this
// package stays at the bottom of the import graph.
type TypeMismatchError struct {
	Op       string
	Expected string
	Actual   string
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("%s: %s expects %s, got %s", ErrTypeMismatch, e.Op, e.Expected, e.Actual)
}

func (e *TypeMismatchError) Unwrap() error {
	return ErrTypeMismatch
}
