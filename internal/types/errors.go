package types

import "fmt"

// UnsupportedFormatError is returned when a file's container kind cannot be
// detected or has no tag container at all (e.g. a bare AAC stream).
type UnsupportedFormatError struct {
	Path   string
	Reason string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("%s: unsupported format: %s", e.Path, e.Reason)
}

// CorruptedFileError is returned when the box structure is invalid:
// a truncated box, a zero-size box inside a container, or a file with no
// moov box. Always fatal for the file; nothing is written.
type CorruptedFileError struct {
	Path   string
	Reason string
	Offset int64
}

func (e *CorruptedFileError) Error() string {
	return fmt.Sprintf("%s: corrupted file at offset %d: %s", e.Path, e.Offset, e.Reason)
}

// UnsupportedWriteError indicates writing is not supported for this container
// kind (e.g. FLAC is detected but has no writer).
type UnsupportedWriteError struct {
	Reason    string
	Container Container
}

func (e *UnsupportedWriteError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("write not supported for %s: %s", e.Container, e.Reason)
	}
	return fmt.Sprintf("write not supported for %s", e.Container)
}

// UnsupportedFieldError indicates a single requested field has no encoder for
// the target container. It never aborts the whole write; the field is
// reported in Result.Unsupported and all other fields still commit.
type UnsupportedFieldError struct {
	FourCC string
}

func (e *UnsupportedFieldError) Error() string {
	return fmt.Sprintf("no encoder for field %q", e.FourCC)
}

// OffsetOverflowError is returned when shifting a 32-bit chunk offset table
// would push an entry past 2^32-1. The write fails closed; the file is left
// untouched.
type OffsetOverflowError struct {
	Entry  int
	Offset uint64
	Delta  int64
}

func (e *OffsetOverflowError) Error() string {
	return fmt.Sprintf("chunk offset entry %d (%d%+d) does not fit in 32 bits", e.Entry, e.Offset, e.Delta)
}

// Warning represents a non-fatal issue encountered during a rewrite.
//
// Warnings flag conditions the caller should know about but that do not
// invalidate the result, such as offset correction being skipped for a
// fragmented movie.
type Warning struct {
	// Stage where the warning occurred: "parse", "fields", "offsets", "commit"
	Stage string

	// Warning message
	Message string

	// File offset where the issue occurred (0 if not applicable)
	Offset int64
}

// String returns a human-readable warning message.
func (w Warning) String() string {
	if w.Offset > 0 {
		return fmt.Sprintf("%s (at offset %d): %s", w.Stage, w.Offset, w.Message)
	}
	return fmt.Sprintf("%s: %s", w.Stage, w.Message)
}
