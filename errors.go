package audiotag

import (
	"github.com/Changhuaishui/audio-tagger-sub000/internal/types"
)

// UnsupportedFormatError is an alias to types.UnsupportedFormatError.
// Returned when a file's container kind cannot be detected, or when the
// file is a bare elementary stream with no tag container.
type UnsupportedFormatError = types.UnsupportedFormatError

// CorruptedFileError is an alias to types.CorruptedFileError.
// Returned for invalid box structure: truncated boxes, zero-size boxes
// inside containers, or a file with no moov box.
type CorruptedFileError = types.CorruptedFileError

// UnsupportedWriteError is an alias to types.UnsupportedWriteError.
// Returned when the detected container has no writer (FLAC).
type UnsupportedWriteError = types.UnsupportedWriteError

// UnsupportedFieldError is an alias to types.UnsupportedFieldError.
// Reported per field via Result.Unsupported; never aborts the write.
type UnsupportedFieldError = types.UnsupportedFieldError

// OffsetOverflowError is an alias to types.OffsetOverflowError.
// Returned when growth would push a 32-bit chunk offset past 2^32-1; the
// write fails closed with the file untouched.
type OffsetOverflowError = types.OffsetOverflowError
