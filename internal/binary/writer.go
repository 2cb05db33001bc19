package binary

import (
	"encoding/binary"
	"io"
)

// SafeWriter wraps io.Writer with position tracking.
//
// Box serialization is strictly sequential; the tracked offset lets callers
// assert that the bytes produced match the sizes they declared.
type SafeWriter struct {
	w      io.Writer
	offset int64
}

// NewSafeWriter creates a new SafeWriter.
func NewSafeWriter(w io.Writer) *SafeWriter {
	return &SafeWriter{w: w}
}

// Offset returns the current position (number of bytes written).
func (sw *SafeWriter) Offset() int64 {
	return sw.offset
}

// Write implements io.Writer, so streamed copies (io.Copy of file sections
// during commit) go through the same offset accounting as box writes.
func (sw *SafeWriter) Write(p []byte) (int, error) {
	n, err := sw.w.Write(p)
	sw.offset += int64(n)
	return n, err
}

// WriteBytes writes raw bytes to the underlying writer.
func (sw *SafeWriter) WriteBytes(b []byte) error {
	_, err := sw.Write(b)
	return err
}

// WriteString writes a string as bytes to the underlying writer.
func (sw *SafeWriter) WriteString(s string) error {
	return sw.WriteBytes([]byte(s))
}

// Write writes a value of type T in big-endian byte order.
func Write[T uint8 | uint16 | uint32 | uint64](sw *SafeWriter, val T) error {
	var buf []byte

	var zero T
	switch any(zero).(type) {
	case uint8:
		buf = []byte{byte(val)}
	case uint16:
		buf = make([]byte, 2)
		binary.BigEndian.PutUint16(buf, uint16(val))
	case uint32:
		buf = make([]byte, 4)
		binary.BigEndian.PutUint32(buf, uint32(val))
	case uint64:
		buf = make([]byte, 8)
		binary.BigEndian.PutUint64(buf, uint64(val))
	}

	return sw.WriteBytes(buf)
}
