package mp4

import (
	"fmt"
	"io"
	"strings"

	"github.com/Changhuaishui/audio-tagger-sub000/internal/binary"
)

// Dump writes an indented box-tree listing to w. Diagnostic aid for
// inspecting what a rewrite actually produced.
func Dump(w io.Writer, r io.ReaderAt, size int64, path string) error {
	sr := binary.NewSafeReader(r, size, path)
	return dumpRange(w, sr, 0, size, 0)
}

func dumpRange(w io.Writer, sr *binary.SafeReader, offset, end int64, depth int) error {
	indent := strings.Repeat("  ", depth)

	for offset < end {
		h, err := readBoxHeader(sr, offset, depth == 0)
		if err != nil {
			return err
		}

		fmt.Fprintf(w, "%s%s (size: %d, offset: %d)\n", indent, printableType(h.typ), h.size, offset)

		if IsContainerType(h.typ) {
			dataOff := offset + h.headerSize
			if h.typ == "meta" {
				dataOff += 4
			}
			if err := dumpRange(w, sr, dataOff, offset+h.size, depth+1); err != nil {
				return err
			}
		}

		offset += h.size
	}
	return nil
}

// printableType renders a fourCC for terminals, mapping the 0xA9 byte of
// iTunes atoms back to the © sign.
func printableType(typ string) string {
	out := make([]rune, 0, 4)
	for _, b := range []byte(typ) {
		switch {
		case b == 0xA9:
			out = append(out, '©')
		case b < 0x20 || b > 0x7E:
			out = append(out, '.')
		default:
			out = append(out, rune(b))
		}
	}
	return string(out)
}
