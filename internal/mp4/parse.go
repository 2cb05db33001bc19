package mp4

import (
	"fmt"
	"io"

	"github.com/Changhuaishui/audio-tagger-sub000/internal/binary"
	"github.com/Changhuaishui/audio-tagger-sub000/internal/types"
)

// Tree holds the top-level box sequence of one file, in file order, plus
// the source reader the extent leaves still point into.
//
// A Tree is created fresh for every rewrite, mutated in memory, and
// discarded after the commit; a *Box is only valid while its Tree is alive.
type Tree struct {
	Boxes []*Box

	// Moov is the parsed movie box; never nil after a successful Parse.
	Moov *Box

	// MoovOffset and MoovLen record the original byte span of moov in the
	// source file. MoovLen is the span actually occupied on disk, which the
	// reconciler uses as size-before (the tree may serialize a pathological
	// header more compactly than the source encoded it).
	MoovOffset int64
	MoovLen    int64

	// MdatOffset is the offset of the first media data box, or -1.
	MdatOffset int64

	sr *binary.SafeReader
}

// MoovPrecedesMedia reports whether moov appears before mdat in file order.
// Only then do the absolute chunk offsets point past moov and need shifting
// when moov is resized.
func (t *Tree) MoovPrecedesMedia() bool {
	return t.MdatOffset >= 0 && t.MoovOffset < t.MdatOffset
}

// Source returns the bounds-checked reader over the original file.
func (t *Tree) Source() *binary.SafeReader {
	return t.sr
}

// boxHeader is one decoded box header.
type boxHeader struct {
	size       int64 // whole box, header included
	typ        string
	headerSize int64 // 8, or 16 for the 64-bit extension
}

// readBoxHeader decodes the header at off. A declared size of 1 means a
// 64-bit size follows; a declared size of 0 means the box runs to
// end-of-file (legal only for the last top-level box).
func readBoxHeader(sr *binary.SafeReader, off int64, topLevel bool) (boxHeader, error) {
	size32, err := binary.Read[uint32](sr, off, "box size")
	if err != nil {
		return boxHeader{}, &types.CorruptedFileError{
			Path:   sr.Path(),
			Offset: off,
			Reason: "truncated box header",
		}
	}

	typ, err := sr.ReadFourCC(off+4, "box type")
	if err != nil {
		return boxHeader{}, &types.CorruptedFileError{
			Path:   sr.Path(),
			Offset: off,
			Reason: "truncated box header",
		}
	}

	h := boxHeader{typ: typ, headerSize: 8}

	switch size32 {
	case 0:
		// To end of file.
		if !topLevel {
			return boxHeader{}, &types.CorruptedFileError{
				Path:   sr.Path(),
				Offset: off,
				Reason: fmt.Sprintf("box %q with zero size inside a container", typ),
			}
		}
		h.size = sr.Size() - off
	case 1:
		size64, err := binary.Read[uint64](sr, off+8, "extended box size")
		if err != nil {
			return boxHeader{}, &types.CorruptedFileError{
				Path:   sr.Path(),
				Offset: off,
				Reason: "truncated extended box size",
			}
		}
		h.size = int64(size64)
		h.headerSize = 16
	default:
		h.size = int64(size32)
	}

	if h.size < h.headerSize {
		return boxHeader{}, &types.CorruptedFileError{
			Path:   sr.Path(),
			Offset: off,
			Reason: fmt.Sprintf("invalid box size %d (minimum is %d)", h.size, h.headerSize),
		}
	}
	if off+h.size > sr.Size() {
		return boxHeader{}, &types.CorruptedFileError{
			Path:   sr.Path(),
			Offset: off,
			Reason: fmt.Sprintf("box %q declares %d bytes past end of file", typ, off+h.size-sr.Size()),
		}
	}

	return h, nil
}

// Parse walks the top-level box sequence and builds the owned tree.
//
// Only moov is materialized (it is small and every edit happens inside it);
// all other top-level boxes, mdat included, are recorded as extents whose
// payload bytes are never loaded. Fails when a declared size reads past
// end-of-file or when no moov box exists at the top level.
func Parse(r io.ReaderAt, size int64, path string) (*Tree, error) {
	sr := binary.NewSafeReader(r, size, path)
	tree := &Tree{sr: sr, MdatOffset: -1}

	offset := int64(0)
	for offset < size {
		h, err := readBoxHeader(sr, offset, true)
		if err != nil {
			return nil, err
		}

		switch {
		case h.typ == "moov":
			moov := &Box{Type: "moov", container: true}
			if err := parseChildren(sr, moov, offset+h.headerSize, offset+h.size); err != nil {
				return nil, err
			}
			tree.Moov = moov
			tree.MoovOffset = offset
			tree.MoovLen = h.size
			tree.Boxes = append(tree.Boxes, moov)
		default:
			if h.typ == "mdat" && tree.MdatOffset < 0 {
				tree.MdatOffset = offset
			}
			tree.Boxes = append(tree.Boxes, &Box{
				Type:      h.typ,
				extent:    true,
				srcOffset: offset,
				srcLen:    h.size,
			})
		}

		offset += h.size
	}

	if tree.Moov == nil {
		return nil, &types.CorruptedFileError{
			Path:   path,
			Offset: 0,
			Reason: "no moov box found",
		}
	}

	return tree, nil
}

// parseChildren materializes every box in [start, end) as a child of parent.
// Known container types recurse; everything else becomes a payload leaf with
// its exact content bytes, so unknown boxes round-trip untouched.
func parseChildren(sr *binary.SafeReader, parent *Box, start, end int64) error {
	offset := start
	for offset < end {
		h, err := readBoxHeader(sr, offset, false)
		if err != nil {
			return err
		}
		if offset+h.size > end {
			return &types.CorruptedFileError{
				Path:   sr.Path(),
				Offset: offset,
				Reason: fmt.Sprintf("box %q overflows its parent %q", h.typ, parent.Type),
			}
		}

		if IsContainerType(h.typ) {
			child := &Box{Type: h.typ, container: true}
			dataOff := offset + h.headerSize

			// meta is a full box: 4 bytes of version+flags precede its children.
			if h.typ == "meta" {
				prefix := make([]byte, 4)
				if err := sr.ReadAt(prefix, dataOff, "meta version and flags"); err != nil {
					return err
				}
				child.Prefix = prefix
				dataOff += 4
			}

			if err := parseChildren(sr, child, dataOff, offset+h.size); err != nil {
				return err
			}
			parent.AppendChild(child)
		} else {
			payload := make([]byte, h.size-h.headerSize)
			if len(payload) > 0 {
				if err := sr.ReadAt(payload, offset+h.headerSize, fmt.Sprintf("%q box payload", h.typ)); err != nil {
					return err
				}
			}
			parent.AppendChild(NewLeaf(h.typ, payload))
		}

		offset += h.size
	}
	return nil
}
