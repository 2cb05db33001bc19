// Package mp4 implements the ISO-BMFF metadata rewriter: it parses a file
// into an owned box tree, edits the iTunes metadata atoms in place, absorbs
// the size delta into padding when possible, patches chunk-offset tables
// otherwise, and commits the result without touching the media payload.
package mp4

import (
	"encoding/binary"
	"math"
)

// Box is the universal unit of an ISO-BMFF file: a length-prefixed, typed
// record. The tree exclusively owns its boxes; there is no aliasing into
// the source file's byte buffer.
//
// A box takes exactly one of three shapes:
//   - container: Children holds the ordered child boxes (Prefix carries the
//     4 version/flags bytes of full-box containers like meta)
//   - materialized leaf: Payload holds the content bytes
//   - extent leaf: the whole box (header included) stays on disk and only
//     its location is recorded, keeping memory independent of media size
type Box struct {
	Type     string // 4-byte fourCC
	Prefix   []byte // version/flags bytes preceding children (meta)
	Children []*Box
	Payload  []byte

	container bool

	// extent leaves (mdat and other opaque top-level boxes)
	extent    bool
	srcOffset int64 // offset of the box header in the source file
	srcLen    int64 // whole-box length including header
}

// containerTypes are the box types the reader recurses into. Everything
// else, mdat included, is treated as an opaque leaf.
var containerTypes = map[string]bool{
	"moov": true,
	"trak": true,
	"mdia": true,
	"minf": true,
	"stbl": true,
	"udta": true,
	"meta": true,
	"ilst": true,
}

// IsContainerType reports whether the reader recurses into boxes of this type.
func IsContainerType(typ string) bool {
	return containerTypes[typ]
}

// NewContainer creates an empty container box.
func NewContainer(typ string) *Box {
	return &Box{Type: typ, container: true}
}

// NewLeaf creates a materialized leaf box with the given content.
func NewLeaf(typ string, payload []byte) *Box {
	return &Box{Type: typ, Payload: payload}
}

// IsContainer reports whether this box holds children.
func (b *Box) IsContainer() bool {
	return b.container
}

// IsExtent reports whether this box's bytes still live in the source file.
func (b *Box) IsExtent() bool {
	return b.extent
}

// SourceExtent returns the box's location in the source file. Only
// meaningful for extent leaves.
func (b *Box) SourceExtent() (offset, length int64) {
	return b.srcOffset, b.srcLen
}

// Size returns the serialized size of the box including its header.
//
// This is the write-time invariant of the whole rewriter: the declared size
// always equals header + prefix + payload + sum of children. A box whose
// content pushes the total past 32 bits serializes with the 16-byte
// extended header.
func (b *Box) Size() int64 {
	if b.extent {
		return b.srcLen
	}
	content := int64(len(b.Prefix)) + int64(len(b.Payload))
	for _, c := range b.Children {
		content += c.Size()
	}
	if content+8 > math.MaxUint32 {
		return content + 16
	}
	return content + 8
}

// Child returns the first child of the given type, or nil.
func (b *Box) Child(typ string) *Box {
	for _, c := range b.Children {
		if c.Type == typ {
			return c
		}
	}
	return nil
}

// AppendChild adds a child box at the end of the container.
func (b *Box) AppendChild(c *Box) {
	b.Children = append(b.Children, c)
}

// PrependChild adds a child box at the front of the container.
func (b *Box) PrependChild(c *Box) {
	b.Children = append([]*Box{c}, b.Children...)
}

// RemoveChildren removes every child of the given type and reports how many
// were removed.
func (b *Box) RemoveChildren(typ string) int {
	kept := b.Children[:0]
	removed := 0
	for _, c := range b.Children {
		if c.Type == typ {
			removed++
			continue
		}
		kept = append(kept, c)
	}
	b.Children = kept
	return removed
}

// Marshal serializes the box tree rooted at b. Extent leaves cannot be
// marshaled; their bytes are copied straight from the source file during
// commit.
func (b *Box) Marshal() []byte {
	return b.appendTo(make([]byte, 0, b.Size()))
}

func (b *Box) appendTo(buf []byte) []byte {
	total := b.Size()
	if total > math.MaxUint32 {
		buf = binary.BigEndian.AppendUint32(buf, 1)
		buf = append(buf, b.Type...)
		buf = binary.BigEndian.AppendUint64(buf, uint64(total))
	} else {
		buf = binary.BigEndian.AppendUint32(buf, uint32(total))
		buf = append(buf, b.Type...)
	}
	buf = append(buf, b.Prefix...)
	if b.container {
		for _, c := range b.Children {
			buf = c.appendTo(buf)
		}
	} else {
		buf = append(buf, b.Payload...)
	}
	return buf
}

// Walk visits b and every descendant in file order.
func (b *Box) Walk(fn func(*Box)) {
	fn(b)
	for _, c := range b.Children {
		c.Walk(fn)
	}
}
