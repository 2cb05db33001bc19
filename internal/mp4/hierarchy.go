package mp4

import "encoding/binary"

// handlerPayload builds the payload of the mandatory hdlr box inside meta.
// Players only recognize the metadata tree when the handler type is "mdir"
// (with the customary "appl" manufacturer), so a created meta is always
// seeded with one.
func handlerPayload() []byte {
	buf := make([]byte, 0, 25)
	buf = binary.BigEndian.AppendUint32(buf, 0) // version + flags
	buf = binary.BigEndian.AppendUint32(buf, 0) // predefined
	buf = append(buf, "mdir"...)                // handler type
	buf = append(buf, "appl"...)                // manufacturer
	buf = binary.BigEndian.AppendUint32(buf, 0) // reserved
	buf = binary.BigEndian.AppendUint32(buf, 0) // reserved
	buf = append(buf, 0)                        // empty name
	return buf
}

// newPadding creates a free box whose total serialized size is capacity
// bytes. The payload content is meaningless; only the size matters.
func newPadding(capacity int) *Box {
	if capacity < 8 {
		capacity = 8
	}
	return NewLeaf("free", make([]byte, capacity-8))
}

// findPadding returns the first free or skip box anywhere under meta.
func findPadding(meta *Box) *Box {
	var found *Box
	meta.Walk(func(b *Box) {
		if found == nil && (b.Type == "free" || b.Type == "skip") {
			found = b
		}
	})
	if found == meta {
		return nil
	}
	return found
}

// ensureItemList returns the ilst box, creating the moov/udta/meta/ilst
// chain as needed. Idempotent: an existing chain is returned unchanged.
//
// Missing ancestors are created in order: udta is appended as the last
// child of moov, meta is appended to udta and seeded with the mandatory
// mdir handler, ilst is appended to meta. When no padding box exists
// anywhere under meta, one is created with the given capacity so later
// edits can grow without a file splice.
func ensureItemList(t *Tree, padding int) *Box {
	moov := t.Moov

	udta := moov.Child("udta")
	if udta == nil {
		udta = NewContainer("udta")
		moov.AppendChild(udta)
	}

	meta := udta.Child("meta")
	if meta == nil {
		meta = NewContainer("meta")
		meta.Prefix = make([]byte, 4) // version 0, no flags
		meta.AppendChild(NewLeaf("hdlr", handlerPayload()))
		udta.AppendChild(meta)
	} else if meta.Child("hdlr") == nil {
		meta.PrependChild(NewLeaf("hdlr", handlerPayload()))
	}

	ilst := meta.Child("ilst")
	if ilst == nil {
		ilst = NewContainer("ilst")
		meta.AppendChild(ilst)
	}

	if findPadding(meta) == nil {
		meta.AppendChild(newPadding(padding))
	}

	return ilst
}
