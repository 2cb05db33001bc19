package mp4

// minBoxSize is the smallest legal box: a bare 8-byte header.
const minBoxSize = 8

// reconcile measures the net byte-size delta the edits introduced and
// absorbs it into the padding box when capacity allows.
//
// rawDelta is moov's serialized size minus its original on-disk span.
// When a padding box exists under meta and resizing it by -rawDelta leaves
// at least a bare header, the padding absorbs the whole delta (growing on
// shrink as well, so the file length never drifts) and the net delta is
// zero. Otherwise the raw delta is returned untouched and the commit must
// change the file length.
func reconcile(t *Tree) (net, rawDelta int64, absorbed bool) {
	rawDelta = t.Moov.Size() - t.MoovLen
	if rawDelta == 0 {
		return 0, 0, false
	}

	meta := metaBox(t.Moov)
	if meta == nil {
		return rawDelta, rawDelta, false
	}
	padding := findPadding(meta)
	if padding == nil {
		return rawDelta, rawDelta, false
	}

	newSize := padding.Size() - rawDelta
	if newSize < minBoxSize {
		return rawDelta, rawDelta, false
	}

	padding.Payload = make([]byte, newSize-minBoxSize)

	// The padding must have soaked up the delta exactly.
	if t.Moov.Size() != t.MoovLen {
		// Extended-header edge: resizing the padding changed a header size
		// somewhere up the chain. Fall back to a real file resize.
		return t.Moov.Size() - t.MoovLen, rawDelta, false
	}

	return 0, rawDelta, true
}

// metaBox locates moov/udta/meta, or nil when the chain is absent.
func metaBox(moov *Box) *Box {
	udta := moov.Child("udta")
	if udta == nil {
		return nil
	}
	return udta.Child("meta")
}
