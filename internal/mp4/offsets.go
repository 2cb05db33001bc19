package mp4

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/Changhuaishui/audio-tagger-sub000/internal/types"
)

// isFragmented reports whether the movie uses movie fragments (moov/mvex).
// Fragmented files encode relative, not absolute, sample offsets; shifting
// their tables would corrupt them, so offset correction is skipped and the
// condition is flagged to the caller.
func isFragmented(moov *Box) bool {
	return moov.Child("mvex") != nil
}

// correctOffsets shifts every absolute chunk offset in every track's
// stco/co64 table by delta, in place. Returns the number of patched
// entries.
//
// This is the single most safety-critical operation in the rewriter: a
// wrong entry silently corrupts playback without any error. A shift that
// would push a 32-bit entry past 2^32-1 (or any entry below zero) fails
// closed with an OffsetOverflowError instead of truncating.
func correctOffsets(moov *Box, delta int64) (int, error) {
	patched := 0
	for _, trak := range moov.Children {
		if trak.Type != "trak" {
			continue
		}
		stbl := findSampleTable(trak)
		if stbl == nil {
			continue
		}

		if stco := stbl.Child("stco"); stco != nil {
			n, err := patchStco(stco.Payload, delta)
			if err != nil {
				return patched, err
			}
			patched += n
		}
		if co64 := stbl.Child("co64"); co64 != nil {
			n, err := patchCo64(co64.Payload, delta)
			if err != nil {
				return patched, err
			}
			patched += n
		}
	}
	return patched, nil
}

// findSampleTable walks trak/mdia/minf/stbl.
func findSampleTable(trak *Box) *Box {
	mdia := trak.Child("mdia")
	if mdia == nil {
		return nil
	}
	minf := mdia.Child("minf")
	if minf == nil {
		return nil
	}
	return minf.Child("stbl")
}

// patchStco shifts every u32be entry of a chunk offset table payload:
// version+flags (4), entry count (4), then count entries of 4 bytes.
func patchStco(payload []byte, delta int64) (int, error) {
	if len(payload) < 8 {
		return 0, fmt.Errorf("stco payload too small (%d bytes)", len(payload))
	}
	count := int(binary.BigEndian.Uint32(payload[4:8]))
	if len(payload) < 8+count*4 {
		return 0, fmt.Errorf("stco table truncated: %d entries declared, %d bytes present", count, len(payload)-8)
	}

	for i := 0; i < count; i++ {
		at := 8 + i*4
		old := binary.BigEndian.Uint32(payload[at : at+4])
		shifted := int64(old) + delta
		if shifted < 0 || shifted > math.MaxUint32 {
			return 0, &types.OffsetOverflowError{Entry: i, Offset: uint64(old), Delta: delta}
		}
		binary.BigEndian.PutUint32(payload[at:at+4], uint32(shifted))
	}
	return count, nil
}

// patchCo64 shifts every u64be entry of a 64-bit chunk offset table.
func patchCo64(payload []byte, delta int64) (int, error) {
	if len(payload) < 8 {
		return 0, fmt.Errorf("co64 payload too small (%d bytes)", len(payload))
	}
	count := int(binary.BigEndian.Uint32(payload[4:8]))
	if len(payload) < 8+count*8 {
		return 0, fmt.Errorf("co64 table truncated: %d entries declared, %d bytes present", count, len(payload)-8)
	}

	for i := 0; i < count; i++ {
		at := 8 + i*8
		old := binary.BigEndian.Uint64(payload[at : at+8])
		shifted := int64(old) + delta
		if shifted < 0 {
			return 0, &types.OffsetOverflowError{Entry: i, Offset: old, Delta: delta}
		}
		binary.BigEndian.PutUint64(payload[at:at+8], uint64(shifted))
	}
	return count, nil
}
