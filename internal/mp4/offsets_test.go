package mp4

import (
	"encoding/binary"
	"errors"
	"math"
	"testing"

	"github.com/Changhuaishui/audio-tagger-sub000/internal/types"
)

func TestPatchStco_Shift(t *testing.T) {
	payload := stcoAtom([]uint32{1000, 2000, 3000})[8:]

	n, err := patchStco(payload, 40)
	if err != nil {
		t.Fatalf("patchStco: %v", err)
	}
	if n != 3 {
		t.Errorf("patched %d entries, want 3", n)
	}
	want := []uint32{1040, 2040, 3040}
	for i, w := range want {
		got := binary.BigEndian.Uint32(payload[8+i*4:])
		if got != w {
			t.Errorf("entry %d: got %d, want %d", i, got, w)
		}
	}
}

func TestPatchStco_NegativeShift(t *testing.T) {
	payload := stcoAtom([]uint32{1000, 2000})[8:]

	if _, err := patchStco(payload, -128); err != nil {
		t.Fatalf("patchStco: %v", err)
	}
	if got := binary.BigEndian.Uint32(payload[8:]); got != 872 {
		t.Errorf("entry 0: got %d, want 872", got)
	}
}

func TestPatchStco_Overflow(t *testing.T) {
	payload := stcoAtom([]uint32{math.MaxUint32 - 4})[8:]

	_, err := patchStco(payload, 16)
	var overflow *types.OffsetOverflowError
	if !errors.As(err, &overflow) {
		t.Fatalf("expected OffsetOverflowError, got %v", err)
	}
	if overflow.Entry != 0 || overflow.Delta != 16 {
		t.Errorf("error detail: %+v", overflow)
	}
}

func TestPatchStco_Underflow(t *testing.T) {
	payload := stcoAtom([]uint32{100})[8:]

	var overflow *types.OffsetOverflowError
	if _, err := patchStco(payload, -200); !errors.As(err, &overflow) {
		t.Fatalf("expected OffsetOverflowError, got %v", err)
	}
}

func TestPatchStco_Truncated(t *testing.T) {
	payload := stcoAtom([]uint32{1000, 2000})[8:]
	payload = payload[:len(payload)-4]

	if _, err := patchStco(payload, 8); err == nil {
		t.Fatal("expected an error for a truncated table")
	}
}

func TestPatchCo64_Shift(t *testing.T) {
	payload := co64Atom([]uint64{1 << 33, 1<<33 + 512})[8:]

	n, err := patchCo64(payload, -256)
	if err != nil {
		t.Fatalf("patchCo64: %v", err)
	}
	if n != 2 {
		t.Errorf("patched %d entries, want 2", n)
	}
	if got := binary.BigEndian.Uint64(payload[8:]); got != 1<<33-256 {
		t.Errorf("entry 0: got %d, want %d", got, uint64(1<<33-256))
	}
}

func TestCorrectOffsets_AllTracks(t *testing.T) {
	file := concat(ftypAtom(), atom("moov",
		trackWithStco(stcoAtom([]uint32{100, 200})),
		trackWithStco(co64Atom([]uint64{1 << 40})),
	))
	tree := parseFile(t, writeTemp(t, file))
	moov := tree.Moov

	patched, err := correctOffsets(moov, 24)
	if err != nil {
		t.Fatalf("correctOffsets: %v", err)
	}
	if patched != 3 {
		t.Errorf("patched %d entries, want 3", patched)
	}

	stbl := findSampleTable(moov.Children[0])
	if got := binary.BigEndian.Uint32(stbl.Child("stco").Payload[8:]); got != 124 {
		t.Errorf("first stco entry: got %d, want 124", got)
	}
	stbl = findSampleTable(moov.Children[1])
	if got := binary.BigEndian.Uint64(stbl.Child("co64").Payload[8:]); got != 1<<40+24 {
		t.Errorf("co64 entry: got %d, want %d", got, uint64(1<<40+24))
	}
}

func TestIsFragmented(t *testing.T) {
	moov := NewContainer("moov")
	if isFragmented(moov) {
		t.Error("plain movie reported as fragmented")
	}
	moov.AppendChild(NewLeaf("mvex", nil))
	if !isFragmented(moov) {
		t.Error("mvex not detected")
	}
}
