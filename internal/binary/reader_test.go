package binary

import (
	"bytes"
	"strings"
	"testing"
)

func TestReadValues(t *testing.T) {
	data := []byte{0x12, 0x34, 0x56, 0x78, 0x9A, 0xBC, 0xDE, 0xF0}
	sr := NewSafeReader(bytes.NewReader(data), int64(len(data)), "test.m4a")

	if v, err := Read[uint8](sr, 0, "u8"); err != nil || v != 0x12 {
		t.Errorf("Read[uint8] = %#x, %v", v, err)
	}
	if v, err := Read[uint16](sr, 0, "u16"); err != nil || v != 0x1234 {
		t.Errorf("Read[uint16] = %#x, %v", v, err)
	}
	if v, err := Read[uint32](sr, 0, "u32"); err != nil || v != 0x12345678 {
		t.Errorf("Read[uint32] = %#x, %v", v, err)
	}
	if v, err := Read[uint64](sr, 0, "u64"); err != nil || v != 0x123456789ABCDEF0 {
		t.Errorf("Read[uint64] = %#x, %v", v, err)
	}
}

func TestReadFourCC(t *testing.T) {
	data := []byte{0, 0, 0, 16, 'm', 'o', 'o', 'v'}
	sr := NewSafeReader(bytes.NewReader(data), int64(len(data)), "test.m4a")

	typ, err := sr.ReadFourCC(4, "box type")
	if err != nil {
		t.Fatalf("ReadFourCC: %v", err)
	}
	if typ != "moov" {
		t.Errorf("got %q, want %q", typ, "moov")
	}
}

func TestReadAtBounds(t *testing.T) {
	data := make([]byte, 16)
	sr := NewSafeReader(bytes.NewReader(data), int64(len(data)), "test.m4a")

	buf := make([]byte, 4)
	if err := sr.ReadAt(buf, 20, "past end"); err == nil {
		t.Error("read past end of file succeeded")
	}
	if err := sr.ReadAt(buf, -1, "negative"); err == nil {
		t.Error("read at negative offset succeeded")
	}
	if err := sr.ReadAt(buf, 14, "straddling end"); err == nil {
		t.Error("read straddling end of file succeeded")
	}
	if err := sr.ReadAt(buf, 12, "last word"); err != nil {
		t.Errorf("read of last 4 bytes failed: %v", err)
	}
}

func TestReadErrorMentionsContext(t *testing.T) {
	sr := NewSafeReader(bytes.NewReader(nil), 0, "broken.m4a")

	_, err := Read[uint32](sr, 0, "box size")
	if err == nil {
		t.Fatal("expected an error")
	}
	if !strings.Contains(err.Error(), "broken.m4a") || !strings.Contains(err.Error(), "box size") {
		t.Errorf("error lacks context: %v", err)
	}
}
