package mp4

import (
	"bytes"
	"slices"
	"testing"

	"github.com/Changhuaishui/audio-tagger-sub000/internal/types"
)

func TestEncodeData_Layout(t *testing.T) {
	got := encodeData(dataTypeUTF8, []byte("Hi"))
	want := dataAtom(dataTypeUTF8, []byte("Hi"))
	if !bytes.Equal(got, want) {
		t.Fatalf("data box mismatch:\ngot  %x\nwant %x", got, want)
	}
}

func TestApplyFields_ReplaceSemantics(t *testing.T) {
	ilst := NewContainer("ilst")
	ilst.AppendChild(NewLeaf(types.CodeTitle, dataAtom(dataTypeUTF8, []byte("Old"))))

	applied, _, _ := applyFields(ilst, []types.Field{types.Title("New")}, types.DefaultWriteConfig())

	if !slices.Contains(applied, types.CodeTitle) {
		t.Fatalf("title not applied: %v", applied)
	}
	count := 0
	for _, c := range ilst.Children {
		if c.Type == types.CodeTitle {
			count++
		}
	}
	if count != 1 {
		t.Errorf("expected exactly one title item after replace, got %d", count)
	}

	code, value, ok := decodeData(ilst.Child(types.CodeTitle).Payload)
	if !ok || code != dataTypeUTF8 || string(value) != "New" {
		t.Errorf("decoded (%d, %q, %v), want (1, \"New\", true)", code, value, ok)
	}
}

func TestApplyFields_BlankIsNoOp(t *testing.T) {
	ilst := NewContainer("ilst")
	ilst.AppendChild(NewLeaf(types.CodeTitle, dataAtom(dataTypeUTF8, []byte("Keep"))))

	applied, skipped, _ := applyFields(ilst, []types.Field{types.Title("")}, types.DefaultWriteConfig())

	if len(applied) != 0 {
		t.Errorf("blank value should not apply: %v", applied)
	}
	if !slices.Contains(skipped, types.CodeTitle) {
		t.Errorf("blank value should be reported as skipped: %v", skipped)
	}
	if ilst.Child(types.CodeTitle) == nil {
		t.Error("blank value erased the existing item")
	}
}

func TestApplyFields_ClearOnBlank(t *testing.T) {
	ilst := NewContainer("ilst")
	ilst.AppendChild(NewLeaf(types.CodeTitle, dataAtom(dataTypeUTF8, []byte("Doomed"))))

	cfg := types.DefaultWriteConfig()
	cfg.ClearOnBlank = true
	applied, skipped, _ := applyFields(ilst, []types.Field{types.Title(""), types.Artist("")}, cfg)

	if !slices.Contains(applied, types.CodeTitle) {
		t.Errorf("clearing an existing item counts as applied: %v", applied)
	}
	if ilst.Child(types.CodeTitle) != nil {
		t.Error("item not removed")
	}
	// Clearing a field that was never set is still a no-op.
	if !slices.Contains(skipped, types.CodeArtist) {
		t.Errorf("clearing an absent item should be skipped: %v", skipped)
	}
}

func TestApplyFields_UnsupportedFourCC(t *testing.T) {
	ilst := NewContainer("ilst")

	fields := []types.Field{
		types.Title("Kept"),
		types.TextField{FourCC: "gnre", Value: "17"},
	}
	applied, _, unsupported := applyFields(ilst, fields, types.DefaultWriteConfig())

	if !slices.Contains(applied, types.CodeTitle) {
		t.Errorf("supported field should still apply: %v", applied)
	}
	if !slices.Contains(unsupported, "gnre") {
		t.Errorf("unsupported field not reported: %v", unsupported)
	}
	if ilst.Child("gnre") != nil {
		t.Error("unsupported field was written anyway")
	}
}

func TestEncodeItem_CoverSniffing(t *testing.T) {
	jpeg := append([]byte{0xFF, 0xD8, 0xFF, 0xE0}, make([]byte, 16)...)
	png := append([]byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}, make([]byte, 16)...)

	item, err := encodeItem(types.CoverField{Data: jpeg})
	if err != nil {
		t.Fatalf("jpeg cover: %v", err)
	}
	if code, _, _ := decodeData(item.Payload); code != dataTypeJPEG {
		t.Errorf("jpeg type code: got %d, want %d", code, dataTypeJPEG)
	}

	item, err = encodeItem(types.CoverField{Data: png})
	if err != nil {
		t.Fatalf("png cover: %v", err)
	}
	if code, _, _ := decodeData(item.Payload); code != dataTypePNG {
		t.Errorf("png type code: got %d, want %d", code, dataTypePNG)
	}

	if _, err := encodeItem(types.CoverField{Data: []byte("not an image")}); err == nil {
		t.Error("expected an error for an unrecognized image format")
	}
}

func TestDecodeData_Garbage(t *testing.T) {
	if _, _, ok := decodeData([]byte{0x00, 0x01}); ok {
		t.Error("decodeData accepted a truncated payload")
	}
	if _, _, ok := decodeData(atom("skip", make([]byte, 4))); ok {
		t.Error("decodeData accepted a payload without a data box")
	}
}
