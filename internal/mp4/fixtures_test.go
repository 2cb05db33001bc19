package mp4

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"
)

// atom builds a serialized box from its type and payload parts.
func atom(typ string, parts ...[]byte) []byte {
	size := 8
	for _, p := range parts {
		size += len(p)
	}
	buf := make([]byte, 0, size)
	buf = binary.BigEndian.AppendUint32(buf, uint32(size))
	buf = append(buf, typ...)
	for _, p := range parts {
		buf = append(buf, p...)
	}
	return buf
}

func be32(v uint32) []byte {
	return binary.BigEndian.AppendUint32(nil, v)
}

// dataAtom builds an iTunes data box with the given type code and value.
func dataAtom(code uint32, value []byte) []byte {
	return atom("data", be32(code), be32(0), value)
}

// textItem builds an ilst item holding a UTF-8 data box.
func textItem(fourCC, value string) []byte {
	return atom(fourCC, dataAtom(dataTypeUTF8, []byte(value)))
}

// stcoAtom builds a chunk offset table with the given entries.
func stcoAtom(offsets []uint32) []byte {
	parts := [][]byte{be32(0), be32(uint32(len(offsets)))}
	for _, off := range offsets {
		parts = append(parts, be32(off))
	}
	return atom("stco", parts...)
}

// co64Atom builds a 64-bit chunk offset table.
func co64Atom(offsets []uint64) []byte {
	buf := make([]byte, 0, 8+len(offsets)*8)
	buf = append(buf, be32(0)...)
	buf = binary.BigEndian.AppendUint32(buf, uint32(len(offsets)))
	for _, off := range offsets {
		buf = binary.BigEndian.AppendUint64(buf, off)
	}
	return atom("co64", buf)
}

// trackWithStco builds trak/mdia/minf/stbl around a sample table box.
func trackWithStco(table []byte) []byte {
	return atom("trak", atom("mdia", atom("minf", atom("stbl", table))))
}

// metaAtom builds a meta full box: 4 bytes version+flags, then children.
func metaAtom(children ...[]byte) []byte {
	parts := append([][]byte{{0, 0, 0, 0}}, children...)
	return atom("meta", parts...)
}

func ftypAtom() []byte {
	return atom("ftyp", []byte("M4A \x00\x00\x02\x00M4A isom"))
}

func concat(parts ...[]byte) []byte {
	var buf []byte
	for _, p := range parts {
		buf = append(buf, p...)
	}
	return buf
}

// writeTemp puts the file bytes at a temp path and returns it.
func writeTemp(t *testing.T, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.m4a")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

// parseFile parses the file at path and fails the test on error.
func parseFile(t *testing.T, path string) *Tree {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { f.Close() })

	stat, err := f.Stat()
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	tree, err := Parse(f, stat.Size(), path)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return tree
}

// stcoEntries extracts the chunk offsets of the first track.
func stcoEntries(t *testing.T, tree *Tree) []uint32 {
	t.Helper()
	for _, trak := range tree.Moov.Children {
		if trak.Type != "trak" {
			continue
		}
		stbl := findSampleTable(trak)
		if stbl == nil {
			continue
		}
		stco := stbl.Child("stco")
		if stco == nil {
			t.Fatal("no stco box in track")
		}
		count := binary.BigEndian.Uint32(stco.Payload[4:8])
		entries := make([]uint32, count)
		for i := range entries {
			entries[i] = binary.BigEndian.Uint32(stco.Payload[8+i*4 : 12+i*4])
		}
		return entries
	}
	t.Fatal("no track with a sample table")
	return nil
}

func readFile(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	return data
}

func mustEqualBytes(t *testing.T, got, want []byte, what string) {
	t.Helper()
	if !bytes.Equal(got, want) {
		t.Fatalf("%s: %d bytes, want %d; content differs", what, len(got), len(want))
	}
}
