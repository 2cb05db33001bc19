// Package types provides the shared data model for the tag rewriter:
// container kinds, metadata fields, write configuration, results, and the
// error taxonomy.
package types

import (
	"io"

	"github.com/Changhuaishui/audio-tagger-sub000/internal/binary"
)

// Container represents the detected tag container kind of a file.
//
// Detection is content-based (magic bytes), resolved exactly once per write;
// all later dispatch switches on this value instead of trying writers in
// sequence.
type Container int

const (
	// ContainerUnknown represents an unrecognized or untaggable stream.
	ContainerUnknown Container = iota
	// ContainerMP4 represents ISO-BMFF files (M4A, M4B, MP4) with iTunes atoms.
	ContainerMP4
	// ContainerID3 represents MPEG audio carrying ID3 tags.
	ContainerID3
	// ContainerFLAC represents FLAC files with Vorbis comment blocks.
	ContainerFLAC
)

// String returns a human-readable container name.
func (c Container) String() string {
	switch c {
	case ContainerMP4:
		return "MP4"
	case ContainerID3:
		return "ID3"
	case ContainerFLAC:
		return "FLAC"
	default:
		return "Unknown"
	}
}

// Extensions returns common file extensions for this container kind.
func (c Container) Extensions() []string {
	switch c {
	case ContainerMP4:
		return []string{".m4a", ".m4b", ".mp4", ".m4p"}
	case ContainerID3:
		return []string{".mp3"}
	case ContainerFLAC:
		return []string{".flac"}
	default:
		return nil
	}
}

// DetectContainer determines the tag container kind by examining magic bytes.
//
// Detection rules:
//   - a top-level box with the literal "ftyp" at offset 4 is an ISO-BMFF file
//   - "ID3" or an MPEG audio frame sync (layer I-III) is an ID3 container
//   - "fLaC" is a FLAC file
//   - an ADTS sync (layer bits zero) is a bare AAC elementary stream, which
//     has no tag container at all and is reported as unsupported
//
// Detection does not validate the file beyond its signature.
func DetectContainer(r io.ReaderAt, size int64, path string) (Container, error) {
	if size < 8 {
		return ContainerUnknown, &UnsupportedFormatError{
			Path:   path,
			Reason: "file too small",
		}
	}

	sr := binary.NewSafeReader(r, size, path)

	magic := make([]byte, 8)
	if err := sr.ReadAt(magic, 0, "file magic bytes"); err != nil {
		return ContainerUnknown, &UnsupportedFormatError{
			Path:   path,
			Reason: "failed to read file header",
		}
	}

	if string(magic[4:8]) == "ftyp" {
		return ContainerMP4, nil
	}

	if string(magic[:4]) == "fLaC" {
		return ContainerFLAC, nil
	}

	if string(magic[:3]) == "ID3" {
		return ContainerID3, nil
	}

	// MPEG frame sync: 11 set bits. The layer bits distinguish MPEG audio
	// (layer I-III) from an ADTS AAC elementary stream (layer 00), which has
	// no tag container and must be rejected rather than corrupted.
	if magic[0] == 0xFF && magic[1]&0xE0 == 0xE0 {
		layer := (magic[1] >> 1) & 0x03
		if layer == 0 {
			return ContainerUnknown, &UnsupportedFormatError{
				Path:   path,
				Reason: "raw AAC elementary stream has no tag container",
			}
		}
		return ContainerID3, nil
	}

	return ContainerUnknown, &UnsupportedFormatError{
		Path:   path,
		Reason: "unsupported file format",
	}
}
