package mp4

import (
	"os"
	"strings"

	"github.com/Changhuaishui/audio-tagger-sub000/internal/types"
)

// Tags holds the iTunes metadata values this module reads back. This is a
// verification surface for writes, not a general extraction API.
type Tags struct {
	Title     string
	Artist    string
	Album     string
	Year      string
	Comment   string
	Cover     []byte
	CoverMIME string
}

// ReadTags parses the file and decodes the supported ilst items.
// A file without a metadata tree returns empty Tags, not an error.
func ReadTags(path string) (*Tags, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return nil, err
	}

	tree, err := Parse(f, stat.Size(), path)
	if err != nil {
		return nil, err
	}

	tags := &Tags{}
	meta := metaBox(tree.Moov)
	if meta == nil {
		return tags, nil
	}
	ilst := meta.Child("ilst")
	if ilst == nil {
		return tags, nil
	}

	for _, item := range ilst.Children {
		code, value, ok := decodeData(item.Payload)
		if !ok {
			continue
		}
		switch item.Type {
		case types.CodeCover:
			switch code {
			case dataTypeJPEG:
				tags.Cover = value
				tags.CoverMIME = "image/jpeg"
			case dataTypePNG:
				tags.Cover = value
				tags.CoverMIME = "image/png"
			}
		default:
			// Type code 0 (implicit) shows up in the wild for text atoms.
			if code != dataTypeUTF8 && code != 0 {
				continue
			}
			text := strings.TrimRight(string(value), "\x00")
			switch item.Type {
			case types.CodeTitle:
				tags.Title = text
			case types.CodeArtist:
				tags.Artist = text
			case types.CodeAlbum:
				tags.Album = text
			case types.CodeYear:
				tags.Year = text
			case types.CodeComment:
				tags.Comment = text
			}
		}
	}

	return tags, nil
}
