// Package id3 applies the shared field set to MPEG audio files carrying
// ID3v2 tags. ID3 is its own self-contained header, so this backend is a
// plain frame rewrite with none of the offset hazards of the MP4 path; it
// exists so container dispatch covers MP3 with the same semantics.
package id3

import (
	"fmt"
	"io"
	"os"

	"github.com/bogem/id3v2/v2"

	"github.com/Changhuaishui/audio-tagger-sub000/internal/types"
)

// applyText maps a shared fourCC code onto its ID3v2 frame and sets it.
// Returns false for codes with no frame mapping.
func applyText(t *id3v2.Tag, fourCC, value string) bool {
	switch fourCC {
	case types.CodeTitle:
		t.SetTitle(value)
	case types.CodeArtist:
		t.SetArtist(value)
	case types.CodeAlbum:
		t.SetAlbum(value)
	case types.CodeYear:
		t.SetYear(value)
	case types.CodeComment:
		t.DeleteFrames(t.CommonID("Comments"))
		t.AddCommentFrame(id3v2.CommentFrame{
			Encoding: id3v2.EncodingUTF8,
			Language: "eng",
			Text:     value,
		})
	default:
		return false
	}
	return true
}

func clearText(t *id3v2.Tag, fourCC string) bool {
	switch fourCC {
	case types.CodeTitle:
		t.DeleteFrames(t.CommonID("Title"))
	case types.CodeArtist:
		t.DeleteFrames(t.CommonID("Artist"))
	case types.CodeAlbum:
		t.DeleteFrames(t.CommonID("Album/Movie/Show title"))
	case types.CodeYear:
		t.DeleteFrames(t.CommonID("Year"))
	case types.CodeComment:
		t.DeleteFrames(t.CommonID("Comments"))
	default:
		return false
	}
	return true
}

// Rewrite applies the requested fields to the MP3 file at path with the
// same replace and blank-value semantics as the MP4 rewriter.
func Rewrite(path string, fields []types.Field, cfg types.WriteConfig) (*types.Result, error) {
	res := &types.Result{Path: path, Container: types.ContainerID3}

	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return nil, fmt.Errorf("open ID3 tag: %w", err)
	}
	defer tag.Close()

	for _, field := range fields {
		switch f := field.(type) {
		case types.TextField:
			if f.Value == "" {
				if cfg.ClearOnBlank && clearText(tag, f.FourCC) {
					res.Applied = append(res.Applied, f.FourCC)
				} else {
					res.Skipped = append(res.Skipped, f.FourCC)
				}
				continue
			}
			if !applyText(tag, f.FourCC, f.Value) {
				res.Unsupported = append(res.Unsupported, f.FourCC)
				continue
			}
			res.Applied = append(res.Applied, f.FourCC)
		case types.CoverField:
			if len(f.Data) == 0 {
				res.Skipped = append(res.Skipped, f.Code())
				continue
			}
			mime := f.MIME
			if mime == "" {
				mime = sniffImageMIME(f.Data)
			}
			if mime == "" {
				res.Unsupported = append(res.Unsupported, f.Code())
				continue
			}
			tag.DeleteFrames(tag.CommonID("Attached picture"))
			tag.AddAttachedPicture(id3v2.PictureFrame{
				Encoding:    id3v2.EncodingUTF8,
				MimeType:    mime,
				PictureType: id3v2.PTFrontCover,
				Picture:     f.Data,
			})
			res.Applied = append(res.Applied, f.Code())
		default:
			res.Unsupported = append(res.Unsupported, field.Code())
		}
	}

	if len(res.Applied) == 0 {
		return res, nil
	}

	var origInfo os.FileInfo
	if cfg.PreserveModTime {
		origInfo, _ = os.Stat(path)
	}
	if cfg.BackupSuffix != "" {
		if err := copyFile(path, path+cfg.BackupSuffix); err != nil {
			return nil, fmt.Errorf("create backup: %w", err)
		}
	}

	if err := tag.Save(); err != nil {
		return nil, fmt.Errorf("save ID3 tag: %w", err)
	}

	if cfg.PreserveModTime && origInfo != nil {
		os.Chtimes(path, origInfo.ModTime(), origInfo.ModTime())
	}

	return res, nil
}

func sniffImageMIME(data []byte) string {
	if len(data) >= 3 && data[0] == 0xFF && data[1] == 0xD8 && data[2] == 0xFF {
		return "image/jpeg"
	}
	if len(data) >= 4 && string(data[:4]) == "\x89PNG" {
		return "image/png"
	}
	return ""
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
