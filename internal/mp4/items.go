package mp4

import (
	"bytes"
	"encoding/binary"

	"github.com/Changhuaishui/audio-tagger-sub000/internal/types"
)

// iTunes data atom type codes.
const (
	dataTypeUTF8 = 1
	dataTypeJPEG = 13
	dataTypePNG  = 14
)

// textCodes are the fourCCs this codec encodes as UTF-8 text atoms.
var textCodes = map[string]bool{
	types.CodeTitle:   true,
	types.CodeArtist:  true,
	types.CodeAlbum:   true,
	types.CodeYear:    true,
	types.CodeComment: true,
}

// encodeData builds a data box: type code, 4 reserved/locale bytes, value.
func encodeData(typeCode uint32, value []byte) []byte {
	size := 16 + len(value)
	buf := make([]byte, 0, size)
	buf = binary.BigEndian.AppendUint32(buf, uint32(size))
	buf = append(buf, "data"...)
	buf = binary.BigEndian.AppendUint32(buf, typeCode)
	buf = binary.BigEndian.AppendUint32(buf, 0)
	buf = append(buf, value...)
	return buf
}

var (
	jpegMagic = []byte{0xFF, 0xD8, 0xFF}
	pngMagic  = []byte{0x89, 0x50, 0x4E, 0x47}
)

// coverTypeCode resolves the data type code for cover art from the declared
// MIME type, falling back to sniffing the image bytes.
func coverTypeCode(data []byte, mime string) (uint32, bool) {
	switch mime {
	case "image/jpeg":
		return dataTypeJPEG, true
	case "image/png":
		return dataTypePNG, true
	}
	if bytes.HasPrefix(data, jpegMagic) {
		return dataTypeJPEG, true
	}
	if bytes.HasPrefix(data, pngMagic) {
		return dataTypePNG, true
	}
	return 0, false
}

// encodeItem encodes one field as an ilst item: an outer box typed with the
// field's fourCC holding a single data box. Returns an UnsupportedFieldError
// for fourCCs this codec has no encoder for.
func encodeItem(field types.Field) (*Box, error) {
	switch f := field.(type) {
	case types.TextField:
		if !textCodes[f.FourCC] {
			return nil, &types.UnsupportedFieldError{FourCC: f.FourCC}
		}
		return NewLeaf(f.FourCC, encodeData(dataTypeUTF8, []byte(f.Value))), nil
	case types.CoverField:
		code, ok := coverTypeCode(f.Data, f.MIME)
		if !ok {
			return nil, &types.UnsupportedFieldError{FourCC: types.CodeCover}
		}
		return NewLeaf(types.CodeCover, encodeData(code, f.Data)), nil
	default:
		return nil, &types.UnsupportedFieldError{FourCC: field.Code()}
	}
}

// isBlank reports whether a field carries an empty value.
func isBlank(field types.Field) bool {
	switch f := field.(type) {
	case types.TextField:
		return f.Value == ""
	case types.CoverField:
		return len(f.Data) == 0
	}
	return false
}

// applyFields applies the requested writes to ilst with replace semantics:
// any existing item with the same fourCC is removed first.
//
// Blank values are a no-op by default so batch edits never erase tags by
// accident; with cfg.ClearOnBlank a blank value removes the existing item
// instead. Fields with no encoder are collected, not applied; the caller
// surfaces them as a partial success.
func applyFields(ilst *Box, fields []types.Field, cfg types.WriteConfig) (applied, skipped, unsupported []string) {
	for _, field := range fields {
		if isBlank(field) {
			if cfg.ClearOnBlank && ilst.RemoveChildren(field.Code()) > 0 {
				applied = append(applied, field.Code())
			} else {
				skipped = append(skipped, field.Code())
			}
			continue
		}

		item, err := encodeItem(field)
		if err != nil {
			unsupported = append(unsupported, field.Code())
			continue
		}

		ilst.RemoveChildren(field.Code())
		ilst.AppendChild(item)
		applied = append(applied, field.Code())
	}
	return applied, skipped, unsupported
}

// decodeData extracts the (type code, value) of the first data box inside
// an item payload. Returns ok=false when the payload holds no data box.
func decodeData(payload []byte) (uint32, []byte, bool) {
	off := 0
	for off+8 <= len(payload) {
		size := int(binary.BigEndian.Uint32(payload[off : off+4]))
		if size < 8 || off+size > len(payload) {
			return 0, nil, false
		}
		if string(payload[off+4:off+8]) == "data" && size >= 16 {
			code := binary.BigEndian.Uint32(payload[off+8 : off+12])
			return code, payload[off+16 : off+size], true
		}
		off += size
	}
	return 0, nil, false
}
