package types

// FourCC codes of the iTunes metadata atoms this module can write.
//
// In MP4 atoms the © sign is the single byte 0xA9, so "©nam" is "\xA9nam"
// in Go string literals.
const (
	CodeTitle   = "\xA9nam" // ©nam
	CodeArtist  = "\xA9ART" // ©ART
	CodeAlbum   = "\xA9alb" // ©alb
	CodeYear    = "\xA9day" // ©day
	CodeComment = "\xA9cmt" // ©cmt
	CodeCover   = "covr"
)

// Field is one requested metadata write.
//
// It is a closed union: TextField carries a UTF-8 string for a text atom,
// CoverField carries embedded image bytes. Callers pass a slice of fields;
// fields the target container has no encoder for are reported back per code,
// never silently dropped.
type Field interface {
	// Code returns the fourCC this field targets.
	Code() string

	sealedField()
}

// TextField is a UTF-8 text metadata value targeting a specific fourCC.
type TextField struct {
	FourCC string
	Value  string
}

// Code returns the target fourCC.
func (f TextField) Code() string { return f.FourCC }

func (f TextField) sealedField() {}

// CoverField is embedded cover art. MIME should be "image/jpeg" or
// "image/png"; when empty the image kind is sniffed from the data.
type CoverField struct {
	Data []byte
	MIME string
}

// Code returns the covr fourCC.
func (f CoverField) Code() string { return CodeCover }

func (f CoverField) sealedField() {}

// Title returns a title (©nam) field.
func Title(v string) Field { return TextField{FourCC: CodeTitle, Value: v} }

// Artist returns an artist (©ART) field.
func Artist(v string) Field { return TextField{FourCC: CodeArtist, Value: v} }

// Album returns an album (©alb) field.
func Album(v string) Field { return TextField{FourCC: CodeAlbum, Value: v} }

// Year returns a year/date (©day) field.
func Year(v string) Field { return TextField{FourCC: CodeYear, Value: v} }

// Comment returns a comment (©cmt) field.
func Comment(v string) Field { return TextField{FourCC: CodeComment, Value: v} }

// Cover returns a cover art (covr) field.
func Cover(data []byte, mime string) Field { return CoverField{Data: data, MIME: mime} }
