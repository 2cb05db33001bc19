package audiotag

import (
	"io"

	"github.com/Changhuaishui/audio-tagger-sub000/internal/types"
)

// Container is an alias to types.Container; the public API and the internal
// writers share one set of model types.
type Container = types.Container

// Re-export the container kinds.
const (
	ContainerUnknown = types.ContainerUnknown
	ContainerMP4     = types.ContainerMP4
	ContainerID3     = types.ContainerID3
	ContainerFLAC    = types.ContainerFLAC
)

// Field is an alias to types.Field, the closed union of writable values.
type Field = types.Field

// TextField is an alias to types.TextField.
type TextField = types.TextField

// CoverField is an alias to types.CoverField.
type CoverField = types.CoverField

// Result is an alias to types.Result.
type Result = types.Result

// RewriteStats is an alias to types.RewriteStats.
type RewriteStats = types.RewriteStats

// Warning is an alias to types.Warning.
type Warning = types.Warning

// Re-export the fourCC codes of the supported atoms.
const (
	CodeTitle   = types.CodeTitle
	CodeArtist  = types.CodeArtist
	CodeAlbum   = types.CodeAlbum
	CodeYear    = types.CodeYear
	CodeComment = types.CodeComment
	CodeCover   = types.CodeCover
)

// Field constructors.
var (
	Title   = types.Title
	Artist  = types.Artist
	Album   = types.Album
	Year    = types.Year
	Comment = types.Comment
	Cover   = types.Cover
)

// DetectContainer determines the tag container kind by sniffing magic bytes.
func DetectContainer(r io.ReaderAt, size int64, path string) (Container, error) {
	return types.DetectContainer(r, size, path)
}
