package audiotag

import (
	"fmt"
	"os"
	"slices"
	"strconv"

	"github.com/dhowden/tag"

	"github.com/Changhuaishui/audio-tagger-sub000/internal/id3"
	"github.com/Changhuaishui/audio-tagger-sub000/internal/mp4"
	"github.com/Changhuaishui/audio-tagger-sub000/internal/types"
)

// WriteMetadata applies the requested fields to the file at path.
//
// The container kind is sniffed from content, then the write is dispatched
// to the matching rewriter. The returned Result distinguishes fully
// applied, applied-except-unsupported-fields, and (via a non-nil error)
// failed with the original file untouched.
//
// Callers must not write to the same file from two goroutines at once; use
// WriteMany for concurrent batches.
func WriteMetadata(path string, fields []Field, opts ...WriteOption) (*Result, error) {
	cfg := types.DefaultWriteConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	kind, err := detectPath(path)
	if err != nil {
		return nil, err
	}

	var result *Result
	switch kind {
	case ContainerMP4:
		result, err = mp4.Rewrite(path, fields, cfg)
	case ContainerID3:
		result, err = id3.Rewrite(path, fields, cfg)
	case ContainerFLAC:
		return nil, &UnsupportedWriteError{Container: kind, Reason: "no writer for Vorbis comments"}
	default:
		return nil, &UnsupportedWriteError{Container: kind}
	}
	if err != nil {
		return nil, err
	}

	if cfg.Validate && result.Changed() {
		if err := validateWritten(path, kind, fields, result); err != nil {
			return nil, fmt.Errorf("validation failed: %w", err)
		}
	}

	return result, nil
}

// IsSupportedContainer reports whether the file at path holds a container
// this module can write to. A probe for callers that want to filter before
// attempting a write; it never reads more than the file header.
func IsSupportedContainer(path string) bool {
	kind, err := detectPath(path)
	if err != nil {
		return false
	}
	return kind == ContainerMP4 || kind == ContainerID3
}

// detectPath opens the file just long enough to sniff its container kind.
func detectPath(path string) (Container, error) {
	f, err := os.Open(path)
	if err != nil {
		return ContainerUnknown, err
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return ContainerUnknown, fmt.Errorf("stat file: %w", err)
	}

	return DetectContainer(f, stat.Size(), path)
}

// validateWritten re-reads the written file and checks the applied fields
// round-trip. MP4 files are verified with this module's own parser, then
// both containers are cross-checked with an independent reader.
func validateWritten(path string, kind Container, fields []Field, result *Result) error {
	want := map[string]string{}
	for _, field := range fields {
		tf, ok := field.(TextField)
		if !ok || !slices.Contains(result.Applied, tf.FourCC) {
			continue
		}
		want[tf.FourCC] = tf.Value
	}

	if kind == ContainerMP4 {
		got, err := mp4.ReadTags(path)
		if err != nil {
			return fmt.Errorf("re-read: %w", err)
		}
		readBack := map[string]string{
			CodeTitle:   got.Title,
			CodeArtist:  got.Artist,
			CodeAlbum:   got.Album,
			CodeYear:    got.Year,
			CodeComment: got.Comment,
		}
		for code, value := range want {
			if readBack[code] != value {
				return fmt.Errorf("field %q: got %q, want %q", code, readBack[code], value)
			}
		}
	}

	return crossCheck(path, want)
}

// crossCheck verifies the primary text fields with the dhowden/tag reader,
// a fully independent implementation of both tag formats.
func crossCheck(path string, want map[string]string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	m, err := tag.ReadFrom(f)
	if err != nil {
		return fmt.Errorf("independent re-read: %w", err)
	}

	checks := []struct {
		code string
		got  string
	}{
		{CodeTitle, m.Title()},
		{CodeArtist, m.Artist()},
		{CodeAlbum, m.Album()},
	}
	for _, c := range checks {
		value, requested := want[c.code]
		if requested && c.got != value {
			return fmt.Errorf("independent reader disagrees on %q: got %q, want %q", c.code, c.got, value)
		}
	}

	if value, requested := want[CodeYear]; requested {
		if year, err := strconv.Atoi(value); err == nil && m.Year() != 0 && m.Year() != year {
			return fmt.Errorf("independent reader disagrees on year: got %d, want %d", m.Year(), year)
		}
	}

	return nil
}
