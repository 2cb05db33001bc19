// Package audiotag rewrites audio file metadata in place.
//
// The core of the package is a surgical MP4/ISO-BMFF rewriter: it edits the
// iTunes-style atoms (moov/udta/meta/ilst) of an M4A/MP4 file without a full
// remux, keeping the media payload byte-identical and every internal offset
// consistent. Edits are absorbed into a reserved free box whenever they fit,
// so the common case never changes the file length; when the file must grow
// or shrink, every chunk-offset table entry is shifted and the file is
// replaced through a staged temp file and an atomic rename.
//
// # Quick Start
//
// Writing tags:
//
//	result, err := audiotag.WriteMetadata("song.m4a",
//	    []audiotag.Field{
//	        audiotag.Title("Night Drive"),
//	        audiotag.Artist("The Accidentals"),
//	    },
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if result.Partial() {
//	    log.Printf("skipped fields: %v", result.Unsupported)
//	}
//
// # Containers
//
// The container kind is sniffed from content exactly once per write and
// dispatch is explicit:
//
//   - MP4 (M4A/M4B/MP4): the native atom rewriter
//   - ID3 (MP3): frame rewrite via ID3v2
//   - FLAC: detected, reported as unsupported for writing
//   - bare elementary streams (raw AAC): rejected before any parse attempt
//
// # Results, not booleans
//
// Every write returns a structured Result distinguishing fully applied,
// applied-except-these-fields, and failed-nothing-changed, with per-stage
// diagnostics (size delta, padding absorption, offsets patched). A field the
// target container cannot encode never fails the whole write and is never
// silently dropped.
//
// # Safety
//
// Any failure before commit leaves the original file byte-for-byte
// untouched. A commit that changes the file length writes the reassembled
// file to a temp path in the same directory and renames it over the
// original, so an interruption mid-write can never leave a truncated or
// interleaved file.
//
// # Concurrency
//
// One write is a synchronous, single-threaded unit of work. WriteMany runs
// independent files in parallel and serializes duplicate paths; callers
// issuing their own concurrent writes must never target the same file from
// two writers at once.
package audiotag
