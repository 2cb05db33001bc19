package audiotag

import (
	"strings"
	"testing"
)

func TestUnsupportedFormatError_Error(t *testing.T) {
	err := &UnsupportedFormatError{
		Path:   "test.aac",
		Reason: "raw AAC elementary stream has no tag container",
	}

	msg := err.Error()
	if !strings.Contains(msg, "test.aac") {
		t.Errorf("error should contain path, got: %s", msg)
	}
	if !strings.Contains(msg, "raw AAC elementary stream") {
		t.Errorf("error should contain reason, got: %s", msg)
	}
	if !strings.Contains(msg, "unsupported format") {
		t.Errorf("error should contain 'unsupported format', got: %s", msg)
	}
}

func TestCorruptedFileError_Error(t *testing.T) {
	err := &CorruptedFileError{
		Path:   "broken.m4a",
		Offset: 256,
		Reason: "box size 4 below minimum header size",
	}

	msg := err.Error()
	if !strings.Contains(msg, "broken.m4a") {
		t.Errorf("error should contain path, got: %s", msg)
	}
	if !strings.Contains(msg, "offset 256") {
		t.Errorf("error should contain offset, got: %s", msg)
	}
	if !strings.Contains(msg, "corrupted file") {
		t.Errorf("error should contain 'corrupted file', got: %s", msg)
	}
}

func TestUnsupportedWriteError_Error(t *testing.T) {
	err := &UnsupportedWriteError{Container: ContainerFLAC, Reason: "no writer for Vorbis comments"}
	msg := err.Error()
	if !strings.Contains(msg, "FLAC") || !strings.Contains(msg, "Vorbis") {
		t.Errorf("error lacks detail: %s", msg)
	}

	bare := &UnsupportedWriteError{Container: ContainerUnknown}
	if !strings.Contains(bare.Error(), "Unknown") {
		t.Errorf("error should name the container, got: %s", bare.Error())
	}
}

func TestOffsetOverflowError_Error(t *testing.T) {
	err := &OffsetOverflowError{Entry: 7, Offset: 4294967000, Delta: 512}
	msg := err.Error()
	if !strings.Contains(msg, "entry 7") {
		t.Errorf("error should name the entry, got: %s", msg)
	}
	if !strings.Contains(msg, "32 bits") {
		t.Errorf("error should explain the overflow, got: %s", msg)
	}
}

func TestWarning_String(t *testing.T) {
	w := Warning{Stage: "offsets", Message: "chunk offsets not corrected"}
	if got := w.String(); !strings.Contains(got, "offsets:") {
		t.Errorf("warning without offset: %q", got)
	}

	w = Warning{Stage: "parse", Message: "trailing garbage", Offset: 4096}
	if got := w.String(); !strings.Contains(got, "offset 4096") {
		t.Errorf("warning with offset: %q", got)
	}
}
