package mp4

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/Changhuaishui/audio-tagger-sub000/internal/binary"
)

// commit writes the mutated moov back to disk with the cheapest safe
// mutation.
//
// When the serialized moov is exactly the size of the original span (the
// padding absorbed the delta) its bytes are overwritten in place; no other
// offset in the file changes, so this is always safe. When the size
// changed, the fully reassembled file is written to a temp path in the same
// directory, fsynced, and atomically renamed over the original: an
// interruption at any point leaves the original byte-identical. A requested
// backup also goes through the staged path so the original can be copied
// aside intact.
func commit(t *Tree, path string, newMoov []byte, backupSuffix string) (resized bool, err error) {
	sameSize := int64(len(newMoov)) == t.MoovLen

	if sameSize && backupSuffix == "" {
		f, err := os.OpenFile(path, os.O_WRONLY, 0)
		if err != nil {
			return false, fmt.Errorf("open for patch: %w", err)
		}
		if _, err := f.WriteAt(newMoov, t.MoovOffset); err != nil {
			f.Close()
			return false, fmt.Errorf("patch moov in place: %w", err)
		}
		if err := f.Sync(); err != nil {
			f.Close()
			return false, fmt.Errorf("sync patched file: %w", err)
		}
		if err := f.Close(); err != nil {
			return false, fmt.Errorf("close patched file: %w", err)
		}
		return false, nil
	}

	if err := stageAndReplace(t, path, newMoov, backupSuffix); err != nil {
		return !sameSize, err
	}
	return !sameSize, nil
}

// stageAndReplace reassembles the whole file at a temp path and renames it
// over the original. The head and tail of the source are streamed, never
// loaded into memory; the writer's offset accounting verifies the staged
// file has exactly the expected length before the rename. A requested
// backup is copied (not renamed) into place first, so the original path
// holds a complete file at every instant.
func stageAndReplace(t *Tree, path string, newMoov []byte, backupSuffix string) error {
	src := t.Source().Source()
	srcSize := t.Source().Size()
	tailOffset := t.MoovOffset + t.MoovLen

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".audiotag-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	// CreateTemp uses 0600; the replacement must keep the original's mode.
	if info, err := os.Stat(path); err == nil {
		os.Chmod(tmpPath, info.Mode().Perm())
	}

	success := false
	defer func() {
		if !success {
			tmp.Close()
			os.Remove(tmpPath)
		}
	}()

	sw := binary.NewSafeWriter(tmp)
	if _, err := io.Copy(sw, io.NewSectionReader(src, 0, t.MoovOffset)); err != nil {
		return fmt.Errorf("copy file head: %w", err)
	}
	if err := sw.WriteBytes(newMoov); err != nil {
		return fmt.Errorf("write moov: %w", err)
	}
	if _, err := io.Copy(sw, io.NewSectionReader(src, tailOffset, srcSize-tailOffset)); err != nil {
		return fmt.Errorf("copy file tail: %w", err)
	}

	wantSize := srcSize + int64(len(newMoov)) - t.MoovLen
	if sw.Offset() != wantSize {
		return fmt.Errorf("staged %d bytes, expected %d", sw.Offset(), wantSize)
	}

	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}

	if backupSuffix != "" {
		if err := copyFile(path, path+backupSuffix); err != nil {
			return fmt.Errorf("create backup: %w", err)
		}
	}

	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("rename temp over original: %w", err)
	}

	success = true
	return nil
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
