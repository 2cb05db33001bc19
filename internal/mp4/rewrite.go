package mp4

import (
	"fmt"
	"os"

	"github.com/Changhuaishui/audio-tagger-sub000/internal/types"
)

// Rewrite applies the requested metadata fields to the MP4 file at path.
//
// One call runs the whole pipeline synchronously: parse, ensure the
// metadata hierarchy, apply fields, reconcile the size delta against the
// padding box, correct chunk offsets when the delta sticks, and commit.
// Any failure before the commit leaves the original file byte-for-byte
// untouched; the commit itself is staged and atomically renamed when the
// file length changes.
//
// Callers must not run two rewrites against the same file concurrently.
func Rewrite(path string, fields []types.Field, cfg types.WriteConfig) (*types.Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat file: %w", err)
	}

	tree, err := Parse(f, stat.Size(), path)
	if err != nil {
		return nil, err
	}

	res := &types.Result{Path: path, Container: types.ContainerMP4}

	ilst := ensureItemList(tree, cfg.Padding)
	res.Applied, res.Skipped, res.Unsupported = applyFields(ilst, fields, cfg)

	// Nothing changed in the tree: do not touch the file at all. Blank
	// fields and unsupported fields alone never trigger a rewrite.
	if len(res.Applied) == 0 {
		return res, nil
	}

	var net int64
	net, res.Stats.MoovDelta, res.Stats.PaddingAbsorbed = reconcile(tree)

	if net != 0 {
		switch {
		case isFragmented(tree.Moov):
			res.Stats.Fragmented = true
			res.Warnings = append(res.Warnings, types.Warning{
				Stage:   "offsets",
				Message: "fragmented movie (mvex present): chunk offsets not corrected",
			})
		case tree.MoovPrecedesMedia():
			patched, err := correctOffsets(tree.Moov, net)
			if err != nil {
				return nil, err
			}
			res.Stats.OffsetsPatched = patched
		}
	}

	newMoov := tree.Moov.Marshal()
	if int64(len(newMoov)) != tree.MoovLen+net {
		// Serialization disagreeing with the reconciled size means the
		// offset math above is no longer trustworthy. Abort before disk.
		return nil, fmt.Errorf("%s: moov serialized to %d bytes, expected %d",
			path, len(newMoov), tree.MoovLen+net)
	}

	var origInfo os.FileInfo
	if cfg.PreserveModTime {
		origInfo, _ = os.Stat(path)
	}

	resized, err := commit(tree, path, newMoov, cfg.BackupSuffix)
	if err != nil {
		return nil, err
	}
	res.Stats.Resized = resized

	if cfg.PreserveModTime && origInfo != nil {
		os.Chtimes(path, origInfo.ModTime(), origInfo.ModTime())
	}

	return res, nil
}
