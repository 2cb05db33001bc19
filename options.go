package audiotag

import (
	"github.com/Changhuaishui/audio-tagger-sub000/internal/types"
)

// WriteOption configures behavior when writing metadata.
//
// Options use the functional options pattern:
//
//	result, err := audiotag.WriteMetadata(path, fields,
//	    audiotag.WithBackup(".bak"),
//	    audiotag.WithValidation(),
//	)
type WriteOption func(*types.WriteConfig)

// WithBackup preserves the original file under path+suffix before the
// rewrite replaces it. For example, WithBackup(".bak") keeps "song.m4a.bak"
// next to the rewritten "song.m4a". An existing backup is overwritten.
func WithBackup(suffix string) WriteOption {
	return func(c *types.WriteConfig) {
		c.BackupSuffix = suffix
	}
}

// WithValidation re-reads the file after writing and verifies every applied
// text field round-trips, using both this module's parser and an
// independent tag reader. Adds overhead; use it when integrity matters more
// than speed.
func WithValidation() WriteOption {
	return func(c *types.WriteConfig) {
		c.Validate = true
	}
}

// WithPreserveModTime restores the original modification time after a
// successful write.
func WithPreserveModTime() WriteOption {
	return func(c *types.WriteConfig) {
		c.PreserveModTime = true
	}
}

// WithPadding sets the total size of the free box created under meta when
// the file has none. Larger padding means more future edits absorb in place
// without a file splice. The default is 32 KiB; values below the minimum
// box size of 8 are raised to it.
func WithPadding(n int) WriteOption {
	return func(c *types.WriteConfig) {
		c.Padding = n
	}
}

// WithClearOnBlank makes a blank text value remove the existing atom.
//
// By default a blank value is a no-op: batch edits with partially filled
// forms must never erase existing tags by accident. That default is a
// product policy, not a format rule, and this option flips it.
func WithClearOnBlank() WriteOption {
	return func(c *types.WriteConfig) {
		c.ClearOnBlank = true
	}
}
