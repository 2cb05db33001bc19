package types

// DefaultPadding is the initial capacity of the free box created under meta
// when a file has none. Reserving slack up front amortizes later edits:
// as long as net growth stays within the padding, no file splice is needed.
const DefaultPadding = 32 * 1024

// WriteConfig is the resolved configuration for one write, produced by the
// public functional options.
type WriteConfig struct {
	// Padding is the total size of the free box created when absent.
	Padding int

	// ClearOnBlank flips the blank-value policy. By default a blank text
	// value is a no-op so batch edits never erase existing tags by
	// accident; with ClearOnBlank a blank value removes the atom.
	ClearOnBlank bool

	// BackupSuffix, when non-empty, preserves the original file under
	// path+suffix before the rewrite replaces it.
	BackupSuffix string

	// Validate re-reads the written file and verifies the applied fields.
	Validate bool

	// PreserveModTime restores the original modification time after a
	// successful write.
	PreserveModTime bool
}

// DefaultWriteConfig returns the default write configuration.
func DefaultWriteConfig() WriteConfig {
	return WriteConfig{
		Padding: DefaultPadding,
	}
}
