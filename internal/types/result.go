package types

// Result reports what one write actually did.
//
// Callers always receive a structured result rather than a bare boolean:
// a write is fully applied, applied except the listed unsupported fields,
// or failed with the original file untouched (in which case WriteMetadata
// returns an error and no Result).
type Result struct {
	Path      string
	Container Container

	// Applied lists the fourCCs written to the file.
	Applied []string

	// Skipped lists fourCCs skipped by the blank-value policy.
	Skipped []string

	// Unsupported lists fourCCs with no encoder for this container.
	Unsupported []string

	// Warnings accumulated by the pipeline stages.
	Warnings []Warning

	// Stats describes what the rewrite did at the byte level.
	Stats RewriteStats
}

// RewriteStats carries per-stage diagnostics from the rewrite pipeline.
// The pipeline returns these instead of logging; the core holds no
// process-wide state.
type RewriteStats struct {
	// MoovDelta is the net byte-size change of the moov box after edits,
	// measured before padding absorption. Positive means it grew.
	MoovDelta int64

	// PaddingAbsorbed is true when the free box soaked up the whole delta
	// and the file length did not change.
	PaddingAbsorbed bool

	// OffsetsPatched counts chunk-offset entries shifted by the delta.
	OffsetsPatched int

	// Resized is true when the file length changed and the commit went
	// through the staged splice path.
	Resized bool

	// Fragmented is true when the movie contains an mvex box; offset
	// correction is skipped for fragmented files.
	Fragmented bool
}

// Partial reports whether some requested fields were skipped for lack of an
// encoder.
func (r *Result) Partial() bool {
	return len(r.Unsupported) > 0
}

// Changed reports whether the file was modified at all.
func (r *Result) Changed() bool {
	return len(r.Applied) > 0
}
