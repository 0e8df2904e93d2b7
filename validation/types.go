// Package validation screens manually validated classifier output and
// derives per-species confidence-score thresholds. Input files are the
// tab-delimited selection tables written during clip review: one file per
// species, one row per reviewed clip.
package validation

// Record is one manually reviewed classifier detection. The confidence
// score is not a column of its own; it is encoded as a fixed-width leading
// token of the clip filename and parsed out on load.
type Record struct {
	FileName   string
	Valid      bool
	Confidence float64
}

// ResultSet holds the deduplicated records for one species. The species key
// is the selection-table filename minus its extension.
type ResultSet struct {
	Species string
	Records []Record
}
