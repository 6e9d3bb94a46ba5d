package models

// FileType identifies the input file family
type FileType string

const (
	FileTypeCellref  FileType = "cellref"
	FileTypeAccuracy FileType = "accuracy"
	FileTypeAxf      FileType = "axf"
	FileTypeUnknown  FileType = "unknown"
)

// FileStatistics is accumulated while one file is parsed and is
// read-only afterwards
type FileStatistics struct {
	Name string   `json:"name" db:"name"`
	Type FileType `json:"type" db:"type"`

	// For result files: results created / rows accepted. For cellref
	// files: sites created / sites plus sectors created.
	NumResults              int `json:"numResults" db:"num_results"`
	NumResultsAndCandidates int `json:"numResultsAndCandidates" db:"num_results_and_candidates"`

	// Sticky: true once any AXF row supplied a reference cell id
	ReferenceCellsAvailable bool `json:"referenceCellsAvailable" db:"reference_cells_available"`
}

// BatchStatistics aggregates per-file statistics across one batch load
type BatchStatistics struct {
	Files      []FileStatistics `json:"files"`
	NumFailed  int              `json:"numFailed"`
	NumResults int              `json:"numResults"`
}

// Add folds one file's statistics into the batch
func (b *BatchStatistics) Add(fs FileStatistics, ok bool) {
	b.Files = append(b.Files, fs)
	b.NumResults += fs.NumResults
	if !ok {
		b.NumFailed++
	}
}
