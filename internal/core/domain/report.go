package domain

// StageReport counts what one pipeline stage produced.
type StageReport struct {
	// Ran is false when the stage was not configured.
	Ran bool

	// Documents is the number of raw documents loaded.
	Documents int

	// Skipped is the number of documents rejected during normalisation.
	Skipped int

	// Chunks is the number of chunks the stage contributed.
	Chunks int

	// Fallbacks is the number of documents split without header structure.
	Fallbacks int
}

// RunReport summarises a pipeline run.
type RunReport struct {
	Course StageReport
	Forum  StageReport

	// Total is the number of chunks handed to the sinks.
	Total int

	// Written is the number of chunks written to the JSON output.
	Written int

	// OutputFile is the JSON output path.
	OutputFile string

	// Warnings is the number of warnings logged during the run.
	Warnings int
}

// OutputSummary describes a persisted output file.
type OutputSummary struct {
	Path           string         `json:"path"`
	Records        int            `json:"records"`
	Invalid        int            `json:"invalid"`
	UniqueDocIDs   int            `json:"unique_doc_ids"`
	AverageQuality float64        `json:"average_quality"`
	BySource       map[string]int `json:"by_source"`
	ByContentType  map[string]int `json:"by_content_type"`
}
