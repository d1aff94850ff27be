package activities

type ListPDFsInput struct {
	CollectionDir string `json:"collection_dir"`
}

type ListPDFsOutput struct {
	Paths []string `json:"paths"`
}

type MatchAndCopyInput struct {
	Path       string `json:"path"`
	ResultsDir string `json:"results_dir"`
	Keyword    string `json:"keyword"`
}

type MatchAndCopyOutput struct {
	Filename string `json:"filename"`
	Matched  bool   `json:"matched"`
}

type WriteBatchSummaryInput struct {
	ResultsDir string         `json:"results_dir"`
	Summary    map[string]any `json:"summary"`
}

type WriteBatchSummaryOutput struct {
	Path string `json:"path"`
}
