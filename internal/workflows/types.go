package workflows

type BatchCopyInput struct {
	CollectionDir string `json:"collection_dir"`
	ResultsDir    string `json:"results_dir"`
	Keyword       string `json:"keyword"`
}

type BatchCopyResult struct {
	Count   int      `json:"count"`
	Matched []string `json:"matched"`
	Failed  []string `json:"failed,omitempty"`
	// Summary is the path of the JSON summary; empty when it could not be written.
	Summary string `json:"summary,omitempty"`
}

type BatchCopyProgress struct {
	Keyword string            `json:"keyword"`
	Total   int               `json:"total"`
	Done    int               `json:"done"`
	Copied  int               `json:"copied"`
	Failed  int               `json:"failed"`
	PerFile map[string]string `json:"per_file"`
}
