package models

import (
	"path/filepath"
	"strings"
	"time"
)

type Format string

const (
	FormatPDF     Format = "pdf"
	FormatImage   Format = "image"
	FormatDOCX    Format = "docx"
	FormatUnknown Format = "unknown"
)

// FormatFromPath derives the document format from the file extension.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return FormatPDF
	case ".png", ".jpg", ".jpeg":
		return FormatImage
	case ".docx":
		return FormatDOCX
	default:
		return FormatUnknown
	}
}

type ExtractionStatus string

const (
	StatusSuccess ExtractionStatus = "success"
	StatusEmpty   ExtractionStatus = "empty"
)

type Document struct {
	Filename string           `json:"filename"`
	Path     string           `json:"-"`
	Format   Format           `json:"format"`
	Size     int64            `json:"size"`
	Text     string           `json:"-"`
	Status   ExtractionStatus `json:"status,omitempty"`
}

type ScoredResult struct {
	Filename    string `json:"filename"`
	Path        string `json:"-"`
	Score       int    `json:"score"`
	Occurrences int    `json:"occurrences"`
	Excerpt     string `json:"excerpt"`
}

type SearchRun struct {
	RunID    string        `json:"run_id"`
	Keyword  string        `json:"keyword"`
	Variants []string      `json:"variants"`
	Scanned  int           `json:"scanned"`
	Matched  int           `json:"matched"`
	TopFile  string        `json:"top_file,omitempty"`
	Duration time.Duration `json:"duration"`
}
