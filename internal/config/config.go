package config

import (
	"os"
	"strconv"
)

type Config struct {
	APIAddr           string
	Env               string
	LogLevel          string
	CollectionDir     string
	ResultsDir        string
	SynonymsPath      string
	Language          string
	OCRLanguage       string
	TesseractCmd      string
	BatchKeyword      string
	MaxUploadMB       int
	PostgresURL       string
	TemporalAddress   string
	TemporalTaskQueue string
}

func Load() Config {
	return Config{
		APIAddr:           getenv("CVSEARCH_API_ADDR", ":8080"),
		Env:               getenv("CVSEARCH_ENV", "local"),
		LogLevel:          getenv("CVSEARCH_LOG_LEVEL", ""),
		CollectionDir:     getenv("CVSEARCH_COLLECTION_DIR", "./data/curriculos"),
		ResultsDir:        getenv("CVSEARCH_RESULTS_DIR", "./data/resultados"),
		SynonymsPath:      getenv("CVSEARCH_SYNONYMS_PATH", "configs/synonyms.yaml"),
		Language:          getenv("CVSEARCH_LANGUAGE", "portuguese"),
		OCRLanguage:       getenv("CVSEARCH_OCR_LANGUAGE", "por"),
		TesseractCmd:      getenv("CVSEARCH_TESSERACT_CMD", "tesseract"),
		BatchKeyword:      getenv("CVSEARCH_BATCH_KEYWORD", "limpeza"),
		MaxUploadMB:       getenvInt("CVSEARCH_MAX_UPLOAD_MB", 32),
		PostgresURL:       getenv("CVSEARCH_POSTGRES_URL", ""),
		TemporalAddress:   getenv("CVSEARCH_TEMPORAL_ADDRESS", ""),
		TemporalTaskQueue: getenv("CVSEARCH_TEMPORAL_TASK_QUEUE", "cvsearch"),
	}
}

// MaxUploadBytes is MaxUploadMB in bytes, never below 1 MiB.
func (c Config) MaxUploadBytes() int64 {
	mb := c.MaxUploadMB
	if mb <= 0 {
		mb = 1
	}
	return int64(mb) << 20
}

func getenv(k, fallback string) string {
	v := os.Getenv(k)
	if v == "" {
		return fallback
	}
	return v
}

func getenvInt(k string, fallback int) int {
	v := os.Getenv(k)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
