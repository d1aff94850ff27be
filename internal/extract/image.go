package extract

import (
	"context"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"cvsearch/internal/ocr"
)

// ImageReader runs OCR over PNG and JPEG scans. The header is decoded first
// so corrupt files fail fast without spawning the OCR engine.
type ImageReader struct {
	Recognizer ocr.Recognizer
}

func (r ImageReader) Read(ctx context.Context, path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open image: %w", err)
	}
	_, format, err := image.DecodeConfig(f)
	f.Close()
	if err != nil {
		return "", fmt.Errorf("decode image header: %w", err)
	}
	text, err := r.Recognizer.Recognize(ctx, path)
	if err != nil {
		return "", fmt.Errorf("ocr %s image: %w", format, err)
	}
	return text, nil
}
