// Package ocr turns images into text.
package ocr

import (
	"context"
	"errors"
)

// ErrUnavailable is returned when no OCR engine is installed.
var ErrUnavailable = errors.New("ocr engine unavailable")

type Recognizer interface {
	Recognize(ctx context.Context, path string) (string, error)
}

// RecognizerFunc adapts a plain function to Recognizer.
type RecognizerFunc func(ctx context.Context, path string) (string, error)

func (f RecognizerFunc) Recognize(ctx context.Context, path string) (string, error) {
	return f(ctx, path)
}

const DefaultLanguage = "por"
