//go:build gosseract

package ocr

import (
	"context"
	"fmt"

	"github.com/otiai10/gosseract/v2"
)

// Gosseract runs recognition in-process through libtesseract. A client is
// created per call since gosseract clients are not safe for concurrent use.
type Gosseract struct {
	Language string
}

func NewGosseract(language string) *Gosseract {
	if language == "" {
		language = DefaultLanguage
	}
	return &Gosseract{Language: language}
}

func (g *Gosseract) Recognize(ctx context.Context, path string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetLanguage(g.Language); err != nil {
		return "", fmt.Errorf("gosseract language %s: %w", g.Language, err)
	}
	if err := client.SetImage(path); err != nil {
		return "", fmt.Errorf("gosseract image %s: %w", path, err)
	}
	text, err := client.Text()
	if err != nil {
		return "", fmt.Errorf("gosseract text %s: %w", path, err)
	}
	return text, nil
}
