package extract

import (
	"context"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// PDFReader concatenates the plain text of every page in order. A page that
// cannot be decoded contributes nothing.
type PDFReader struct{}

func (PDFReader) Read(ctx context.Context, path string) (string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}
	defer f.Close()

	fonts := make(map[string]*pdf.Font)
	var b strings.Builder
	for i := 1; i <= r.NumPage(); i++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}
		for _, name := range p.Fonts() {
			if _, ok := fonts[name]; ok {
				continue
			}
			font := p.Font(name)
			fonts[name] = &font
		}
		text, err := p.GetPlainText(fonts)
		if err != nil {
			continue
		}
		b.WriteString(text)
	}
	return b.String(), nil
}
