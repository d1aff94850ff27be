package ocr

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
	"sync"
)

// Tesseract shells out to the tesseract binary and reads the recognised text
// from stdout.
type Tesseract struct {
	Command  string
	Language string

	once     sync.Once
	resolved string
	lookErr  error
}

func NewTesseract(command, language string) *Tesseract {
	if command == "" {
		command = "tesseract"
	}
	if language == "" {
		language = DefaultLanguage
	}
	return &Tesseract{Command: command, Language: language}
}

func (t *Tesseract) Recognize(ctx context.Context, path string) (string, error) {
	t.once.Do(func() {
		t.resolved, t.lookErr = exec.LookPath(t.Command)
	})
	if t.lookErr != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrUnavailable, t.Command, t.lookErr)
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, t.resolved, path, "stdout", "-l", t.Language)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg != "" {
			return "", fmt.Errorf("tesseract %s: %w: %s", path, err, msg)
		}
		return "", fmt.Errorf("tesseract %s: %w", path, err)
	}
	return stdout.String(), nil
}
