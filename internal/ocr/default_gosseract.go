//go:build gosseract

package ocr

func NewDefault(_ string, language string) Recognizer {
	return NewGosseract(language)
}
