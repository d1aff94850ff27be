//go:build !gosseract

package ocr

// NewDefault returns the OCR engine compiled into this binary. Build with
// -tags gosseract to link libtesseract instead of calling the CLI.
func NewDefault(command, language string) Recognizer {
	return NewTesseract(command, language)
}
