package util

import (
	"crypto/sha256"
	"encoding/hex"
	"hash"
	"io"
)

// HashingWriter tees everything written through it into a SHA-256 digest.
type HashingWriter struct {
	w io.Writer
	h hash.Hash
	n int64
}

func NewHashingWriter(w io.Writer) *HashingWriter {
	h := sha256.New()
	return &HashingWriter{w: io.MultiWriter(w, h), h: h}
}

func (hw *HashingWriter) Write(p []byte) (int, error) {
	n, err := hw.w.Write(p)
	hw.n += int64(n)
	return n, err
}

func (hw *HashingWriter) Size() int64 { return hw.n }

func (hw *HashingWriter) SHA256Hex() string {
	return hex.EncodeToString(hw.h.Sum(nil))
}

func SHA256Hex(b []byte) string {
	x := sha256.Sum256(b)
	return hex.EncodeToString(x[:])
}
