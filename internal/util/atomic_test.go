package util

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWriteJSONAtomic(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "summary.json")
	require.NoError(t, WriteJSONAtomic(path, map[string]any{"count": 2}))

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	var got map[string]int
	require.NoError(t, json.Unmarshal(b, &got))
	require.Equal(t, 2, got["count"])
}

func TestCopyFileAtomicLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "cv.pdf")
	require.NoError(t, os.WriteFile(src, []byte("%PDF-1.4 body"), 0o644))

	dstDir := filepath.Join(dir, "out")
	require.NoError(t, CopyFileAtomic(src, filepath.Join(dstDir, "cv.pdf")))

	entries, err := os.ReadDir(dstDir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	b, err := os.ReadFile(filepath.Join(dstDir, "cv.pdf"))
	require.NoError(t, err)
	require.Equal(t, "%PDF-1.4 body", string(b))
}

func TestCopyFileAtomicMissingSource(t *testing.T) {
	dir := t.TempDir()
	err := CopyFileAtomic(filepath.Join(dir, "nope.pdf"), filepath.Join(dir, "out", "nope.pdf"))
	require.Error(t, err)
}
