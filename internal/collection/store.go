// Package collection manages the directory of résumé files that searches read
// from and uploads write into. Filenames are the document identifiers.
package collection

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"cvsearch/internal/models"
	"cvsearch/internal/util"
)

var (
	ErrUnsupportedType = errors.New("unsupported document type")
	ErrNotFound        = errors.New("document not found")
	ErrInvalidName     = errors.New("invalid document name")
)

// Allowed reports whether name has an extension the extractor can read.
func Allowed(name string) bool {
	return models.FormatFromPath(name) != models.FormatUnknown
}

// uploadPattern names in-flight uploads; List never reports them.
const uploadPattern = ".upload-*"

type Store struct {
	root string
}

func NewStore(root string) *Store {
	return &Store{root: root}
}

func (s *Store) Root() string { return s.root }

// List returns the regular files directly under the root, sorted by name.
// Subdirectories are skipped; symlinks are followed. A file removed between
// the directory read and its stat is silently dropped.
func (s *Store) List() ([]models.Document, error) {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		return nil, fmt.Errorf("read collection dir: %w", err)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	docs := make([]models.Document, 0, len(entries))
	for _, e := range entries {
		if ok, _ := filepath.Match(uploadPattern, e.Name()); ok {
			continue
		}
		path := filepath.Join(s.root, e.Name())
		info, ok := util.IsRegularFile(path)
		if !ok {
			continue
		}
		docs = append(docs, models.Document{
			Filename: e.Name(),
			Path:     path,
			Format:   models.FormatFromPath(e.Name()),
			Size:     info.Size(),
		})
	}
	return docs, nil
}

type Stored struct {
	Filename string `json:"filename"`
	Size     int64  `json:"size"`
	SHA256   string `json:"sha256"`
}

// Save writes src under its base name, replacing any file with the same name.
// The write goes through a temp file so searches never read a partial upload.
func (s *Store) Save(name string, src io.Reader) (Stored, error) {
	safe, err := cleanName(name)
	if err != nil {
		return Stored{}, err
	}
	if !Allowed(safe) {
		return Stored{}, fmt.Errorf("%w: %s", ErrUnsupportedType, filepath.Ext(safe))
	}
	if err := util.EnsureDir(s.root); err != nil {
		return Stored{}, err
	}

	tmp, err := os.CreateTemp(s.root, uploadPattern)
	if err != nil {
		return Stored{}, fmt.Errorf("create temp file: %w", err)
	}
	defer func() {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
	}()

	hw := util.NewHashingWriter(tmp)
	if _, err := io.Copy(hw, src); err != nil {
		return Stored{}, fmt.Errorf("write upload: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return Stored{}, fmt.Errorf("close upload: %w", err)
	}
	if err := os.Rename(tmp.Name(), util.SafeJoin(s.root, safe)); err != nil {
		return Stored{}, fmt.Errorf("atomic move upload: %w", err)
	}
	return Stored{Filename: safe, Size: hw.Size(), SHA256: hw.SHA256Hex()}, nil
}

// Open returns the named file for streaming. The caller closes it.
func (s *Store) Open(name string) (*os.File, os.FileInfo, error) {
	safe, err := cleanName(name)
	if err != nil {
		return nil, nil, err
	}
	path := util.SafeJoin(s.root, safe)
	info, ok := util.IsRegularFile(path)
	if !ok {
		return nil, nil, fmt.Errorf("%w: %s", ErrNotFound, safe)
	}
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil, fmt.Errorf("%w: %s", ErrNotFound, safe)
		}
		return nil, nil, fmt.Errorf("open document: %w", err)
	}
	return f, info, nil
}

func cleanName(name string) (string, error) {
	base := filepath.Base(strings.TrimSpace(name))
	if base == "" || base == "." || base == ".." || base == string(filepath.Separator) || strings.HasPrefix(base, ".") {
		return "", fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return base, nil
}
