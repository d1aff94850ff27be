package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

type synonymsFile struct {
	Synonyms map[string][]string `yaml:"synonyms"`
}

// LoadSynonyms reads the keyword → synonyms table from a YAML file with a
// top-level "synonyms" key. Keys are lower-cased; values keep file order.
// A missing file yields fallback.
func LoadSynonyms(path string, fallback map[string][]string) (map[string][]string, error) {
	if strings.TrimSpace(path) == "" {
		return fallback, nil
	}
	b, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return fallback, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read synonyms: %w", err)
	}

	var f synonymsFile
	if err := yaml.Unmarshal(b, &f); err != nil {
		return nil, fmt.Errorf("parse synonyms %s: %w", path, err)
	}
	out := make(map[string][]string, len(f.Synonyms))
	for k, v := range f.Synonyms {
		key := strings.ToLower(strings.TrimSpace(k))
		if key == "" {
			continue
		}
		out[key] = append(out[key], v...)
	}
	return out, nil
}
