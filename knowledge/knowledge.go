// Package knowledge is a tiny in-memory document store with keyword lookup.
package knowledge

import (
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultLimit is how many documents a context-prefixed query uses.
const DefaultLimit = 3

// Sample returns the built-in documents.
func Sample() []string {
	return []string{
		"Our company was founded in 2020.",
		"We offer cloud services and AI solutions.",
		"Our headquarters is in San Francisco.",
	}
}

// Retrieve returns up to limit docs, in input order, that contain at least one
// whitespace-separated token of query as a case-insensitive substring. A
// non-positive limit means no cap.
func Retrieve(query string, docs []string, limit int) []string {
	tokens := strings.Fields(strings.ToLower(query))
	if len(tokens) == 0 {
		return nil
	}
	var out []string
	for _, doc := range docs {
		if limit > 0 && len(out) == limit {
			break
		}
		lower := strings.ToLower(doc)
		for _, tok := range tokens {
			if strings.Contains(lower, tok) {
				out = append(out, doc)
				break
			}
		}
	}
	return out
}

// Context joins docs into the prompt context block.
func Context(docs []string) string { return strings.Join(docs, "\n\n") }

// FileReader reads a file by path relative to some root.
type FileReader interface {
	ReadFile(relPath string) (string, error)
}

type file struct {
	Documents []string `yaml:"documents"`
}

// ErrEmpty is returned when a knowledge file holds no documents.
var ErrEmpty = errors.New("knowledge file has no documents")

// Parse decodes a YAML knowledge file, either a top-level "documents" list or
// a bare list of strings. Blank entries are dropped.
func Parse(b []byte) ([]string, error) {
	var f file
	if err := yaml.Unmarshal(b, &f); err != nil {
		var list []string
		if lerr := yaml.Unmarshal(b, &list); lerr != nil {
			return nil, fmt.Errorf("parse knowledge: %w", err)
		}
		f.Documents = list
	}
	docs := make([]string, 0, len(f.Documents))
	for _, d := range f.Documents {
		if d = strings.TrimSpace(d); d != "" {
			docs = append(docs, d)
		}
	}
	if len(docs) == 0 {
		return nil, ErrEmpty
	}
	return docs, nil
}

// Load reads and parses the knowledge file at relPath.
func Load(fs FileReader, relPath string) ([]string, error) {
	s, err := fs.ReadFile(relPath)
	if err != nil {
		return nil, fmt.Errorf("read knowledge %s: %w", relPath, err)
	}
	return Parse([]byte(s))
}
