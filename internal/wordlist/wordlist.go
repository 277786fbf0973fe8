// Package wordlist provides the static membership sets the audit checks
// consult: words that must not appear in an anonymized document and
// named entities that are allowed to remain.
package wordlist

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

//go:embed data/disallowed_words.json
var defaultDisallowedWords []byte

//go:embed data/allowed_entities.json
var defaultAllowedEntities []byte

// Set is a case-insensitive string membership set.
type Set struct {
	members map[string]struct{}
}

// NewSet builds a set from the given words.
func NewSet(words []string) *Set {
	s := &Set{members: make(map[string]struct{}, len(words))}
	for _, w := range words {
		s.members[strings.ToLower(w)] = struct{}{}
	}
	return s
}

// Contains reports whether word is in the set, ignoring case.
func (s *Set) Contains(word string) bool {
	_, ok := s.members[strings.ToLower(word)]
	return ok
}

// Len returns the number of members.
func (s *Set) Len() int {
	return len(s.members)
}

// LoadDisallowedWords returns the disallowed-word set. An empty path
// loads the embedded default list; otherwise the JSON file at path
// (an array of strings) replaces it.
func LoadDisallowedWords(path string) (*Set, error) {
	return load(path, defaultDisallowedWords)
}

// LoadAllowedEntities returns the entity allow-list, from the embedded
// default or the JSON file at path.
func LoadAllowedEntities(path string) (*Set, error) {
	return load(path, defaultAllowedEntities)
}

func load(path string, fallback []byte) (*Set, error) {
	data := fallback
	if path != "" {
		var err error
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read word list: %w", err)
		}
	}

	var words []string
	if err := json.Unmarshal(data, &words); err != nil {
		return nil, fmt.Errorf("parse word list: %w", err)
	}
	return NewSet(words), nil
}
