package grammar

import "strings"

// basePronouns is the closed set of personal pronouns the extractor
// recognizes as subjects.
var basePronouns = []string{"I", "you", "he", "she", "we", "they", "it"}

// permutationPronouns are the third-person pronouns that authors join
// with "/" to keep a subject's gender unspecified ("he/she", "she/they/it").
var permutationPronouns = []string{"he", "she", "they", "it"}

// PronounSet is the catalog of every recognized pronoun token, including
// all ordered slash-joined permutations of the third-person set. Built
// once and read-only afterwards, so it is safe for concurrent use.
type PronounSet struct {
	members map[string]struct{}
}

// NewPronounSet builds the catalog: the base pronouns plus every ordered
// permutation of the third-person pronouns of length 2 through 4, joined
// with "/". Both "he/she" and "she/he" are distinct entries; authors
// write the pronouns in either order.
func NewPronounSet() *PronounSet {
	s := &PronounSet{members: make(map[string]struct{})}
	for _, p := range basePronouns {
		s.members[strings.ToLower(p)] = struct{}{}
	}
	for size := 2; size <= len(permutationPronouns); size++ {
		for _, perm := range permute(permutationPronouns, size) {
			s.members[strings.Join(perm, "/")] = struct{}{}
		}
	}
	return s
}

// Contains reports whether token is a recognized pronoun. Matching is
// case-insensitive.
func (s *PronounSet) Contains(token string) bool {
	_, ok := s.members[strings.ToLower(token)]
	return ok
}

// Len returns the number of catalog entries.
func (s *PronounSet) Len() int {
	return len(s.members)
}

// permute returns every ordered arrangement of size elements drawn from
// items without repetition, in generation order.
func permute(items []string, size int) [][]string {
	var out [][]string
	used := make([]bool, len(items))
	current := make([]string, 0, size)

	var walk func()
	walk = func() {
		if len(current) == size {
			perm := make([]string, size)
			copy(perm, current)
			out = append(out, perm)
			return
		}
		for i, item := range items {
			if used[i] {
				continue
			}
			used[i] = true
			current = append(current, item)
			walk()
			current = current[:len(current)-1]
			used[i] = false
		}
	}

	walk()
	return out
}
