package grammar

import (
	"errors"
	"strings"
)

// ErrNoSubjectFound is returned when a sentence contains no recognizable
// pronoun. The caller must treat it as a hard error rather than skip the
// sentence; silently skipping would hide sentences the audit never saw.
var ErrNoSubjectFound = errors.New("no subject found")

// SubjectVerbPair is a pronoun subject paired with its adjacent verb
// token. Pairs are values: created by extraction, never mutated.
type SubjectVerbPair struct {
	Subject    string
	Verb       string
	IsQuestion bool
}

// Phrase returns the pair as authored: "verb subject" for questions,
// "subject verb" otherwise.
func (p SubjectVerbPair) Phrase() string {
	if p.IsQuestion {
		return p.Verb + " " + p.Subject
	}
	return p.Subject + " " + p.Verb
}

// ExtractPairs locates every pronoun token in the sentence and pairs it
// with the adjacent verb token: the previous token when the sentence is
// a question, the next token otherwise. This word-order heuristic covers
// formal written English only; no parse tree is built. Pairs come back
// in left-to-right discovery order.
//
// A pronoun at the sentence edge with no adjacent token violates the
// extractor's precondition and panics; sentences handed in here must
// have a token on the verb side of every pronoun.
func ExtractPairs(sentence string, pronouns *PronounSet) ([]SubjectVerbPair, error) {
	words := strings.Fields(sentence)
	isQuestion := strings.HasSuffix(sentence, "?")

	var pairs []SubjectVerbPair
	for i, subject := range words {
		if !pronouns.Contains(subject) {
			continue
		}
		var verb string
		if isQuestion {
			verb = words[i-1]
		} else {
			verb = words[i+1]
		}
		pairs = append(pairs, SubjectVerbPair{Subject: subject, Verb: verb, IsQuestion: isQuestion})
	}

	if len(pairs) == 0 {
		return nil, ErrNoSubjectFound
	}
	return pairs, nil
}
