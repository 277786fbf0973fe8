package grammar

import (
	"errors"
	"fmt"
	"strings"

	"github.com/anoncheck/anoncheck/internal/conjugate"
)

// Checker audits free text for subject-verb pairs whose verb is not
// conjugated for the subject's person and number. It holds no mutable
// state across calls; a single Checker may be shared between goroutines.
type Checker struct {
	pronouns *PronounSet
	oracle   conjugate.Oracle
}

// NewChecker creates a Checker backed by the given conjugation oracle.
// The pronoun catalog is built here once and reused for every call.
func NewChecker(oracle conjugate.Oracle) *Checker {
	return &Checker{
		pronouns: NewPronounSet(),
		oracle:   oracle,
	}
}

// FindFaulty returns the set of subject-verb phrases, as authored, whose
// verb does not agree with the subject. Any sentence without a pronoun
// aborts the whole call with ErrNoSubjectFound; there is no best-effort
// partial result across sentences.
func (c *Checker) FindFaulty(text string) (map[string]struct{}, error) {
	faulty := make(map[string]struct{})
	for _, sentence := range SplitSentences(text) {
		pairs, err := ExtractPairs(sentence, c.pronouns)
		if err != nil {
			return nil, fmt.Errorf("sentence %q: %w", sentence, err)
		}
		for _, pair := range pairs {
			ok, err := c.agrees(pair)
			if err != nil {
				return nil, err
			}
			if !ok {
				faulty[pair.Phrase()] = struct{}{}
			}
		}
	}
	return faulty, nil
}

// agrees validates one pair against the oracle. A compound subject like
// "he/she/they" passes only if every one of its tokens has a valid
// reading: one failing token flags the whole pair. That strictness is
// deliberate for an anonymization audit.
func (c *Checker) agrees(pair SubjectVerbPair) (bool, error) {
	verbForms := strings.Split(pair.Verb, "/")

	// One oracle query per authored verb surface form. An unknown verb
	// contributes no conjugated forms, so the pair fails closed.
	var conjugated []string
	for _, form := range verbForms {
		forms, err := c.oracle.Conjugate(form)
		if err != nil {
			if errors.Is(err, conjugate.ErrUnknownVerb) {
				continue
			}
			return false, fmt.Errorf("conjugate %q: %w", form, err)
		}
		conjugated = append(conjugated, forms...)
	}

	for _, subject := range strings.Split(pair.Subject, "/") {
		subject = strings.ToLower(subject)
		// he, she and it share one verb morphology and are checked as a
		// single class.
		if subject == "he" || subject == "she" || subject == "it" {
			subject = "he/she/it"
		}

		matched := false
	search:
		for _, verb := range verbForms {
			phrase := subject + " " + strings.ToLower(verb)
			for _, form := range conjugated {
				if strings.Contains(form, phrase) {
					matched = true
					break search
				}
			}
		}
		if !matched {
			return false, nil
		}
	}
	return true, nil
}
