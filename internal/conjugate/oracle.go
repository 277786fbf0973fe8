// Package conjugate provides the morphological authority the grammar
// checker validates subject-verb pairs against.
package conjugate

import "errors"

// ErrUnknownVerb is returned when a surface form cannot be resolved to
// any conjugation paradigm. Callers treat it as "no valid forms" and
// fail closed.
var ErrUnknownVerb = errors.New("unknown verb form")

// Oracle answers conjugation queries. Given a verb lemma or an inflected
// form, Conjugate returns every valid conjugated surface string of the
// verb's paradigm, lowercase and prefixed with the person class it
// belongs to ("he/she/it is", "they were"). Results are deterministic
// for a given input.
type Oracle interface {
	Conjugate(form string) ([]string, error)
}
