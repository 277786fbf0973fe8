package grammar

import (
	"errors"
	"testing"
)

func TestExtractPairs_Statement(t *testing.T) {
	pronouns := NewPronounSet()

	pairs, err := ExtractPairs("He is happy.", pronouns)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if len(pairs) != 1 {
		t.Fatalf("expected 1 pair, got %d", len(pairs))
	}

	want := SubjectVerbPair{Subject: "He", Verb: "is", IsQuestion: false}
	if pairs[0] != want {
		t.Errorf("expected %+v, got %+v", want, pairs[0])
	}
}

func TestExtractPairs_Question(t *testing.T) {
	pronouns := NewPronounSet()

	pairs, err := ExtractPairs("Is he happy?", pronouns)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if len(pairs) != 1 {
		t.Fatalf("expected 1 pair, got %d", len(pairs))
	}

	// In a question the verb precedes the subject.
	want := SubjectVerbPair{Subject: "he", Verb: "Is", IsQuestion: true}
	if pairs[0] != want {
		t.Errorf("expected %+v, got %+v", want, pairs[0])
	}
}

func TestExtractPairs_CompoundSubject(t *testing.T) {
	pronouns := NewPronounSet()

	pairs, err := ExtractPairs("He/she/they is/are happy.", pronouns)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if len(pairs) != 1 {
		t.Fatalf("expected 1 pair, got %d", len(pairs))
	}
	if pairs[0].Subject != "He/she/they" || pairs[0].Verb != "is/are" {
		t.Errorf("unexpected pair %+v", pairs[0])
	}
}

func TestExtractPairs_MultiplePronouns(t *testing.T) {
	pronouns := NewPronounSet()

	pairs, err := ExtractPairs("He is bright and she is bright.", pronouns)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if len(pairs) != 2 {
		t.Fatalf("expected 2 pairs, got %d", len(pairs))
	}

	// Discovery order is left to right.
	if pairs[0].Subject != "He" || pairs[1].Subject != "she" {
		t.Errorf("expected pairs in sentence order, got %+v", pairs)
	}
	if pairs[0].Verb != "is" || pairs[1].Verb != "is" {
		t.Errorf("expected each pronoun paired with its own adjacent verb, got %+v", pairs)
	}
}

func TestExtractPairs_NoSubject(t *testing.T) {
	pronouns := NewPronounSet()

	_, err := ExtractPairs("This sentence has no pronoun.", pronouns)
	if !errors.Is(err, ErrNoSubjectFound) {
		t.Fatalf("expected ErrNoSubjectFound, got %v", err)
	}
}

func TestSubjectVerbPair_Phrase(t *testing.T) {
	statement := SubjectVerbPair{Subject: "He", Verb: "is", IsQuestion: false}
	if statement.Phrase() != "He is" {
		t.Errorf("expected \"He is\", got %q", statement.Phrase())
	}

	question := SubjectVerbPair{Subject: "she", Verb: "Is", IsQuestion: true}
	if question.Phrase() != "Is she" {
		t.Errorf("expected \"Is she\", got %q", question.Phrase())
	}
}

func TestSubjectVerbPair_Equality(t *testing.T) {
	a := SubjectVerbPair{Subject: "He", Verb: "is", IsQuestion: false}
	b := SubjectVerbPair{Subject: "He", Verb: "is", IsQuestion: false}
	c := SubjectVerbPair{Subject: "He", Verb: "is", IsQuestion: true}

	if a != b {
		t.Error("expected identical pairs to compare equal")
	}
	if a == c {
		t.Error("expected pairs differing in IsQuestion to compare unequal")
	}
}
