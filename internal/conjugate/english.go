package conjugate

import (
	_ "embed"
	"fmt"
	"sort"
	"strings"
	"time"
	"unicode"

	gocache "github.com/patrickmn/go-cache"
	"gopkg.in/yaml.v3"
)

//go:embed data/verbs.yaml
var verbData []byte

// persons are the subject classes a paradigm is spelled out for. he, she
// and it share one morphology and appear as a single class.
var persons = []string{"i", "you", "he/she/it", "we", "they"}

// verbEntry is one irregular verb in the embedded table. Most verbs need
// only the simple fields; "be" spells out full per-person maps.
type verbEntry struct {
	Lemma      string            `yaml:"lemma"`
	Third      string            `yaml:"third,omitempty"`
	Past       string            `yaml:"past,omitempty"`
	Participle string            `yaml:"participle,omitempty"`
	Present    map[string]string `yaml:"present,omitempty"`
	PastForms  map[string]string `yaml:"past_forms,omitempty"`
}

// EnglishOracle conjugates English verbs from an embedded irregular-verb
// table plus regular inflection rules. Lookups are memoized; the cache
// is internal and invisible to callers.
type EnglishOracle struct {
	paradigms map[string][]string // lemma -> conjugated surface forms
	index     map[string][]string // inflected form -> lemmas
	memo      *gocache.Cache
}

// NewEnglishOracle loads the embedded verb table. A malformed table is a
// construction error; the oracle is unusable and the caller must stop.
func NewEnglishOracle() (*EnglishOracle, error) {
	var entries []verbEntry
	if err := yaml.Unmarshal(verbData, &entries); err != nil {
		return nil, fmt.Errorf("load verb table: %w", err)
	}

	o := &EnglishOracle{
		paradigms: make(map[string][]string, len(entries)),
		index:     make(map[string][]string),
		memo:      gocache.New(time.Hour, 10*time.Minute),
	}

	for _, entry := range entries {
		if entry.Lemma == "" {
			return nil, fmt.Errorf("load verb table: entry with empty lemma")
		}
		present, past, participle := entry.tables()
		o.paradigms[entry.Lemma] = buildParadigm(entry.Lemma, present, past, participle)

		o.addIndex(entry.Lemma, entry.Lemma)
		for _, form := range present {
			o.addIndex(form, entry.Lemma)
		}
		for _, form := range past {
			o.addIndex(form, entry.Lemma)
		}
		o.addIndex(participle, entry.Lemma)
	}

	return o, nil
}

// Conjugate resolves form to its paradigm and returns every conjugated
// surface string. Listed forms resolve through the inflection index; an
// unlisted alphabetic word is conjugated as a regular lemma. Anything
// else is ErrUnknownVerb.
func (o *EnglishOracle) Conjugate(form string) ([]string, error) {
	key := strings.ToLower(strings.TrimSpace(form))
	if key == "" {
		return nil, ErrUnknownVerb
	}

	if cached, found := o.memo.Get(key); found {
		return cached.([]string), nil
	}

	var forms []string
	if lemmas, ok := o.index[key]; ok {
		for _, lemma := range lemmas {
			forms = append(forms, o.paradigms[lemma]...)
		}
	} else {
		if !isAlphabetic(key) {
			return nil, ErrUnknownVerb
		}
		present, past, participle := regularTables(key)
		forms = buildParadigm(key, present, past, participle)
	}

	o.memo.Set(key, forms, gocache.DefaultExpiration)
	return forms, nil
}

// addIndex records form as an inflection of lemma, keeping lemma order
// deterministic.
func (o *EnglishOracle) addIndex(form, lemma string) {
	form = strings.ToLower(form)
	for _, existing := range o.index[form] {
		if existing == lemma {
			return
		}
	}
	o.index[form] = append(o.index[form], lemma)
	sort.Strings(o.index[form])
}

// tables expands an entry into per-person present and past maps.
func (e verbEntry) tables() (present, past map[string]string, participle string) {
	present = make(map[string]string, len(persons))
	past = make(map[string]string, len(persons))

	for _, person := range persons {
		switch {
		case e.Present != nil:
			present[person] = e.Present[person]
		case person == "he/she/it":
			if e.Third != "" {
				present[person] = e.Third
			} else {
				present[person] = thirdPerson(e.Lemma)
			}
		default:
			present[person] = e.Lemma
		}

		switch {
		case e.PastForms != nil:
			past[person] = e.PastForms[person]
		case e.Past != "":
			past[person] = e.Past
		default:
			past[person] = regularPast(e.Lemma)
		}
	}

	participle = e.Participle
	if participle == "" {
		participle = past["they"]
	}
	return present, past, participle
}

// regularTables builds the per-person maps for a regular lemma.
func regularTables(lemma string) (present, past map[string]string, participle string) {
	present = make(map[string]string, len(persons))
	past = make(map[string]string, len(persons))
	pastForm := regularPast(lemma)

	for _, person := range persons {
		if person == "he/she/it" {
			present[person] = thirdPerson(lemma)
		} else {
			present[person] = lemma
		}
		past[person] = pastForm
	}
	return present, past, pastForm
}

// buildParadigm renders the paradigm as lowercase "person form" strings:
// simple present, simple past, future, and present perfect.
func buildParadigm(lemma string, present, past map[string]string, participle string) []string {
	forms := make([]string, 0, 4*len(persons))
	for _, person := range persons {
		forms = append(forms, person+" "+strings.ToLower(present[person]))
		forms = append(forms, person+" "+strings.ToLower(past[person]))
		forms = append(forms, person+" will "+strings.ToLower(lemma))
		have := "have"
		if person == "he/she/it" {
			have = "has"
		}
		forms = append(forms, person+" "+have+" "+strings.ToLower(participle))
	}
	return forms
}

// thirdPerson applies the regular third-person-singular spelling rules.
func thirdPerson(lemma string) string {
	switch {
	case strings.HasSuffix(lemma, "s"),
		strings.HasSuffix(lemma, "x"),
		strings.HasSuffix(lemma, "z"),
		strings.HasSuffix(lemma, "o"),
		strings.HasSuffix(lemma, "ch"),
		strings.HasSuffix(lemma, "sh"):
		return lemma + "es"
	case strings.HasSuffix(lemma, "y") && !endsInVowelY(lemma):
		return lemma[:len(lemma)-1] + "ies"
	default:
		return lemma + "s"
	}
}

// regularPast applies the regular past-tense spelling rules.
func regularPast(lemma string) string {
	switch {
	case strings.HasSuffix(lemma, "e"):
		return lemma + "d"
	case strings.HasSuffix(lemma, "y") && !endsInVowelY(lemma):
		return lemma[:len(lemma)-1] + "ied"
	default:
		return lemma + "ed"
	}
}

// endsInVowelY reports whether lemma ends in vowel+y ("play", "enjoy"),
// which keeps the y in both inflections.
func endsInVowelY(lemma string) bool {
	if len(lemma) < 2 || !strings.HasSuffix(lemma, "y") {
		return false
	}
	return strings.ContainsRune("aeiou", rune(lemma[len(lemma)-2]))
}

func isAlphabetic(s string) bool {
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}
