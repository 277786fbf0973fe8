package wordlist

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSet_CaseInsensitive(t *testing.T) {
	set := NewSet([]string{"Husband", "wife"})

	for _, w := range []string{"husband", "HUSBAND", "Wife", "wife"} {
		if !set.Contains(w) {
			t.Errorf("expected %q to be a member", w)
		}
	}
	if set.Contains("spouse") {
		t.Error("did not expect spouse to be a member")
	}
}

func TestLoadDisallowedWords_EmbeddedDefault(t *testing.T) {
	set, err := LoadDisallowedWords("")
	if err != nil {
		t.Fatalf("expected embedded default to load, got %v", err)
	}

	if set.Len() == 0 {
		t.Fatal("expected a non-empty default list")
	}
	for _, w := range []string{"husband", "wife", "mr.", "daughter"} {
		if !set.Contains(w) {
			t.Errorf("expected default list to contain %q", w)
		}
	}
}

func TestLoadAllowedEntities_EmbeddedDefault(t *testing.T) {
	set, err := LoadAllowedEntities("")
	if err != nil {
		t.Fatalf("expected embedded default to load, got %v", err)
	}

	if !set.Contains("english") {
		t.Error("expected default allow-list to contain English")
	}
}

func TestLoad_FileOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "words.json")
	if err := os.WriteFile(path, []byte(`["alpha", "Beta"]`), 0644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	set, err := LoadDisallowedWords(path)
	if err != nil {
		t.Fatalf("expected override to load, got %v", err)
	}

	if set.Len() != 2 {
		t.Errorf("expected 2 members, got %d", set.Len())
	}
	if !set.Contains("beta") {
		t.Error("expected override member beta")
	}
	if set.Contains("husband") {
		t.Error("expected override to replace the default list")
	}
}

func TestLoad_Errors(t *testing.T) {
	if _, err := LoadDisallowedWords("/does/not/exist.json"); err == nil {
		t.Error("expected error for missing file")
	}

	dir := t.TempDir()
	path := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(path, []byte(`{"not": "an array"}`), 0644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	if _, err := LoadDisallowedWords(path); err == nil {
		t.Error("expected error for malformed JSON")
	}
}
