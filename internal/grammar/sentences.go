package grammar

import "unicode"

// SplitSentences splits text into sentence strings. A sentence boundary
// is a whitespace character immediately preceded by '.', '?' or a
// newline, unless the terminator belongs to an abbreviation:
//
//   - "U.S." style: word-char, '.', word-char, then any character right
//     before the whitespace
//   - "Mr." style: uppercase letter, lowercase letter, '.'
//
// The boundary whitespace itself is dropped. A trailing sentence with no
// terminator is still returned, and text with no boundary at all comes
// back as a single-element slice. The function has no side effects.
func SplitSentences(text string) []string {
	runes := []rune(text)
	var sentences []string
	start := 0

	for i := 1; i < len(runes); i++ {
		if !unicode.IsSpace(runes[i]) {
			continue
		}
		prev := runes[i-1]
		if prev != '.' && prev != '?' && prev != '\n' {
			continue
		}
		if i >= 4 && isWordChar(runes[i-4]) && runes[i-3] == '.' && isWordChar(runes[i-2]) {
			continue
		}
		if i >= 3 && unicode.IsUpper(runes[i-3]) && unicode.IsLower(runes[i-2]) && runes[i-1] == '.' {
			continue
		}
		sentences = append(sentences, string(runes[start:i]))
		start = i + 1
	}

	sentences = append(sentences, string(runes[start:]))
	return sentences
}

// isWordChar mirrors the \w character class: letters, digits, underscore.
func isWordChar(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
