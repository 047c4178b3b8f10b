package prompt

import (
	"strings"
	"unicode"
)

// FallbackFilename is returned when no content words survive filtering.
const FallbackFilename = "generated-icon"

// stopWords are tokens that carry no naming signal: generic verbs, filler
// adjectives, articles and the word "icon" itself.
var stopWords = map[string]struct{}{
	"create": {}, "generate": {}, "make": {}, "draw": {}, "design": {},
	"please": {}, "want": {}, "need": {},
	"icon": {}, "icons": {}, "image": {}, "images": {},
	"the": {}, "and": {}, "for": {}, "with": {}, "that": {}, "this": {}, "from": {},
	"simple": {}, "basic": {}, "nice": {}, "cool": {}, "beautiful": {},
	"modern": {}, "minimalist": {}, "clean": {}, "elegant": {},
	"style": {}, "styled": {},
}

// maxFilenameWords caps the slug at the first two content words. The result
// is a suggestion, not a uniqueness guarantee; collision handling belongs to
// the storage layer.
const maxFilenameWords = 2

// SuggestFilename derives a kebab-case slug from the user prompt: lowercase,
// strip punctuation, drop short tokens and stop words, keep the first two
// survivors in original order. Returns FallbackFilename when nothing
// survives.
func SuggestFilename(userPrompt string) string {
	var cleaned strings.Builder
	for _, r := range strings.ToLower(userPrompt) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			cleaned.WriteRune(r)
		case unicode.IsSpace(r):
			cleaned.WriteRune(' ')
		}
	}

	var kept []string
	for _, token := range strings.Fields(cleaned.String()) {
		if len(token) <= 2 {
			continue
		}
		if _, stop := stopWords[token]; stop {
			continue
		}
		kept = append(kept, token)
		if len(kept) == maxFilenameWords {
			break
		}
	}

	if len(kept) == 0 {
		return FallbackFilename
	}
	return strings.Join(kept, "-")
}
