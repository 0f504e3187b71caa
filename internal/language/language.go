// Package language guesses the language of lyrics from common stop-words.
//
// The detector is a deliberate bag-of-words heuristic: it counts how many
// words of each fixed list occur in the text and picks the largest count.
// Short or ambiguous text falls back to English.
package language

import (
	"strings"
	"unicode"
)

// Code is an ISO 639-1 language code.
type Code string

const (
	Spanish Code = "es"
	English Code = "en"
	German  Code = "de"
	French  Code = "fr"
)

// Default is returned when no language reaches MinMatches.
const Default = English

// MinMatches is the number of distinct stop-words needed to trust a result.
const MinMatches = 2

// candidates is the detection order; earlier entries win ties.
var candidates = []Code{Spanish, English, German, French}

var stopWords = map[Code][]string{
	Spanish: {
		"que", "la", "de", "el", "en", "y", "los", "las", "del", "se",
		"por", "con", "una", "para", "como", "pero", "mas", "más", "yo",
		"tu", "mi", "te", "me", "es", "está", "esta", "amor", "corazón",
		"quiero", "porque", "cuando", "nada", "todo", "siempre", "nunca",
		"sin", "ella", "también",
	},
	English: {
		"the", "and", "you", "that", "was", "for", "are", "with", "his",
		"they", "this", "have", "from", "one", "had", "word", "but", "not",
		"what", "all", "were", "when", "your", "can", "said", "there",
		"love", "baby", "know", "just", "like", "yeah", "don", "never",
		"heart", "tonight",
	},
	German: {
		"der", "die", "und", "den", "von", "zu", "das", "mit", "sich",
		"des", "auf", "für", "ist", "im", "dem", "nicht", "ein", "eine",
		"als", "auch", "es", "an", "werden", "aus", "er", "hat", "dass",
		"sie", "nach", "wird", "bei", "ich", "du", "mein", "dich", "liebe",
		"herz",
	},
	French: {
		"le", "de", "un", "être", "et", "à", "il", "avoir", "ne", "je",
		"son", "que", "se", "qui", "ce", "dans", "en", "du", "elle", "au",
		"pour", "pas", "vous", "par", "sur", "faire", "plus", "dire", "me",
		"on", "mon", "lui", "nous", "comme", "mais", "toi", "moi", "amour",
		"coeur", "jamais",
	},
}

var names = map[Code]string{
	Spanish: "Spanish",
	English: "English",
	German:  "German",
	French:  "French",
}

// Detect returns the most likely language of text.
// Each stop-word counts once, however often it occurs. Ties go to the
// language listed first (es, en, de, fr). Fewer than MinMatches hits
// returns Default.
func Detect(text string) Code {
	scores := Scores(text)

	best := Default
	bestCount := 0
	for _, lang := range candidates {
		if count := scores[lang]; count > bestCount {
			best = lang
			bestCount = count
		}
	}

	if bestCount < MinMatches {
		return Default
	}
	return best
}

// Scores returns the number of distinct stop-words found per language.
func Scores(text string) map[Code]int {
	words := wordSet(text)
	scores := make(map[Code]int, len(candidates))
	for _, lang := range candidates {
		for _, w := range stopWords[lang] {
			if words[w] {
				scores[lang]++
			}
		}
	}
	return scores
}

// Name returns the English display name of a language code.
func Name(c Code) string {
	if n, ok := names[c]; ok {
		return n
	}
	return strings.ToUpper(string(c))
}

// Codes returns the detectable languages in detection order.
func Codes() []Code {
	return append([]Code(nil), candidates...)
}

// Supported reports whether c is one of the detectable languages.
func Supported(c Code) bool {
	_, ok := stopWords[c]
	return ok
}

// wordSet lower-cases text and splits it on anything that is not a letter,
// so matches are always whole words.
func wordSet(text string) map[string]bool {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r)
	})
	set := make(map[string]bool, len(fields))
	for _, f := range fields {
		set[f] = true
	}
	return set
}
