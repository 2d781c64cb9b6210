package naming

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// FolderSegment converts a raw URL path segment into a display folder
// segment: hyphen-separated words are title-cased and rejoined with a
// single space.
// Example: "validate-peppol-id" -> "Validate Peppol Id"
// Example: "users" -> "Users"
func FolderSegment(s string) string {
	if s == "" {
		return ""
	}

	// Use golang.org/x/text/cases for proper Unicode title casing.
	// Casers are stateful, so build one per call rather than sharing.
	titleCaser := cases.Title(language.English)

	words := strings.Split(s, "-")
	for i, w := range words {
		words[i] = titleCaser.String(w)
	}
	return strings.Join(words, " ")
}

// Capitalize upper-cases the first rune and lower-cases the remainder,
// treating the whole string as a single word (hyphens are kept as-is).
// Example: "user-profiles" -> "User-profiles"
func Capitalize(s string) string {
	if s == "" {
		return ""
	}
	runes := []rune(s)
	first := string(unicode.ToUpper(runes[0]))
	return first + strings.ToLower(string(runes[1:]))
}
