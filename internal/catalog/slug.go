package catalog

import (
	"strings"
	"unicode"
)

// Slugify lowercases a name and collapses every run of non-alphanumeric
// characters to a single hyphen. "Villa  One!" -> "villa-one".
func Slugify(name string) string {
	var b strings.Builder
	lastHyphen := true // suppress leading hyphen
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			lastHyphen = false
			continue
		}
		if !lastHyphen {
			b.WriteByte('-')
			lastHyphen = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

// TitleCase turns a folder name into a display name: split on whitespace,
// hyphen and underscore, capitalize each word. "old_town-east" -> "Old Town East".
func TitleCase(name string) string {
	words := strings.FieldsFunc(name, func(r rune) bool {
		return unicode.IsSpace(r) || r == '-' || r == '_'
	})
	for i, w := range words {
		runes := []rune(strings.ToLower(w))
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}

// CompositeProjectID builds the import-derived project key.
func CompositeProjectID(locationID, projectSlug string) string {
	return locationID + "__" + projectSlug
}

// NormalizeLabel restricts an image label to the two allowed values.
// Only the case-insensitive literal "interior" maps to Interior; every
// other input, including empty, maps to Exterior.
func NormalizeLabel(label string) string {
	if strings.EqualFold(strings.TrimSpace(label), "interior") {
		return LabelInterior
	}
	return LabelExterior
}
