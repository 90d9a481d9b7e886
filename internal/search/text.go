package search

import (
	"strings"
	"unicode"

	"inscovia/internal/data/entity"
)

// SearchableText is the lower-cased haystack free-text queries are matched against
func SearchableText(c *entity.Center) string {
	parts := make([]string, 0, 10+len(c.SecondaryCategories)+len(c.Courses))
	parts = append(parts, c.Name, string(c.Category))
	for _, sc := range c.SecondaryCategories {
		parts = append(parts, string(sc))
	}
	parts = append(parts,
		string(c.TeachingMode),
		c.City,
		c.District,
		c.State,
		c.Location,
		c.Description,
	)
	for _, course := range c.Courses {
		parts = append(parts, course.Name)
	}
	return strings.ToLower(strings.Join(parts, " "))
}

// Tokenize lower-cases the query and splits it on whitespace and slashes
func Tokenize(query string) []string {
	return strings.FieldsFunc(strings.ToLower(query), func(r rune) bool {
		return unicode.IsSpace(r) || r == '/'
	})
}

// MatchText reports whether every token occurs in text, or the whole phrase does
func MatchText(text, query string) bool {
	phrase := strings.TrimSpace(strings.ToLower(query))
	if phrase == "" {
		return true
	}

	tokens := Tokenize(phrase)
	allTokens := len(tokens) > 0
	for _, tok := range tokens {
		if !strings.Contains(text, tok) {
			allTokens = false
			break
		}
	}

	return allTokens || strings.Contains(text, phrase)
}
