package utils

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// ParseInt converts string to int with default value
func ParseInt(value string, defaultValue int) int {
	if value == "" {
		return defaultValue
	}

	result, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}

	if result < 1 {
		return defaultValue
	}

	return result
}

// ParseFloat returns nil when value is empty or not a finite number
func ParseFloat(value string) *float64 {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}

	result, err := strconv.ParseFloat(value, 64)
	if err != nil || math.IsNaN(result) || math.IsInf(result, 0) {
		return nil
	}

	return &result
}

// RoundRatioHalfUp rounds num/den half-up to the given number of decimals.
// Ties are decided in integers so 201/200 becomes 1.01, not 1.00.
func RoundRatioHalfUp(num, den, places int) float64 {
	if den == 0 {
		return 0
	}
	scale := 1
	for i := 0; i < places; i++ {
		scale *= 10
	}
	scaled := (2*num*scale + den) / (2 * den)
	return float64(scaled) / float64(scale)
}

var nonSlugChars = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify turns a display name into a lowercase, dash separated path segment
func Slugify(name string) string {
	slug := nonSlugChars.ReplaceAllString(strings.ToLower(name), "-")
	return strings.Trim(slug, "-")
}
