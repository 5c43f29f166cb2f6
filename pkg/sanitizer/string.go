package sanitizer

import (
	"strings"
	"unicode"
)

type Strategy func(string) string

type Pipeline []Strategy

func (p Pipeline) Apply(s string) string {
	for _, fn := range p {
		s = fn(s)
	}
	return s
}

func TrimAndNormalize(s string) string {
	s = strings.TrimSpace(s)

	if s == "" {
		return ""
	}

	var result strings.Builder
	var lastWasSpace bool

	for _, r := range s {
		if unicode.IsSpace(r) {
			if !lastWasSpace {
				result.WriteRune(' ')
				lastWasSpace = true
			}
		} else {
			result.WriteRune(r)
			lastWasSpace = false
		}
	}

	return result.String()
}

func NormalizeName(name string) string {
	return TrimAndNormalize(name)
}

func NormalizeLabel(label string) string {
	return TrimAndNormalize(label)
}

var emailPipeline = Pipeline{
	strings.TrimSpace,
	strings.ToLower,
	func(s string) string { return strings.TrimRight(s, ".") },
}

// NormalizeEmail lowercases the whole address, local part included, so one requester
// maps to one rate limit bucket.
func NormalizeEmail(email string) string {
	return emailPipeline.Apply(email)
}
