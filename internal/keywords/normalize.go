package keywords

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Mode selects how keywords are case-folded.
type Mode string

const (
	ModeUpper Mode = "upper"
	ModeTitle Mode = "title"
)

// ErrInvalidMode is returned for normalization modes other than upper and title.
var ErrInvalidMode = errors.New("invalid keyword normalization mode")

// ParseMode accepts exactly "upper" or "title".
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeUpper, ModeTitle:
		return Mode(s), nil
	}
	return "", fmt.Errorf("%w: %q (want %q or %q)", ErrInvalidMode, s, ModeUpper, ModeTitle)
}

// Normalize collapses whitespace runs to single spaces and case-folds the
// result. Normalize(Normalize(s)) == Normalize(s).
func Normalize(s string, mode Mode) string {
	s = strings.Join(strings.Fields(s), " ")
	if mode == ModeTitle {
		return cases.Title(language.Und).String(s)
	}
	return cases.Upper(language.Und).String(s)
}

// keywordDelimiters are the single runes a manual keyword list is split on.
const keywordDelimiters = ";,|/·•"

// SplitManual splits free text into trimmed, non-empty keyword fragments.
func SplitManual(raw string) []string {
	parts := strings.FieldsFunc(raw, func(r rune) bool {
		return strings.ContainsRune(keywordDelimiters, r)
	})
	return removeEmptyAndTrim(parts)
}

// Remove empty values and trim each value
func removeEmptyAndTrim(keywords []string) []string {
	var result []string
	for _, keyword := range keywords {
		trimmedKeyword := strings.TrimSpace(keyword)
		if trimmedKeyword != "" {
			result = append(result, trimmedKeyword)
		}
	}
	return result
}
