package validate

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"porcelain/internal/domain"
)

// MaxNotes bounds the free-text notes sent to the drafting service.
const MaxNotes = 2000

var (
	reEmail = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)
	reQ     = regexp.MustCompile(`^[\p{L}\p{N} _'\-]{1,50}$`)
	reID    = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)
)

func Email(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if len(s) == 0 || len(s) > 50 {
		return "", false
	}
	return s, reEmail.MatchString(s)
}

// Q validates a search query: trims, enforces allowed characters and max length.
// Letters from any script are allowed since titles are Czech.
func Q(s string) (string, bool) {
	s = norm.NFC.String(strings.TrimSpace(s))
	if s == "" {
		return "", false
	}
	if utf8.RuneCountInString(s) > 50 {
		s = string([]rune(s)[:50])
	}
	return s, reQ.MatchString(s)
}

// ID validates a simple resource identifier (product ids, uuids).
func ID(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, s != "" && reID.MatchString(s)
}

// Notes trims and NFC-normalizes drafting notes. Blank or oversized notes fail.
func Notes(s string) (string, bool) {
	s = norm.NFC.String(strings.TrimSpace(s))
	if s == "" || utf8.RuneCountInString(s) > MaxNotes {
		return "", false
	}
	return s, true
}

func Category(s string) (domain.Category, bool) {
	return domain.ParseCategory(strings.TrimSpace(s))
}

// Filter accepts "all" or a category slug; an empty value means "all".
func Filter(s string) (domain.CategoryFilter, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return domain.CategoryFilter{}, true
	}
	return domain.ParseFilter(s)
}

// Password checks length and that every character class is present.
func Password(s string) bool {
	l := len(s)
	if l < 8 || l > 64 {
		return false
	}
	var hasLower, hasUpper, hasDigit, hasSymbol bool
	for _, r := range s {
		switch {
		case 'a' <= r && r <= 'z':
			hasLower = true
		case 'A' <= r && r <= 'Z':
			hasUpper = true
		case '0' <= r && r <= '9':
			hasDigit = true
		default:
			hasSymbol = true
		}
	}
	return hasLower && hasUpper && hasDigit && hasSymbol
}
