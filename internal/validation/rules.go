package validation

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf16"
)

const MinPasswordLength = 6

var (
	// single-@ shape check, not RFC 5322. RE2's \s is ASCII only, so the
	// class spells out the full browser whitespace set.
	emailPattern = regexp.MustCompile(`^[^\t\n\v\f\r\p{Z}\x{FEFF}@]+@[^\t\n\v\f\r\p{Z}\x{FEFF}@]+\.[^\t\n\v\f\r\p{Z}\x{FEFF}@]+$`)
	phonePattern = regexp.MustCompile(`^[0-9]{7,15}$`)
)

// IsSpace reports whether r is whitespace the way browsers trim it: the
// ASCII controls TAB through CR, every Unicode space separator and BOM.
// Unlike unicode.IsSpace it excludes U+0085.
func IsSpace(r rune) bool {
	return (r >= '\t' && r <= '\r') || r == '\uFEFF' || unicode.Is(unicode.Z, r)
}

func TrimSpace(s string) string {
	return strings.TrimFunc(s, IsSpace)
}

func NonBlank(s string) bool {
	return TrimSpace(s) != ""
}

func ValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// ValidPhone checks the national number only; the country code is stored
// separately on the form.
func ValidPhone(s string) bool {
	return phonePattern.MatchString(s)
}

// ValidPassword measures length in UTF-16 code units, so characters outside
// the BMP count twice.
func ValidPassword(s string) bool {
	return utf16Len(s) >= MinPasswordLength
}

func utf16Len(s string) int {
	n := 0
	for _, r := range s {
		if l := utf16.RuneLen(r); l > 0 {
			n += l
		} else {
			n++
		}
	}
	return n
}

func PasswordsMatch(password, confirm string) bool {
	return password == confirm
}

// SelectedGender returns the gender when exactly one option is selected.
func SelectedGender(male, female bool) string {
	switch {
	case male && !female:
		return "male"
	case female && !male:
		return "female"
	default:
		return ""
	}
}
