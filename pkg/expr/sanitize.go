package expr

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/pkg/errors"
)

const asciiSpace = " \t\n\r\v\f"

// Sanitize trims a raw candidate and checks it against the grammar's
// character whitelist. Trailing '.' and ';' are dropped. Any Unicode space,
// such as the no-break spaces common in OEIS text, counts as whitespace.
func Sanitize(raw string) (string, error) {
	s := strings.TrimRight(strings.TrimFunc(raw, unicode.IsSpace), ".;")
	if s == "" {
		return "", ErrEmpty
	}
	for i, r := range s {
		if r == utf8.RuneError || !(r < utf8.RuneSelf && allowedChar(byte(r)) || unicode.IsSpace(r)) {
			return "", errors.Wrapf(ErrInvalidCharacter, "%q at offset %d", r, i)
		}
	}
	return s, nil
}

func allowedChar(c byte) bool {
	switch {
	case isDigit(c), isLetter(c), isSpace(c):
		return true
	}
	switch c {
	case '+', '-', '*', '/', '^', '(', ')', ',':
		return true
	}
	return false
}

func isDigit(c byte) bool  { return '0' <= c && c <= '9' }
func isLetter(c byte) bool { return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') }
func isSpace(c byte) bool  { return strings.IndexByte(asciiSpace, c) >= 0 }
