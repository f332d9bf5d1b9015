package expr

import (
	"math/big"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/pkg/errors"
)

var singleCharKinds = map[byte]Kind{
	'+': KindAdd,
	'-': KindSub,
	'*': KindMul,
	'/': KindDiv,
	'^': KindPow,
	'(': KindLParen,
	')': KindRParen,
	',': KindComma,
}

// Tokenize scans s left to right and returns its tokens, terminated by a
// KindEOF token. Identifiers are resolved here: n or N becomes a variable,
// a whitelisted name becomes a function, anything else is rejected.
func Tokenize(s string) ([]Token, error) {
	var tokens []Token
	pos := 0
	for pos < len(s) {
		c := s[pos]
		switch {
		case isSpace(c):
			pos++

		case isLetter(c):
			end := pos
			for end < len(s) && isLetter(s[end]) {
				end++
			}
			name := s[pos:end]
			if strings.EqualFold(name, "n") {
				tokens = append(tokens, Token{Kind: KindVariable, Pos: pos})
			} else if f, ok := LookupFunc(name); ok {
				tokens = append(tokens, Token{Kind: KindFunction, Func: f, Pos: pos})
			} else {
				return nil, errors.Wrapf(ErrUnsupportedIdentifier, "%q at offset %d", name, pos)
			}
			pos = end

		case isDigit(c):
			end := pos
			for end < len(s) && isDigit(s[end]) {
				end++
			}
			v, ok := new(big.Int).SetString(s[pos:end], 10)
			if !ok {
				return nil, errors.Wrapf(ErrInvalidToken, "bad integer %q at offset %d", s[pos:end], pos)
			}
			tokens = append(tokens, Token{Kind: KindInteger, Int: v, Pos: pos})
			pos = end

		case c >= utf8.RuneSelf:
			r, size := utf8.DecodeRuneInString(s[pos:])
			if r == utf8.RuneError || !unicode.IsSpace(r) {
				return nil, errors.Wrapf(ErrInvalidToken, "%q at offset %d", r, pos)
			}
			pos += size

		default:
			k, ok := singleCharKinds[c]
			if !ok {
				return nil, errors.Wrapf(ErrInvalidToken, "%q at offset %d", c, pos)
			}
			tokens = append(tokens, Token{Kind: k, Pos: pos})
			pos++
		}
	}
	return append(tokens, Token{Kind: KindEOF, Pos: len(s)}), nil
}
