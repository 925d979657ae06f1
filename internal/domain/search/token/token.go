// Package token turns raw text into canonical lowercase word tokens.
package token

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// MinTokenLength is the shortest token (in runes) that takes part in scoring.
const MinTokenLength = 2

var lower = cases.Lower(language.Und)

// Normalize lowercases text, drops every rune that is not a letter, number or
// whitespace, collapses whitespace runs to a single space and trims the result.
// Normalize(Normalize(x)) == Normalize(x).
func Normalize(text string) string {
	if text == "" {
		return ""
	}
	s := lower.String(norm.NFC.String(text))

	var b strings.Builder
	b.Grow(len(s))
	pendingSpace := false
	for _, r := range s {
		switch {
		case unicode.IsLetter(r) || unicode.IsNumber(r):
			if pendingSpace && b.Len() > 0 {
				b.WriteByte(' ')
			}
			pendingSpace = false
			b.WriteRune(r)
		case unicode.IsSpace(r):
			pendingSpace = true
		}
	}

	// Stripped marks can leave conjoining jamo adjacent; recompose them.
	return norm.NFC.String(b.String())
}

// Tokenize normalizes text and splits it into tokens. Empty input yields nil.
func Tokenize(text string) []string {
	n := Normalize(text)
	if n == "" {
		return nil
	}
	return strings.Split(n, " ")
}

// Significant returns the tokens at least MinTokenLength runes long.
func Significant(tokens []string) []string {
	out := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if utf8.RuneCountInString(t) >= MinTokenLength {
			out = append(out, t)
		}
	}
	return out
}

// Set returns the distinct tokens of text.
func Set(text string) map[string]struct{} {
	toks := Tokenize(text)
	set := make(map[string]struct{}, len(toks))
	for _, t := range toks {
		set[t] = struct{}{}
	}
	return set
}
