// Package annotation tokenizes raw protocol-decoder output.
//
// sigrok-cli emits one annotation per line, prefixed with the decoder
// instance that produced it ("i2c-1: Start", "uart-1: TX data: 48").
// Tokenize strips that prefix and preserves temporal order; everything
// downstream (assemblers, the generic formatter) consumes the result.
package annotation

import "strings"

// Token is a single decoded annotation line.
// Label is the decoder/instance prefix; Value is the semantic text.
// Lines without a ": " separator keep the whole line as Label with an
// empty Value.
type Token struct {
	Label string
	Value string
}

// Tokenize splits raw decoder output into ordered tokens.
// Blank lines are dropped. Order is input order — the temporal order of
// the decode. Tokenize never fails; malformed lines degrade to tokens
// with an empty Value.
func Tokenize(raw string) []Token {
	var tokens []Token
	for _, line := range strings.Split(strings.TrimSpace(raw), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		label, value, found := strings.Cut(line, ": ")
		if !found {
			tokens = append(tokens, Token{Label: line})
			continue
		}
		tokens = append(tokens, Token{Label: label, Value: value})
	}
	return tokens
}

// Values returns the non-empty token values from raw decoder output,
// dropping separator-less lines entirely. This is the view assemblers
// fold over.
func Values(raw string) []string {
	var values []string
	for _, tok := range Tokenize(raw) {
		if tok.Value != "" {
			values = append(values, tok.Value)
		}
	}
	return values
}
