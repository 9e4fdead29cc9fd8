// Package textparser turns text runs containing {{ }} interpolation into
// concatenation expressions.
package textparser

import (
	"bytes"
	"encoding/json"
	"regexp"
	"strings"
)

// tagRE matches one interpolation span, non-greedy, newlines included
var tagRE = regexp.MustCompile(`\{\{((?:.|\n)+?)\}\}`)

// Tokens splits text into literal fragments (JSON string literals) and
// _s(expr) placeholders, in source order. It returns nil when the text holds
// no interpolation.
func Tokens(text string) []string {
	matches := tagRE.FindAllStringSubmatchIndex(text, -1)
	if len(matches) == 0 {
		return nil
	}

	tokens := make([]string, 0, len(matches)*2+1)
	lastIndex := 0
	for _, m := range matches {
		if m[0] > lastIndex {
			tokens = append(tokens, Quote(text[lastIndex:m[0]]))
		}
		exp := strings.TrimSpace(text[m[2]:m[3]])
		tokens = append(tokens, "_s("+exp+")")
		lastIndex = m[1]
	}
	if lastIndex < len(text) {
		tokens = append(tokens, Quote(text[lastIndex:]))
	}
	return tokens
}

// Parse returns the joined expression for text and whether any interpolation
// was found.
func Parse(text string) (string, bool) {
	tokens := Tokens(text)
	if tokens == nil {
		return "", false
	}
	return strings.Join(tokens, "+"), true
}

// Quote encodes s as a JSON string literal without escaping <, > and &.
func Quote(s string) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	// strings always encode
	_ = enc.Encode(s)
	return strings.TrimSuffix(buf.String(), "\n")
}
