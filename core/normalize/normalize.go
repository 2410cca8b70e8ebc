package normalize

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// ExpansionPrefix is the fixed leading letter of every expansion code.
const ExpansionPrefix = "h"

func stripSpaces(raw string) string {
	return strings.ReplaceAll(strings.TrimSpace(raw), " ", "")
}

// Expansion canonicalizes an expansion code. ok is false for empty or
// whitespace-only input.
func Expansion(raw string) (code string, ok bool) {
	c := strings.ToLower(stripSpaces(raw))
	if c == "" {
		return "", false
	}
	if !strings.HasPrefix(c, ExpansionPrefix) {
		c = ExpansionPrefix + c
	}

	rest := []rune(c[len(ExpansionPrefix):])
	cut := min(2, len(rest))
	category := strings.ToUpper(string(rest[:cut]))
	suffix := strings.ToUpper(string(rest[cut:]))
	return ExpansionPrefix + category + suffix, true
}

// CardCode lowercases the first character and uppercases everything else.
// Empty input yields an empty string, which callers treat as "skip".
func CardCode(raw string) string {
	c := stripSpaces(raw)
	if c == "" {
		return ""
	}
	first, size := utf8.DecodeRuneInString(c)
	return string(unicode.ToLower(first)) + strings.ToUpper(c[size:])
}

// SearchKey is the comparison form used when matching codes printed on
// marketplace listings: ASCII and full-width spaces removed, lowercased.
func SearchKey(raw string) string {
	r := strings.NewReplacer(" ", "", "\u3000", "")
	return strings.ToLower(r.Replace(raw))
}

// Rarity trims and uppercases a rarity label.
func Rarity(raw string) string {
	return strings.ToUpper(strings.TrimSpace(raw))
}

// ExpansionList parses a comma-separated selector into canonical expansion
// codes, dropping empties and duplicates while keeping the given order.
func ExpansionList(raw string) []string {
	var out []string
	seen := make(map[string]struct{})
	for _, part := range strings.Split(raw, ",") {
		code, ok := Expansion(part)
		if !ok {
			continue
		}
		if _, dup := seen[code]; dup {
			continue
		}
		seen[code] = struct{}{}
		out = append(out, code)
	}
	return out
}
